package models

import "gorm.io/gorm"

// Role is the closed set of portal roles.
type Role string

const (
	RoleAdmin      Role = "Admin"
	RolePharmacist Role = "Pharmacist"
	RoleCustomer   Role = "Customer"
)

// ParseRole maps a role string (e.g. from a JWT claim) to a Role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RolePharmacist, RoleCustomer:
		return Role(s), true
	}
	return "", false
}

// CanForceCancel reports whether the role may cancel an order regardless
// of its current status. Customers may only cancel early-stage orders.
func (r Role) CanForceCancel() bool {
	return r == RoleAdmin || r == RolePharmacist
}

// CanReviewPrescriptions reports whether the role may verify or reject
// uploaded prescriptions.
func (r Role) CanReviewPrescriptions() bool {
	return r == RoleAdmin || r == RolePharmacist
}

// User is the primary account model.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // hashed, never serialised
	Role     Role   `gorm:"size:50;default:Customer" json:"role"`
}
