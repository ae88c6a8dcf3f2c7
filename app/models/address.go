package models

import "gorm.io/gorm"

// Address is a delivery target owned by a user. Orders reference it by id
// only; the address is never embedded in the order row.
type Address struct {
	gorm.Model
	UserID     uint   `gorm:"not null;index" json:"user_id"`
	Line1      string `gorm:"size:255;not null" json:"line1"`
	Line2      string `gorm:"size:255" json:"line2,omitempty"`
	City       string `gorm:"size:100;not null" json:"city"`
	State      string `gorm:"size:100" json:"state"`
	PostalCode string `gorm:"size:20;not null" json:"postal_code"`
	Phone      string `gorm:"size:20" json:"phone"`
}
