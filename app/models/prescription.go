package models

import (
	"time"

	"gorm.io/gorm"
)

// PrescriptionStatus is the review state of an uploaded prescription.
type PrescriptionStatus string

const (
	PrescriptionPending  PrescriptionStatus = "Pending"
	PrescriptionVerified PrescriptionStatus = "Verified"
	PrescriptionRejected PrescriptionStatus = "Rejected"
)

// ParsePrescriptionStatus maps a status string to a PrescriptionStatus.
func ParsePrescriptionStatus(s string) (PrescriptionStatus, bool) {
	switch PrescriptionStatus(s) {
	case PrescriptionPending, PrescriptionVerified, PrescriptionRejected:
		return PrescriptionStatus(s), true
	}
	return "", false
}

// Prescription is an uploaded document establishing medical authorisation.
// It is created Pending and moved to Verified or Rejected by a pharmacist.
// Re-asserting Verified is an idempotent no-op, not an error.
type Prescription struct {
	gorm.Model
	UserID     uint               `gorm:"not null;index" json:"user_id"`
	FilePath   string             `gorm:"size:512;not null" json:"file_path"`
	Status     PrescriptionStatus `gorm:"size:20;not null;default:Pending" json:"status"`
	Remarks    string             `gorm:"type:text" json:"remarks,omitempty"`
	UploadedAt time.Time          `json:"uploaded_at"`
}
