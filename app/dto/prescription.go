package dto

import (
	"time"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/models"
)

// PrescriptionDto is the prescription shape exposed to the presentation layer.
type PrescriptionDto struct {
	PrescriptionID uint      `json:"prescriptionId"`
	UserID         uint      `json:"userId"`
	Status         string    `json:"status"`
	Remarks        string    `json:"remarks,omitempty"`
	UploadedAt     time.Time `json:"uploadedAt"`
	FileURL        string    `json:"fileUrl"`
}

// PrescriptionFromModel maps a prescription to its DTO. fileURL is the
// public URL of the stored document, resolved by the caller through the
// storage layer.
func PrescriptionFromModel(p *models.Prescription, fileURL string) PrescriptionDto {
	return PrescriptionDto{
		PrescriptionID: p.ID,
		UserID:         p.UserID,
		Status:         string(p.Status),
		Remarks:        p.Remarks,
		UploadedAt:     p.UploadedAt,
		FileURL:        fileURL,
	}
}
