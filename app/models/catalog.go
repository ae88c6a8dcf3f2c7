package models

import (
	"time"

	"gorm.io/gorm"
)

// Category groups medicines in the catalogue.
type Category struct {
	gorm.Model
	Name        string `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// Medicine is a sellable catalogue item. Stock is mutated only by the
// order workflow: an atomic conditional decrement at order creation and
// a restock when an early-stage order is cancelled.
type Medicine struct {
	gorm.Model
	Name                 string    `gorm:"size:255;not null;index" json:"name"`
	Description          string    `gorm:"type:text" json:"description"`
	Price                float64   `gorm:"not null" json:"price"`
	Stock                int       `gorm:"not null;default:0" json:"stock"`
	RequiresPrescription bool      `gorm:"not null;default:false" json:"requires_prescription"`
	CategoryID           uint      `gorm:"index" json:"category_id"`
	ExpiryDate           time.Time `json:"expiry_date"`
}
