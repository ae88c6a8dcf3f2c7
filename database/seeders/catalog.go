package seeders

import (
	"time"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/models"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("staff", SeedStaff)
	Register("catalog", SeedCatalog)
}

// SeedStaff creates the default admin and pharmacist accounts. Existing
// accounts are left untouched so the seeder is safe to re-run.
func SeedStaff(db *gorm.DB) error {
	staff := []struct {
		name, email, password string
		role                  models.Role
	}{
		{"Vinaya", "admin@vinayaspharmacy.com", "admin-secret", models.RoleAdmin},
		{"Duty Pharmacist", "pharmacist@vinayaspharmacy.com", "pharma-secret", models.RolePharmacist},
	}

	for _, s := range staff {
		var count int64
		if err := db.Model(&models.User{}).Where("email = ?", s.email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		hash, err := auth.HashPassword(s.password)
		if err != nil {
			return err
		}
		user := models.User{Name: s.name, Email: s.email, Password: hash, Role: s.role}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedCatalog inserts a starter catalogue: a few categories and a mix of
// over-the-counter and prescription-only medicines.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{
		{Name: "Pain Relief", Description: "Analgesics and anti-inflammatories"},
		{Name: "Antibiotics", Description: "Prescription-only antibacterials"},
		{Name: "Vitamins", Description: "Supplements and multivitamins"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}

	expiry := time.Now().AddDate(2, 0, 0)
	medicines := []models.Medicine{
		{Name: "Paracetamol 500mg", Price: 25.00, Stock: 200, CategoryID: categories[0].ID, ExpiryDate: expiry},
		{Name: "Ibuprofen 400mg", Price: 45.00, Stock: 150, CategoryID: categories[0].ID, ExpiryDate: expiry},
		{Name: "Amoxicillin 250mg", Price: 120.00, Stock: 80, RequiresPrescription: true, CategoryID: categories[1].ID, ExpiryDate: expiry},
		{Name: "Azithromycin 500mg", Price: 180.00, Stock: 60, RequiresPrescription: true, CategoryID: categories[1].ID, ExpiryDate: expiry},
		{Name: "Vitamin D3 1000IU", Price: 90.00, Stock: 300, CategoryID: categories[2].ID, ExpiryDate: expiry},
	}
	return db.Create(&medicines).Error
}
