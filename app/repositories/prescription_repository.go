package repositories

import (
	"context"
	"errors"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/models"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/orm"
	"gorm.io/gorm"
)

// PrescriptionRepository handles database operations for Prescription.
type PrescriptionRepository struct{}

func NewPrescriptionRepository() *PrescriptionRepository {
	return &PrescriptionRepository{}
}

// FindByID looks up a prescription by primary key.
func (r *PrescriptionRepository) FindByID(ctx context.Context, id uint) (*models.Prescription, error) {
	var p models.Prescription
	err := orm.Ctx(ctx).Model(&models.Prescription{}).Where("id = ?", id).First(&p)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByUserID returns every prescription uploaded by the user,
// newest first.
func (r *PrescriptionRepository) FindByUserID(ctx context.Context, userID uint) ([]models.Prescription, error) {
	var ps []models.Prescription
	err := orm.Ctx(ctx).Model(&models.Prescription{}).
		Where("user_id = ?", userID).
		Order("uploaded_at desc").
		Get(&ps)
	return ps, err
}

// Create persists a new prescription.
func (r *PrescriptionRepository) Create(ctx context.Context, p *models.Prescription) error {
	return orm.Ctx(ctx).Create(p)
}

// Update persists changes to a prescription.
func (r *PrescriptionRepository) Update(ctx context.Context, p *models.Prescription) error {
	return orm.Ctx(ctx).Save(p)
}

// Delete removes a prescription.
func (r *PrescriptionRepository) Delete(ctx context.Context, p *models.Prescription) error {
	return orm.Ctx(ctx).Delete(p)
}
