package services

import (
	"context"
	"fmt"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/models"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/repositories"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/apperr"
)

// CatalogService manages the medicine catalogue and its categories on
// behalf of admins.
type CatalogService struct {
	medicines  *repositories.MedicineRepository
	categories *repositories.CategoryRepository
}

func NewCatalogService() *CatalogService {
	return &CatalogService{
		medicines:  repositories.NewMedicineRepository(),
		categories: repositories.NewCategoryRepository(),
	}
}

// Medicines lists the full catalogue (served from cache when warm).
func (s *CatalogService) Medicines(ctx context.Context) ([]models.Medicine, error) {
	return s.medicines.All(ctx)
}

// Medicine returns one catalogue entry.
func (s *CatalogService) Medicine(ctx context.Context, id uint) (*models.Medicine, error) {
	med, err := s.medicines.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if med == nil {
		return nil, apperr.NotFound(fmt.Sprintf("medicine %d not found", id))
	}
	return med, nil
}

// CreateMedicine validates and persists a new catalogue entry.
func (s *CatalogService) CreateMedicine(ctx context.Context, med *models.Medicine) error {
	if med.Price <= 0 {
		return apperr.Validation("price must be greater than zero")
	}
	if med.Stock < 0 {
		return apperr.Validation("stock must not be negative")
	}
	if med.CategoryID != 0 {
		cat, err := s.categories.FindByID(ctx, med.CategoryID)
		if err != nil {
			return err
		}
		if cat == nil {
			return apperr.Validation(fmt.Sprintf("category %d not found", med.CategoryID))
		}
	}
	return s.medicines.Create(ctx, med)
}

// UpdateMedicine persists changes to an existing catalogue entry.
func (s *CatalogService) UpdateMedicine(ctx context.Context, med *models.Medicine) error {
	if med.Price <= 0 {
		return apperr.Validation("price must be greater than zero")
	}
	return s.medicines.Update(ctx, med)
}

// DeleteMedicine removes a catalogue entry. An entry still referenced by
// order items surfaces as an integrity error, not a raw storage failure.
func (s *CatalogService) DeleteMedicine(ctx context.Context, id uint) error {
	med, err := s.medicines.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if med == nil {
		return apperr.NotFound(fmt.Sprintf("medicine %d not found", id))
	}
	return s.medicines.Delete(ctx, med)
}

// Categories lists every category.
func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.categories.All(ctx)
}

// CreateCategory persists a new category.
func (s *CatalogService) CreateCategory(ctx context.Context, cat *models.Category) error {
	if cat.Name == "" {
		return apperr.Validation("category name is required")
	}
	return s.categories.Create(ctx, cat)
}
