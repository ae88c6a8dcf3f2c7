package repositories

import (
	"context"
	"errors"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/models"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/orm"
	"gorm.io/gorm"
)

// CategoryRepository handles database operations for Category.
type CategoryRepository struct{}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

// FindByID looks up a category by primary key.
func (r *CategoryRepository) FindByID(ctx context.Context, id uint) (*models.Category, error) {
	var cat models.Category
	err := orm.Ctx(ctx).Model(&models.Category{}).Where("id = ?", id).First(&cat)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// All returns every category.
func (r *CategoryRepository) All(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	err := orm.Ctx(ctx).Model(&models.Category{}).Order("name asc").Get(&cats)
	return cats, err
}

// Create persists a new category.
func (r *CategoryRepository) Create(ctx context.Context, cat *models.Category) error {
	return orm.Ctx(ctx).Create(cat)
}

// Update persists changes to a category.
func (r *CategoryRepository) Update(ctx context.Context, cat *models.Category) error {
	return orm.Ctx(ctx).Save(cat)
}

// Delete removes a category.
func (r *CategoryRepository) Delete(ctx context.Context, cat *models.Category) error {
	return orm.Ctx(ctx).Delete(cat)
}
