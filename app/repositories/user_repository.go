package repositories

import (
	"context"
	"errors"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/models"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/orm"
	"gorm.io/gorm"
)

// UserRepository handles database operations for User.
// Not-found is reported as a nil result, not an error.
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := orm.Ctx(ctx).Model(&models.User{}).Where("id = ?", id).First(&user)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := orm.Ctx(ctx).Model(&models.User{}).Where("email = ?", email).First(&user)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create persists a new user record.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return orm.Ctx(ctx).Create(user)
}

// All returns all users with pagination.
func (r *UserRepository) All(ctx context.Context, page, limit int) ([]models.User, orm.Pagination, error) {
	var users []models.User
	pagination, err := orm.Ctx(ctx).Model(&models.User{}).GetWithPagination(&users, page, limit)
	return users, pagination, err
}
