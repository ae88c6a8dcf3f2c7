package repositories

import (
	"context"
	"errors"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/models"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/orm"
	"gorm.io/gorm"
)

// AddressRepository handles database operations for Address.
type AddressRepository struct{}

func NewAddressRepository() *AddressRepository {
	return &AddressRepository{}
}

// FindByID looks up an address by primary key.
func (r *AddressRepository) FindByID(ctx context.Context, id uint) (*models.Address, error) {
	var addr models.Address
	err := orm.Ctx(ctx).Model(&models.Address{}).Where("id = ?", id).First(&addr)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

// FindByUserID returns every address owned by the user.
func (r *AddressRepository) FindByUserID(ctx context.Context, userID uint) ([]models.Address, error) {
	var addrs []models.Address
	err := orm.Ctx(ctx).Model(&models.Address{}).Where("user_id = ?", userID).Get(&addrs)
	return addrs, err
}

// Create persists a new address.
func (r *AddressRepository) Create(ctx context.Context, addr *models.Address) error {
	return orm.Ctx(ctx).Create(addr)
}

// Delete removes an address.
func (r *AddressRepository) Delete(ctx context.Context, addr *models.Address) error {
	return orm.Ctx(ctx).Delete(addr)
}
