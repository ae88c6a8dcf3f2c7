package repositories

import (
	"context"
	"errors"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/models"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/orm"
	"gorm.io/gorm"
)

// OrderRepository handles database operations for Order and its items.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// FindByID looks up an order with its items preloaded.
func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := orm.Ctx(ctx).Model(&models.Order{}).Preload("Items").Where("id = ?", id).First(&order)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByUserID returns every order placed by the user, items preloaded.
func (r *OrderRepository) FindByUserID(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := orm.Ctx(ctx).Model(&models.Order{}).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Get(&orders)
	return orders, err
}

// All returns every order with items preloaded. Used by the pricing
// reconciliation batch.
func (r *OrderRepository) All(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := orm.Ctx(ctx).Model(&models.Order{}).Preload("Items").Get(&orders)
	return orders, err
}

// Create persists the order together with its items.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	return orm.Ctx(ctx).Create(order)
}

// Update persists changes to the order and any modified items. Item
// rows must be written too: pricing reconciliation repairs snapshot
// prices in place.
func (r *OrderRepository) Update(ctx context.Context, order *models.Order) error {
	return orm.Ctx(ctx).SaveFull(order)
}

// Delete removes the order and its items. The prescription cascade is
// the service's responsibility; item cleanup is done here so the rows
// never outlive their owner.
func (r *OrderRepository) Delete(ctx context.Context, order *models.Order) error {
	if _, err := orm.Ctx(ctx).Exec("DELETE FROM order_items WHERE order_id = ?", order.ID); err != nil {
		return err
	}
	return orm.Ctx(ctx).Delete(order)
}
