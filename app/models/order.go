package models

import "gorm.io/gorm"

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

// ParseOrderStatus maps a status string to an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// IsTerminal reports whether no further transitions are allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanTransitionTo enforces the order state machine:
//
//	Pending → Processing → Shipped → Delivered
//	Pending|Processing|Shipped → Cancelled
//
// Delivered and Cancelled are terminal.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	switch target {
	case OrderProcessing:
		return s == OrderPending
	case OrderShipped:
		return s == OrderProcessing
	case OrderDelivered:
		return s == OrderShipped
	case OrderCancelled:
		return true // any non-terminal state may be cancelled
	}
	return false
}

// Order is a customer's purchase request. It owns its items (deleted with
// the order) and holds a non-owning id reference to an optional
// prescription. TotalAmount is nullable until computed.
type Order struct {
	gorm.Model
	UserID         uint        `gorm:"not null;index" json:"user_id"`
	AddressID      uint        `gorm:"not null" json:"address_id"`
	PrescriptionID *uint       `gorm:"index" json:"prescription_id,omitempty"`
	TotalAmount    *float64    `json:"total_amount,omitempty"`
	Status         OrderStatus `gorm:"size:20;not null;default:Pending" json:"status"`
	Items          []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is one line within an order. Price is the medicine's unit
// price snapshotted at order-creation time; it is never re-read from the
// live catalogue afterwards.
type OrderItem struct {
	gorm.Model
	OrderID    uint    `gorm:"not null;index" json:"order_id"`
	MedicineID uint    `gorm:"not null;index" json:"medicine_id"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	Price      float64 `gorm:"not null" json:"price"`
}
