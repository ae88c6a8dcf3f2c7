// Package dto holds the JSON shapes exposed to the presentation layer
// and the mappers from the persistence models. Status enums always cross
// the boundary as strings.
package dto

import (
	"time"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/models"
)

// OrderItemDto is one order line as seen by the UI.
type OrderItemDto struct {
	MedicineID   uint    `json:"medicineId"`
	MedicineName string  `json:"medicineName"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
}

// OrderDto is the order shape exposed to the presentation layer.
type OrderDto struct {
	OrderID        uint           `json:"orderId"`
	UserID         uint           `json:"userId"`
	AddressID      uint           `json:"addressId"`
	PrescriptionID *uint          `json:"prescriptionId,omitempty"`
	Status         string         `json:"status"`
	TotalAmount    *float64       `json:"totalAmount,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	OrderItems     []OrderItemDto `json:"orderItems"`
}

// OrderFromModel maps an order to its DTO. medicineNames resolves item
// medicine ids to display names; unknown ids map to an empty name rather
// than failing the response.
func OrderFromModel(order *models.Order, medicineNames map[uint]string) OrderDto {
	items := make([]OrderItemDto, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, OrderItemDto{
			MedicineID:   it.MedicineID,
			MedicineName: medicineNames[it.MedicineID],
			Quantity:     it.Quantity,
			Price:        it.Price,
		})
	}

	return OrderDto{
		OrderID:        order.ID,
		UserID:         order.UserID,
		AddressID:      order.AddressID,
		PrescriptionID: order.PrescriptionID,
		Status:         string(order.Status),
		TotalAmount:    order.TotalAmount,
		CreatedAt:      order.CreatedAt,
		OrderItems:     items,
	}
}
