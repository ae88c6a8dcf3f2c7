package services

import (
	"context"
	"fmt"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/dto"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/models"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/apperr"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/event"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/logger"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/metrics"
)

// OrderService orchestrates the order lifecycle: creation with stock
// reservation and snapshot pricing, gated status advancement, and
// role-aware cancellation.
type OrderService struct {
	users         UserFinder
	addresses     AddressFinder
	medicines     MedicineStore
	prescriptions PrescriptionStore
	orders        OrderStore
	gate          StatusGate
	tx            TxRunner
}

func NewOrderService(
	users UserFinder,
	addresses AddressFinder,
	medicines MedicineStore,
	prescriptions PrescriptionStore,
	orders OrderStore,
	gate StatusGate,
	tx TxRunner,
) *OrderService {
	return &OrderService{
		users:         users,
		addresses:     addresses,
		medicines:     medicines,
		prescriptions: prescriptions,
		orders:        orders,
		gate:          gate,
		tx:            tx,
	}
}

// CreateOrderItemInput is one requested line.
type CreateOrderItemInput struct {
	MedicineID uint `json:"medicine_id" validate:"required"`
	Quantity   int  `json:"quantity" validate:"required,gte=1"`
}

// CreateOrderInput is the create-order request.
type CreateOrderInput struct {
	UserID         uint                   `json:"user_id" validate:"required"`
	AddressID      uint                   `json:"address_id" validate:"required"`
	PrescriptionID *uint                  `json:"prescription_id"`
	Items          []CreateOrderItemInput `json:"items" validate:"required"`
}

// Create validates the referenced entities, reserves stock for every
// line inside one transaction, snapshots unit prices, and persists the
// order with its computed total. A single short line rolls the whole
// reservation back.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*dto.OrderDto, error) {
	if len(in.Items) == 0 {
		return nil, apperr.Validation("order must contain at least one item")
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, apperr.Validation(fmt.Sprintf("quantity for medicine %d must be positive", it.MedicineID))
		}
	}

	user, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Validation(fmt.Sprintf("user %d not found", in.UserID))
	}

	addr, err := s.addresses.FindByID(ctx, in.AddressID)
	if err != nil {
		return nil, err
	}
	if addr == nil {
		return nil, apperr.Validation(fmt.Sprintf("address %d not found", in.AddressID))
	}
	if addr.UserID != in.UserID {
		return nil, apperr.Validation(fmt.Sprintf("address %d does not belong to user %d", in.AddressID, in.UserID))
	}

	if in.PrescriptionID != nil {
		p, err := s.prescriptions.FindByID(ctx, *in.PrescriptionID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, apperr.Validation(fmt.Sprintf("prescription %d not found", *in.PrescriptionID))
		}
		if p.UserID != in.UserID {
			return nil, apperr.Validation(fmt.Sprintf("prescription %d does not belong to user %d", *in.PrescriptionID, in.UserID))
		}
	}

	var order *models.Order
	names := make(map[uint]string, len(in.Items))

	err = s.tx(ctx, func(ctx context.Context) error {
		var total float64
		items := make([]models.OrderItem, 0, len(in.Items))

		for _, it := range in.Items {
			med, err := s.medicines.FindByID(ctx, it.MedicineID)
			if err != nil {
				return err
			}
			if med == nil {
				return apperr.Validation(fmt.Sprintf("medicine %d not found", it.MedicineID))
			}

			ok, err := s.medicines.DecrementStock(ctx, med.ID, it.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				metrics.StockRejections.Inc()
				return apperr.Business(fmt.Sprintf(
					"insufficient stock for %s. Available: %d, Requested: %d",
					med.Name, med.Stock, it.Quantity,
				))
			}

			names[med.ID] = med.Name
			items = append(items, models.OrderItem{
				MedicineID: med.ID,
				Quantity:   it.Quantity,
				Price:      med.Price, // snapshot, never re-read after creation
			})
			total += med.Price * float64(it.Quantity)
		}

		order = &models.Order{
			UserID:         in.UserID,
			AddressID:      in.AddressID,
			PrescriptionID: in.PrescriptionID,
			TotalAmount:    &total,
			Status:         models.OrderPending,
			Items:          items,
		}
		return s.orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	out := dto.OrderFromModel(order, names)
	event.FireAsync("order.created", out)

	return &out, nil
}

// gatedStatuses are the transitions that require a verified prescription
// when the order links one.
func isGatedStatus(s models.OrderStatus) bool {
	return s == models.OrderProcessing || s == models.OrderShipped || s == models.OrderDelivered
}

// checkStatusAdvance runs the shared validation for UpdateStatus and
// CanUpdateStatus: the transition table first, then the prescription gate.
func (s *OrderService) checkStatusAdvance(ctx context.Context, order *models.Order, target models.OrderStatus) error {
	if !order.Status.CanTransitionTo(target) {
		return apperr.Business(fmt.Sprintf("cannot transition order from %s to %s", order.Status, target))
	}
	if isGatedStatus(target) {
		return s.gate.ValidateForStatusAdvance(ctx, order, target)
	}
	return nil
}

// UpdateStatus advances the order to target after consulting the
// transition table and, for Processing/Shipped/Delivered, the
// prescription gate. A gate rejection leaves the order untouched.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, target models.OrderStatus) (*dto.OrderDto, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.NotFound(fmt.Sprintf("order %d not found", orderID))
	}

	if err := s.checkStatusAdvance(ctx, order, target); err != nil {
		return nil, err
	}

	order.Status = target
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	metrics.OrderStatusChanges.WithLabelValues(string(target)).Inc()
	out := dto.OrderFromModel(order, s.medicineNames(ctx, order))
	return &out, nil
}

// CanUpdateStatus is the non-mutating probe behind button enablement:
// it runs the same checks as UpdateStatus and reports business-rule
// outcomes as (false, reason) instead of an error. I/O failures and a
// missing order still surface as errors.
func (s *OrderService) CanUpdateStatus(ctx context.Context, orderID uint, target models.OrderStatus) (bool, string, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return false, "", err
	}
	if order == nil {
		return false, "", apperr.NotFound(fmt.Sprintf("order %d not found", orderID))
	}

	if err := s.checkStatusAdvance(ctx, order, target); err != nil {
		switch apperr.KindOf(err) {
		case apperr.KindBusiness, apperr.KindNotFound, apperr.KindValidation:
			return false, err.Error(), nil
		}
		return false, "", err
	}
	return true, "", nil
}

// Delete cancels and removes an order. Customers may cancel only their
// own orders, and only while still Pending or Processing; pharmacists
// and admins may always. Reserved stock is returned for early-stage
// orders, and a linked prescription is deleted with the order.
func (s *OrderService) Delete(ctx context.Context, orderID, requesterID uint, role models.Role) error {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperr.NotFound(fmt.Sprintf("order %d not found", orderID))
	}
	// Another customer's order reads as missing rather than forbidden.
	if !role.CanForceCancel() && order.UserID != requesterID {
		return apperr.NotFound(fmt.Sprintf("order %d not found", orderID))
	}

	earlyStage := order.Status == models.OrderPending || order.Status == models.OrderProcessing
	if !role.CanForceCancel() && !earlyStage {
		return apperr.Business("only pending or processing orders can be cancelled")
	}

	return s.tx(ctx, func(ctx context.Context) error {
		// Stock was reserved at creation and not yet consumed by
		// fulfilment, so return it to the pool.
		if earlyStage {
			for _, it := range order.Items {
				if err := s.medicines.IncrementStock(ctx, it.MedicineID, it.Quantity); err != nil {
					return err
				}
			}
		}

		if order.PrescriptionID != nil {
			p, err := s.prescriptions.FindByID(ctx, *order.PrescriptionID)
			if err != nil {
				return err
			}
			if p != nil {
				if err := s.prescriptions.Delete(ctx, p); err != nil {
					return err
				}
			}
		}

		return s.orders.Delete(ctx, order)
	})
}

// GetByID returns one order as a DTO.
func (s *OrderService) GetByID(ctx context.Context, orderID uint) (*dto.OrderDto, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.NotFound(fmt.Sprintf("order %d not found", orderID))
	}
	out := dto.OrderFromModel(order, s.medicineNames(ctx, order))
	return &out, nil
}

// medicineNames resolves display names for an order's items. Lookup
// failures degrade to empty names; they never fail the read.
func (s *OrderService) medicineNames(ctx context.Context, order *models.Order) map[uint]string {
	names := make(map[uint]string, len(order.Items))
	for _, it := range order.Items {
		med, err := s.medicines.FindByID(ctx, it.MedicineID)
		if err != nil || med == nil {
			logger.Warn("order: medicine name lookup failed", "medicine_id", it.MedicineID)
			continue
		}
		names[med.ID] = med.Name
	}
	return names
}
