package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/models"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/services"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/apperr"
)

func uintPtr(v uint) *uint { return &v }

func newOrderService(
	medicines *fakeMedicines,
	prescriptions *fakePrescriptions,
	orders *fakeOrders,
	gate services.StatusGate,
) *services.OrderService {
	users := newFakeUsers(models.User{
		Model: gorm.Model{ID: 1},
		Name:  "Asha", Email: "asha@example.com", Role: models.RoleCustomer,
	})
	addresses := newFakeAddresses(models.Address{
		Model: gorm.Model{ID: 1}, UserID: 1, Line1: "12 Hill Road", City: "Pune", PostalCode: "411001",
	})
	return services.NewOrderService(users, addresses, medicines, prescriptions, orders, gate, passTx)
}

func TestCreateOrderSnapshotsPricesAndTotal(t *testing.T) {
	medicines := newFakeMedicines(
		models.Medicine{Model: gorm.Model{ID: 10}, Name: "Paracetamol 500mg", Price: 25.00, Stock: 50},
		models.Medicine{Model: gorm.Model{ID: 11}, Name: "Vitamin D3 1000IU", Price: 22.50, Stock: 40},
	)
	orders := newFakeOrders()
	svc := newOrderService(medicines, newFakePrescriptions(), orders, &fakeGate{})

	out, err := svc.Create(context.Background(), services.CreateOrderInput{
		UserID:    1,
		AddressID: 1,
		Items: []services.CreateOrderItemInput{
			{MedicineID: 10, Quantity: 2}, // 50.00
			{MedicineID: 11, Quantity: 2}, // 45.00
		},
	})
	require.NoError(t, err)
	require.NotNil(t, out.TotalAmount)

	assert.Equal(t, 95.00, *out.TotalAmount)
	assert.Equal(t, "Pending", out.Status)
	require.Len(t, out.OrderItems, 2)
	assert.Equal(t, 25.00, out.OrderItems[0].Price)
	assert.Equal(t, "Paracetamol 500mg", out.OrderItems[0].MedicineName)

	// Stock reserved at creation.
	assert.Equal(t, 48, medicines.stock(10))
	assert.Equal(t, 38, medicines.stock(11))
}

func TestCreateOrderInsufficientStockRollsBackReservation(t *testing.T) {
	medicines := newFakeMedicines(
		models.Medicine{Model: gorm.Model{ID: 10}, Name: "Paracetamol 500mg", Price: 25.00, Stock: 50},
		models.Medicine{Model: gorm.Model{ID: 11}, Name: "Azithromycin 500mg", Price: 180.00, Stock: 0},
	)
	orders := newFakeOrders()

	users := newFakeUsers(models.User{Model: gorm.Model{ID: 1}, Role: models.RoleCustomer})
	addresses := newFakeAddresses(models.Address{Model: gorm.Model{ID: 1}, UserID: 1})

	// A failing transaction must undo the partial decrement; the fake tx
	// runner emulates rollback by restoring stock on error.
	tx := func(ctx context.Context, fn func(ctx context.Context) error) error {
		before := map[uint]int{10: medicines.stock(10), 11: medicines.stock(11)}
		err := fn(ctx)
		if err != nil {
			for id, s := range before {
				medicines.meds[id].Stock = s
			}
		}
		return err
	}
	svc := services.NewOrderService(users, addresses, medicines, newFakePrescriptions(), orders, &fakeGate{}, tx)

	_, err := svc.Create(context.Background(), services.CreateOrderInput{
		UserID:    1,
		AddressID: 1,
		Items: []services.CreateOrderItemInput{
			{MedicineID: 10, Quantity: 2},
			{MedicineID: 11, Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsBusiness(err))
	assert.EqualError(t, err, "insufficient stock for Azithromycin 500mg. Available: 0, Requested: 1")

	// No order persisted and no stock leaked.
	all, _ := orders.All(context.Background())
	assert.Empty(t, all)
	assert.Equal(t, 50, medicines.stock(10))
	assert.Equal(t, 0, medicines.stock(11))
}

func TestCreateOrderRejectsUnknownMedicine(t *testing.T) {
	medicines := newFakeMedicines()
	svc := newOrderService(medicines, newFakePrescriptions(), newFakeOrders(), &fakeGate{})

	_, err := svc.Create(context.Background(), services.CreateOrderInput{
		UserID:    1,
		AddressID: 1,
		Items:     []services.CreateOrderItemInput{{MedicineID: 99, Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Contains(t, err.Error(), "medicine 99 not found")
}

func TestCreateOrderValidatesInput(t *testing.T) {
	svc := newOrderService(newFakeMedicines(), newFakePrescriptions(), newFakeOrders(), &fakeGate{})
	ctx := context.Background()

	_, err := svc.Create(ctx, services.CreateOrderInput{UserID: 1, AddressID: 1})
	assert.True(t, apperr.IsValidation(err), "empty items")

	_, err = svc.Create(ctx, services.CreateOrderInput{
		UserID: 1, AddressID: 1,
		Items: []services.CreateOrderItemInput{{MedicineID: 10, Quantity: 0}},
	})
	assert.True(t, apperr.IsValidation(err), "zero quantity")

	_, err = svc.Create(ctx, services.CreateOrderInput{
		UserID: 42, AddressID: 1,
		Items: []services.CreateOrderItemInput{{MedicineID: 10, Quantity: 1}},
	})
	assert.True(t, apperr.IsValidation(err), "unknown user")

	_, err = svc.Create(ctx, services.CreateOrderInput{
		UserID: 1, AddressID: 9,
		Items: []services.CreateOrderItemInput{{MedicineID: 10, Quantity: 1}},
	})
	assert.True(t, apperr.IsValidation(err), "unknown address")
}

func TestUpdateStatusFollowsTransitionTable(t *testing.T) {
	medicines := newFakeMedicines(
		models.Medicine{Model: gorm.Model{ID: 10}, Name: "Paracetamol 500mg", Price: 25.00, Stock: 50},
	)
	orders := newFakeOrders(models.Order{
		Model: gorm.Model{ID: 1}, UserID: 1, AddressID: 1, Status: models.OrderPending,
		Items: []models.OrderItem{{OrderID: 1, MedicineID: 10, Quantity: 1, Price: 25.00}},
	})
	svc := newOrderService(medicines, newFakePrescriptions(), orders, &fakeGate{})
	ctx := context.Background()

	// Pending cannot jump straight to Shipped.
	_, err := svc.UpdateStatus(ctx, 1, models.OrderShipped)
	require.Error(t, err)
	assert.True(t, apperr.IsBusiness(err))
	assert.Contains(t, err.Error(), "cannot transition order from Pending to Shipped")

	// The legal path works end to end.
	for _, target := range []models.OrderStatus{
		models.OrderProcessing, models.OrderShipped, models.OrderDelivered,
	} {
		out, err := svc.UpdateStatus(ctx, 1, target)
		require.NoError(t, err)
		assert.Equal(t, string(target), out.Status)
	}

	// Delivered is terminal.
	_, err = svc.UpdateStatus(ctx, 1, models.OrderCancelled)
	require.Error(t, err)
	assert.True(t, apperr.IsBusiness(err))
}

func TestUpdateStatusGateRejectionLeavesOrderUntouched(t *testing.T) {
	orders := newFakeOrders(models.Order{
		Model: gorm.Model{ID: 1}, UserID: 1, AddressID: 1,
		PrescriptionID: uintPtr(5), Status: models.OrderPending,
	})
	gate := &fakeGate{err: apperr.Business("review the prescription before updating status")}
	svc := newOrderService(newFakeMedicines(), newFakePrescriptions(), orders, gate)

	_, err := svc.UpdateStatus(context.Background(), 1, models.OrderProcessing)
	require.Error(t, err)
	assert.True(t, apperr.IsBusiness(err))

	stored, _ := orders.FindByID(context.Background(), 1)
	assert.Equal(t, models.OrderPending, stored.Status)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc := newOrderService(newFakeMedicines(), newFakePrescriptions(), newFakeOrders(), &fakeGate{})

	_, err := svc.UpdateStatus(context.Background(), 77, models.OrderProcessing)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCanUpdateStatusReportsBusinessOutcomesAsReasons(t *testing.T) {
	orders := newFakeOrders(models.Order{
		Model: gorm.Model{ID: 1}, UserID: 1, AddressID: 1,
		PrescriptionID: uintPtr(5), Status: models.OrderPending,
	})
	gate := &fakeGate{err: apperr.Business("cannot update order status; prescription is rejected")}
	svc := newOrderService(newFakeMedicines(), newFakePrescriptions(), orders, gate)
	ctx := context.Background()

	allowed, reason, err := svc.CanUpdateStatus(ctx, 1, models.OrderProcessing)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, "cannot update order status; prescription is rejected", reason)

	// The probe never mutates.
	stored, _ := orders.FindByID(ctx, 1)
	assert.Equal(t, models.OrderPending, stored.Status)

	// With a passing gate the same probe allows the transition.
	gate.err = nil
	allowed, reason, err = svc.CanUpdateStatus(ctx, 1, models.OrderProcessing)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Empty(t, reason)
}

func TestCancelPendingOrderRestocksAndDeletesPrescription(t *testing.T) {
	medicines := newFakeMedicines(
		models.Medicine{Model: gorm.Model{ID: 10}, Name: "Amoxicillin 250mg", Price: 120.00, Stock: 8, RequiresPrescription: true},
	)
	prescriptions := newFakePrescriptions(models.Prescription{
		Model: gorm.Model{ID: 5}, UserID: 1, FilePath: "prescriptions/1/a.pdf", Status: models.PrescriptionPending,
	})
	orders := newFakeOrders(models.Order{
		Model: gorm.Model{ID: 1}, UserID: 1, AddressID: 1,
		PrescriptionID: uintPtr(5), Status: models.OrderPending,
		Items: []models.OrderItem{{OrderID: 1, MedicineID: 10, Quantity: 3, Price: 120.00}},
	})
	svc := newOrderService(medicines, prescriptions, orders, &fakeGate{})
	ctx := context.Background()

	err := svc.Delete(ctx, 1, 1, models.RoleCustomer)
	require.NoError(t, err)

	assert.Equal(t, 11, medicines.stock(10), "reserved stock returned")

	gone, _ := orders.FindByID(ctx, 1)
	assert.Nil(t, gone)

	p, _ := prescriptions.FindByID(ctx, 5)
	assert.Nil(t, p, "linked prescription removed with the order")
}

func TestCancelShippedOrderRequiresElevatedRole(t *testing.T) {
	medicines := newFakeMedicines(
		models.Medicine{Model: gorm.Model{ID: 10}, Name: "Paracetamol 500mg", Price: 25.00, Stock: 5},
	)
	orders := newFakeOrders(models.Order{
		Model: gorm.Model{ID: 1}, UserID: 1, AddressID: 1, Status: models.OrderShipped,
		Items: []models.OrderItem{{OrderID: 1, MedicineID: 10, Quantity: 2, Price: 25.00}},
	})
	svc := newOrderService(medicines, newFakePrescriptions(), orders, &fakeGate{})
	ctx := context.Background()

	err := svc.Delete(ctx, 1, 1, models.RoleCustomer)
	require.Error(t, err)
	assert.True(t, apperr.IsBusiness(err))

	still, _ := orders.FindByID(ctx, 1)
	require.NotNil(t, still)

	// A pharmacist may force-cancel, and shipped stock is not restocked.
	err = svc.Delete(ctx, 1, 9, models.RolePharmacist)
	require.NoError(t, err)
	assert.Equal(t, 5, medicines.stock(10))

	gone, _ := orders.FindByID(ctx, 1)
	assert.Nil(t, gone)
}

func TestCancelOrderOfAnotherCustomerReadsAsMissing(t *testing.T) {
	medicines := newFakeMedicines(
		models.Medicine{Model: gorm.Model{ID: 10}, Name: "Paracetamol 500mg", Price: 25.00, Stock: 5},
	)
	orders := newFakeOrders(models.Order{
		Model: gorm.Model{ID: 1}, UserID: 2, AddressID: 1, Status: models.OrderPending,
		Items: []models.OrderItem{{OrderID: 1, MedicineID: 10, Quantity: 2, Price: 25.00}},
	})
	svc := newOrderService(medicines, newFakePrescriptions(), orders, &fakeGate{})
	ctx := context.Background()

	err := svc.Delete(ctx, 1, 1, models.RoleCustomer)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	still, _ := orders.FindByID(ctx, 1)
	require.NotNil(t, still)
	assert.Equal(t, 5, medicines.stock(10), "no restock for a refused cancellation")

	// Staff cancel regardless of ownership.
	require.NoError(t, svc.Delete(ctx, 1, 9, models.RolePharmacist))
}

func TestOrderStatusTransitionTable(t *testing.T) {
	cases := []struct {
		from, to models.OrderStatus
		allowed  bool
	}{
		{models.OrderPending, models.OrderProcessing, true},
		{models.OrderPending, models.OrderShipped, false},
		{models.OrderPending, models.OrderCancelled, true},
		{models.OrderProcessing, models.OrderShipped, true},
		{models.OrderProcessing, models.OrderDelivered, false},
		{models.OrderShipped, models.OrderDelivered, true},
		{models.OrderShipped, models.OrderProcessing, false},
		{models.OrderShipped, models.OrderCancelled, true},
		{models.OrderDelivered, models.OrderCancelled, false},
		{models.OrderCancelled, models.OrderProcessing, false},
	}
	for _, c := range cases {
		assert.Equalf(t, c.allowed, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}
}
