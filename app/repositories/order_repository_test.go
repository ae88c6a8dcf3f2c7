package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/models"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/repositories"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/services"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/database"
)

// openTestDB points the global connection at a per-test in-memory
// sqlite database so the repositories run against real SQL.
func openTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{}, &models.Medicine{},
		&models.Order{}, &models.OrderItem{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
}

func TestOrderUpdatePersistsItemChanges(t *testing.T) {
	openTestDB(t)
	repo := repositories.NewOrderRepository()
	ctx := context.Background()

	order := &models.Order{
		UserID: 1, AddressID: 1, Status: models.OrderPending,
		Items: []models.OrderItem{{MedicineID: 10, Quantity: 2, Price: 0}},
	}
	require.NoError(t, repo.Create(ctx, order))

	order.Items[0].Price = 25.00
	total := 50.00
	order.TotalAmount = &total
	require.NoError(t, repo.Update(ctx, order))

	reloaded, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, 25.00, reloaded.Items[0].Price, "item row written, not just the order")
	require.NotNil(t, reloaded.TotalAmount)
	assert.Equal(t, 50.00, *reloaded.TotalAmount)
}

// A reconciliation pass over the real database must persist repaired
// item prices, so a second pass finds nothing left to repair.
func TestReconciliationAgainstDatabaseIsIdempotent(t *testing.T) {
	openTestDB(t)
	ctx := context.Background()
	orders := repositories.NewOrderRepository()
	medicines := repositories.NewMedicineRepository()

	require.NoError(t, medicines.Create(ctx, &models.Medicine{
		Model: gorm.Model{ID: 10}, Name: "Paracetamol 500mg", Price: 25.00, Stock: 50,
	}))
	require.NoError(t, orders.Create(ctx, &models.Order{
		UserID: 1, AddressID: 1, Status: models.OrderPending,
		Items: []models.OrderItem{{MedicineID: 10, Quantity: 2, Price: 0}},
	}))

	svc := services.NewPricingService(orders, medicines)

	repaired, err := svc.RecalculateAllTotals(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, repaired)

	stored, err := orders.All(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Len(t, stored[0].Items, 1)
	assert.Equal(t, 25.00, stored[0].Items[0].Price, "repaired price persisted")
	require.NotNil(t, stored[0].TotalAmount)
	assert.Equal(t, 50.00, *stored[0].TotalAmount)

	repaired, err = svc.RecalculateAllTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, repaired)
}
