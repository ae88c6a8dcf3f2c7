package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/models"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/logger"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/metrics"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/workerpool"
)

// PricingService repairs orders whose item prices were not correctly
// snapshotted at creation: items with a non-positive price are re-sourced
// from the current medicine record and the order total is recomputed.
type PricingService struct {
	orders    OrderStore
	medicines MedicineStore
	workers   int
}

func NewPricingService(orders OrderStore, medicines MedicineStore) *PricingService {
	return &PricingService{orders: orders, medicines: medicines, workers: 8}
}

// RecalculateAllTotals walks every order, fanning the per-order repair
// out over a bounded worker pool, and persists only orders that actually
// changed. Running it twice in a row changes nothing on the second pass.
// Returns the number of repaired orders.
func (s *PricingService) RecalculateAllTotals(ctx context.Context) (int, error) {
	orders, err := s.orders.All(ctx)
	if err != nil {
		return 0, err
	}

	pool := workerpool.New(s.workers)
	defer pool.Shutdown()

	var repaired atomic.Int64
	var mu sync.Mutex
	var firstErr error
	var wg sync.WaitGroup

	for i := range orders {
		order := &orders[i]
		wg.Add(1)
		submitErr := pool.SubmitWait(func() {
			defer wg.Done()
			changed, err := s.reconcileOrder(ctx, order)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			if changed {
				repaired.Add(1)
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
			break
		}
	}

	wg.Wait()

	if firstErr != nil {
		return int(repaired.Load()), firstErr
	}

	n := int(repaired.Load())
	metrics.ReconciliationRepairs.Add(float64(n))
	logger.Info("pricing: reconciliation pass complete",
		"orders", len(orders), "repaired", n)
	return n, nil
}

// reconcileOrder repairs stale item prices and the total of one order.
// Persists only when something changed; reports whether it did.
func (s *PricingService) reconcileOrder(ctx context.Context, order *models.Order) (bool, error) {
	itemRepaired := false

	for i := range order.Items {
		it := &order.Items[i]
		if it.Price > 0 {
			continue
		}
		med, err := s.medicines.FindByID(ctx, it.MedicineID)
		if err != nil {
			return false, err
		}
		if med == nil {
			// Medicine no longer in the catalogue; nothing to re-source
			// the price from, leave the line as stored.
			logger.Warn("pricing: cannot repair item, medicine missing",
				"order_id", order.ID, "medicine_id", it.MedicineID)
			continue
		}
		it.Price = med.Price
		itemRepaired = true
	}

	var total float64
	for _, it := range order.Items {
		total += it.Price * float64(it.Quantity)
	}

	totalStale := order.TotalAmount == nil || *order.TotalAmount != total
	if !itemRepaired && !totalStale {
		return false, nil
	}

	order.TotalAmount = &total
	if err := s.orders.Update(ctx, order); err != nil {
		return false, err
	}
	return true, nil
}
