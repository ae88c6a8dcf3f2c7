package services

import (
	"context"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/models"
)

// The services consume their collaborators through the narrow interfaces
// below. The gorm-backed repositories in app/repositories satisfy them in
// production; tests substitute in-memory fakes. Not-found is a nil
// result, never an error.

// UserFinder resolves users by id.
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// AddressFinder resolves delivery addresses by id.
type AddressFinder interface {
	FindByID(ctx context.Context, id uint) (*models.Address, error)
}

// MedicineStore is the slice of the medicine repository the order
// workflow needs: lookups plus the two stock mutations. DecrementStock
// must be atomic and conditional (false when stock is short).
type MedicineStore interface {
	FindByID(ctx context.Context, id uint) (*models.Medicine, error)
	DecrementStock(ctx context.Context, id uint, qty int) (bool, error)
	IncrementStock(ctx context.Context, id uint, qty int) error
}

// PrescriptionStore persists prescriptions.
type PrescriptionStore interface {
	FindByID(ctx context.Context, id uint) (*models.Prescription, error)
	Create(ctx context.Context, p *models.Prescription) error
	Update(ctx context.Context, p *models.Prescription) error
	Delete(ctx context.Context, p *models.Prescription) error
}

// OrderStore persists orders with their items.
type OrderStore interface {
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	All(ctx context.Context) ([]models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, order *models.Order) error
}

// StatusGate is consulted by the order workflow before a status advance.
// Implemented by PrescriptionService.
type StatusGate interface {
	ValidateForStatusAdvance(ctx context.Context, order *models.Order, target models.OrderStatus) error
}

// Notifier delivers best-effort emails. Callers log and swallow errors;
// delivery never blocks or fails the triggering operation.
type Notifier interface {
	SendApproval(email, name string) error
	SendRejection(email, name, reason string) error
}

// FileStore is the slice of pkg/storage the prescription lifecycle needs.
type FileStore interface {
	Put(path string, content []byte) error
	Get(path string) ([]byte, error)
	Exists(path string) bool
	Delete(path string) error
	URL(path string) string
}

// TxRunner runs fn inside one transaction boundary. orm.WithTransaction
// in production; a pass-through in tests.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error
