package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/models"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/apperr"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/cache"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/orm"
	"gorm.io/gorm"
)

// catalogueCacheKey caches the full medicine list; any catalogue write
// invalidates it.
const catalogueCacheKey = "medicines:all"

const catalogueCacheTTL = 5 * time.Minute

// MedicineRepository handles database operations for Medicine.
type MedicineRepository struct{}

func NewMedicineRepository() *MedicineRepository {
	return &MedicineRepository{}
}

// FindByID looks up a medicine by primary key.
func (r *MedicineRepository) FindByID(ctx context.Context, id uint) (*models.Medicine, error) {
	var med models.Medicine
	err := orm.Ctx(ctx).Model(&models.Medicine{}).Where("id = ?", id).First(&med)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &med, nil
}

// All returns the whole catalogue, served from the redis cache when warm.
func (r *MedicineRepository) All(ctx context.Context) ([]models.Medicine, error) {
	var meds []models.Medicine
	err := orm.Ctx(ctx).Model(&models.Medicine{}).Cache(catalogueCacheKey, catalogueCacheTTL, &meds)
	return meds, err
}

// Create persists a new medicine and invalidates the catalogue cache.
func (r *MedicineRepository) Create(ctx context.Context, med *models.Medicine) error {
	if err := orm.Ctx(ctx).Create(med); err != nil {
		return err
	}
	cache.Forget(catalogueCacheKey) //nolint:errcheck
	return nil
}

// Update persists changes to a medicine and invalidates the catalogue cache.
func (r *MedicineRepository) Update(ctx context.Context, med *models.Medicine) error {
	if err := orm.Ctx(ctx).Save(med); err != nil {
		return err
	}
	cache.Forget(catalogueCacheKey) //nolint:errcheck
	return nil
}

// Delete removes a medicine. A foreign-key refusal from the database is
// re-signalled as a domain integrity error instead of leaking the raw
// storage error.
func (r *MedicineRepository) Delete(ctx context.Context, med *models.Medicine) error {
	err := orm.Ctx(ctx).Delete(med)
	if err != nil {
		if isConstraintViolation(err) {
			return apperr.Integrity("cannot delete medicine; referenced by existing orders", err)
		}
		return err
	}
	cache.Forget(catalogueCacheKey) //nolint:errcheck
	return nil
}

// DecrementStock atomically decrements stock by qty when enough stock is
// available, as a single guarded UPDATE. Returns false when the guard
// fails, so two concurrent orders can never over-decrement the same row.
func (r *MedicineRepository) DecrementStock(ctx context.Context, id uint, qty int) (bool, error) {
	affected, err := orm.Ctx(ctx).Exec(
		"UPDATE medicines SET stock = stock - ? WHERE id = ? AND stock >= ? AND deleted_at IS NULL",
		qty, id, qty,
	)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// IncrementStock returns qty units to the pool, used when cancelling an
// order that had already reserved stock.
func (r *MedicineRepository) IncrementStock(ctx context.Context, id uint, qty int) error {
	_, err := orm.Ctx(ctx).Exec(
		"UPDATE medicines SET stock = stock + ? WHERE id = ? AND deleted_at IS NULL",
		qty, id,
	)
	return err
}

// isConstraintViolation sniffs driver-specific foreign-key errors. The
// four supported drivers word them differently, so match loosely.
func isConstraintViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key") || strings.Contains(msg, "constraint")
}
