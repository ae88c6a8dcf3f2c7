// Package orm is a thin chainable wrapper over GORM.
//
// Queries read the *gorm.DB from the context when one was injected by
// WithTransaction, so repository code written against orm.Ctx(ctx)
// transparently participates in the caller's transaction.
package orm

import (
	"context"
	"time"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/cache"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/database"
	"gorm.io/gorm"
)

type Query struct {
	db *gorm.DB
}

// txKey is the context key under which WithTransaction stores the tx handle.
type txKey struct{}

// DB returns a query bound to the global connection.
func DB() *Query {
	return &Query{db: database.DB}
}

// Ctx returns a query bound to the transaction stored in ctx, or the
// global connection when the call is not inside a transaction.
func Ctx(ctx context.Context) *Query {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return &Query{db: tx.WithContext(ctx)}
	}
	return &Query{db: database.DB.WithContext(ctx)}
}

// WithTransaction runs fn inside a database transaction. The transaction
// handle travels in the context, so every orm.Ctx(ctx) call inside fn
// operates on the same transaction. Returning an error rolls back.
func WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Preload(association string) *Query {
	return &Query{db: q.db.Preload(association)}
}

func (q *Query) Order(value string) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

func (q *Query) Count(count *int64) error {
	return q.db.Count(count).Error
}

func (q *Query) Create(value interface{}) error {
	return q.db.Create(value).Error
}

func (q *Query) Save(value interface{}) error {
	return q.db.Save(value).Error
}

// SaveFull persists value together with its loaded association rows.
// Plain Save writes only the parent record, so changes made to child
// rows (e.g. order items) would otherwise be dropped.
func (q *Query) SaveFull(value interface{}) error {
	return q.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(value).Error
}

func (q *Query) Delete(value interface{}) error {
	return q.db.Delete(value).Error
}

// Exec runs a raw write statement and returns the number of affected rows.
// Used for conditional updates where the row count is the outcome, e.g.
// the guarded stock decrement.
func (q *Query) Exec(sql string, args ...interface{}) (int64, error) {
	res := q.db.Exec(sql, args...)
	return res.RowsAffected, res.Error
}

// Cache serves dest from the cache under key, falling back to the query
// and priming the cache on a miss.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	err := q.db.Find(dest).Error
	if err != nil {
		return err
	}

	cache.Set(key, dest, ttl)
	return nil
}

// Pagination describes one page of a paginated result set.
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// GetWithPagination fills dest with one page of results and returns the
// pagination metadata. page and limit default to 1 and 20.
func (q *Query) GetWithPagination(dest interface{}, page, limit int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var total int64
	if err := q.db.Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	offset := (page - 1) * limit
	if err := q.db.Offset(offset).Limit(limit).Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, PerPage: limit, Total: total, TotalPages: totalPages}, nil
}
