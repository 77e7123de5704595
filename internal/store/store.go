// Package store holds the four analytics collections in memory and keeps the
// derived KPI metrics consistent with them.
//
// All collections share one RWMutex, so cross-collection work (recompute, the
// transaction side effect) is atomic. Every read returns a copy; callers never
// see the live backing slices.
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"analytics-api/internal/errors"
	"analytics-api/internal/models"
)

// firstTransactionSeq is the sequence used for the first transaction of an
// empty store.
const firstTransactionSeq = 1001

// IDSource produces opaque, collision-free identifiers.
type IDSource interface {
	NewID() string
}

// UUIDSource issues random UUIDv4 strings.
type UUIDSource struct{}

func (UUIDSource) NewID() string {
	return uuid.NewString()
}

type Store struct {
	mu           sync.RWMutex
	metrics      map[models.MetricName]*models.Metric
	revenue      []models.RevenueEntry
	products     []models.Product
	transactions []models.Transaction
	nextTxnSeq   int
	ids          IDSource
	now          func() time.Time
}

type Option func(*Store)

func WithIDSource(ids IDSource) Option {
	return func(s *Store) {
		s.ids = ids
	}
}

// WithClock overrides the clock used for default transaction dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New returns an empty store holding the fixed metric set at zero values.
func New(opts ...Option) *Store {
	s := &Store{
		metrics:    defaultMetrics(),
		nextTxnSeq: firstTransactionSeq,
		ids:        UUIDSource{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func defaultMetrics() map[models.MetricName]*models.Metric {
	return map[models.MetricName]*models.Metric{
		models.MetricRevenue:    {Name: models.MetricRevenue, Label: "Total Revenue", Unit: "$", Suffix: "K"},
		models.MetricOrders:     {Name: models.MetricOrders, Label: "Orders"},
		models.MetricCustomers:  {Name: models.MetricCustomers, Label: "Customers"},
		models.MetricConversion: {Name: models.MetricConversion, Label: "Conversion Rate", Suffix: "%"},
	}
}

// Counts reports the number of records per collection.
func (s *Store) Counts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]int{
		"metrics":      len(s.metrics),
		"revenue":      len(s.revenue),
		"products":     len(s.products),
		"transactions": len(s.transactions),
	}
}

func formatTransactionID(seq int) string {
	return fmt.Sprintf("#TXN-%d", seq)
}

func notFound(kind, key string) *errors.AppError {
	return errors.NotFoundf("%s not found: %s", kind, key)
}
