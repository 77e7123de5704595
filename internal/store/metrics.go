package store

import (
	"github.com/shopspring/decimal"

	"analytics-api/internal/models"
)

// Derived holds the metric values computed from the source collections.
type Derived struct {
	RevenueValue  float64
	RevenueChange float64
	Orders        int
}

// Derive computes the revenue and orders KPIs from revenue entries and
// transactions. It reads nothing else and mutates nothing.
//
// Revenue is reported in thousands, rounded to one decimal place. The change
// is the percentage growth of total revenue over total prev, or 0 when prev
// sums to zero. Orders counts every transaction that did not fail.
func Derive(entries []models.RevenueEntry, txns []models.Transaction) Derived {
	var total, prev float64
	for _, e := range entries {
		total += e.Revenue
		prev += e.Prev
	}

	d := Derived{RevenueValue: round(total/1000, 1)}
	if prev != 0 {
		d.RevenueChange = round((total-prev)/prev*100, 1)
	}

	for _, t := range txns {
		if t.Status != models.StatusFailed {
			d.Orders++
		}
	}
	return d
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Metrics returns a copy of the metric set as currently stored.
func (s *Store) Metrics() map[models.MetricName]models.Metric {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metricsSnapshot()
}

// RecomputeMetrics rederives revenue and orders from the source collections
// and returns the resulting metric set. Any incremental bump applied by
// transaction creation is overwritten.
func (s *Store) RecomputeMetrics() map[models.MetricName]models.Metric {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := Derive(s.revenue, s.transactions)
	s.metrics[models.MetricRevenue].Value = d.RevenueValue
	s.metrics[models.MetricRevenue].Change = d.RevenueChange
	s.metrics[models.MetricOrders].Value = float64(d.Orders)

	return s.metricsSnapshot()
}

// UpdateMetric overwrites value and/or change of an existing metric. Unknown
// names are reported as not found; the metric set never grows.
func (s *Store) UpdateMetric(name models.MetricName, patch models.MetricPatch) (models.Metric, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.metrics[name]
	if !ok {
		return models.Metric{}, notFound("Metric", string(name))
	}
	if patch.Value != nil {
		m.Value = *patch.Value
	}
	if patch.Change != nil {
		m.Change = *patch.Change
	}
	return *m, nil
}

// applyTransactionSideEffect bumps revenue (in thousands, two decimals) and
// orders for a newly created Completed transaction. It is independent of
// Derive: the revenue bump is based on transaction amounts while Derive only
// looks at revenue entries, so the two can disagree until the next recompute.
// Callers must hold s.mu.
func (s *Store) applyTransactionSideEffect(t models.Transaction) {
	if t.Status != models.StatusCompleted {
		return
	}
	rev := s.metrics[models.MetricRevenue]
	rev.Value = round(rev.Value+t.Amount/1000, 2)
	s.metrics[models.MetricOrders].Value++
}

func (s *Store) metricsSnapshot() map[models.MetricName]models.Metric {
	out := make(map[models.MetricName]models.Metric, len(s.metrics))
	for name, m := range s.metrics {
		out[name] = *m
	}
	return out
}
