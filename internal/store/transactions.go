package store

import (
	"slices"
	"strings"

	"analytics-api/internal/errors"
	"analytics-api/internal/models"
)

// ListTransactions returns transactions sorted by date, newest first, then
// filtered by exact status, then by a case-insensitive search over customer,
// product and id, then truncated to q.Limit.
func (s *Store) ListTransactions(q models.TransactionQuery) []models.Transaction {
	s.mu.RLock()
	result := slices.Clone(s.transactions)
	s.mu.RUnlock()

	slices.SortStableFunc(result, func(a, b models.Transaction) int {
		return strings.Compare(b.Date, a.Date)
	})

	if q.Status != "" {
		result = slices.DeleteFunc(result, func(t models.Transaction) bool {
			return string(t.Status) != q.Status
		})
	}

	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		result = slices.DeleteFunc(result, func(t models.Transaction) bool {
			return !strings.Contains(strings.ToLower(t.Customer), needle) &&
				!strings.Contains(strings.ToLower(t.Product), needle) &&
				!strings.Contains(strings.ToLower(t.ID), needle)
		})
	}

	if q.Limit > 0 && len(result) > q.Limit {
		result = result[:q.Limit]
	}
	return result
}

// CreateTransaction assigns the next sequence id and stores t. Missing dates
// default to today and statuses outside the enum become Pending. Completed
// transactions bump the revenue and orders metrics in the same critical
// section.
func (s *Store) CreateTransaction(t models.Transaction) (models.Transaction, error) {
	if t.Customer == "" || t.Product == "" {
		return models.Transaction{}, errors.Validation("customer and product are required")
	}
	t.Status = models.ParseStatus(string(t.Status))

	s.mu.Lock()
	defer s.mu.Unlock()

	if t.Date == "" {
		t.Date = s.now().UTC().Format(models.DateLayout)
	}
	t.ID = formatTransactionID(s.nextTxnSeq)
	s.nextTxnSeq++

	s.transactions = append(s.transactions, t)
	s.applyTransactionSideEffect(t)
	return t, nil
}

func (s *Store) FindTransaction(id string) (models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.transactionIndex(id)
	if i < 0 {
		return models.Transaction{}, notFound("Transaction", id)
	}
	return s.transactions[i], nil
}

func (s *Store) UpdateTransaction(id string, patch models.TransactionPatch) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.transactionIndex(id)
	if i < 0 {
		return models.Transaction{}, notFound("Transaction", id)
	}
	patch.Apply(&s.transactions[i])
	return s.transactions[i], nil
}

func (s *Store) DeleteTransaction(id string) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.transactionIndex(id)
	if i < 0 {
		return models.Transaction{}, notFound("Transaction", id)
	}
	removed := s.transactions[i]
	s.transactions = slices.Delete(s.transactions, i, i+1)
	return removed, nil
}

func (s *Store) transactionIndex(id string) int {
	return slices.IndexFunc(s.transactions, func(t models.Transaction) bool {
		return t.ID == id
	})
}
