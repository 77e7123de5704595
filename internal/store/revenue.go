package store

import (
	"slices"

	"analytics-api/internal/errors"
	"analytics-api/internal/models"
)

// ListRevenue returns all revenue entries in insertion order.
func (s *Store) ListRevenue() []models.RevenueEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.revenue)
}

// CreateRevenue appends a new entry with a fresh id. The month is the
// business key and must be unique.
func (s *Store) CreateRevenue(entry models.RevenueEntry) (models.RevenueEntry, error) {
	if entry.Month == "" {
		return models.RevenueEntry{}, errors.Validation("month is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.revenueIndex(entry.Month) >= 0 {
		return models.RevenueEntry{}, errors.Conflict("Revenue entry for month " + entry.Month + " already exists")
	}

	entry.ID = s.ids.NewID()
	s.revenue = append(s.revenue, entry)
	return entry, nil
}

func (s *Store) FindRevenue(month string) (models.RevenueEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.revenueIndex(month)
	if i < 0 {
		return models.RevenueEntry{}, notFound("Revenue entry", month)
	}
	return s.revenue[i], nil
}

// UpdateRevenue applies patch to the entry for month. Renaming the month onto
// another existing entry is a conflict.
func (s *Store) UpdateRevenue(month string, patch models.RevenuePatch) (models.RevenueEntry, error) {
	if patch.Month != nil && *patch.Month == "" {
		return models.RevenueEntry{}, errors.Validation("month cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.revenueIndex(month)
	if i < 0 {
		return models.RevenueEntry{}, notFound("Revenue entry", month)
	}
	if patch.Month != nil && *patch.Month != month && s.revenueIndex(*patch.Month) >= 0 {
		return models.RevenueEntry{}, errors.Conflict("Revenue entry for month " + *patch.Month + " already exists")
	}

	patch.Apply(&s.revenue[i])
	return s.revenue[i], nil
}

// DeleteRevenue removes and returns the entry for month.
func (s *Store) DeleteRevenue(month string) (models.RevenueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.revenueIndex(month)
	if i < 0 {
		return models.RevenueEntry{}, notFound("Revenue entry", month)
	}
	removed := s.revenue[i]
	s.revenue = slices.Delete(s.revenue, i, i+1)
	return removed, nil
}

func (s *Store) revenueIndex(month string) int {
	return slices.IndexFunc(s.revenue, func(e models.RevenueEntry) bool {
		return e.Month == month
	})
}
