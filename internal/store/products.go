package store

import (
	"cmp"
	"slices"

	"analytics-api/internal/errors"
	"analytics-api/internal/models"
)

// ListProducts returns products ordered by sales, highest first. Products
// with equal sales keep their insertion order. Stored order is unchanged.
func (s *Store) ListProducts() []models.Product {
	s.mu.RLock()
	result := slices.Clone(s.products)
	s.mu.RUnlock()

	slices.SortStableFunc(result, func(a, b models.Product) int {
		return cmp.Compare(b.Sales, a.Sales)
	})
	return result
}

func (s *Store) CreateProduct(p models.Product) (models.Product, error) {
	if p.Name == "" {
		return models.Product{}, errors.Validation("name is required")
	}
	if p.Category == "" {
		p.Category = models.DefaultCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.ids.NewID()
	s.products = append(s.products, p)
	return p, nil
}

func (s *Store) FindProduct(id string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.productIndex(id)
	if i < 0 {
		return models.Product{}, notFound("Product", id)
	}
	return s.products[i], nil
}

func (s *Store) UpdateProduct(id string, patch models.ProductPatch) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(id)
	if i < 0 {
		return models.Product{}, notFound("Product", id)
	}
	patch.Apply(&s.products[i])
	return s.products[i], nil
}

// DeleteProduct removes and returns a product. Transactions naming the
// product are left alone.
func (s *Store) DeleteProduct(id string) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(id)
	if i < 0 {
		return models.Product{}, notFound("Product", id)
	}
	removed := s.products[i]
	s.products = slices.Delete(s.products, i, i+1)
	return removed, nil
}

func (s *Store) productIndex(id string) int {
	return slices.IndexFunc(s.products, func(p models.Product) bool {
		return p.ID == id
	})
}
