package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"recom/internal/product/models"
	"recom/internal/sentinel"
)

// InMemory stores products in memory when no database is configured.
type InMemory struct {
	mu       sync.RWMutex
	products map[int64]*models.Product
	nextID   int64
}

func NewInMemory() *InMemory {
	return &InMemory{products: make(map[int64]*models.Product)}
}

// Create assigns the next id to p and stores a copy.
func (s *InMemory) Create(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	p.ID = s.nextID
	s.products[p.ID] = p.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id int64) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.products[id]; ok {
		return p.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

// List returns products ordered by id. An empty category matches all products;
// otherwise the match is case-insensitive.
func (s *InMemory) List(_ context.Context, category string) ([]*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Product, 0, len(s.products))
	for _, p := range s.products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemory) Update(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.products[p.ID] = p.Clone()
	return nil
}

func (s *InMemory) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.products, id)
	return nil
}
