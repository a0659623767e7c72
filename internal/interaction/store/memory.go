package store

import (
	"context"
	"sort"
	"sync"

	"recom/internal/interaction/models"
	"recom/internal/sentinel"
)

// InMemory stores interactions in memory when no database is configured.
type InMemory struct {
	mu           sync.RWMutex
	interactions map[int64]*models.Interaction
	nextID       int64
}

func NewInMemory() *InMemory {
	return &InMemory{interactions: make(map[int64]*models.Interaction)}
}

func (s *InMemory) Create(_ context.Context, i *models.Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	i.ID = s.nextID
	s.interactions[i.ID] = i.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id int64) (*models.Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i, ok := s.interactions[id]; ok {
		return i.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) List(_ context.Context, userID int64) ([]*models.Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Interaction, 0, len(s.interactions))
	for _, i := range s.interactions {
		if userID != 0 && i.UserID != userID {
			continue
		}
		out = append(out, i.Clone())
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

func (s *InMemory) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.interactions[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.interactions, id)
	return nil
}
