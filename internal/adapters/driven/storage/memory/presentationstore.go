package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/presentai/presentai/internal/core/domain"
	"github.com/presentai/presentai/internal/core/ports/driven"
)

// Ensure PresentationStore implements the interface.
var _ driven.PresentationStore = (*PresentationStore)(nil)

// PresentationStore is an in-memory implementation of driven.PresentationStore.
type PresentationStore struct {
	mu            sync.RWMutex
	presentations map[string]*domain.Presentation
}

// NewPresentationStore creates a new in-memory presentation store.
func NewPresentationStore() *PresentationStore {
	return &PresentationStore{
		presentations: make(map[string]*domain.Presentation),
	}
}

// Save stores or replaces a presentation. Replacing a presentation
// owned by someone else is forbidden.
func (s *PresentationStore) Save(_ context.Context, p *domain.Presentation) error {
	if p == nil || p.ID == "" || p.OwnerID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.presentations[p.ID]; ok && existing.OwnerID != p.OwnerID {
		return domain.ErrForbidden
	}
	s.presentations[p.ID] = p.Clone()
	return nil
}

// Get retrieves a presentation owned by ownerID.
func (s *PresentationStore) Get(_ context.Context, ownerID, id string) (*domain.Presentation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.presentations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if p.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return p.Clone(), nil
}

// List returns the owner's presentations, most recently updated first.
func (s *PresentationStore) List(_ context.Context, ownerID string) ([]domain.PresentationSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.PresentationSummary, 0)
	for _, p := range s.presentations {
		if p.OwnerID == ownerID {
			result = append(result, p.Summary())
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].UpdatedAt.Equal(result[j].UpdatedAt) {
			return result[i].UpdatedAt.After(result[j].UpdatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Delete removes a presentation owned by ownerID.
func (s *PresentationStore) Delete(_ context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.presentations[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	delete(s.presentations, id)
	return nil
}
