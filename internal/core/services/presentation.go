package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/presentai/presentai/internal/core/domain"
	"github.com/presentai/presentai/internal/core/ports/driven"
	"github.com/presentai/presentai/internal/core/ports/driving"
)

// Ensure PresentationService implements the interface.
var _ driving.PresentationService = (*PresentationService)(nil)

// PresentationService manages stored presentations.
type PresentationService struct {
	store driven.PresentationStore
	now   func() time.Time
}

// NewPresentationService creates a new presentation service.
func NewPresentationService(store driven.PresentationStore) *PresentationService {
	return &PresentationService{
		store: store,
		now:   time.Now,
	}
}

// List returns the owner's presentations, most recently updated first.
func (s *PresentationService) List(ctx context.Context, ownerID string) ([]domain.PresentationSummary, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if ownerID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.List(ctx, ownerID)
}

// Get retrieves one presentation.
func (s *PresentationService) Get(ctx context.Context, ownerID, id string) (*domain.Presentation, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if ownerID == "" || id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.Get(ctx, ownerID, id)
}

// Import decodes a presentation document and stores it under ownerID.
// The document's own owner is ignored. A new ID is assigned when the
// document has none; importing over another owner's ID is forbidden.
func (s *PresentationService) Import(ctx context.Context, ownerID string, data []byte) (*domain.Presentation, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if ownerID == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := domain.UnmarshalPresentation(data)
	if err != nil {
		return nil, fmt.Errorf("decode presentation: %w", err)
	}

	now := s.now().UTC()
	p.OwnerID = ownerID
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if strings.TrimSpace(p.Title) == "" {
		p.Title = "Untitled presentation"
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if err := s.store.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save presentation: %w", err)
	}
	return p, nil
}

// Rename changes a presentation's title.
func (s *PresentationService) Rename(ctx context.Context, ownerID, id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.ErrInvalidInput
	}
	p, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}
	p.Title = title
	p.UpdatedAt = s.now().UTC()
	return s.store.Save(ctx, p)
}

// Duplicate stores a copy under a new ID and returns it.
func (s *PresentationService) Duplicate(ctx context.Context, ownerID, id string) (*domain.Presentation, error) {
	p, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	dup := p.Clone()
	dup.ID = uuid.NewString()
	dup.Title = p.Title + " (copy)"
	dup.CreatedAt = now
	dup.UpdatedAt = now
	if err := s.store.Save(ctx, dup); err != nil {
		return nil, fmt.Errorf("save duplicate: %w", err)
	}
	return dup, nil
}

// Delete removes a presentation.
func (s *PresentationService) Delete(ctx context.Context, ownerID, id string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if ownerID == "" || id == "" {
		return domain.ErrInvalidInput
	}
	return s.store.Delete(ctx, ownerID, id)
}
