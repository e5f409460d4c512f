package driven

import (
	"context"

	"github.com/presentai/presentai/internal/core/domain"
)

// PresentationStore persists presentations.
// Every read is scoped to an owner: a presentation belonging to another
// owner is reported as domain.ErrForbidden, a missing one as domain.ErrNotFound.
type PresentationStore interface {
	// Save stores or updates a presentation.
	Save(ctx context.Context, p *domain.Presentation) error

	// Get retrieves a presentation owned by ownerID.
	Get(ctx context.Context, ownerID, id string) (*domain.Presentation, error)

	// List returns summaries of all presentations owned by ownerID,
	// most recently updated first.
	List(ctx context.Context, ownerID string) ([]domain.PresentationSummary, error)

	// Delete removes a presentation owned by ownerID.
	Delete(ctx context.Context, ownerID, id string) error
}
