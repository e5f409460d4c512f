package driving

import (
	"context"

	"github.com/presentai/presentai/internal/core/domain"
)

// PresentationService manages stored presentations for one owner at a time.
type PresentationService interface {
	// List returns the owner's presentations, most recently updated first.
	List(ctx context.Context, ownerID string) ([]domain.PresentationSummary, error)

	// Get retrieves one presentation.
	Get(ctx context.Context, ownerID, id string) (*domain.Presentation, error)

	// Import stores a presentation decoded from JSON under ownerID.
	// A new ID is assigned when the document has none.
	Import(ctx context.Context, ownerID string, data []byte) (*domain.Presentation, error)

	// Rename changes a presentation's title.
	Rename(ctx context.Context, ownerID, id, title string) error

	// Duplicate stores a copy under a new ID and returns it.
	Duplicate(ctx context.Context, ownerID, id string) (*domain.Presentation, error)

	// Delete removes a presentation.
	Delete(ctx context.Context, ownerID, id string) error
}
