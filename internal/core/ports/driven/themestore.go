package driven

import (
	"context"

	"github.com/presentai/presentai/internal/core/domain"
)

// ThemeStore provides the theme catalogue.
type ThemeStore interface {
	// List returns all available themes sorted by name.
	List(ctx context.Context) ([]domain.Theme, error)

	// Get returns the named theme or domain.ErrNotFound.
	Get(ctx context.Context, name string) (*domain.Theme, error)
}
