package driving

import (
	"context"

	"github.com/presentai/presentai/internal/core/domain"
)

// ThemeService exposes the theme catalogue.
type ThemeService interface {
	// List returns every available theme.
	List(ctx context.Context) ([]domain.Theme, error)

	// Get returns one theme by name.
	Get(ctx context.Context, name string) (*domain.Theme, error)

	// Resolve returns the named theme, falling back to the configured default
	// when name is empty.
	Resolve(ctx context.Context, name string) (*domain.Theme, error)
}
