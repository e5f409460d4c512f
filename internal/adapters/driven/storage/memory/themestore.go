package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/presentai/presentai/internal/core/domain"
	"github.com/presentai/presentai/internal/core/ports/driven"
)

// Ensure ThemeStore implements the interface.
var _ driven.ThemeStore = (*ThemeStore)(nil)

// ThemeStore is an in-memory implementation of driven.ThemeStore.
// It starts with the built-in themes.
type ThemeStore struct {
	mu     sync.RWMutex
	themes map[string]domain.Theme
}

// NewThemeStore creates a theme store holding the built-in themes
// and any extra themes given.
func NewThemeStore(extra ...domain.Theme) *ThemeStore {
	s := &ThemeStore{themes: make(map[string]domain.Theme)}
	for _, th := range domain.BuiltInThemes() {
		s.themes[th.Name] = th
	}
	for _, th := range extra {
		s.themes[th.Name] = th
	}
	return s
}

// Add registers or replaces a theme.
func (s *ThemeStore) Add(theme domain.Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.themes[theme.Name] = theme
}

// List returns all themes sorted by name.
func (s *ThemeStore) List(_ context.Context) ([]domain.Theme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Theme, 0, len(s.themes))
	for _, th := range s.themes {
		result = append(result, th)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Get retrieves a theme by name.
func (s *ThemeStore) Get(_ context.Context, name string) (*domain.Theme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	th, ok := s.themes[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &th, nil
}
