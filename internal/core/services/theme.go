package services

import (
	"context"
	"fmt"

	"github.com/presentai/presentai/internal/core/domain"
	"github.com/presentai/presentai/internal/core/ports/driven"
	"github.com/presentai/presentai/internal/core/ports/driving"
)

// Ensure ThemeService implements the interface.
var _ driving.ThemeService = (*ThemeService)(nil)

// ThemeService exposes the theme catalogue.
type ThemeService struct {
	store    driven.ThemeStore
	settings driving.SettingsService
}

// NewThemeService creates a new theme service. settings supplies the
// default theme name and may be nil.
func NewThemeService(store driven.ThemeStore, settings driving.SettingsService) *ThemeService {
	return &ThemeService{
		store:    store,
		settings: settings,
	}
}

// List returns every available theme.
func (s *ThemeService) List(ctx context.Context) ([]domain.Theme, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.List(ctx)
}

// Get returns one theme by name.
func (s *ThemeService) Get(ctx context.Context, name string) (*domain.Theme, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	th, err := s.store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("theme %q: %w", name, err)
	}
	return th, nil
}

// Resolve returns the named theme, or the configured default theme when
// name is empty. A configured default that no longer exists falls back to
// the built-in default.
func (s *ThemeService) Resolve(ctx context.Context, name string) (*domain.Theme, error) {
	if name != "" {
		return s.Get(ctx, name)
	}
	if configured := s.defaultName(); configured != domain.DefaultThemeName {
		if th, err := s.Get(ctx, configured); err == nil {
			return th, nil
		}
	}
	return s.Get(ctx, domain.DefaultThemeName)
}

func (s *ThemeService) defaultName() string {
	if s.settings == nil {
		return domain.DefaultThemeName
	}
	settings, err := s.settings.Get()
	if err != nil || settings.Export.DefaultTheme == "" {
		return domain.DefaultThemeName
	}
	return settings.Export.DefaultTheme
}
