package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/presentai/presentai/internal/core/domain"
	"github.com/presentai/presentai/internal/core/ports/driven"
	"github.com/presentai/presentai/internal/exporters/pptx"
	"github.com/presentai/presentai/internal/logger"
)

// Ensure ThemeStore implements the interface.
var _ driven.ThemeStore = (*ThemeStore)(nil)

// ThemeStore serves the built-in themes plus one custom theme per *.toml
// file in its directory. A custom theme with a built-in's name replaces it.
//
// A theme file looks like:
//
//	name = "brand"
//	description = "Company colors"
//
//	[light]
//	primary = "#0052CC"
//	background = "FFFFFF"
//
//	[fonts]
//	heading = "Inter"
//
// Missing palette roles and fonts are taken from the default theme.
type ThemeStore struct {
	themeDir string

	mu     sync.RWMutex
	themes map[string]domain.Theme
}

// NewThemeStore creates a new file-based theme store.
// If themeDir is empty, defaults to ~/.presentai/themes/.
//
// The constructor does not perform any I/O. Files are read on first use.
func NewThemeStore(themeDir string) (*ThemeStore, error) {
	if themeDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		themeDir = filepath.Join(dir, "themes")
	}
	return &ThemeStore{themeDir: themeDir}, nil
}

// List returns all themes sorted by name.
func (s *ThemeStore) List(_ context.Context) ([]domain.Theme, error) {
	themes, err := s.catalogue()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Theme, 0, len(themes))
	for _, t := range themes {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Get returns the named theme or domain.ErrNotFound.
func (s *ThemeStore) Get(_ context.Context, name string) (*domain.Theme, error) {
	themes, err := s.catalogue()
	if err != nil {
		return nil, err
	}
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

// Reload clears the cache, forcing theme files to be read again.
func (s *ThemeStore) Reload() {
	s.mu.Lock()
	s.themes = nil
	s.mu.Unlock()
}

// Dir returns the theme directory path.
func (s *ThemeStore) Dir() string {
	return s.themeDir
}

func (s *ThemeStore) catalogue() (map[string]domain.Theme, error) {
	s.mu.RLock()
	themes := s.themes
	s.mu.RUnlock()
	if themes != nil {
		return themes, nil
	}

	// Load without holding the lock; a concurrent load of the same files
	// produces the same result.
	themes, err := s.load()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.themes == nil {
		s.themes = themes
	} else {
		themes = s.themes
	}
	s.mu.Unlock()
	return themes, nil
}

// load reads the built-ins and every theme file. A missing directory is
// not an error; a malformed file is skipped with a warning.
func (s *ThemeStore) load() (map[string]domain.Theme, error) {
	themes := make(map[string]domain.Theme)
	var base domain.Theme
	for _, t := range domain.BuiltInThemes() {
		themes[t.Name] = t
		if t.Name == domain.DefaultThemeName {
			base = t
		}
	}

	entries, err := os.ReadDir(s.themeDir)
	if err != nil {
		if os.IsNotExist(err) {
			return themes, nil
		}
		return nil, fmt.Errorf("read theme directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".toml") {
			continue
		}
		path := filepath.Join(s.themeDir, entry.Name())
		t, err := loadThemeFile(path, base)
		if err != nil {
			logger.Warn("skipping theme %s: %v", path, err)
			continue
		}
		themes[t.Name] = *t
	}
	return themes, nil
}

// loadThemeFile decodes one theme file, filling gaps from base.
func loadThemeFile(path string, base domain.Theme) (*domain.Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var t domain.Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	t.Name = strings.ToLower(strings.TrimSpace(t.Name))
	if t.Name == "" {
		t.Name = strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	}
	t.BuiltIn = false

	for _, role := range domain.AllColorRoles() {
		light, err := paletteColor(t.Light.Get(role), base.Light.Get(role), role)
		if err != nil {
			return nil, err
		}
		t.Light.Set(role, light)

		dark, err := paletteColor(t.Dark.Get(role), base.Dark.Get(role), role)
		if err != nil {
			return nil, err
		}
		t.Dark.Set(role, dark)
	}

	if t.Fonts.Heading == "" {
		t.Fonts.Heading = base.Fonts.Heading
	}
	if t.Fonts.Body == "" {
		t.Fonts.Body = base.Fonts.Body
	}
	return &t, nil
}

func paletteColor(value, fallback string, role domain.ColorRole) (string, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	c, ok := pptx.NormalizeColor(value)
	if !ok {
		return "", fmt.Errorf("%w: %s color %q", domain.ErrInvalidInput, role, value)
	}
	return c, nil
}
