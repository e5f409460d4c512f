// Package themes provides the theme catalogue view for the TUI.
package themes

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/presentai/presentai/internal/adapters/driving/tui/messages"
	"github.com/presentai/presentai/internal/adapters/driving/tui/styles"
	"github.com/presentai/presentai/internal/core/domain"
	"github.com/presentai/presentai/internal/core/ports/driving"
)

// View lists themes and previews the selected theme's palettes.
type View struct {
	styles       *styles.Styles
	themeService driving.ThemeService

	themes   []domain.Theme
	selected int
	width    int
	height   int
	ready    bool
	loading  bool
	err      error
}

// NewView creates a new themes view. A nil service lists the built-in themes.
func NewView(s *styles.Styles, themeService driving.ThemeService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:       s,
		themeService: themeService,
	}
}

// Init loads the theme catalogue.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return func() tea.Msg {
		if v.themeService == nil {
			return messages.ThemesLoaded{Themes: domain.BuiltInThemes()}
		}
		themes, err := v.themeService.List(context.Background())
		return messages.ThemesLoaded{Themes: themes, Err: err}
	}
}

// Update handles messages for the themes view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
		case "down", "j":
			if v.selected < len(v.themes)-1 {
				v.selected++
			}
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		return v, nil

	case messages.ThemesLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.themes = msg.Themes
		if v.selected >= len(v.themes) {
			v.selected = 0
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}
	return v, nil
}

// View renders the themes view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Themes (%d)", len(v.themes))))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading themes..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.themes) == 0:
		b.WriteString(v.styles.Muted.Render("No themes available."))
	default:
		for i := range v.themes {
			b.WriteString(v.renderRow(i, &v.themes[i]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(v.renderDetail(&v.themes[v.selected]))
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [esc] back"))
	return b.String()
}

func (v *View) renderRow(index int, t *domain.Theme) string {
	var swatches strings.Builder
	for _, role := range domain.AllColorRoles() {
		swatches.WriteString(v.styles.Swatch(t.Light.Get(role)))
	}
	kind := "custom"
	if t.BuiltIn {
		kind = "built-in"
	}
	line := fmt.Sprintf("%-14s %-9s", t.Name, kind)
	if index == v.selected {
		return v.styles.Selected.Render("> "+line) + " " + swatches.String()
	}
	return v.styles.Normal.Render("  "+line) + " " + swatches.String()
}

func (v *View) renderDetail(t *domain.Theme) string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render(t.Name))
	if t.Description != "" {
		b.WriteString("  " + v.styles.Muted.Render(t.Description))
	}
	b.WriteString("\n")
	if t.Fonts.Heading != "" || t.Fonts.Body != "" {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("fonts: %s / %s", t.Fonts.Heading, t.Fonts.Body)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  %-12s %-10s %-10s", "ROLE", "LIGHT", "DARK")))
	b.WriteString("\n")
	for _, role := range domain.AllColorRoles() {
		light, dark := t.Light.Get(role), t.Dark.Get(role)
		b.WriteString(fmt.Sprintf("  %-12s %s #%-7s %s #%-7s\n",
			role, v.styles.Swatch(light), light, v.styles.Swatch(dark), dark))
	}
	return strings.TrimRight(b.String(), "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Themes returns the loaded themes.
func (v *View) Themes() []domain.Theme {
	return v.themes
}

// SelectedTheme returns the highlighted theme, or nil.
func (v *View) SelectedTheme() *domain.Theme {
	if v.selected < len(v.themes) {
		return &v.themes[v.selected]
	}
	return nil
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
