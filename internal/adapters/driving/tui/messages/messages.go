// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/presentai/presentai/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewPresentations lists the owner's presentations.
	ViewPresentations
	// ViewOutline shows the slide outline of one presentation.
	ViewOutline
	// ViewThemes lists available themes with their palettes.
	ViewThemes
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewPresentations:
		return "presentations"
	case ViewOutline:
		return "outline"
	case ViewThemes:
		return "themes"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// PresentationsLoaded carries the owner's presentation listing.
type PresentationsLoaded struct {
	Presentations []domain.PresentationSummary
	Err           error
}

// PresentationSelected asks for a presentation's outline to be shown.
type PresentationSelected struct {
	Summary domain.PresentationSummary
}

// PresentationLoaded carries a fully loaded presentation.
type PresentationLoaded struct {
	Presentation *domain.Presentation
	Err          error
}

// PresentationExported reports a finished export written to disk.
type PresentationExported struct {
	ID     string
	Path   string
	Result *domain.ExportResult
	Err    error
}

// PresentationRenamed reports a title change.
type PresentationRenamed struct {
	ID    string
	Title string
	Err   error
}

// PresentationDuplicated reports a stored copy.
type PresentationDuplicated struct {
	Presentation *domain.Presentation
	Err          error
}

// PresentationDeleted reports a removal.
type PresentationDeleted struct {
	ID  string
	Err error
}

// ThemesLoaded carries the theme catalogue.
type ThemesLoaded struct {
	Themes []domain.Theme
	Err    error
}

// SettingEntry is one dotted settings key and its current value.
type SettingEntry struct {
	Key   string
	Value string
}

// SettingsLoaded carries the current settings.
type SettingsLoaded struct {
	Entries []SettingEntry
	Err     error
}

// SettingSaved reports a single persisted setting.
type SettingSaved struct {
	Key   string
	Value string
	Err   error
}
