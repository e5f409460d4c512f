// Package tui provides an interactive terminal user interface for presentai.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/presentai/presentai/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Presentation manages stored presentations.
	Presentation driving.PresentationService

	// Export renders presentations to slide-deck archives.
	Export driving.ExportService

	// Theme exposes the theme catalogue. Optional.
	Theme driving.ThemeService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService

	// OwnerID is the identity every presentation call is scoped to.
	OwnerID string

	// OutputDir receives exported decks. Empty means the working directory.
	OutputDir string
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Presentation == nil {
		return ErrMissingPresentationService
	}
	if p.Export == nil {
		return ErrMissingExportService
	}
	if p.OwnerID == "" {
		return ErrMissingOwner
	}
	return nil
}
