package mcp

import (
	"github.com/presentai/presentai/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Export produces PPTX archives.
	Export driving.ExportService

	// Presentation lists and loads stored presentations.
	Presentation driving.PresentationService

	// Theme lists the theme catalogue. Optional.
	Theme driving.ThemeService

	// OwnerID is the identity every tool call acts as.
	OwnerID string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Export == nil {
		return ErrMissingExportService
	}
	if p.Presentation == nil {
		return ErrMissingPresentationService
	}
	if p.OwnerID == "" {
		return ErrMissingOwner
	}
	return nil
}
