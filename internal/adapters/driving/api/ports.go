package api

import (
	"errors"

	"github.com/presentai/presentai/internal/core/ports/driving"
)

// ErrMissingService is returned when a required service is not provided.
var ErrMissingService = errors.New("api: export and presentation services are required")

// Ports aggregates the driving ports the API serves.
type Ports struct {
	Export       driving.ExportService
	Presentation driving.PresentationService
	Theme        driving.ThemeService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Export == nil || p.Presentation == nil {
		return ErrMissingService
	}
	return nil
}

// Config configures the server.
type Config struct {
	// JWTSecret verifies HS256 bearer tokens. Empty disables auth.
	JWTSecret string

	// DefaultOwner is the owner used when auth is disabled.
	DefaultOwner string

	// AllowedOrigins lists CORS origins. Empty allows any origin.
	AllowedOrigins []string
}
