package driving

import "github.com/presentai/presentai/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings with defaults applied.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting by its dotted key (e.g. "export.max_parts").
	Set(key, value string) error

	// Lookup returns the current value of a dotted key as a string.
	Lookup(key string) (string, error)

	// Keys returns every supported dotted key.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
