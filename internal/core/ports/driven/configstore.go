package driven

// ConfigStore reads and writes settings addressed by dotted keys such as
// "export.fetch_timeout". The file adapter maps each dot to a TOML table.
type ConfigStore interface {
	// Get returns the raw value and whether the key exists.
	Get(key string) (any, bool)

	// GetString returns "" when the key is missing or not a string.
	GetString(key string) string

	// GetInt returns 0 when the key is missing or not numeric.
	GetInt(key string) int

	// GetFloat returns 0 when the key is missing or not numeric.
	GetFloat(key string) float64

	// GetBool returns false when the key is missing or not a bool.
	GetBool(key string) bool

	// GetStringSlice returns nil when the key is missing or not a list.
	GetStringSlice(key string) []string

	// Set stores a value. File-backed stores persist it immediately.
	Set(key string, value any) error

	Save() error
	Load() error

	// Path returns where the configuration is persisted.
	Path() string
}
