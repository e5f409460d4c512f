package domain

import "time"

// ExportSettings hold export engine configuration.
type ExportSettings struct {
	// FetchConcurrency caps in-flight image fetches per slide.
	FetchConcurrency int

	// FetchTimeout bounds a single image fetch.
	FetchTimeout time.Duration

	// FetchRatePerSecond throttles outbound fetches across an export.
	FetchRatePerSecond float64

	// MaxImageBytes rejects larger fetched or embedded images.
	MaxImageBytes int64

	// MaxImageDimension downscales images whose longest side is larger.
	MaxImageDimension int

	// MaxParts bounds the number of parts in one archive.
	MaxParts int

	// DefaultTheme is used when a presentation names no theme.
	DefaultTheme string
}

// UserSettings identify the local user.
type UserSettings struct {
	// ID is the owner identity used by the CLI, TUI and MCP server.
	ID string
}

// ServerSettings configure the HTTP API.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string

	// JWTSecret verifies HS256 bearer tokens. Empty disables auth and
	// every request acts as the configured user.
	JWTSecret string

	// AllowedOrigins lists CORS origins. Empty allows all.
	AllowedOrigins []string
}

// ThemeSettings locate custom theme files.
type ThemeSettings struct {
	// Dir holds *.toml theme files.
	Dir string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Export ExportSettings
	User   UserSettings
	Server ServerSettings
	Themes ThemeSettings
}

// Default setting values.
const (
	DefaultFetchConcurrency   = 4
	DefaultFetchTimeout       = 15 * time.Second
	DefaultFetchRatePerSecond = 8
	DefaultMaxImageBytes      = 15 << 20
	DefaultMaxImageDimension  = 2560
	DefaultMaxParts           = 4000
	DefaultUserID             = "local"
	DefaultServerAddr         = ":8080"
)

// DefaultAppSettings returns settings with sensible defaults.
// The themes directory is resolved by the config adapter.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Export: ExportSettings{
			FetchConcurrency:   DefaultFetchConcurrency,
			FetchTimeout:       DefaultFetchTimeout,
			FetchRatePerSecond: DefaultFetchRatePerSecond,
			MaxImageBytes:      DefaultMaxImageBytes,
			MaxImageDimension:  DefaultMaxImageDimension,
			MaxParts:           DefaultMaxParts,
			DefaultTheme:       DefaultThemeName,
		},
		User: UserSettings{
			ID: DefaultUserID,
		},
		Server: ServerSettings{
			Addr: DefaultServerAddr,
		},
	}
}

// Normalise replaces zero or negative values with their defaults.
func (s *AppSettings) Normalise() {
	d := DefaultAppSettings()
	if s.Export.FetchConcurrency <= 0 {
		s.Export.FetchConcurrency = d.Export.FetchConcurrency
	}
	if s.Export.FetchTimeout <= 0 {
		s.Export.FetchTimeout = d.Export.FetchTimeout
	}
	if s.Export.FetchRatePerSecond <= 0 {
		s.Export.FetchRatePerSecond = d.Export.FetchRatePerSecond
	}
	if s.Export.MaxImageBytes <= 0 {
		s.Export.MaxImageBytes = d.Export.MaxImageBytes
	}
	if s.Export.MaxImageDimension <= 0 {
		s.Export.MaxImageDimension = d.Export.MaxImageDimension
	}
	if s.Export.MaxParts <= 0 {
		s.Export.MaxParts = d.Export.MaxParts
	}
	if s.Export.DefaultTheme == "" {
		s.Export.DefaultTheme = d.Export.DefaultTheme
	}
	if s.User.ID == "" {
		s.User.ID = d.User.ID
	}
	if s.Server.Addr == "" {
		s.Server.Addr = d.Server.Addr
	}
}
