package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/presentai/presentai/internal/core/domain"
	"github.com/presentai/presentai/internal/core/ports/driven"
	"github.com/presentai/presentai/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyFetchConcurrency  = "export.fetch_concurrency"
	keyFetchTimeout      = "export.fetch_timeout_seconds"
	keyFetchRate         = "export.fetch_rate_per_second"
	keyMaxImageBytes     = "export.max_image_bytes"
	keyMaxImageDimension = "export.max_image_dimension"
	keyMaxParts          = "export.max_parts"
	keyDefaultTheme      = "export.default_theme"
	keyUserID            = "user.id"
	keyServerAddr        = "server.addr"
	keyJWTSecret         = "server.jwt_secret"
	keyAllowedOrigins    = "server.allowed_origins"
	keyThemesDir         = "themes.dir"
)

// setting binds one config key to a field of domain.AppSettings.
type setting struct {
	key string

	// read loads the stored value into settings, leaving defaults alone
	// when the key is absent.
	read func(store driven.ConfigStore, s *domain.AppSettings)

	// write stores the field's current value.
	write func(store driven.ConfigStore, s *domain.AppSettings) error

	// parse applies a user-supplied string.
	parse func(s *domain.AppSettings, value string) error

	// format renders the field for display.
	format func(s *domain.AppSettings) string
}

func intSetting(key string, field func(*domain.AppSettings) *int) setting {
	return setting{
		key: key,
		read: func(store driven.ConfigStore, s *domain.AppSettings) {
			if v := store.GetInt(key); v > 0 {
				*field(s) = v
			}
		},
		write: func(store driven.ConfigStore, s *domain.AppSettings) error {
			return store.Set(key, *field(s))
		},
		parse: func(s *domain.AppSettings, value string) error {
			v, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil || v <= 0 {
				return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
			}
			*field(s) = v
			return nil
		},
		format: func(s *domain.AppSettings) string { return strconv.Itoa(*field(s)) },
	}
}

func stringSetting(key string, field func(*domain.AppSettings) *string) setting {
	return setting{
		key: key,
		read: func(store driven.ConfigStore, s *domain.AppSettings) {
			if v := store.GetString(key); v != "" {
				*field(s) = v
			}
		},
		write: func(store driven.ConfigStore, s *domain.AppSettings) error {
			return store.Set(key, *field(s))
		},
		parse: func(s *domain.AppSettings, value string) error {
			*field(s) = strings.TrimSpace(value)
			return nil
		},
		format: func(s *domain.AppSettings) string { return *field(s) },
	}
}

// settingsTable lists every supported key in display order.
var settingsTable = []setting{
	intSetting(keyFetchConcurrency, func(s *domain.AppSettings) *int { return &s.Export.FetchConcurrency }),
	{
		key: keyFetchTimeout,
		read: func(store driven.ConfigStore, s *domain.AppSettings) {
			if v := store.GetInt(keyFetchTimeout); v > 0 {
				s.Export.FetchTimeout = time.Duration(v) * time.Second
			}
		},
		write: func(store driven.ConfigStore, s *domain.AppSettings) error {
			return store.Set(keyFetchTimeout, int(s.Export.FetchTimeout/time.Second))
		},
		parse: func(s *domain.AppSettings, value string) error {
			v, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil || v <= 0 {
				return fmt.Errorf("%w: %s must be a positive number of seconds", domain.ErrInvalidInput, keyFetchTimeout)
			}
			s.Export.FetchTimeout = time.Duration(v) * time.Second
			return nil
		},
		format: func(s *domain.AppSettings) string { return strconv.Itoa(int(s.Export.FetchTimeout / time.Second)) },
	},
	{
		key: keyFetchRate,
		read: func(store driven.ConfigStore, s *domain.AppSettings) {
			if v := store.GetFloat(keyFetchRate); v > 0 {
				s.Export.FetchRatePerSecond = v
			}
		},
		write: func(store driven.ConfigStore, s *domain.AppSettings) error {
			return store.Set(keyFetchRate, s.Export.FetchRatePerSecond)
		},
		parse: func(s *domain.AppSettings, value string) error {
			v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil || v <= 0 {
				return fmt.Errorf("%w: %s must be a positive number", domain.ErrInvalidInput, keyFetchRate)
			}
			s.Export.FetchRatePerSecond = v
			return nil
		},
		format: func(s *domain.AppSettings) string {
			return strconv.FormatFloat(s.Export.FetchRatePerSecond, 'f', -1, 64)
		},
	},
	{
		key: keyMaxImageBytes,
		read: func(store driven.ConfigStore, s *domain.AppSettings) {
			if v := store.GetInt(keyMaxImageBytes); v > 0 {
				s.Export.MaxImageBytes = int64(v)
			}
		},
		write: func(store driven.ConfigStore, s *domain.AppSettings) error {
			return store.Set(keyMaxImageBytes, s.Export.MaxImageBytes)
		},
		parse: func(s *domain.AppSettings, value string) error {
			v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
			if err != nil || v <= 0 {
				return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, keyMaxImageBytes)
			}
			s.Export.MaxImageBytes = v
			return nil
		},
		format: func(s *domain.AppSettings) string { return strconv.FormatInt(s.Export.MaxImageBytes, 10) },
	},
	intSetting(keyMaxImageDimension, func(s *domain.AppSettings) *int { return &s.Export.MaxImageDimension }),
	intSetting(keyMaxParts, func(s *domain.AppSettings) *int { return &s.Export.MaxParts }),
	stringSetting(keyDefaultTheme, func(s *domain.AppSettings) *string { return &s.Export.DefaultTheme }),
	stringSetting(keyUserID, func(s *domain.AppSettings) *string { return &s.User.ID }),
	stringSetting(keyServerAddr, func(s *domain.AppSettings) *string { return &s.Server.Addr }),
	stringSetting(keyJWTSecret, func(s *domain.AppSettings) *string { return &s.Server.JWTSecret }),
	{
		key: keyAllowedOrigins,
		read: func(store driven.ConfigStore, s *domain.AppSettings) {
			if v := store.GetStringSlice(keyAllowedOrigins); len(v) > 0 {
				s.Server.AllowedOrigins = v
			}
		},
		write: func(store driven.ConfigStore, s *domain.AppSettings) error {
			origins := s.Server.AllowedOrigins
			if origins == nil {
				origins = []string{}
			}
			return store.Set(keyAllowedOrigins, origins)
		},
		parse: func(s *domain.AppSettings, value string) error {
			var origins []string
			for _, o := range strings.Split(value, ",") {
				if o = strings.TrimSpace(o); o != "" {
					origins = append(origins, o)
				}
			}
			s.Server.AllowedOrigins = origins
			return nil
		},
		format: func(s *domain.AppSettings) string { return strings.Join(s.Server.AllowedOrigins, ",") },
	},
	stringSetting(keyThemesDir, func(s *domain.AppSettings) *string { return &s.Themes.Dir }),
}

func lookupSetting(key string) (setting, bool) {
	for _, st := range settingsTable {
		if st.key == key {
			return st, true
		}
	}
	return setting{}, false
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings. Missing or invalid values
// fall back to their defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := domain.DefaultAppSettings()
	if s.configStore == nil {
		return &settings, nil
	}
	for _, st := range settingsTable {
		st.read(s.configStore, &settings)
	}
	settings.Normalise()
	return &settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if settings == nil {
		return domain.ErrInvalidInput
	}
	for _, st := range settingsTable {
		if err := st.write(s.configStore, settings); err != nil {
			return fmt.Errorf("save %s: %w", st.key, err)
		}
	}
	return s.configStore.Save()
}

// Set updates a single setting by its dotted key.
func (s *SettingsService) Set(key, value string) error {
	st, ok := lookupSetting(key)
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if err := st.parse(settings, value); err != nil {
		return err
	}
	return s.Save(settings)
}

// Lookup returns the current value of a dotted key as a string.
func (s *SettingsService) Lookup(key string) (string, error) {
	st, ok := lookupSetting(key)
	if !ok {
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	settings, err := s.Get()
	if err != nil {
		return "", err
	}
	return st.format(settings), nil
}

// Keys returns every supported dotted key in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingsTable))
	for i, st := range settingsTable {
		keys[i] = st.key
	}
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}
