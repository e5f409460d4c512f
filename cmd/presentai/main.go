// Command presentai stores slide presentations and exports them to .pptx.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/presentai/presentai/internal/adapters/driven/config/file"
	"github.com/presentai/presentai/internal/adapters/driven/fetch"
	"github.com/presentai/presentai/internal/adapters/driven/storage/sqlite"
	"github.com/presentai/presentai/internal/adapters/driving/cli"
	"github.com/presentai/presentai/internal/core/services"
	"github.com/presentai/presentai/internal/exporters/pptx"
	"github.com/presentai/presentai/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore(os.Getenv("PRESENTAI_HOME"))
	if err != nil {
		return report(fmt.Errorf("loading config: %w", err))
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return report(fmt.Errorf("reading settings: %w", err))
	}

	store, err := sqlite.NewStore(dataDir())
	if err != nil {
		return report(fmt.Errorf("opening store: %w", err))
	}
	defer store.Close()
	logger.Debug("store: %s", store.Path())

	themeStore, err := file.NewThemeStore(settings.Themes.Dir)
	if err != nil {
		return report(fmt.Errorf("opening themes: %w", err))
	}
	themeService := services.NewThemeService(themeStore, settingsService)

	fetcher := fetch.NewFetcher(nil, fetch.ConfigFromSettings(settings.Export))
	encoder := pptx.New(fetcher, pptx.ConfigFromSettings(settings.Export))
	presentations := store.PresentationStore()

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Export:       services.NewExportService(presentations, themeService, encoder),
		Presentation: services.NewPresentationService(presentations),
		Theme:        themeService,
		Settings:     settingsService,
	})

	// Cobra has already printed the error.
	return cli.Execute()
}

// dataDir places the database under PRESENTAI_HOME when it is set.
func dataDir() string {
	if home := os.Getenv("PRESENTAI_HOME"); home != "" {
		return filepath.Join(home, "data")
	}
	return ""
}

func report(err error) error {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return err
}
