// Package cli provides the presentai command line interface.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/presentai/presentai/internal/core/ports/driving"
	"github.com/presentai/presentai/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services injected by main before Execute.
var (
	exportService       driving.ExportService
	presentationService driving.PresentationService
	themeService        driving.ThemeService
	settingsService     driving.SettingsService
)

var errNoOwner = errors.New("user id not configured")

var rootCmd = &cobra.Command{
	Use:   "presentai",
	Short: "Store slide presentations and export them to PowerPoint",
	Long: `presentai stores slide presentations and exports them to .pptx decks.

Import a presentation document, then export it from the command line, the
interactive terminal UI, the HTTP API or an MCP client.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

// Services holds the driving ports the commands use.
type Services struct {
	Export       driving.ExportService
	Presentation driving.PresentationService
	Theme        driving.ThemeService
	Settings     driving.SettingsService
}

// SetServices injects the services used by every command.
func SetServices(s Services) {
	exportService = s.Export
	presentationService = s.Presentation
	themeService = s.Theme
	settingsService = s.Settings
}

// SetVersion sets the version reported by "presentai version".
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// currentOwner returns the configured user id.
func currentOwner() (string, error) {
	if settingsService == nil {
		return "", errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return "", err
	}
	if settings.User.ID == "" {
		return "", errNoOwner
	}
	return settings.User.ID, nil
}
