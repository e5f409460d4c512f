package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/presentai/presentai/internal/adapters/driving/tui"
)

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	// OutputDir receives decks exported from the TUI. Empty uses the
	// working directory.
	OutputDir string
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Browse your presentations, preview slide outlines, export decks, rename,
duplicate or delete presentations, browse themes and edit settings.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select / Actions
  e        - Export the selected presentation
  o        - Show the slide outline
  Esc      - Back / Cancel
  ?        - Toggle help
  q        - Quit`,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	tuiCmd.Flags().StringP("output", "o", "", "Directory exported decks are written to")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports, err := tuiPorts(cmd)
	if err != nil {
		return err
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// tuiPorts builds the TUI ports from the injected services.
func tuiPorts(cmd *cobra.Command) (*tui.Ports, error) {
	ports := &tui.Ports{
		Presentation: presentationService,
		Export:       exportService,
		Theme:        themeService,
		Settings:     settingsService,
	}

	if tuiConfig != nil {
		ports.OutputDir = tuiConfig.OutputDir
	}
	if output, _ := cmd.Flags().GetString("output"); output != "" {
		ports.OutputDir = output
	}

	if settingsService != nil {
		owner, err := currentOwner()
		if err != nil {
			return nil, err
		}
		ports.OwnerID = owner
	}
	return ports, nil
}
