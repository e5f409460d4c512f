package cli

import (
	"errors"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/presentai/presentai/internal/adapters/driving/watch"
	"github.com/presentai/presentai/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file.json]",
	Short: "Re-export a presentation file whenever it changes",
	Long: `Export a presentation JSON document and export it again every time the
file is saved. Press Ctrl+C to stop.

Examples:
  presentai watch deck.json
  presentai watch deck.json --output build/ --theme forest`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringP("output", "o", "", "Output directory (default: the file's directory)")
	watchCmd.Flags().String("theme", "", "Theme to export with")
	watchCmd.Flags().StringToString("color", nil, "Override a palette role, e.g. accent=F59E0B (repeatable)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}

	output, _ := cmd.Flags().GetString("output")
	theme, _ := cmd.Flags().GetString("theme")
	colors, _ := cmd.Flags().GetStringToString("color")

	override := make(domain.ColorOverride, len(colors))
	for role, color := range colors {
		override[domain.ColorRole(strings.ToLower(role))] = color
	}

	w, err := watch.New(exportService, watch.Config{
		Input:     args[0],
		OutputDir: output,
		Options:   domain.ExportOptions{ThemeName: theme, Override: override},
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	events, err := w.Watch(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", w.Input())
	for ev := range events {
		if ev.Err != nil {
			cmd.PrintErrf("Export failed: %v\n", ev.Err)
			continue
		}
		cmd.Printf("Exported %s\n", ev.Path)
		printExportSummary(cmd.OutOrStdout(), ev.Result)
	}
	return nil
}
