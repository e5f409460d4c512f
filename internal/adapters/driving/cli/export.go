package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/presentai/presentai/internal/core/domain"
)

var errTerminalOutput = errors.New("refusing to write a binary deck to a terminal; redirect stdout or use --output FILE")

var exportCmd = &cobra.Command{
	Use:   "export [presentation-id]",
	Short: "Export a presentation to .pptx",
	Long: `Export a stored presentation, or a presentation JSON file, to a .pptx deck.

By default the deck is written to the current directory under a name derived
from the presentation title. Use --output to choose a file or directory, or
--output - to write the deck to stdout.

Elements that cannot be rendered are replaced with placeholders and listed
after the export.

Examples:
  presentai export 3f2a9c
  presentai export 3f2a9c --theme ocean --color primary=0E7490
  presentai export --file deck.json --output out/
  presentai export 3f2a9c -o - > deck.pptx`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Output file or directory (- for stdout)")
	exportCmd.Flags().StringP("file", "f", "", "Export a presentation JSON file instead of a stored presentation")
	exportCmd.Flags().String("theme", "", "Theme to export with (default: the presentation's theme)")
	exportCmd.Flags().StringToString("color", nil, "Override a palette role, e.g. primary=FF5733 (repeatable)")
	exportCmd.Flags().String("name", "", "File name to use when the presentation has no title")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}

	output, _ := cmd.Flags().GetString("output")
	file, _ := cmd.Flags().GetString("file")
	theme, _ := cmd.Flags().GetString("theme")
	colors, _ := cmd.Flags().GetStringToString("color")
	name, _ := cmd.Flags().GetString("name")

	if (file == "") == (len(args) == 0) {
		return errors.New("specify either a presentation id or --file")
	}

	override := make(domain.ColorOverride, len(colors))
	for role, color := range colors {
		override[domain.ColorRole(strings.ToLower(role))] = color
	}

	if output == "-" {
		if f, ok := cmd.OutOrStdout().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return errTerminalOutput
		}
	}

	var (
		result *domain.ExportResult
		err    error
	)
	if file != "" {
		result, err = exportFile(cmd, file, domain.ExportOptions{
			FileNameHint: name,
			ThemeName:    theme,
			Override:     override,
		})
	} else {
		owner, ownerErr := currentOwner()
		if ownerErr != nil {
			return ownerErr
		}
		result, err = exportService.Export(cmd.Context(), domain.ExportRequest{
			PresentationID: args[0],
			OwnerID:        owner,
			FileNameHint:   name,
			ThemeName:      theme,
			Override:       override,
		})
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	// Status lines go to stderr when stdout carries the deck.
	status := cmd.OutOrStdout()
	if output == "-" {
		status = cmd.ErrOrStderr()
		if _, err := cmd.OutOrStdout().Write(result.Data); err != nil {
			return fmt.Errorf("writing deck: %w", err)
		}
	} else {
		path, err := writeDeck(output, result)
		if err != nil {
			return err
		}
		fmt.Fprintf(status, "Exported to %s\n", path)
	}

	printExportSummary(status, result)
	return nil
}

func exportFile(cmd *cobra.Command, path string, opts domain.ExportOptions) (*domain.ExportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := domain.UnmarshalPresentation(data)
	if err != nil {
		return nil, err
	}
	if opts.FileNameHint == "" {
		opts.FileNameHint = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return exportService.ExportDocument(cmd.Context(), p, opts)
}

// writeDeck writes the deck to output. An empty output or an existing
// directory receives the deck under its suggested file name.
func writeDeck(output string, result *domain.ExportResult) (string, error) {
	path := output
	switch {
	case output == "":
		path = result.FileName
	case strings.HasSuffix(output, string(os.PathSeparator)):
		if err := os.MkdirAll(output, 0755); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
		path = filepath.Join(output, result.FileName)
	default:
		if info, err := os.Stat(output); err == nil && info.IsDir() {
			path = filepath.Join(output, result.FileName)
		}
	}
	if err := os.WriteFile(path, result.Data, 0644); err != nil {
		return "", fmt.Errorf("writing deck: %w", err)
	}
	return path, nil
}

func printExportSummary(w io.Writer, result *domain.ExportResult) {
	fmt.Fprintf(w, "  Slides: %d, images: %d, charts: %d, size: %s\n",
		result.SlideCount, result.MediaCount, result.ChartCount, formatBytes(int64(len(result.Data))))
	if !result.Degraded {
		return
	}
	fmt.Fprintf(w, "Warning: %d element(s) replaced with placeholders:\n", len(result.Diagnostics))
	for _, d := range result.Diagnostics {
		fmt.Fprintf(w, "  - %s\n", d)
	}
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
