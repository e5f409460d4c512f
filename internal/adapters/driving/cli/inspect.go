package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/presentai/presentai/internal/exporters/pptx"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file.pptx]",
	Short: "Inspect and verify an exported deck",
	Long: `Read a .pptx deck back, summarise its slides and verify that every
relationship it references resolves to a part in the package.

The command fails when verification finds a dangling or unused relationship.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().Bool("text", false, "Print the full text of every slide")
	inspectCmd.Flags().Bool("parts", false, "List every part in the package")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading deck: %w", err)
	}

	report, err := pptx.Inspect(data)
	if err != nil {
		return fmt.Errorf("reading package: %w", err)
	}

	title := report.Title
	if title == "" {
		title = "(untitled)"
	}
	cmd.Printf("Title:  %s\n", title)
	cmd.Printf("Slides: %d, media: %d, charts: %d, parts: %d\n\n",
		len(report.Slides), report.MediaCount, report.ChartCount, len(report.Parts))

	rows := make([][]string, 0, len(report.Slides))
	for i, s := range report.Slides {
		first := ""
		if len(s.Paragraphs) > 0 {
			first = truncateText(s.Paragraphs[0], 48)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(s.Pictures),
			strconv.Itoa(s.Charts),
			strconv.Itoa(s.Tables),
			first,
		})
	}
	cmd.Println(renderTable(
		[]string{"#", "Pictures", "Charts", "Tables", "Text"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignLeft},
	))

	if showText, _ := cmd.Flags().GetBool("text"); showText {
		for i, s := range report.Slides {
			cmd.Printf("\n--- Slide %d (%s) ---\n%s\n", i+1, s.Part, s.Text())
		}
	}

	if showParts, _ := cmd.Flags().GetBool("parts"); showParts {
		cmd.Println("\nParts:")
		for _, p := range report.Parts {
			cmd.Printf("  %s\n", p)
		}
	}

	if err := pptx.Verify(data); err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	cmd.Println("\nRelationships verified")
	return nil
}

func truncateText(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
