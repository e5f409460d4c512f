package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/presentai/presentai/internal/core/domain"
)

var presentationCmd = &cobra.Command{
	Use:     "presentation",
	Aliases: []string{"pres", "p"},
	Short:   "Manage stored presentations",
	Long:    `List, inspect, import and organise the presentations stored for the configured user.`,
}

var presentationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List presentations",
	Args:  cobra.NoArgs,
	RunE:  runPresentationList,
}

var presentationGetCmd = &cobra.Command{
	Use:   "get [presentation-id]",
	Short: "Show a presentation",
	Long: `Show a presentation's details and slide outline.

Use --json to print the full presentation document instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runPresentationGet,
}

var presentationImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a presentation JSON document",
	Long: `Import a presentation JSON document and store it for the configured user.

Use - to read the document from stdin. A new ID is assigned when the document
has none.`,
	Args: cobra.ExactArgs(1),
	RunE: runPresentationImport,
}

var presentationRenameCmd = &cobra.Command{
	Use:   "rename [presentation-id] [title]",
	Short: "Rename a presentation",
	Args:  cobra.ExactArgs(2),
	RunE:  runPresentationRename,
}

var presentationDuplicateCmd = &cobra.Command{
	Use:   "duplicate [presentation-id]",
	Short: "Duplicate a presentation",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresentationDuplicate,
}

var presentationDeleteCmd = &cobra.Command{
	Use:   "delete [presentation-id]",
	Short: "Delete a presentation",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresentationDelete,
}

func init() {
	presentationGetCmd.Flags().Bool("json", false, "Print the presentation document as JSON")

	presentationCmd.AddCommand(presentationListCmd)
	presentationCmd.AddCommand(presentationGetCmd)
	presentationCmd.AddCommand(presentationImportCmd)
	presentationCmd.AddCommand(presentationRenameCmd)
	presentationCmd.AddCommand(presentationDuplicateCmd)
	presentationCmd.AddCommand(presentationDeleteCmd)
	rootCmd.AddCommand(presentationCmd)
}

func requirePresentationService() (string, error) {
	if presentationService == nil {
		return "", errors.New("presentation service not configured")
	}
	return currentOwner()
}

func runPresentationList(cmd *cobra.Command, _ []string) error {
	owner, err := requirePresentationService()
	if err != nil {
		return err
	}

	summaries, err := presentationService.List(cmd.Context(), owner)
	if err != nil {
		return fmt.Errorf("listing presentations: %w", err)
	}
	if len(summaries) == 0 {
		cmd.Println("No presentations found. Import one with 'presentai presentation import <file>'.")
		return nil
	}

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.ID,
			s.Title,
			strconv.Itoa(s.SlideCount),
			s.ThemeName,
			s.UpdatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	cmd.Println(renderTable(
		[]string{"ID", "Title", "Slides", "Theme", "Updated"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
	))
	return nil
}

func runPresentationGet(cmd *cobra.Command, args []string) error {
	owner, err := requirePresentationService()
	if err != nil {
		return err
	}

	p, err := presentationService.Get(cmd.Context(), owner, args[0])
	if err != nil {
		return fmt.Errorf("getting presentation: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		data, err := domain.MarshalPresentation(p)
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("ID:       %s\n", p.ID)
	cmd.Printf("Title:    %s\n", p.Title)
	if p.ThemeName != "" {
		cmd.Printf("Theme:    %s\n", p.ThemeName)
	}
	if p.Language != "" {
		cmd.Printf("Language: %s\n", p.Language)
	}
	cmd.Printf("Created:  %s\n", p.CreatedAt.Local().Format("2006-01-02 15:04"))
	cmd.Printf("Updated:  %s\n", p.UpdatedAt.Local().Format("2006-01-02 15:04"))
	cmd.Printf("Slides:   %d\n\n", p.SlideCount())

	for i, s := range p.Slides {
		cmd.Printf("%3d. %s\n", i+1, slideTitle(&s))
		cmd.Printf("     %s\n", elementCounts(&s))
	}
	return nil
}

// slideTitle returns the first title or heading paragraph on the slide.
func slideTitle(s *domain.Slide) string {
	var title string
	domain.Walk(s.Elements, func(el domain.Element) bool {
		if title != "" {
			return false
		}
		tb, ok := el.(*domain.TextBlock)
		if !ok {
			return true
		}
		for _, para := range tb.Paragraphs {
			if para.Level != domain.LevelTitle && para.Level != domain.LevelHeading {
				continue
			}
			if t := strings.TrimSpace(para.Text()); t != "" {
				title = t
				break
			}
		}
		return true
	})
	if title == "" {
		return "(untitled)"
	}
	return title
}

func elementCounts(s *domain.Slide) string {
	counts := make(map[domain.ElementKind]int)
	var order []domain.ElementKind
	domain.Walk(s.Elements, func(el domain.Element) bool {
		k := el.Kind()
		if counts[k] == 0 {
			order = append(order, k)
		}
		counts[k]++
		return true
	})
	if len(order) == 0 {
		return "empty"
	}
	parts := make([]string, 0, len(order))
	for _, k := range order {
		parts = append(parts, fmt.Sprintf("%d %s", counts[k], k))
	}
	return strings.Join(parts, ", ")
}

func runPresentationImport(cmd *cobra.Command, args []string) error {
	owner, err := requirePresentationService()
	if err != nil {
		return err
	}

	var data []byte
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}

	p, err := presentationService.Import(cmd.Context(), owner, data)
	if err != nil {
		return fmt.Errorf("importing presentation: %w", err)
	}

	cmd.Printf("Imported %q (%d slides)\n", p.Title, p.SlideCount())
	cmd.Printf("  ID: %s\n", p.ID)
	return nil
}

func runPresentationRename(cmd *cobra.Command, args []string) error {
	owner, err := requirePresentationService()
	if err != nil {
		return err
	}

	if err := presentationService.Rename(cmd.Context(), owner, args[0], args[1]); err != nil {
		return fmt.Errorf("renaming presentation: %w", err)
	}
	cmd.Printf("Renamed %s to %q\n", args[0], strings.TrimSpace(args[1]))
	return nil
}

func runPresentationDuplicate(cmd *cobra.Command, args []string) error {
	owner, err := requirePresentationService()
	if err != nil {
		return err
	}

	p, err := presentationService.Duplicate(cmd.Context(), owner, args[0])
	if err != nil {
		return fmt.Errorf("duplicating presentation: %w", err)
	}
	cmd.Printf("Duplicated as %q\n", p.Title)
	cmd.Printf("  ID: %s\n", p.ID)
	return nil
}

func runPresentationDelete(cmd *cobra.Command, args []string) error {
	owner, err := requirePresentationService()
	if err != nil {
		return err
	}

	if err := presentationService.Delete(cmd.Context(), owner, args[0]); err != nil {
		return fmt.Errorf("deleting presentation: %w", err)
	}
	cmd.Printf("Deleted presentation: %s\n", args[0])
	return nil
}
