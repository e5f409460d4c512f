package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/presentai/presentai/internal/core/domain"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Browse the theme catalogue",
	Long: `List and inspect the themes available for export.

Custom themes are read from *.toml files in the themes directory
(settings key themes.dir).`,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available themes",
	Args:  cobra.NoArgs,
	RunE:  runThemeList,
}

var themeShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a theme's palettes and fonts",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemeShow,
}

func init() {
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeShowCmd)
	rootCmd.AddCommand(themeCmd)
}

func runThemeList(cmd *cobra.Command, _ []string) error {
	if themeService == nil {
		return errors.New("theme service not configured")
	}

	themes, err := themeService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing themes: %w", err)
	}

	defaultTheme := domain.DefaultThemeName
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil && s.Export.DefaultTheme != "" {
			defaultTheme = s.Export.DefaultTheme
		}
	}

	rows := make([][]string, 0, len(themes))
	for _, t := range themes {
		name := t.Name
		if t.Name == defaultTheme {
			name += " *"
		}
		source := "custom"
		if t.BuiltIn {
			source = "built-in"
		}
		rows = append(rows, []string{name, source, t.Fonts.Heading, t.Description})
	}
	cmd.Println(renderTable([]string{"Name", "Source", "Font", "Description"}, rows, nil))
	cmd.Println("* default theme")
	return nil
}

func runThemeShow(cmd *cobra.Command, args []string) error {
	if themeService == nil {
		return errors.New("theme service not configured")
	}

	t, err := themeService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("getting theme: %w", err)
	}

	cmd.Printf("Theme: %s\n", t.Name)
	if t.Description != "" {
		cmd.Printf("  %s\n", t.Description)
	}
	cmd.Printf("Fonts: heading %s, body %s\n\n", fontOrDefault(t.Fonts.Heading), fontOrDefault(t.Fonts.Body))

	roles := domain.AllColorRoles()
	rows := make([][]string, 0, len(roles))
	for _, role := range roles {
		rows = append(rows, []string{
			string(role),
			hexOrDash(t.Light.Get(role)),
			hexOrDash(t.Dark.Get(role)),
		})
	}
	cmd.Println(renderTable([]string{"Role", "Light", "Dark"}, rows, nil))
	return nil
}

func fontOrDefault(f string) string {
	if f == "" {
		return "(default)"
	}
	return f
}

func hexOrDash(c string) string {
	if c == "" {
		return "-"
	}
	return "#" + strings.ToUpper(c)
}
