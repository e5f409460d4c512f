package pptx

import (
	"math"
	"strings"

	"github.com/presentai/presentai/internal/core/domain"
)

const defaultFont = "Calibri"

// Style is the resolved styling for one export.
type Style struct {
	Palette domain.Palette
	Fonts   domain.Fonts
}

// NewStyle resolves a theme and override into a Style.
func NewStyle(theme domain.Theme, override domain.ColorOverride) Style {
	fonts := theme.Fonts
	if strings.TrimSpace(fonts.Heading) == "" {
		fonts.Heading = defaultFont
	}
	if strings.TrimSpace(fonts.Body) == "" {
		fonts.Body = defaultFont
	}
	return Style{
		Palette: ResolvePalette(theme, override),
		Fonts:   fonts,
	}
}

// NormalizeColor strips a leading '#', expands 3-digit shorthand and
// upper-cases the result. It reports false for anything that is not hex.
func NormalizeColor(s string) (string, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return "", false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		isHex := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
		if !isHex {
			return "", false
		}
	}
	return strings.ToUpper(s), true
}

// ResolvePalette returns the light palette of theme with override applied
// per role. Invalid override values are ignored; invalid theme values fall
// back to the default theme.
func ResolvePalette(theme domain.Theme, override domain.ColorOverride) domain.Palette {
	fallback := defaultPalette()
	var out domain.Palette
	for _, role := range domain.AllColorRoles() {
		if c, ok := NormalizeColor(override[role]); ok {
			out.Set(role, c)
			continue
		}
		if c, ok := NormalizeColor(theme.Light.Get(role)); ok {
			out.Set(role, c)
			continue
		}
		out.Set(role, fallback.Get(role))
	}
	return out
}

func defaultPalette() domain.Palette {
	for _, t := range domain.BuiltInThemes() {
		if t.Name == domain.DefaultThemeName {
			return t.Light
		}
	}
	return domain.Palette{
		Primary: "4F46E5", Secondary: "818CF8", Accent: "F59E0B",
		Background: "FFFFFF", Text: "1F2937", Heading: "111827", Muted: "6B7280",
	}
}

// Color resolves a role token or hex value. Empty or invalid values
// resolve to the fallback role.
func (s Style) Color(value string, fallback domain.ColorRole) string {
	if role := domain.ColorRole(strings.ToLower(strings.TrimSpace(value))); role.IsValid() {
		return s.Palette.Get(role)
	}
	if c, ok := NormalizeColor(value); ok {
		return c
	}
	return s.Palette.Get(fallback)
}

// Font returns the typeface for a paragraph level.
func (s Style) Font(level domain.TextLevel) string {
	if level.IsHeading() {
		return s.Fonts.Heading
	}
	return s.Fonts.Body
}

// seriesColor cycles through the palette for chart series and pie slices.
func (s Style) seriesColor(i int) string {
	roles := []domain.ColorRole{
		domain.RolePrimary,
		domain.RoleSecondary,
		domain.RoleAccent,
		domain.RoleHeading,
		domain.RoleMuted,
		domain.RoleText,
	}
	return s.Palette.Get(roles[i%len(roles)])
}

// LevelFontSize returns the default point size for a paragraph level.
func LevelFontSize(level domain.TextLevel) float64 {
	switch level {
	case domain.LevelTitle:
		return 44
	case domain.LevelHeading:
		return 32
	case domain.LevelSubheading:
		return 24
	case domain.LevelQuote:
		return 20
	default:
		return 18
	}
}

// levelColor returns the default color role for a paragraph level.
func levelColor(level domain.TextLevel) domain.ColorRole {
	switch {
	case level.IsHeading():
		return domain.RoleHeading
	case level == domain.LevelQuote:
		return domain.RoleMuted
	default:
		return domain.RoleText
	}
}

// fontSizeHundredths converts points to the sz attribute, clamped to the
// range the format accepts.
func fontSizeHundredths(pt float64) int64 {
	if pt <= 0 || math.IsNaN(pt) || math.IsInf(pt, 0) {
		pt = LevelFontSize(domain.LevelBody)
	}
	return clamp(round(pt*100), 100, 400000)
}
