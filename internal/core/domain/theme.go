package domain

import "sort"

// ColorRole is a semantic color slot in a palette.
type ColorRole string

// The seven palette roles.
const (
	RolePrimary    ColorRole = "primary"
	RoleSecondary  ColorRole = "secondary"
	RoleAccent     ColorRole = "accent"
	RoleBackground ColorRole = "background"
	RoleText       ColorRole = "text"
	RoleHeading    ColorRole = "heading"
	RoleMuted      ColorRole = "muted"
)

// AllColorRoles returns the palette roles in canonical order.
func AllColorRoles() []ColorRole {
	return []ColorRole{
		RolePrimary,
		RoleSecondary,
		RoleAccent,
		RoleBackground,
		RoleText,
		RoleHeading,
		RoleMuted,
	}
}

// IsValid returns true if the role is one of the seven palette roles.
func (r ColorRole) IsValid() bool {
	switch r {
	case RolePrimary, RoleSecondary, RoleAccent, RoleBackground,
		RoleText, RoleHeading, RoleMuted:
		return true
	default:
		return false
	}
}

// Palette maps every role to a hex color.
type Palette struct {
	Primary    string `toml:"primary" json:"primary"`
	Secondary  string `toml:"secondary" json:"secondary"`
	Accent     string `toml:"accent" json:"accent"`
	Background string `toml:"background" json:"background"`
	Text       string `toml:"text" json:"text"`
	Heading    string `toml:"heading" json:"heading"`
	Muted      string `toml:"muted" json:"muted"`
}

// Get returns the color for a role, or "" for an unknown role.
func (p Palette) Get(role ColorRole) string {
	switch role {
	case RolePrimary:
		return p.Primary
	case RoleSecondary:
		return p.Secondary
	case RoleAccent:
		return p.Accent
	case RoleBackground:
		return p.Background
	case RoleText:
		return p.Text
	case RoleHeading:
		return p.Heading
	case RoleMuted:
		return p.Muted
	default:
		return ""
	}
}

// Set assigns the color for a role. Unknown roles are ignored.
func (p *Palette) Set(role ColorRole, color string) {
	switch role {
	case RolePrimary:
		p.Primary = color
	case RoleSecondary:
		p.Secondary = color
	case RoleAccent:
		p.Accent = color
	case RoleBackground:
		p.Background = color
	case RoleText:
		p.Text = color
	case RoleHeading:
		p.Heading = color
	case RoleMuted:
		p.Muted = color
	}
}

// Fonts are font family hints for a theme.
type Fonts struct {
	Heading string `toml:"heading" json:"heading"`
	Body    string `toml:"body" json:"body"`
}

// Theme is a named design with light and dark palettes.
// Exports always use the light palette.
type Theme struct {
	Name        string  `toml:"name" json:"name"`
	Description string  `toml:"description" json:"description,omitempty"`
	Light       Palette `toml:"light" json:"light"`
	Dark        Palette `toml:"dark" json:"dark"`
	Fonts       Fonts   `toml:"fonts" json:"fonts"`

	// BuiltIn is true for themes compiled into the binary.
	BuiltIn bool `toml:"-" json:"builtIn"`
}

// ColorOverride replaces individual light palette roles for one export.
// Values are bare 6-hex strings; absent roles keep the theme value.
type ColorOverride map[ColorRole]string

// DefaultThemeName is the theme used when none is configured.
const DefaultThemeName = "default"

// BuiltInThemes returns the themes compiled into the binary, sorted by name.
func BuiltInThemes() []Theme {
	themes := []Theme{
		{
			Name:        DefaultThemeName,
			Description: "Clean indigo on white",
			Light: Palette{
				Primary: "4F46E5", Secondary: "818CF8", Accent: "F59E0B",
				Background: "FFFFFF", Text: "1F2937", Heading: "111827", Muted: "6B7280",
			},
			Dark: Palette{
				Primary: "818CF8", Secondary: "6366F1", Accent: "FBBF24",
				Background: "111827", Text: "E5E7EB", Heading: "F9FAFB", Muted: "9CA3AF",
			},
			Fonts: Fonts{Heading: "Inter", Body: "Inter"},
		},
		{
			Name:        "ocean",
			Description: "Deep blues and teal",
			Light: Palette{
				Primary: "0E7490", Secondary: "0891B2", Accent: "F97316",
				Background: "F0F9FF", Text: "0F172A", Heading: "0C4A6E", Muted: "64748B",
			},
			Dark: Palette{
				Primary: "22D3EE", Secondary: "67E8F9", Accent: "FB923C",
				Background: "082F49", Text: "E0F2FE", Heading: "F0F9FF", Muted: "94A3B8",
			},
			Fonts: Fonts{Heading: "Montserrat", Body: "Open Sans"},
		},
		{
			Name:        "forest",
			Description: "Greens with warm accents",
			Light: Palette{
				Primary: "15803D", Secondary: "4D7C0F", Accent: "CA8A04",
				Background: "F7FEE7", Text: "1C1917", Heading: "14532D", Muted: "78716C",
			},
			Dark: Palette{
				Primary: "4ADE80", Secondary: "A3E635", Accent: "FACC15",
				Background: "052E16", Text: "ECFCCB", Heading: "F7FEE7", Muted: "A8A29E",
			},
			Fonts: Fonts{Heading: "Merriweather", Body: "Source Sans Pro"},
		},
		{
			Name:        "sunset",
			Description: "Warm coral and plum",
			Light: Palette{
				Primary: "E11D48", Secondary: "9333EA", Accent: "F59E0B",
				Background: "FFF7ED", Text: "3F3F46", Heading: "881337", Muted: "A1A1AA",
			},
			Dark: Palette{
				Primary: "FB7185", Secondary: "C084FC", Accent: "FCD34D",
				Background: "1C1917", Text: "FAFAF9", Heading: "FFE4E6", Muted: "A8A29E",
			},
			Fonts: Fonts{Heading: "Playfair Display", Body: "Lato"},
		},
		{
			Name:        "slate",
			Description: "Neutral greys for data-heavy decks",
			Light: Palette{
				Primary: "334155", Secondary: "475569", Accent: "0EA5E9",
				Background: "F8FAFC", Text: "1E293B", Heading: "0F172A", Muted: "94A3B8",
			},
			Dark: Palette{
				Primary: "CBD5E1", Secondary: "94A3B8", Accent: "38BDF8",
				Background: "0F172A", Text: "E2E8F0", Heading: "F8FAFC", Muted: "64748B",
			},
			Fonts: Fonts{Heading: "Roboto", Body: "Roboto"},
		},
	}
	for i := range themes {
		themes[i].BuiltIn = true
	}
	sort.Slice(themes, func(i, j int) bool { return themes[i].Name < themes[j].Name })
	return themes
}
