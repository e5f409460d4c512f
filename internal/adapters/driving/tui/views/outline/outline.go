// Package outline provides the slide outline view for the TUI.
package outline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/presentai/presentai/internal/adapters/driving/tui/messages"
	"github.com/presentai/presentai/internal/adapters/driving/tui/styles"
	"github.com/presentai/presentai/internal/core/domain"
	"github.com/presentai/presentai/internal/core/ports/driving"
)

// View shows one presentation slide by slide with its element tree.
type View struct {
	styles        *styles.Styles
	presentations driving.PresentationService
	ownerID       string

	summary      *domain.PresentationSummary
	presentation *domain.Presentation
	lines        []string
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
}

// NewView creates a new outline view.
func NewView(s *styles.Styles, presentations driving.PresentationService, ownerID string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:        s,
		presentations: presentations,
		ownerID:       ownerID,
	}
}

// SetPresentation selects a presentation and loads it.
func (v *View) SetPresentation(summary domain.PresentationSummary) tea.Cmd {
	v.summary = &summary
	v.presentation = nil
	v.lines = nil
	v.scrollOffset = 0
	v.err = nil
	v.loading = true
	return v.load()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		if v.summary == nil || v.presentations == nil {
			return messages.PresentationLoaded{Err: errors.New("presentation service not available")}
		}
		p, err := v.presentations.Get(context.Background(), v.ownerID, v.summary.ID)
		return messages.PresentationLoaded{Presentation: p, Err: err}
	}
}

// Update handles messages for the outline view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.PresentationLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.presentation = msg.Presentation
		v.lines = Lines(msg.Presentation)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "pgup", "ctrl+u":
		v.scrollOffset = max(v.scrollOffset-v.visibleLines(), 0)
	case "pgdown", "ctrl+d":
		v.scrollOffset = min(v.scrollOffset+v.visibleLines(), v.maxScrollOffset())
	case "g", "home":
		v.scrollOffset = 0
	case "G", "end":
		v.scrollOffset = v.maxScrollOffset()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewPresentations}
		}
	}
	return v, nil
}

func (v *View) visibleLines() int {
	return max(v.height-7, 1)
}

func (v *View) maxScrollOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the outline.
func (v *View) View() string {
	var b strings.Builder

	title := "Outline"
	if v.summary != nil {
		title = "Outline - " + displayTitle(v.summary.Title, v.summary.ID)
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")

	switch {
	case v.loading:
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Loading presentation..."))
	case v.err != nil:
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case v.presentation != nil:
		b.WriteString(v.styles.Muted.Render(v.header()))
		b.WriteString("\n\n")
		end := min(v.scrollOffset+v.visibleLines(), len(v.lines))
		for _, line := range v.lines[v.scrollOffset:end] {
			if strings.HasPrefix(line, "Slide ") {
				b.WriteString(v.styles.Subtitle.Render(line))
			} else {
				b.WriteString(v.styles.Normal.Render(line))
			}
			b.WriteString("\n")
		}
		if len(v.lines) > v.visibleLines() {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("[%d-%d of %d lines]", v.scrollOffset+1, end, len(v.lines))))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] scroll  [pgup/pgdn] page  [g/G] top/bottom  [esc] back"))
	return b.String()
}

func (v *View) header() string {
	p := v.presentation
	theme := p.ThemeName
	if theme == "" {
		theme = "default"
	}
	parts := []string{
		fmt.Sprintf("%d slides", len(p.Slides)),
		"theme " + theme,
	}
	if p.Language != "" {
		parts = append(parts, p.Language)
	}
	return strings.Join(parts, " · ")
}

// Lines flattens a presentation into outline lines: one heading per slide
// followed by its element tree, children indented under containers.
func Lines(p *domain.Presentation) []string {
	if p == nil {
		return nil
	}
	var lines []string
	for i := range p.Slides {
		s := &p.Slides[i]
		heading := fmt.Sprintf("Slide %d", i+1)
		if s.Layout != "" && s.Layout != domain.SlideLayoutDefault {
			heading += fmt.Sprintf(" [%s]", s.Layout)
		}
		if t := slideTitle(s); t != "" {
			heading += "  " + t
		}
		lines = append(lines, heading)
		if !s.Background.IsZero() {
			lines = append(lines, "  background "+describeBackground(s.Background))
		}
		lines = appendElements(lines, s.Elements, 1)
		if s.Notes != "" {
			lines = append(lines, "  notes: "+truncate(firstLine(s.Notes), 60))
		}
	}
	return lines
}

func appendElements(lines []string, elements []domain.Element, depth int) []string {
	indent := strings.Repeat("  ", depth)
	for _, el := range elements {
		lines = append(lines, indent+Describe(el))
		if c, ok := el.(*domain.Container); ok {
			lines = appendElements(lines, c.Children, depth+1)
		}
	}
	return lines
}

// Describe returns a one-line summary of an element.
func Describe(el domain.Element) string {
	switch e := el.(type) {
	case *domain.TextBlock:
		return "text: " + truncate(blockText(e), 60)
	case *domain.Image:
		src := e.Src
		if strings.HasPrefix(src, "data:") {
			src = "embedded data"
		}
		return "image: " + truncate(src, 60)
	case *domain.Table:
		return fmt.Sprintf("table: %d×%d", len(e.Rows), e.ColumnCount())
	case *domain.Chart:
		s := fmt.Sprintf("chart: %s, %d series", e.ChartKind, len(e.Series))
		if e.Title != "" {
			s += " " + truncate(e.Title, 40)
		}
		return s
	case *domain.Shape:
		s := "shape: " + e.Geometry
		if e.Text != nil {
			if t := blockText(e.Text); t != "" {
				s += " " + truncate(t, 40)
			}
		}
		return s
	case *domain.Embed:
		return "embed: " + truncate(e.URL, 60)
	case *domain.Divider:
		return "divider"
	case *domain.Container:
		return fmt.Sprintf("container: %d children", len(e.Children))
	case *domain.Unknown:
		return fmt.Sprintf("%s (not exported)", e.Type)
	default:
		return string(el.Kind())
	}
}

func slideTitle(s *domain.Slide) string {
	var title string
	domain.Walk(s.Elements, func(el domain.Element) bool {
		if title != "" {
			return false
		}
		if t, ok := el.(*domain.TextBlock); ok {
			for _, p := range t.Paragraphs {
				if p.Level.IsHeading() && p.Text() != "" {
					title = truncate(p.Text(), 50)
					return false
				}
			}
		}
		return true
	})
	return title
}

func blockText(t *domain.TextBlock) string {
	for _, p := range t.Paragraphs {
		if txt := strings.TrimSpace(p.Text()); txt != "" {
			return txt
		}
	}
	return ""
}

func describeBackground(bg *domain.Background) string {
	switch {
	case bg.ImageSrc != "" && bg.Color != "":
		return bg.Color + " with image"
	case bg.ImageSrc != "":
		return "image"
	default:
		return bg.Color
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func displayTitle(title, id string) string {
	if title != "" {
		return title
	}
	return id
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Presentation returns the loaded presentation.
func (v *View) Presentation() *domain.Presentation {
	return v.presentation
}

// ScrollOffset returns the first visible line.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
