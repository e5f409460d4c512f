package outline

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presentai/presentai/internal/adapters/driven/storage/memory"
	"github.com/presentai/presentai/internal/adapters/driving/tui/messages"
	"github.com/presentai/presentai/internal/core/domain"
	"github.com/presentai/presentai/internal/core/services"
)

const owner = "user-1"

func title(text string) *domain.TextBlock {
	return &domain.TextBlock{Paragraphs: []domain.Paragraph{{
		Level: domain.LevelTitle,
		Runs:  []domain.TextRun{{Text: text}},
	}}}
}

func samplePresentation() *domain.Presentation {
	return &domain.Presentation{
		ID:        "deck-1",
		OwnerID:   owner,
		Title:     "Quarterly Review",
		ThemeName: "slate",
		Language:  "en-GB",
		Slides: []domain.Slide{
			{
				ID:       "s1",
				Elements: []domain.Element{title("Results"), &domain.Image{Src: "https://example.com/chart.png"}},
				Notes:    "Open with the headline\nthen pause",
			},
			{
				ID:         "s2",
				Layout:     domain.SlideLayoutLeft,
				Background: &domain.Background{Color: "primary"},
				Elements: []domain.Element{
					&domain.Container{Children: []domain.Element{
						&domain.Table{Rows: []domain.TableRow{{Cells: make([]domain.TableCell, 3)}, {Cells: make([]domain.TableCell, 3)}}},
						&domain.Divider{},
					}},
					&domain.Unknown{Type: "poll"},
				},
			},
		},
	}
}

func newView(t *testing.T) (*View, *memory.PresentationStore) {
	t.Helper()
	store := memory.NewPresentationStore()
	require.NoError(t, store.Save(context.Background(), samplePresentation()))
	view := NewView(nil, services.NewPresentationService(store), owner)
	view.SetDimensions(100, 40)
	return view, store
}

func TestLines(t *testing.T) {
	lines := Lines(samplePresentation())

	assert.Equal(t, []string{
		"Slide 1  Results",
		"  text: Results",
		"  image: https://example.com/chart.png",
		"  notes: Open with the headline",
		"Slide 2 [left]",
		"  background primary",
		"  container: 2 children",
		"    table: 2×3",
		"    divider",
		"  poll (not exported)",
	}, lines)
}

func TestLines_Nil(t *testing.T) {
	assert.Nil(t, Lines(nil))
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		element  domain.Element
		expected string
	}{
		{"data uri image", &domain.Image{Src: "data:image/png;base64,AAAA"}, "image: embedded data"},
		{"chart", &domain.Chart{ChartKind: "bar", Title: "Revenue", Series: []domain.ChartSeries{{Name: "2026"}}}, "chart: bar, 1 series Revenue"},
		{"shape with text", &domain.Shape{Geometry: "ellipse", Text: title("Hi")}, "shape: ellipse Hi"},
		{"bare shape", &domain.Shape{Geometry: "rect"}, "shape: rect"},
		{"embed", &domain.Embed{URL: "https://video.example/v/1"}, "embed: https://video.example/v/1"},
		{"empty text", &domain.TextBlock{}, "text: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Describe(tt.element))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "ééé…", truncate("éééééé", 4))
}

func TestView_SetPresentation_Loads(t *testing.T) {
	view, _ := newView(t)

	cmd := view.SetPresentation(domain.PresentationSummary{ID: "deck-1", Title: "Quarterly Review"})
	require.NotNil(t, cmd)
	assert.Contains(t, view.View(), "Loading presentation")

	view.Update(cmd())

	require.NotNil(t, view.Presentation())
	out := view.View()
	assert.Contains(t, out, "Outline - Quarterly Review")
	assert.Contains(t, out, "2 slides")
	assert.Contains(t, out, "theme slate")
	assert.Contains(t, out, "Slide 2 [left]")
}

func TestView_SetPresentation_NotFound(t *testing.T) {
	view, _ := newView(t)

	cmd := view.SetPresentation(domain.PresentationSummary{ID: "missing"})
	view.Update(cmd())

	assert.ErrorIs(t, view.Err(), domain.ErrNotFound)
	assert.Contains(t, view.View(), "Error:")
}

func TestView_NilService(t *testing.T) {
	view := NewView(nil, nil, owner)

	msg := view.SetPresentation(domain.PresentationSummary{ID: "deck-1"})()
	view.Update(msg)

	assert.Error(t, view.Err())
}

func TestView_Scroll(t *testing.T) {
	view, store := newView(t)
	long := samplePresentation()
	long.ID = "long"
	long.Slides = nil
	for i := 0; i < 30; i++ {
		long.Slides = append(long.Slides, domain.Slide{Elements: []domain.Element{title(fmt.Sprintf("S%d", i))}})
	}
	require.NoError(t, store.Save(context.Background(), long))

	view.SetDimensions(80, 17)
	view.Update(view.SetPresentation(domain.PresentationSummary{ID: "long"})())
	require.Len(t, view.lines, 60)

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, view.ScrollOffset())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	assert.Equal(t, 50, view.ScrollOffset())

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 50, view.ScrollOffset())

	view.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, 40, view.ScrollOffset())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.Equal(t, 0, view.ScrollOffset())

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.ScrollOffset())

	assert.Contains(t, view.View(), "of 60 lines")
}

func TestView_Esc(t *testing.T) {
	view, _ := newView(t)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewPresentations}, cmd())
}

func TestView_ErrorOccurred(t *testing.T) {
	view, _ := newView(t)

	view.Update(messages.ErrorOccurred{Err: assert.AnError})

	assert.Equal(t, assert.AnError, view.Err())
}
