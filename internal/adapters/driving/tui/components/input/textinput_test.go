package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presentai/presentai/internal/adapters/driving/tui/styles"
)

func TestNewPrompt(t *testing.T) {
	p := NewPrompt(styles.DefaultStyles(), "Title", "New title")

	require.NotNil(t, p)
	assert.Equal(t, "", p.Value())
	assert.Equal(t, "Title", p.Label())
	assert.True(t, p.Focused())
}

func TestNewPrompt_NilStyles(t *testing.T) {
	p := NewPrompt(nil, "Path", "")

	require.NotNil(t, p)
	assert.NotNil(t, p.styles)
}

func TestPrompt_Init(t *testing.T) {
	p := NewPrompt(nil, "Path", "")

	assert.NotNil(t, p.Init())
}

func TestPrompt_Update_TypesRunes(t *testing.T) {
	p := NewPrompt(nil, "Title", "")

	for _, r := range "Q3" {
		p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	assert.Equal(t, "Q3", p.Value())
}

func TestPrompt_View(t *testing.T) {
	p := NewPrompt(nil, "Export to", "")

	view := p.View()

	assert.Contains(t, view, "Export to")
}

func TestPrompt_SetValueAndReset(t *testing.T) {
	p := NewPrompt(nil, "Title", "")

	p.SetValue("Quarterly Review")
	assert.Equal(t, "Quarterly Review", p.Value())

	p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'!'}})
	assert.Equal(t, "Quarterly Review!", p.Value())

	p.Reset()
	assert.Equal(t, "", p.Value())
}

func TestPrompt_FocusBlur(t *testing.T) {
	p := NewPrompt(nil, "Title", "")

	p.Blur()
	assert.False(t, p.Focused())

	p.Focus()
	assert.True(t, p.Focused())
}

func TestPrompt_SetWidth(t *testing.T) {
	p := NewPrompt(nil, "Title", "")

	p.SetWidth(100)
	assert.Equal(t, 100, p.Width())

	p.SetWidth(5)
	assert.Equal(t, 5, p.Width())
	assert.Equal(t, 20, p.textinput.Width)
}
