package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presentai/presentai/internal/adapters/driving/tui/keymap"
	"github.com/presentai/presentai/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.Count())
	assert.Equal(t, 80, bar.Width())
}

func TestNewBar_NilDependencies(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestBar_InitAndUpdate(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Nil(t, bar.Init())

	updated, cmd := bar.Update(tea.WindowSizeMsg{Width: 10})
	assert.Same(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestBar_View(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		message  string
		count    int
		contains []string
	}{
		{"ready empty", StateReady, "", 0, []string{"Ready", "q: quit"}},
		{"ready with list", StateReady, "", 3, []string{"3 presentations", "e: export"}},
		{"loading", StateLoading, "", 0, []string{"Loading..."}},
		{"exporting", StateExporting, "", 0, []string{"Exporting..."}},
		{"done", StateDone, "Saved deck.pptx", 0, []string{"Saved deck.pptx"}},
		{"done default", StateDone, "", 0, []string{"Done"}},
		{"degraded", StateDegraded, "", 0, []string{"placeholders"}},
		{"error", StateError, "disk full", 0, []string{"Error: disk full"}},
		{"error bare", StateError, "", 0, []string{"Error"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(200)
			bar.SetState(tt.state)
			bar.SetMessage(tt.message)
			bar.SetCount(tt.count)

			view := bar.View()

			for _, want := range tt.contains {
				assert.Contains(t, view, want)
			}
		})
	}
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("boom")
	bar.SetCount(2)

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 2, bar.Count())
}
