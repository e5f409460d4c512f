package settings

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presentai/presentai/internal/adapters/driven/storage/memory"
	"github.com/presentai/presentai/internal/adapters/driving/tui/messages"
	"github.com/presentai/presentai/internal/core/domain"
	"github.com/presentai/presentai/internal/core/services"
)

func newView(t *testing.T) (*View, *services.SettingsService) {
	t.Helper()
	svc := services.NewSettingsService(memory.NewConfigStore())
	view := NewView(nil, svc)
	view.SetDimensions(100, 40)
	view.Update(view.Init()())
	require.NotEmpty(t, view.Entries())
	return view, svc
}

func selectKey(t *testing.T, view *View, key string) {
	t.Helper()
	for i, e := range view.Entries() {
		if e.Key == key {
			view.selected = i
			return
		}
	}
	t.Fatalf("setting %s not listed", key)
}

func TestView_LoadsAllKeys(t *testing.T) {
	view, svc := newView(t)

	entries := view.Entries()
	require.Len(t, entries, len(svc.Keys()))
	assert.Equal(t, svc.Keys()[0], entries[0].Key)

	out := view.View()
	assert.Contains(t, out, "export.max_parts")
	assert.Contains(t, out, "4000")
	assert.Contains(t, out, "user.id")
}

func TestView_NilService(t *testing.T) {
	view := NewView(nil, nil)

	view.Update(view.Init()())

	assert.Error(t, view.Err())
	assert.Contains(t, view.View(), "Error:")
}

func TestView_EditAndSave(t *testing.T) {
	view, svc := newView(t)
	selectKey(t, view, "export.max_parts")

	view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, view.Editing())
	assert.Equal(t, "4000", view.editing.Value())

	view.editing.SetValue("250")
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, view.Editing())

	msg := cmd()
	saved := msg.(messages.SettingSaved)
	require.NoError(t, saved.Err)

	_, reload := view.Update(msg)
	require.NotNil(t, reload)
	view.Update(reload())

	value, err := svc.Lookup("export.max_parts")
	require.NoError(t, err)
	assert.Equal(t, "250", value)
	assert.Contains(t, view.View(), "Saved export.max_parts")
}

func TestView_EditInvalidValue(t *testing.T) {
	view, _ := newView(t)
	selectKey(t, view, "export.fetch_timeout_seconds")

	view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view.editing.SetValue("soon")
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view.Update(cmd())

	assert.ErrorIs(t, view.Err(), domain.ErrInvalidInput)
}

func TestView_EditCancel(t *testing.T) {
	view, _ := newView(t)

	view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.False(t, view.Editing())
}

func TestView_SecretIsMasked(t *testing.T) {
	view, svc := newView(t)
	require.NoError(t, svc.Set("server.jwt_secret", "hunter2"))
	view.Update(view.Init()())

	assert.NotContains(t, view.View(), "hunter2")
	assert.Contains(t, view.View(), "********")

	selectKey(t, view, "server.jwt_secret")
	view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "", view.editing.Value())
}

func TestView_Navigation(t *testing.T) {
	view, _ := newView(t)
	last := len(view.Entries()) - 1

	for i := 0; i <= last+2; i++ {
		view.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, last, view.selected)

	for i := 0; i <= last+2; i++ {
		view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	}
	assert.Equal(t, 0, view.selected)
}

func TestView_EscAndReset(t *testing.T) {
	view, _ := newView(t)
	view.selected = 3
	view.notice = "Saved"

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())

	view.Reset()
	assert.Equal(t, 0, view.selected)
	assert.Empty(t, view.notice)
}
