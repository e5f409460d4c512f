// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/presentai/presentai/internal/adapters/driving/tui/components/input"
	"github.com/presentai/presentai/internal/adapters/driving/tui/messages"
	"github.com/presentai/presentai/internal/adapters/driving/tui/styles"
	"github.com/presentai/presentai/internal/core/ports/driving"
)

// secretKeys are shown masked.
var secretKeys = map[string]bool{
	"server.jwt_secret": true,
}

// View lists every setting and edits one value at a time.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	entries  []messages.SettingEntry
	selected int
	editing  *input.Prompt
	err      error
	notice   string

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:          s,
		settingsService: settingsService,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: errors.New("settings service not available")}
		}
		keys := v.settingsService.Keys()
		entries := make([]messages.SettingEntry, 0, len(keys))
		for _, key := range keys {
			value, err := v.settingsService.Lookup(key)
			if err != nil {
				return messages.SettingsLoaded{Err: err}
			}
			entries = append(entries, messages.SettingEntry{Key: key, Value: value})
		}
		return messages.SettingsLoaded{Entries: entries}
	}
}

func (v *View) saveSetting(key, value string) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingSaved{Key: key, Err: errors.New("settings service not available")}
		}
		err := v.settingsService.Set(key, value)
		return messages.SettingSaved{Key: key, Value: value, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.entries = msg.Entries
		if v.selected >= len(v.entries) {
			v.selected = 0
		}
		return v, nil

	case messages.SettingSaved:
		if msg.Err != nil {
			v.err = msg.Err
			v.notice = ""
			return v, nil
		}
		v.err = nil
		v.notice = "Saved " + msg.Key
		return v, v.loadSettings()

	case tea.KeyMsg:
		if v.editing != nil {
			return v.handleEditKey(msg)
		}
		return v.handleKeyMsg(msg)
	}

	if v.editing != nil {
		var cmd tea.Cmd
		v.editing, cmd = v.editing.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.entries)-1 {
			v.selected++
		}
	case "enter":
		if v.selected < len(v.entries) {
			entry := v.entries[v.selected]
			v.editing = input.NewPrompt(v.styles, entry.Key, "")
			if !secretKeys[entry.Key] {
				v.editing.SetValue(entry.Value)
			}
			v.editing.SetWidth(v.width)
			v.notice = ""
			return v, v.editing.Init()
		}
	case "r":
		return v, v.loadSettings()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	return v, nil
}

func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.editing = nil
		return v, nil
	case tea.KeyEnter:
		key, value := v.editing.Label(), v.editing.Value()
		v.editing = nil
		return v, v.saveSetting(key, value)
	}
	var cmd tea.Cmd
	v.editing, cmd = v.editing.Update(msg)
	return v, cmd
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if len(v.entries) == 0 && v.err == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
	}

	keyWidth := 0
	for _, e := range v.entries {
		keyWidth = max(keyWidth, len(e.Key))
	}
	for i, e := range v.entries {
		line := fmt.Sprintf("%-*s  %s", keyWidth, e.Key, displayValue(e))
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if v.editing != nil {
		b.WriteString("\n")
		b.WriteString(v.editing.View())
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n")
	}
	if v.notice != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func displayValue(e messages.SettingEntry) string {
	switch {
	case e.Value == "":
		return "(unset)"
	case secretKeys[e.Key]:
		return "********"
	default:
		return e.Value
	}
}

func (v *View) renderHelp() string {
	if v.editing != nil {
		return v.styles.Help.Render("[enter] save  [esc] cancel")
	}
	return v.styles.Help.Render("[↑/↓] navigate  [enter] edit  [r] reload  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset clears transient state before the view is shown again.
func (v *View) Reset() {
	v.editing = nil
	v.err = nil
	v.notice = ""
	v.selected = 0
}

// Entries returns the loaded settings.
func (v *View) Entries() []messages.SettingEntry {
	return v.entries
}

// Editing reports whether a value is being edited.
func (v *View) Editing() bool {
	return v.editing != nil
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
