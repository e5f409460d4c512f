// Package presentations provides the presentation list view for the TUI.
package presentations

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/presentai/presentai/internal/adapters/driving/tui/components/input"
	"github.com/presentai/presentai/internal/adapters/driving/tui/components/status"
	"github.com/presentai/presentai/internal/adapters/driving/tui/keymap"
	"github.com/presentai/presentai/internal/adapters/driving/tui/messages"
	"github.com/presentai/presentai/internal/adapters/driving/tui/styles"
	"github.com/presentai/presentai/internal/core/domain"
	"github.com/presentai/presentai/internal/core/ports/driving"
)

// ActionOption represents a presentation action.
type ActionOption int

const (
	ActionExport ActionOption = iota
	ActionOutline
	ActionRename
	ActionDuplicate
	ActionDelete
	ActionCancel
)

// Mode is the interaction state of the view.
type Mode int

const (
	ModeList Mode = iota
	ModeActions
	ModeRename
	ModeExport
	ModeConfirmDelete
)

var errServiceUnavailable = errors.New("presentation service not available")

// View is the presentations list view.
type View struct {
	styles        *styles.Styles
	keys          *keymap.KeyMap
	presentations driving.PresentationService
	exporter      driving.ExportService
	ownerID       string
	outputDir     string

	items        []domain.PresentationSummary
	selected     int
	scrollOffset int
	width        int
	height       int
	ready        bool
	loading      bool
	err          error

	mode         Mode
	menuSelected ActionOption
	prompt       *input.Prompt
	status       *status.Bar
}

// NewView creates a new presentations view scoped to ownerID.
// Exports are written to outputDir, or the working directory when empty.
func NewView(
	s *styles.Styles,
	presentations driving.PresentationService,
	exporter driving.ExportService,
	ownerID, outputDir string,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()
	return &View{
		styles:        s,
		keys:          km,
		presentations: presentations,
		exporter:      exporter,
		ownerID:       ownerID,
		outputDir:     outputDir,
		items:         []domain.PresentationSummary{},
		status:        status.NewBar(s, km),
	}
}

// Init loads the owner's presentations.
func (v *View) Init() tea.Cmd {
	v.mode = ModeList
	v.loading = true
	v.status.SetState(status.StateLoading)
	return v.load()
}

func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		if v.presentations == nil {
			return messages.PresentationsLoaded{Err: errServiceUnavailable}
		}
		items, err := v.presentations.List(context.Background(), v.ownerID)
		return messages.PresentationsLoaded{Presentations: items, Err: err}
	}
}

// Update handles messages for the presentations view.
//
//nolint:gocyclo // message switch
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case ModeActions:
			return v.handleMenuKey(msg)
		case ModeRename, ModeExport:
			return v.handlePromptKey(msg)
		case ModeConfirmDelete:
			return v.handleConfirmKey(msg)
		case ModeList:
		}
		return v.handleListKey(msg)

	case messages.PresentationsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			v.status.SetState(status.StateError)
			v.status.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.err = nil
		v.items = msg.Presentations
		if v.selected >= len(v.items) {
			v.selected = max(len(v.items)-1, 0)
		}
		v.adjustScroll()
		v.status.SetCount(len(v.items))
		if v.status.State() == status.StateLoading {
			v.status.Clear()
		}
		return v, nil

	case messages.PresentationExported:
		v.handleExported(msg)
		return v, nil

	case messages.PresentationRenamed:
		return v, v.afterMutation(msg.Err, fmt.Sprintf("Renamed to %q", msg.Title))

	case messages.PresentationDuplicated:
		note := ""
		if msg.Presentation != nil {
			note = fmt.Sprintf("Duplicated as %s", msg.Presentation.ID)
		}
		return v, v.afterMutation(msg.Err, note)

	case messages.PresentationDeleted:
		return v, v.afterMutation(msg.Err, fmt.Sprintf("Deleted %s", msg.ID))

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.status.SetState(status.StateError)
		v.status.SetMessage(msg.Err.Error())
		return v, nil
	}

	if v.prompt != nil {
		var cmd tea.Cmd
		v.prompt, cmd = v.prompt.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleExported(msg messages.PresentationExported) {
	if msg.Err != nil {
		v.status.SetState(status.StateError)
		v.status.SetMessage(msg.Err.Error())
		return
	}
	if msg.Result != nil && msg.Result.Degraded {
		v.status.SetState(status.StateDegraded)
		v.status.SetMessage(fmt.Sprintf("Saved %s with %d placeholder(s)", msg.Path, len(msg.Result.Diagnostics)))
		return
	}
	v.status.SetState(status.StateDone)
	v.status.SetMessage("Saved " + msg.Path)
}

// afterMutation reports a rename, duplicate or delete and reloads the list.
func (v *View) afterMutation(err error, note string) tea.Cmd {
	if err != nil {
		v.status.SetState(status.StateError)
		v.status.SetMessage(err.Error())
		return nil
	}
	v.status.SetState(status.StateDone)
	v.status.SetMessage(note)
	return v.load()
}

func (v *View) handleListKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keys.Up):
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case keymap.Matches(key, v.keys.Down):
		if v.selected < len(v.items)-1 {
			v.selected++
			v.adjustScroll()
		}
	case keymap.Matches(key, v.keys.Actions):
		if len(v.items) > 0 {
			v.mode = ModeActions
			v.menuSelected = ActionExport
		}
	case keymap.Matches(key, v.keys.Export):
		if len(v.items) > 0 {
			return v, v.startExport()
		}
	case keymap.Matches(key, v.keys.Outline):
		return v, v.openOutline()
	case keymap.Matches(key, v.keys.Reload):
		v.loading = true
		return v, v.load()
	case keymap.Matches(key, v.keys.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	return v, nil
}

func (v *View) handleMenuKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keys.Up):
		if v.menuSelected > ActionExport {
			v.menuSelected--
		}
	case keymap.Matches(key, v.keys.Down):
		if v.menuSelected < ActionCancel {
			v.menuSelected++
		}
	case keymap.Matches(key, v.keys.Select):
		return v.handleMenuSelect()
	case keymap.Matches(key, v.keys.Back):
		v.mode = ModeList
	}
	return v, nil
}

func (v *View) handleMenuSelect() (*View, tea.Cmd) {
	v.mode = ModeList
	current := v.Selected()
	if current == nil {
		return v, nil
	}

	switch v.menuSelected {
	case ActionExport:
		return v, v.startExport()
	case ActionOutline:
		return v, v.openOutline()
	case ActionRename:
		v.mode = ModeRename
		v.prompt = input.NewPrompt(v.styles, "Title", "New title")
		v.prompt.SetValue(current.Title)
		v.prompt.SetWidth(v.width)
		return v, v.prompt.Init()
	case ActionDuplicate:
		return v, v.duplicate(current.ID)
	case ActionDelete:
		v.mode = ModeConfirmDelete
	case ActionCancel:
	}
	return v, nil
}

func (v *View) startExport() tea.Cmd {
	v.mode = ModeExport
	v.prompt = input.NewPrompt(v.styles, "Export to directory", ".")
	dir := v.outputDir
	if dir == "" {
		dir = "."
	}
	v.prompt.SetValue(dir)
	v.prompt.SetWidth(v.width)
	return v.prompt.Init()
}

func (v *View) openOutline() tea.Cmd {
	current := v.Selected()
	if current == nil {
		return nil
	}
	summary := *current
	return func() tea.Msg {
		return messages.PresentationSelected{Summary: summary}
	}
}

func (v *View) handlePromptKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.mode = ModeList
		v.prompt = nil
		return v, nil
	case tea.KeyEnter:
		current := v.Selected()
		value := strings.TrimSpace(v.prompt.Value())
		mode := v.mode
		v.mode = ModeList
		v.prompt = nil
		if current == nil {
			return v, nil
		}
		if mode == ModeRename {
			return v, v.rename(current.ID, value)
		}
		v.status.SetState(status.StateExporting)
		return v, v.export(current.ID, value)
	}

	var cmd tea.Cmd
	v.prompt, cmd = v.prompt.Update(msg)
	return v, cmd
}

func (v *View) handleConfirmKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keys.Confirm):
		v.mode = ModeList
		if current := v.Selected(); current != nil {
			return v, v.remove(current.ID)
		}
	case keymap.Matches(key, v.keys.Cancel):
		v.mode = ModeList
	}
	return v, nil
}

// export renders the presentation and writes it into dir.
func (v *View) export(id, dir string) tea.Cmd {
	return func() tea.Msg {
		if v.exporter == nil {
			return messages.PresentationExported{ID: id, Err: errors.New("export service not available")}
		}
		result, err := v.exporter.Export(context.Background(), domain.ExportRequest{
			PresentationID: id,
			OwnerID:        v.ownerID,
		})
		if err != nil {
			return messages.PresentationExported{ID: id, Err: err}
		}
		if dir == "" {
			dir = "."
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return messages.PresentationExported{ID: id, Err: fmt.Errorf("create %s: %w", dir, err)}
		}
		path := filepath.Join(dir, result.FileName)
		if err := os.WriteFile(path, result.Data, 0o644); err != nil {
			return messages.PresentationExported{ID: id, Err: fmt.Errorf("write %s: %w", path, err)}
		}
		return messages.PresentationExported{ID: id, Path: path, Result: result}
	}
}

func (v *View) rename(id, title string) tea.Cmd {
	return func() tea.Msg {
		if v.presentations == nil {
			return messages.PresentationRenamed{ID: id, Err: errServiceUnavailable}
		}
		err := v.presentations.Rename(context.Background(), v.ownerID, id, title)
		return messages.PresentationRenamed{ID: id, Title: title, Err: err}
	}
}

func (v *View) duplicate(id string) tea.Cmd {
	return func() tea.Msg {
		if v.presentations == nil {
			return messages.PresentationDuplicated{Err: errServiceUnavailable}
		}
		p, err := v.presentations.Duplicate(context.Background(), v.ownerID, id)
		return messages.PresentationDuplicated{Presentation: p, Err: err}
	}
}

func (v *View) remove(id string) tea.Cmd {
	return func() tea.Msg {
		if v.presentations == nil {
			return messages.PresentationDeleted{ID: id, Err: errServiceUnavailable}
		}
		err := v.presentations.Delete(context.Background(), v.ownerID, id)
		return messages.PresentationDeleted{ID: id, Err: err}
	}
}

// adjustScroll keeps the selected item visible.
func (v *View) adjustScroll() {
	visible := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visible {
		v.scrollOffset = v.selected - visible + 1
	}
}

func (v *View) visibleItemCount() int {
	// title, header, status bar, help and padding
	return max(v.height-9, 1)
}

// View renders the presentations view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Presentations (%d)", len(v.items))))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading presentations..."))
	case v.err != nil && len(v.items) == 0:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.items) == 0:
		b.WriteString(v.styles.Muted.Render("No presentations yet. Import one with `presentai presentation import`."))
	case v.mode == ModeActions:
		b.WriteString(v.renderActionMenu())
		return b.String()
	case v.mode == ModeConfirmDelete:
		b.WriteString(v.renderConfirm())
		return b.String()
	default:
		b.WriteString(v.renderList())
	}

	if v.prompt != nil {
		b.WriteString("\n\n")
		b.WriteString(v.prompt.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.status.View())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderList() string {
	var b strings.Builder
	titleWidth := max(v.width/2-4, 10)

	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  %-*s  %6s  %-10s  %s", titleWidth, "TITLE", "SLIDES", "THEME", "UPDATED")))
	b.WriteString("\n")

	visible := v.visibleItemCount()
	for i := v.scrollOffset; i < len(v.items) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.renderItem(i, &v.items[i], titleWidth))
		b.WriteString("\n")
	}

	if len(v.items) > visible {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visible, len(v.items)),
			len(v.items))))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (v *View) renderItem(index int, p *domain.PresentationSummary, titleWidth int) string {
	title := p.Title
	if title == "" {
		title = p.ID
	}
	if len(title) > titleWidth {
		title = title[:titleWidth-3] + "..."
	}
	theme := p.ThemeName
	if theme == "" {
		theme = "-"
	}
	updated := "-"
	if !p.UpdatedAt.IsZero() {
		updated = p.UpdatedAt.Local().Format("2006-01-02 15:04")
	}

	line := fmt.Sprintf("%-*s  %6d  %-10s  %s", titleWidth, title, p.SlideCount, theme, updated)
	if index == v.selected {
		return v.styles.Selected.Render("> " + line)
	}
	return v.styles.Normal.Render("  " + line)
}

func (v *View) renderActionMenu() string {
	var b strings.Builder
	if current := v.Selected(); current != nil {
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Actions for: %s", displayTitle(current))))
		b.WriteString("\n\n")
	}

	options := []struct {
		action ActionOption
		label  string
	}{
		{ActionExport, "Export to .pptx"},
		{ActionOutline, "Show Outline"},
		{ActionRename, "Rename"},
		{ActionDuplicate, "Duplicate"},
		{ActionDelete, "Delete"},
		{ActionCancel, "Cancel"},
	}
	for _, opt := range options {
		if v.menuSelected == opt.action {
			b.WriteString(v.styles.Selected.Render("> " + opt.label))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + opt.label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] select  [esc] cancel"))
	return b.String()
}

func (v *View) renderConfirm() string {
	current := v.Selected()
	if current == nil {
		return ""
	}
	return v.styles.Warning.Render(fmt.Sprintf("Delete %q? This cannot be undone.", displayTitle(current))) +
		"\n\n" + v.styles.Help.Render("[y] delete  [n/esc] cancel")
}

func (v *View) renderHelp() string {
	if v.prompt != nil {
		return v.styles.Help.Render("[enter] confirm  [esc] cancel")
	}
	return v.styles.Help.Render("[↑/↓] navigate  [enter] actions  [e] export  [o] outline  [r] reload  [esc] back")
}

func displayTitle(p *domain.PresentationSummary) string {
	if p.Title != "" {
		return p.Title
	}
	return p.ID
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.status.SetWidth(width)
	if v.prompt != nil {
		v.prompt.SetWidth(width)
	}
}

// Presentations returns the listed presentations.
func (v *View) Presentations() []domain.PresentationSummary {
	return v.items
}

// SelectedIndex returns the currently selected index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Selected returns the currently selected presentation, or nil.
func (v *View) Selected() *domain.PresentationSummary {
	if v.selected < len(v.items) {
		return &v.items[v.selected]
	}
	return nil
}

// Mode returns the current interaction mode.
func (v *View) Mode() Mode {
	return v.mode
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.status
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
