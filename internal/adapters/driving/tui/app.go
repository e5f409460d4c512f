package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/presentai/presentai/internal/adapters/driving/tui/messages"
	"github.com/presentai/presentai/internal/adapters/driving/tui/styles"
	"github.com/presentai/presentai/internal/adapters/driving/tui/views/menu"
	"github.com/presentai/presentai/internal/adapters/driving/tui/views/outline"
	"github.com/presentai/presentai/internal/adapters/driving/tui/views/presentations"
	"github.com/presentai/presentai/internal/adapters/driving/tui/views/settings"
	"github.com/presentai/presentai/internal/adapters/driving/tui/views/themes"
	"github.com/presentai/presentai/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	menuView          *menu.View
	presentationsView *presentations.View
	outlineView       *outline.View
	themesView        *themes.View
	settingsView      *settings.View

	// selected is the presentation whose outline is shown.
	selected *domain.PresentationSummary

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:             ports,
		ctx:               context.Background(),
		styles:            s,
		menuView:          menu.NewView(s),
		presentationsView: presentations.NewView(s, ports.Presentation, ports.Export, ports.OwnerID, ports.OutputDir),
		outlineView:       outline.NewView(s, ports.Presentation, ports.OwnerID),
		themesView:        themes.NewView(s, ports.Theme),
		settingsView:      settings.NewView(s, ports.Settings),
		currentView:       messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("presentai"),
		a.watchContext(),
	)
}

// watchContext quits the program when the app context is cancelled.
func (a *App) watchContext() tea.Cmd {
	ctx := a.ctx
	if ctx.Done() == nil {
		return nil
	}
	return func() tea.Msg {
		<-ctx.Done()
		return messages.Quit{}
	}
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.forward(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewPresentations:
			return a, a.presentationsView.Init()
		case messages.ViewThemes:
			return a, a.themesView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewOutline, messages.ViewHelp:
		}
		return a, nil

	case messages.PresentationSelected:
		a.selected = &msg.Summary
		a.currentView = messages.ViewOutline
		return a, a.outlineView.SetPresentation(msg.Summary)

	case messages.PresentationLoaded:
		a.outlineView, cmd = a.outlineView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
		}
		return a, cmd

	case messages.PresentationsLoaded, messages.PresentationExported,
		messages.PresentationRenamed, messages.PresentationDuplicated,
		messages.PresentationDeleted:
		a.presentationsView, cmd = a.presentationsView.Update(msg)
		a.err = a.presentationsView.Err()
		return a, cmd

	case messages.ThemesLoaded:
		a.themesView, cmd = a.themesView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, a.forward(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

// forward passes a message to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewPresentations:
		a.presentationsView, cmd = a.presentationsView.Update(msg)
	case messages.ViewOutline:
		a.outlineView, cmd = a.outlineView.Update(msg)
	case messages.ViewThemes:
		a.themesView, cmd = a.themesView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewPresentations:
		return a.presentationsView.View()
	case messages.ViewOutline:
		return a.outlineView.View()
	case messages.ViewThemes:
		return a.themesView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
	}
	return a.menuView.View()
}

func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Presentations:
  enter       Actions (export, outline, rename, duplicate, delete)
  e           Export to .pptx
  o           Show outline
  r           Reload

Outline:
  j/k         Scroll
  pgup/pgdn   Page
  g/G         Top/bottom

Settings:
  enter       Edit value
  esc         Cancel edit

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Selected returns the presentation whose outline was last opened.
func (a *App) Selected() *domain.PresentationSummary {
	return a.selected
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.presentationsView.SetDimensions(width, height)
	a.outlineView.SetDimensions(width, height)
	a.themesView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
