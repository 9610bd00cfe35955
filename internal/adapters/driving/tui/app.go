package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sercha-connect/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-connect/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-connect/internal/adapters/driving/tui/views/connectordetail"
	"github.com/custodia-labs/sercha-connect/internal/adapters/driving/tui/views/connectors"
	"github.com/custodia-labs/sercha-connect/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/sercha-connect/internal/adapters/driving/tui/views/settings"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	menuView       *menu.View
	connectorsView *connectors.View
	detailView     *connectordetail.View
	settingsView   *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	err    error
	width  int
	height int
	ready  bool
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
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		menuView:       menu.NewView(s),
		connectorsView: connectors.NewView(s, ports.Gateway),
		detailView:     connectordetail.NewView(s, ports.Gateway, ports.Settings),
		settingsView:   settings.NewView(s, ports.Settings),
		currentView:    messages.ViewMenu,
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
		tea.SetWindowTitle("sercha-connect"),
	)
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
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if msg.String() == "q" && !a.settingsView.Editing() {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewConnectors:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			a.connectorsView, cmd = a.connectorsView.Update(msg)
		case messages.ViewConnectorDetail:
			a.detailView, cmd = a.detailView.Update(msg)
		case messages.ViewSettings:
			a.settingsView, cmd = a.settingsView.Update(msg)
		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewConnectors:
			return a, a.connectorsView.Init()
		case messages.ViewConnectorDetail:
			return a, a.detailView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, nil

	case messages.ConnectorSelected:
		a.currentView = messages.ViewConnectorDetail
		return a, a.detailView.SetConnector(msg.Connector)

	case messages.ConnectorsLoaded:
		a.connectorsView, cmd = a.connectorsView.Update(msg)
		return a, cmd

	case messages.DetailLoaded:
		a.detailView, cmd = a.detailView.Update(msg)
		return a, cmd

	case messages.ActionCompleted:
		if a.currentView == messages.ViewConnectorDetail {
			a.detailView, cmd = a.detailView.Update(msg)
		} else {
			a.connectorsView, cmd = a.connectorsView.Update(msg)
		}
		return a, cmd

	case messages.SettingsLoaded, messages.SettingSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	if a.currentView == messages.ViewSettings {
		a.settingsView, cmd = a.settingsView.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewConnectors:
		return a.connectorsView.View()
	case messages.ViewConnectorDetail:
		return a.detailView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  q, ctrl+c   Quit

Connectors:
  j/k, ↑/↓    Navigate
  enter       Details and history
  t           Test connection
  r           Refresh statuses

Connector details:
  a           Authorize
  t           Test connection
  x           Revoke access
  s           Sync
  r           Refresh

Settings:
  e, enter    Edit value (empty clears)

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

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.connectorsView.SetDimensions(width, height)
	a.detailView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
