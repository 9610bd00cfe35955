// Package connectors provides the connector status dashboard for the TUI.
package connectors

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sercha-connect/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sercha-connect/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-connect/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driving"
)

// View lists every registered connector with its live status.
type View struct {
	styles  *styles.Styles
	gateway driving.ConnectorGateway
	bar     *status.Bar

	connectors []domain.ConnectorConfig
	reports    map[string]driving.StatusReport
	selected   int
	width      int
	height     int
	ready      bool
	loading    bool
	err        error
}

// NewView creates a new connectors view.
func NewView(s *styles.Styles, gateway driving.ConnectorGateway) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		gateway: gateway,
		bar:     status.NewBar(s, nil),
		reports: map[string]driving.StatusReport{},
	}
}

// Init loads connectors and their statuses.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.bar.SetState(status.StateLoading)
	v.bar.SetMessage("")
	return v.load()
}

func (v *View) load() tea.Cmd {
	gw := v.gateway
	return func() tea.Msg {
		if gw == nil {
			return messages.ConnectorsLoaded{Err: fmt.Errorf("connector gateway not available")}
		}
		ctx := context.Background()
		return messages.ConnectorsLoaded{
			Connectors: gw.List(""),
			Reports:    gw.StatusAll(ctx),
		}
	}
}

func (v *View) test(id string) tea.Cmd {
	gw := v.gateway
	return func() tea.Msg {
		res, err := gw.Test(context.Background(), id)
		return messages.ActionCompleted{
			ConnectorID: id,
			Action:      "test",
			Success:     res.Success,
			Message:     res.Message,
			Err:         err,
		}
	}
}

// Update handles messages for the connectors view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ConnectorsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			v.bar.SetState(status.StateError)
			v.bar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.err = nil
		v.connectors = msg.Connectors
		v.reports = make(map[string]driving.StatusReport, len(msg.Reports))
		for _, r := range msg.Reports {
			v.reports[r.ConnectorID] = r
		}
		if v.selected >= len(v.connectors) {
			v.selected = max(len(v.connectors)-1, 0)
		}
		v.bar.SetState(status.StateReady)
		v.bar.SetCounts(v.connectedCount(), len(v.connectors))
		return v, nil

	case messages.ActionCompleted:
		if msg.Err != nil {
			v.bar.SetState(status.StateError)
			v.bar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.bar.SetState(status.StateReady)
		v.bar.SetMessage(fmt.Sprintf("%s %s: %s", msg.ConnectorID, msg.Action, msg.Message))
		return v, v.load()
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
		if v.selected < len(v.connectors)-1 {
			v.selected++
		}
	case "enter":
		if cfg, ok := v.current(); ok {
			return v, func() tea.Msg {
				return messages.ConnectorSelected{Connector: cfg}
			}
		}
	case "t":
		if cfg, ok := v.current(); ok && v.gateway != nil {
			v.bar.SetMessage("testing " + cfg.ID + "...")
			return v, v.test(cfg.ID)
		}
	case "r":
		return v, v.Init()
	}
	return v, nil
}

func (v *View) current() (domain.ConnectorConfig, bool) {
	if v.selected < 0 || v.selected >= len(v.connectors) {
		return domain.ConnectorConfig{}, false
	}
	return v.connectors[v.selected], true
}

func (v *View) connectedCount() int {
	n := 0
	for _, r := range v.reports {
		if r.Status == domain.StatusConnected {
			n++
		}
	}
	return n
}

// View renders the dashboard.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Connectors"))
	b.WriteString("\n\n")

	switch {
	case v.loading && len(v.connectors) == 0:
		b.WriteString(v.styles.Muted.Render("Loading connectors..."))
		b.WriteString("\n\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	case len(v.connectors) == 0:
		b.WriteString(v.styles.Muted.Render("No connectors registered."))
		b.WriteString("\n\n")
	default:
		for i := range v.connectors {
			b.WriteString(v.renderConnector(i, &v.connectors[i]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(v.bar.View())
	return b.String()
}

func (v *View) renderConnector(index int, cfg *domain.ConnectorConfig) string {
	st := cfg.Status
	msg := ""
	if r, ok := v.reports[cfg.ID]; ok {
		st = r.Status
		msg = r.Message
	}

	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}
	category := fmt.Sprintf("[%s]", cfg.Category)

	maxMsg := v.width - 56
	if maxMsg < 10 {
		maxMsg = 10
	}
	if len(msg) > maxMsg {
		msg = msg[:maxMsg-3] + "..."
	}

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("%s%s %-22s %-16s %-14s %s",
			indicator, styles.StatusIcon(st), cfg.Name, category, st, msg))
	}
	return v.styles.Normal.Render(indicator) +
		v.styles.ForStatus(st).Render(styles.StatusIcon(st)+" ") +
		v.styles.Normal.Render(fmt.Sprintf("%-22s ", cfg.Name)) +
		v.styles.Category.Render(fmt.Sprintf("%-16s ", category)) +
		v.styles.ForStatus(st).Render(fmt.Sprintf("%-14s ", st)) +
		v.styles.Muted.Render(msg)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.bar.SetWidth(width)
}

// Connectors returns the loaded connectors.
func (v *View) Connectors() []domain.ConnectorConfig {
	return v.connectors
}

// Report returns the last status report of a connector.
func (v *View) Report(id string) (driving.StatusReport, bool) {
	r, ok := v.reports[id]
	return r, ok
}

// SelectedIndex returns the currently selected connector index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Loading reports whether a status refresh is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Bar returns the status bar.
func (v *View) Bar() *status.Bar {
	return v.bar
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
