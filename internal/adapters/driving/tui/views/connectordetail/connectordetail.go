// Package connectordetail provides the single-connector view for the TUI.
package connectordetail

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sercha-connect/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sercha-connect/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-connect/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driving"
)

// HistoryLimit is how many status checks the view shows.
const HistoryLimit = 10

// View shows one connector's configuration, settings and status history,
// and runs lifecycle actions against it.
type View struct {
	styles   *styles.Styles
	gateway  driving.ConnectorGateway
	settings driving.SettingsService
	bar      *status.Bar

	connector domain.ConnectorConfig
	report    driving.StatusReport
	values    []domain.SettingValue
	history   []domain.StatusRecord
	width     int
	height    int
	loading   bool
	busy      string
	err       error
}

// NewView creates a new connector detail view.
func NewView(s *styles.Styles, gateway driving.ConnectorGateway, settings driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	bar := status.NewBar(s, nil)
	bar.SetState(status.StateDetail)
	return &View{
		styles:   s,
		gateway:  gateway,
		settings: settings,
		bar:      bar,
	}
}

// SetConnector selects the connector to show and returns the load command.
func (v *View) SetConnector(cfg domain.ConnectorConfig) tea.Cmd {
	v.connector = cfg
	v.report = driving.StatusReport{ConnectorID: cfg.ID, Name: cfg.Name, Status: cfg.Status}
	v.values = nil
	v.history = nil
	v.err = nil
	v.busy = ""
	v.bar.SetState(status.StateDetail)
	v.bar.SetMessage("")
	return v.Init()
}

// Init reloads the current connector.
func (v *View) Init() tea.Cmd {
	if v.connector.ID == "" {
		return nil
	}
	v.loading = true
	return v.load(v.connector.ID)
}

func (v *View) load(id string) tea.Cmd {
	gw, settings := v.gateway, v.settings
	return func() tea.Msg {
		if gw == nil {
			return messages.DetailLoaded{ConnectorID: id, Err: fmt.Errorf("connector gateway not available")}
		}
		ctx := context.Background()
		report, err := gw.Status(ctx, id)
		if err != nil {
			return messages.DetailLoaded{ConnectorID: id, Err: err}
		}
		history, err := gw.History(ctx, id, HistoryLimit)
		if err != nil {
			return messages.DetailLoaded{ConnectorID: id, Err: err}
		}
		var values []domain.SettingValue
		if settings != nil {
			if values, err = settings.Describe(id); err != nil {
				return messages.DetailLoaded{ConnectorID: id, Err: err}
			}
		}
		return messages.DetailLoaded{
			ConnectorID: id,
			Report:      report,
			Settings:    values,
			History:     history,
		}
	}
}

// run wraps a lifecycle call into a command reporting ActionCompleted.
func (v *View) run(action string) tea.Cmd {
	gw, id := v.gateway, v.connector.ID
	return func() tea.Msg {
		ctx := context.Background()
		done := messages.ActionCompleted{ConnectorID: id, Action: action}
		switch action {
		case "authorize":
			res, err := gw.Authorize(ctx, id)
			done.Err = err
			done.Success = err == nil
			done.Message = res.Message
			if res.AuthURL != "" {
				done.Message = "open " + res.AuthURL
			}
		case "test":
			res, err := gw.Test(ctx, id)
			done.Err, done.Success, done.Message = err, res.Success, res.Message
		case "revoke":
			res, err := gw.Revoke(ctx, id)
			done.Err, done.Success, done.Message = err, res.Success, res.Message
		case "sync":
			res, err := gw.Sync(ctx, id, domain.ResourceOptions{})
			done.Err = err
			done.Success = err == nil && res.Status == domain.SyncCompleted
			done.Message = fmt.Sprintf("%s (%d synced)", res.Status, res.Synced)
		}
		return done
	}
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DetailLoaded:
		if msg.ConnectorID != v.connector.ID {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.report = msg.Report
		v.values = msg.Settings
		v.history = msg.History
		return v, nil

	case messages.ActionCompleted:
		if msg.ConnectorID != v.connector.ID {
			return v, nil
		}
		v.busy = ""
		if msg.Err != nil {
			v.bar.SetMessage(fmt.Sprintf("%s failed: %v", msg.Action, msg.Err))
			return v, nil
		}
		mark := "✓"
		if !msg.Success {
			mark = "✗"
		}
		v.bar.SetMessage(fmt.Sprintf("%s %s: %s", mark, msg.Action, msg.Message))
		return v, v.Init()
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	if key == "esc" {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewConnectors}
		}
	}
	if v.gateway == nil || v.connector.ID == "" || v.busy != "" {
		return v, nil
	}

	var action string
	switch key {
	case "a":
		action = "authorize"
	case "t":
		action = "test"
	case "x":
		action = "revoke"
	case "s":
		action = "sync"
	case "r":
		return v, v.Init()
	default:
		return v, nil
	}
	v.busy = action
	v.bar.SetMessage(action + "...")
	return v, v.run(action)
}

// View renders the connector detail.
func (v *View) View() string {
	var b strings.Builder

	cfg := v.connector
	b.WriteString(v.styles.Title.Render(cfg.Name))
	b.WriteString("  ")
	b.WriteString(v.styles.Muted.Render(cfg.ID))
	b.WriteString("\n")
	if cfg.Description != "" {
		b.WriteString(v.styles.Normal.Render(cfg.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	v.field(&b, "Status", v.styles.ForStatus(v.report.Status).Render(
		styles.StatusIcon(v.report.Status)+" "+string(v.report.Status)))
	if v.report.Message != "" {
		v.field(&b, "Message", v.styles.Normal.Render(v.report.Message))
	}
	v.field(&b, "Category", v.styles.Normal.Render(cfg.Category))
	v.field(&b, "Auth", v.styles.Normal.Render(string(cfg.AuthKind)))
	if cfg.DocumentationURL != "" {
		v.field(&b, "Docs", v.styles.Muted.Render(cfg.DocumentationURL))
	}

	if len(v.values) > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Settings"))
		b.WriteString("\n")
		for _, s := range v.values {
			val := s.Value
			if val == "" {
				val = v.styles.Muted.Render("(unset)")
			}
			req := ""
			if s.Required && !s.IsSet {
				req = v.styles.Warning.Render(" required")
			}
			b.WriteString(fmt.Sprintf("  %-28s %s%s\n", s.Key, val, req))
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render("Recent checks"))
	b.WriteString("\n")
	switch {
	case v.loading && len(v.history) == 0:
		b.WriteString(v.styles.Muted.Render("  Loading..."))
		b.WriteString("\n")
	case len(v.history) == 0:
		b.WriteString(v.styles.Muted.Render("  No checks recorded."))
		b.WriteString("\n")
	default:
		for _, rec := range v.history {
			b.WriteString("  ")
			b.WriteString(v.styles.Muted.Render(rec.CheckedAt.Local().Format(time.DateTime)))
			b.WriteString("  ")
			b.WriteString(v.styles.ForStatus(rec.Status).Render(fmt.Sprintf("%-14s", rec.Status)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.bar.View())
	return b.String()
}

func (v *View) field(b *strings.Builder, label, value string) {
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%-10s", label)))
	b.WriteString(value)
	b.WriteString("\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.bar.SetWidth(width)
}

// Connector returns the connector being shown.
func (v *View) Connector() domain.ConnectorConfig {
	return v.connector
}

// Report returns the latest status report.
func (v *View) Report() driving.StatusReport {
	return v.report
}

// History returns the loaded status history.
func (v *View) History() []domain.StatusRecord {
	return v.history
}

// Settings returns the loaded setting values.
func (v *View) Settings() []domain.SettingValue {
	return v.values
}

// Busy returns the action in flight, if any.
func (v *View) Busy() string {
	return v.busy
}

// Bar returns the status bar.
func (v *View) Bar() *status.Bar {
	return v.bar
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
