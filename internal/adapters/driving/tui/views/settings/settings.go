// Package settings provides the connector settings view for the TUI.
package settings

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sercha-connect/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/sercha-connect/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-connect/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driving"
)

// View lists every connector setting and edits one at a time.
type View struct {
	styles  *styles.Styles
	service driving.SettingsService
	input   *input.ValueInput

	values   []domain.SettingValue
	selected int
	editing  bool
	notice   string
	width    int
	height   int
	err      error
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, service driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		service: service,
		input:   input.NewValueInput(s),
	}
}

// Init loads the settings.
func (v *View) Init() tea.Cmd {
	svc := v.service
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		return messages.SettingsLoaded{Settings: svc.DescribeAll()}
	}
}

// Reset leaves edit mode and clears notices.
func (v *View) Reset() {
	v.editing = false
	v.notice = ""
	v.err = nil
	v.input.Blur()
}

func (v *View) save(key, value string) tea.Cmd {
	svc := v.service
	return func() tea.Msg {
		return messages.SettingSaved{Key: key, Err: svc.Set(key, value)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKey(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.values = msg.Settings
		if v.selected >= len(v.values) {
			v.selected = max(len(v.values)-1, 0)
		}
		return v, nil

	case messages.SettingSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.notice = "Saved " + msg.Key
		return v, v.Init()
	}

	if v.editing {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
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
		if v.selected < len(v.values)-1 {
			v.selected++
		}
	case "e", "enter":
		if v.service == nil || v.selected >= len(v.values) {
			return v, nil
		}
		s := v.values[v.selected]
		v.editing = true
		v.notice = ""
		placeholder := s.Default
		if s.Secret {
			placeholder = ""
		}
		return v, v.input.Start(s.Key, placeholder, s.Secret)
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
		v.editing = false
		v.input.Blur()
		return v, nil
	case tea.KeyEnter:
		v.editing = false
		v.input.Blur()
		return v, v.save(v.input.Label(), v.input.Value())
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// View renders the settings list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if len(v.values) == 0 {
		b.WriteString(v.styles.Muted.Render("No settings declared."))
		b.WriteString("\n")
	}

	last := ""
	for i, s := range v.values {
		if s.ConnectorID != last {
			if last != "" {
				b.WriteString("\n")
			}
			b.WriteString(v.styles.Subtitle.Render(s.ConnectorID))
			b.WriteString("\n")
			last = s.ConnectorID
		}
		b.WriteString(v.renderValue(i, s))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.editing {
		b.WriteString(v.input.View())
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[enter] save  [esc] cancel  (empty clears)"))
		return b.String()
	}
	if v.notice != "" {
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Help.Render("[e] edit  [j/k] navigate  [esc] back  [q] quit"))
	return b.String()
}

func (v *View) renderValue(index int, s domain.SettingValue) string {
	val := s.Value
	source := "default"
	if s.IsSet {
		source = "set"
	}
	if val == "" {
		val = "(unset)"
		source = ""
	}
	line := fmt.Sprintf("%-28s %-30s %s", s.Key, val, source)

	switch {
	case index == v.selected:
		return v.styles.Selected.Render("> " + line)
	case s.Required && s.Value == "":
		return "  " + v.styles.Warning.Render(line)
	default:
		return "  " + v.styles.Normal.Render(line)
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
}

// Values returns the loaded settings.
func (v *View) Values() []domain.SettingValue {
	return v.values
}

// SelectedIndex returns the selected row.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Editing reports whether a value is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Notice returns the last success notice.
func (v *View) Notice() string {
	return v.notice
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
