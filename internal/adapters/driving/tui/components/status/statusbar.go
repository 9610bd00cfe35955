// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sercha-connect/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-connect/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateError   State = "error"
	StateHelp    State = "help"
	StateDetail  State = "detail"
)

// Bar displays the connected count and keybinding hints.
type Bar struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	state     State
	message   string
	connected int
	total     int
	width     int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateLoading:
		return s.styles.Muted.Render("Checking connectors...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateHelp:
		return s.styles.Normal.Render("Help")
	case StateReady, StateDetail:
		if s.message != "" {
			return s.styles.Normal.Render(s.message)
		}
		if s.total > 0 {
			return s.styles.Normal.Render(fmt.Sprintf("%d/%d connected", s.connected, s.total))
		}
	}
	return s.styles.Muted.Render("Ready")
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch s.state {
	case StateDetail:
		bindings = s.keymap.DetailHelp()
	case StateReady:
		if s.total > 0 {
			bindings = s.keymap.ConnectorsHelp()
		} else {
			bindings = s.keymap.ShortHelp()
		}
	default:
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetCounts sets how many connectors are connected out of the total.
func (s *Bar) SetCounts(connected, total int) {
	s.connected = connected
	s.total = total
}

// Counts returns the connected and total counts.
func (s *Bar) Counts() (connected, total int) {
	return s.connected, s.total
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.connected = 0
	s.total = 0
}
