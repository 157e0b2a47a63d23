// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/lionweb-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lionweb-cli/internal/adapters/driving/tui/styles"
)

// Bar shows where the cursor is in the tree and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	help     help.Model
	path     string
	message  string
	position int
	total    int
	width    int
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
		help:   help.New(),
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
	right := s.help.ShortHelpView(s.keymap.ShortHelp())

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	padding := s.width - s.styles.StatusBar.GetHorizontalFrameSize() - leftLen - rightLen
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	if s.message != "" {
		return s.styles.Error.Render(s.message)
	}
	if s.total == 0 {
		return s.styles.Muted.Render("No nodes")
	}
	return s.styles.Normal.Render(fmt.Sprintf("%s  %d/%d", s.path, s.position, s.total))
}

// SetPath sets the location of the selected node.
func (s *Bar) SetPath(path string) {
	s.path = path
}

// Path returns the location of the selected node.
func (s *Bar) Path() string {
	return s.path
}

// SetPosition sets the cursor row (1-based) and the number of visible rows.
func (s *Bar) SetPosition(position, total int) {
	s.position = position
	s.total = total
}

// SetMessage sets a message shown instead of the path.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
	s.help.Width = width / 2
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to its initial state.
func (s *Bar) Clear() {
	s.path = ""
	s.message = ""
	s.position = 0
	s.total = 0
}
