package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/curriculo/internal/ui"
)

// screen is one page reachable from the drawer.
type screen interface {
	Title() string
	Description() string
	// Init runs when the screen is opened from the drawer.
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(th ui.Theme, width, height int) string
	// Capturing reports whether the screen owns every key, so the app must
	// not interpret esc, q or t itself.
	Capturing() bool
	Help() []key.Binding
}

// routed messages belong to the screen with the given key, whether or not it
// is currently shown.
type routed interface {
	target() string
}

// opDoneMsg reports that a controller operation finished. mutation is set
// for deletes, which block input while in flight.
type opDoneMsg struct {
	screen   string
	mutation bool
}

func (m opDoneMsg) target() string { return m.screen }

// submitDoneMsg carries the outcome of a form submission. apply installs the
// submitted form state on success.
type submitDoneMsg struct {
	screen string
	err    error
	apply  func()
}

func (m submitDoneMsg) target() string { return m.screen }

// scroller keeps the selected block visible inside a fixed number of lines.
type scroller struct {
	top int
}

func (s *scroller) window(blocks []string, cursor, budget int) string {
	if len(blocks) == 0 {
		return ""
	}
	if cursor < s.top {
		s.top = cursor
	}
	if s.top >= len(blocks) {
		s.top = len(blocks) - 1
	}
	for s.top < cursor && linesBetween(blocks, s.top, cursor) > budget {
		s.top++
	}

	var out []string
	used := 0
	for i := s.top; i < len(blocks); i++ {
		h := lipgloss.Height(blocks[i])
		if used+h > budget && i > s.top {
			break
		}
		out = append(out, blocks[i])
		used += h
	}
	return strings.Join(out, "\n")
}

func linesBetween(blocks []string, from, to int) int {
	n := 0
	for i := from; i <= to; i++ {
		n += lipgloss.Height(blocks[i])
	}
	return n
}
