package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// fieldInput is the editor of one form field.
type fieldInput interface {
	Value() string
	Focus()
	Blur()
	Update(tea.KeyMsg) tea.Cmd
	View() string
	// multiline inputs keep enter and the arrow keys for themselves.
	multiline() bool
}

// newFieldInput picks the editor for a field: a picker when options are
// given, a text area for multiline fields, a single line otherwise.
func newFieldInput(hint string, multi bool, options []string, value string) fieldInput {
	switch {
	case len(options) > 0:
		return newChoiceInput(options, value)
	case multi:
		ta := textarea.New()
		ta.Placeholder = hint
		ta.ShowLineNumbers = false
		ta.CharLimit = 2000
		ta.SetHeight(4)
		ta.Cursor.SetMode(cursor.CursorStatic)
		ta.SetValue(value)
		return &areaInput{ta}
	}
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = hint
	ti.CharLimit = 500
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.SetValue(value)
	return &lineInput{ti}
}

type lineInput struct{ m textinput.Model }

func (in *lineInput) Value() string   { return in.m.Value() }
func (in *lineInput) Focus()          { in.m.Focus() }
func (in *lineInput) Blur()           { in.m.Blur() }
func (in *lineInput) View() string    { return in.m.View() }
func (in *lineInput) multiline() bool { return false }

func (in *lineInput) Update(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	in.m, cmd = in.m.Update(msg)
	return cmd
}

type areaInput struct{ m textarea.Model }

func (in *areaInput) Value() string   { return in.m.Value() }
func (in *areaInput) Focus()          { in.m.Focus() }
func (in *areaInput) Blur()           { in.m.Blur() }
func (in *areaInput) View() string    { return in.m.View() }
func (in *areaInput) multiline() bool { return true }

func (in *areaInput) Update(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	in.m, cmd = in.m.Update(msg)
	return cmd
}

// choiceInput cycles through a fixed list with left and right. A value that
// is not in the list, as stored by another client, is kept as the first
// option.
type choiceInput struct {
	options []string
	idx     int
	focused bool
}

func newChoiceInput(options []string, value string) *choiceInput {
	in := &choiceInput{options: options, idx: -1}
	if value == "" {
		return in
	}
	in.idx = slices.Index(options, value)
	if in.idx < 0 {
		in.options = append([]string{value}, options...)
		in.idx = 0
	}
	return in
}

func (in *choiceInput) Value() string {
	if in.idx < 0 {
		return ""
	}
	return in.options[in.idx]
}

func (in *choiceInput) Focus()          { in.focused = true }
func (in *choiceInput) Blur()           { in.focused = false }
func (in *choiceInput) multiline() bool { return false }

func (in *choiceInput) Update(msg tea.KeyMsg) tea.Cmd {
	n := len(in.options)
	switch {
	case key.Matches(msg, keys.Right):
		in.idx = (in.idx + 1) % n
	case key.Matches(msg, keys.Left):
		if in.idx <= 0 {
			in.idx = n - 1
		} else {
			in.idx--
		}
	}
	return nil
}

func (in *choiceInput) View() string {
	v := in.Value()
	if v == "" {
		v = "choose"
	}
	if in.focused {
		return "‹ " + v + " ›"
	}
	return "  " + v
}
