package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/curriculo/internal/form"
	"github.com/Tiliavir/curriculo/internal/listsync"
	"github.com/Tiliavir/curriculo/internal/model"
	"github.com/Tiliavir/curriculo/internal/resume"
	"github.com/Tiliavir/curriculo/internal/ui"
)

// crudScreen is the list screen of one API-backed section: cards, the
// accordion create form, inline editing and delete mode.
type crudScreen[T model.Record, D any] struct {
	ctx    context.Context
	sec    *resume.Section[T, D]
	form   *form.Form[T, D]
	notify listsync.Notifier

	inputs   []fieldInput
	focus    int
	cursor   int
	scroll   scroller
	spinner  spinner.Model
	inFlight bool
}

func newCRUDScreen[T model.Record, D any](ctx context.Context, sec *resume.Section[T, D], notify listsync.Notifier) *crudScreen[T, D] {
	s := &crudScreen[T, D]{
		ctx:     ctx,
		sec:     sec,
		notify:  notify,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	s.form = form.New[T, D](sec.Fields, sec.Controller, sec.FromItem)
	s.form.OnCancel(sec.Controller.Cancel)
	return s
}

func (s *crudScreen[T, D]) Title() string { return s.sec.Title }

func (s *crudScreen[T, D]) Description() string {
	return "Manage " + strings.ToLower(s.sec.Title)
}

func (s *crudScreen[T, D]) Init() tea.Cmd { return s.load() }

func (s *crudScreen[T, D]) load() tea.Cmd {
	ctrl, ctx, target := s.sec.Controller, s.ctx, s.sec.Key
	return tea.Batch(func() tea.Msg {
		ctrl.Load(ctx)
		return opDoneMsg{screen: target}
	}, s.spinner.Tick)
}

func (s *crudScreen[T, D]) busy() bool {
	return s.inFlight || s.sec.Controller.IsLoading()
}

func (s *crudScreen[T, D]) Capturing() bool {
	if s.form.Open() || s.inFlight {
		return true
	}
	k := s.sec.Controller.Mode().Kind()
	return k == listsync.Deleting || k == listsync.ConfirmingDelete
}

func (s *crudScreen[T, D]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !s.busy() {
			return nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd
	case opDoneMsg:
		if msg.mutation {
			s.inFlight = false
		}
		s.clampCursor()
	case submitDoneMsg:
		s.inFlight = false
		var verr *form.ValidationError
		switch {
		case msg.err == nil:
			msg.apply()
			s.inputs = nil
		case errors.As(msg.err, &verr):
			s.notify.Alert(listsync.TitleError, verr.Error())
		}
		// form.ErrRejected: the controller already alerted; the form stays
		// open with the user's input.
		s.clampCursor()
	case tea.KeyMsg:
		if s.inFlight {
			return nil
		}
		if s.form.Open() {
			return s.formKey(msg)
		}
		return s.listKey(msg)
	}
	return nil
}

func (s *crudScreen[T, D]) selected() (T, bool) {
	items := s.sec.Controller.Items()
	if s.cursor < 0 || s.cursor >= len(items) {
		var zero T
		return zero, false
	}
	return items[s.cursor], true
}

func (s *crudScreen[T, D]) clampCursor() {
	n := len(s.sec.Controller.Items())
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *crudScreen[T, D]) listKey(msg tea.KeyMsg) tea.Cmd {
	ctrl := s.sec.Controller
	kind := ctrl.Mode().Kind()

	if kind == listsync.ConfirmingDelete {
		switch {
		case key.Matches(msg, keys.Yes):
			return s.confirmDelete()
		case key.Matches(msg, keys.No):
			ctrl.Cancel()
		}
		return nil
	}

	switch {
	case key.Matches(msg, keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, keys.Down):
		if s.cursor < len(ctrl.Items())-1 {
			s.cursor++
		}
	case kind == listsync.Deleting && key.Matches(msg, keys.Back):
		ctrl.Cancel()
	case kind == listsync.Deleting && key.Matches(msg, keys.Open):
		if item, ok := s.selected(); ok {
			_ = ctrl.RequestDelete(item)
		}
	case key.Matches(msg, keys.Delete):
		ctrl.ToggleDeleting()
	case key.Matches(msg, keys.Refresh):
		return s.load()
	case key.Matches(msg, keys.Add):
		ctrl.StartAdding()
		s.form.Toggle()
		s.openInputs()
	case key.Matches(msg, keys.Edit):
		if item, ok := s.selected(); ok {
			ctrl.StartEditing(item)
			s.form.Edit(item)
			s.openInputs()
		}
	}
	return nil
}

func (s *crudScreen[T, D]) openInputs() {
	s.inputs = make([]fieldInput, len(s.sec.Fields))
	for i, f := range s.sec.Fields {
		s.inputs[i] = newFieldInput(f.Hint, f.Multiline, f.Options, s.form.Get(f.Key))
	}
	s.setFocus(0)
}

func (s *crudScreen[T, D]) setFocus(i int) {
	n := len(s.inputs)
	if n == 0 {
		return
	}
	s.focus = (i%n + n) % n
	for j := range s.inputs {
		if j == s.focus {
			s.inputs[j].Focus()
		} else {
			s.inputs[j].Blur()
		}
	}
}

func (s *crudScreen[T, D]) formKey(msg tea.KeyMsg) tea.Cmd {
	multi := len(s.inputs) > 0 && s.inputs[s.focus].multiline()
	switch {
	case key.Matches(msg, keys.Back):
		s.cancelForm()
		return nil
	case key.Matches(msg, keys.Submit):
		return s.submit()
	case multi && msg.Type == tea.KeyTab:
		s.setFocus(s.focus + 1)
		return nil
	case multi && msg.Type == tea.KeyShiftTab:
		s.setFocus(s.focus - 1)
		return nil
	case multi:
		// enter and the arrows edit the text
	case msg.Type == tea.KeyEnter:
		if s.focus == len(s.inputs)-1 {
			return s.submit()
		}
		s.setFocus(s.focus + 1)
		return nil
	case key.Matches(msg, keys.Next):
		s.setFocus(s.focus + 1)
		return nil
	case key.Matches(msg, keys.Prev):
		s.setFocus(s.focus - 1)
		return nil
	}

	if len(s.inputs) == 0 {
		return nil
	}
	cmd := s.inputs[s.focus].Update(msg)
	s.form.Set(s.sec.Fields[s.focus].Key, s.inputs[s.focus].Value())
	return cmd
}

func (s *crudScreen[T, D]) cancelForm() {
	editing := s.form.Editing()
	s.form.Cancel()
	if !editing {
		s.sec.Controller.Cancel()
	}
	s.inputs = nil
}

// submit hands a copy of the form to a command so the UI goroutine never
// shares it with the request in flight.
func (s *crudScreen[T, D]) submit() tea.Cmd {
	for i, f := range s.sec.Fields {
		s.form.Set(f.Key, s.inputs[i].Value())
	}
	f := *s.form
	ctx, target := s.ctx, s.sec.Key
	s.inFlight = true
	return tea.Batch(func() tea.Msg {
		err := f.Submit(ctx)
		return submitDoneMsg{screen: target, err: err, apply: func() { *s.form = f }}
	}, s.spinner.Tick)
}

func (s *crudScreen[T, D]) confirmDelete() tea.Cmd {
	ctrl, ctx, target := s.sec.Controller, s.ctx, s.sec.Key
	s.inFlight = true
	return tea.Batch(func() tea.Msg {
		ctrl.ConfirmDelete(ctx)
		return opDoneMsg{screen: target, mutation: true}
	}, s.spinner.Tick)
}

func (s *crudScreen[T, D]) Help() []key.Binding {
	if s.form.Open() {
		b := []key.Binding{keys.Next, keys.Prev, keys.Submit, keys.Back}
		if s.focus < len(s.sec.Fields) && len(s.sec.Fields[s.focus].Options) > 0 {
			b = append([]key.Binding{keys.Left}, b...)
		}
		return b
	}
	switch s.sec.Controller.Mode().Kind() {
	case listsync.Deleting:
		return []key.Binding{keys.Up, keys.Down, key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "delete")), keys.Back}
	case listsync.ConfirmingDelete:
		return []key.Binding{keys.Yes, keys.No}
	}
	return []key.Binding{keys.Up, keys.Down, keys.Add, keys.Edit, keys.Delete, keys.Refresh}
}

func (s *crudScreen[T, D]) View(th ui.Theme, width, height int) string {
	st := th.Styles()
	ctrl := s.sec.Controller
	mode := ctrl.Mode()

	if item, ok := mode.Item(); ok && mode.Kind() == listsync.ConfirmingDelete {
		body := st.Danger.Render("Confirm deletion") + "\n\n" +
			st.Text.Render(ui.ConfirmDeleteMessage(s.sec.Noun, s.sec.Name(item))) + "\n\n" +
			st.Muted.Render("[y] Yes   [n] No")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, st.Modal.Render(body))
	}

	header := st.Title.Render(s.sec.Title)
	if s.busy() {
		header += "  " + s.spinner.View()
	}
	parts := []string{header, s.formView(st)}
	if mode.Kind() == listsync.Deleting {
		parts = append(parts, st.Danger.Render("Delete mode: select a card and press enter."))
	}
	head := strings.Join(parts, "\n\n")

	items := ctrl.Items()
	var list string
	switch {
	case len(items) == 0 && !ctrl.Loaded():
		list = st.Muted.Render("Loading…")
	case len(items) == 0:
		list = st.Muted.Render("Nothing here yet. Press a to add one.")
	default:
		deleting := mode.Kind() == listsync.Deleting
		blocks := make([]string, len(items))
		for i, item := range items {
			blocks[i] = s.sec.Card(th, item, ui.CardState{
				Selected: i == s.cursor && !s.form.Open(),
				Deleting: deleting,
				Width:    max(width-2, 20),
			})
		}
		list = s.scroll.window(blocks, s.cursor, height-lipgloss.Height(head)-2)
	}
	return head + "\n\n" + list
}

func (s *crudScreen[T, D]) formView(st ui.Styles) string {
	if !s.form.Open() {
		return st.Muted.Render("+ Add " + s.sec.Noun + " (a)")
	}
	title := "New " + s.sec.Noun
	if s.form.Editing() {
		title = "Edit " + s.sec.Noun
	}
	lines := []string{st.Heading.Render(title)}
	for i, f := range s.sec.Fields {
		label := st.Muted.Render(f.Label)
		if i == s.focus {
			label = st.Subtitle.Render(f.Label)
		}
		input := ""
		if i < len(s.inputs) {
			input = s.inputs[i].View()
		}
		lines = append(lines, label, input)
	}
	return st.Card.Render(strings.Join(lines, "\n"))
}
