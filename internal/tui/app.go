// Package tui is the interactive terminal front end: a drawer of sections,
// each backed by a List-Sync Controller or by compiled-in content.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/curriculo/internal/listsync"
	"github.com/Tiliavir/curriculo/internal/model"
	"github.com/Tiliavir/curriculo/internal/resume"
	"github.com/Tiliavir/curriculo/internal/ui"
)

const drawerIndex = -1

type drawerItem struct{ s screen }

func (i drawerItem) Title() string { return i.s.Title() }
func (i drawerItem) Description() string { return i.s.Description() }
func (i drawerItem) FilterValue() string { return i.s.Title() }

// Options configure an App.
type Options struct {
	Theme ui.Theme
	// SaveTheme persists a theme chosen with t. Optional.
	SaveTheme func(ui.Theme) error
}

type themeSaveFailedMsg struct{ err error }

// App is the root bubbletea model.
type App struct {
	theme     ui.Theme
	saveTheme func(ui.Theme) error
	alerts    *Alerts

	screens []screen
	byKey   map[string]screen
	active  int
	drawer  list.Model
	help    help.Model
	modal   *alertMsg

	width, height int
}

// New builds the app over sections. alerts must be the notifier the section
// controllers were created with.
func New(ctx context.Context, sections resume.Sections, alerts *Alerts, opts Options) *App {
	if opts.Theme.Name == "" {
		opts.Theme = ui.Light
	}
	a := &App{
		theme:     opts.Theme,
		saveTheme: opts.SaveTheme,
		alerts:    alerts,
		active:    drawerIndex,
		help:      help.New(),
		byKey:     map[string]screen{},
		width:     80,
		height:    24,
	}

	academic := newCRUDScreen(ctx, sections.Academic, alerts)
	work := newCRUDScreen(ctx, sections.Work, alerts)
	skills := newCRUDScreen(ctx, sections.Skills, alerts)
	a.byKey[sections.Academic.Key] = academic
	a.byKey[sections.Work.Key] = work
	a.byKey[sections.Skills.Key] = skills
	a.screens = []screen{newProjectsScreen(), academic, work, skills, newAboutScreen()}

	items := make([]list.Item, len(a.screens))
	for i, s := range a.screens {
		items[i] = drawerItem{s}
	}
	a.drawer = list.New(items, list.NewDefaultDelegate(), a.width, a.height-2)
	a.drawer.Title = "Sections"
	a.drawer.SetShowStatusBar(false)
	a.drawer.SetFilteringEnabled(false)
	a.drawer.SetShowHelp(false)
	a.drawer.KeyMap.Quit.SetEnabled(false)
	a.applyTheme()
	a.resize()
	return a
}

// Run starts the program on the alternate screen and blocks until it quits.
func Run(ctx context.Context, app *App) error {
	_, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	if a.modal == nil {
		if m, ok := a.alerts.pop(); ok {
			a.modal = &m
		}
	}
	return a, cmd
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.resize()
		return nil
	case routed:
		if s, ok := a.byKey[msg.target()]; ok {
			return s.Update(msg)
		}
		return nil
	case themeSaveFailedMsg:
		a.alerts.Alert(listsync.TitleError, "Could not save the theme: "+msg.err.Error())
		return nil
	case spinner.TickMsg:
		if a.active != drawerIndex {
			return a.screens[a.active].Update(msg)
		}
		return nil
	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.active != drawerIndex {
		return a.screens[a.active].Update(msg)
	}
	var cmd tea.Cmd
	a.drawer, cmd = a.drawer.Update(msg)
	return cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if a.modal != nil {
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeyEsc {
			a.modal = nil
		}
		return nil
	}

	if a.active != drawerIndex {
		s := a.screens[a.active]
		if !s.Capturing() {
			switch {
			case key.Matches(msg, keys.Back):
				a.active = drawerIndex
				return nil
			case key.Matches(msg, keys.Quit):
				return tea.Quit
			case key.Matches(msg, keys.Theme):
				return a.toggleTheme()
			}
		}
		return s.Update(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Theme):
		return a.toggleTheme()
	case key.Matches(msg, keys.Open):
		a.active = a.drawer.Index()
		return a.screens[a.active].Init()
	}
	var cmd tea.Cmd
	a.drawer, cmd = a.drawer.Update(msg)
	return cmd
}

func (a *App) toggleTheme() tea.Cmd {
	a.theme = a.theme.Toggle()
	a.applyTheme()
	if a.saveTheme == nil {
		return nil
	}
	save, th := a.saveTheme, a.theme
	return func() tea.Msg {
		if err := save(th); err != nil {
			return themeSaveFailedMsg{err}
		}
		return nil
	}
}

func (a *App) applyTheme() {
	a.drawer.Styles.Title = a.drawer.Styles.Title.
		Background(a.theme.Accent).
		Foreground(a.theme.Surface)
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.Foreground(a.theme.Accent).BorderForeground(a.theme.Accent)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.Foreground(a.theme.Muted).BorderForeground(a.theme.Accent)
	d.Styles.NormalTitle = d.Styles.NormalTitle.Foreground(a.theme.Text)
	d.Styles.NormalDesc = d.Styles.NormalDesc.Foreground(a.theme.Muted)
	a.drawer.SetDelegate(d)
}

func (a *App) View() string {
	st := a.theme.Styles()
	if a.modal != nil {
		body := st.Title.Render(a.modal.title) + "\n\n" +
			st.Text.Render(a.modal.message) + "\n\n" +
			st.Muted.Render("enter to dismiss")
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, st.Modal.Render(body))
	}

	if a.active == drawerIndex {
		return a.landing() + "\n" + a.drawer.View() + "\n" +
			a.help.ShortHelpView([]key.Binding{keys.Up, keys.Down, keys.Open, keys.Theme, keys.Quit})
	}

	s := a.screens[a.active]
	bindings := s.Help()
	if !s.Capturing() {
		bindings = append(bindings, keys.Back, keys.Theme, keys.Quit)
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(s.View(a.theme, a.width-2, a.height-2)) +
		"\n" + a.help.ShortHelpView(bindings)
}

// landing is the headline above the drawer.
func (a *App) landing() string {
	st := a.theme.Styles()
	h := model.Headline()
	return lipgloss.NewStyle().Padding(1, 2, 0).Render(lipgloss.JoinVertical(lipgloss.Left,
		st.Title.Foreground(a.theme.Accent).Render(h.Title),
		st.Subtitle.Render(h.Subtitle),
		st.Muted.Width(max(a.width-4, 20)).Render(h.Tagline),
		st.Muted.Render("Pick a section and press enter."),
	))
}

func (a *App) resize() {
	a.drawer.SetSize(a.width, max(a.height-3-lipgloss.Height(a.landing()), 5))
}

// Theme reports the active theme.
func (a *App) Theme() ui.Theme { return a.theme }
