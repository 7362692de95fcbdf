package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/curriculo/internal/model"
	"github.com/Tiliavir/curriculo/internal/ui"
)

type projectsScreen struct {
	projects []model.Project
	cursor   int
	scroll   scroller
}

func newProjectsScreen() *projectsScreen {
	return &projectsScreen{projects: model.Projects()}
}

func (s *projectsScreen) Title() string { return "Projects" }
func (s *projectsScreen) Description() string { return "Things I have built" }
func (s *projectsScreen) Init() tea.Cmd { return nil }
func (s *projectsScreen) Capturing() bool { return false }
func (s *projectsScreen) Help() []key.Binding { return []key.Binding{keys.Up, keys.Down} }

func (s *projectsScreen) Update(msg tea.Msg) tea.Cmd {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(k, keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(k, keys.Down):
		if s.cursor < len(s.projects)-1 {
			s.cursor++
		}
	}
	return nil
}

func (s *projectsScreen) View(th ui.Theme, width, height int) string {
	head := th.Styles().Title.Render("Projects")
	blocks := make([]string, len(s.projects))
	for i, p := range s.projects {
		blocks[i] = ui.ProjectCard(th, p, ui.CardState{Selected: i == s.cursor, Width: max(width-2, 20)})
	}
	return head + "\n\n" + s.scroll.window(blocks, s.cursor, height-lipgloss.Height(head)-2)
}

type aboutScreen struct {
	info model.AboutInfo
}

func newAboutScreen() *aboutScreen { return &aboutScreen{info: model.About()} }

func (s *aboutScreen) Title() string { return "About" }
func (s *aboutScreen) Description() string { return "How this app is made" }
func (s *aboutScreen) Init() tea.Cmd { return nil }
func (s *aboutScreen) Capturing() bool { return false }
func (s *aboutScreen) Help() []key.Binding { return nil }
func (s *aboutScreen) Update(tea.Msg) tea.Cmd { return nil }

func (s *aboutScreen) View(th ui.Theme, width, _ int) string {
	st := th.Styles()
	lines := []string{
		st.Title.Render("About"),
		"",
		st.Text.Width(max(width-2, 20)).Render(s.info.Intro),
		"",
		st.Heading.Render("Technologies"),
	}
	lines = append(lines, groups(th, s.info.Techs)...)
	lines = append(lines, "", st.Heading.Render("Features"))
	lines = append(lines, groups(th, s.info.Features)...)
	return strings.Join(lines, "\n")
}

func groups(th ui.Theme, gs []model.Group) []string {
	st := th.Styles()
	var lines []string
	for _, g := range gs {
		title := g.Title
		kind := ui.BadgeSuccess
		if g.Planned {
			title += " (planned)"
			kind = ui.BadgeNeutral
		}
		badges := make([]string, len(g.Items))
		for i, item := range g.Items {
			badges[i] = ui.Badge(th, kind, item)
		}
		lines = append(lines, st.Subtitle.Render(title), "  "+strings.Join(badges, " "))
	}
	return lines
}
