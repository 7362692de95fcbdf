package tui

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Tiliavir/curriculo/internal/apiclient"
	"github.com/Tiliavir/curriculo/internal/listsync"
	"github.com/Tiliavir/curriculo/internal/mockapi"
	"github.com/Tiliavir/curriculo/internal/model"
	"github.com/Tiliavir/curriculo/internal/resume"
	"github.com/Tiliavir/curriculo/internal/ui"
)

type harness struct {
	t        *testing.T
	api      *mockapi.Server
	sections resume.Sections
	app      *App
	saved    []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	api := mockapi.New()
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	h := &harness{t: t, api: api}
	alerts := &Alerts{}
	h.sections = resume.NewSections(apiclient.NewClient(srv.URL), "22", alerts, nil)
	h.app = New(context.Background(), h.sections, alerts, Options{
		Theme: ui.Light,
		SaveTheme: func(th ui.Theme) error {
			h.saved = append(h.saved, th.Name)
			return nil
		},
	})
	return h
}

// run executes cmd and every command it produces, feeding the resulting
// messages back into the app. Spinner ticks are dropped.
func (h *harness) run(cmd tea.Cmd) {
	h.t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			h.t.Fatal("commands did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, spinner.TickMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := h.app.Update(msg)
			queue = append(queue, next)
		}
	}
}

func (h *harness) press(keys ...string) {
	h.t.Helper()
	for _, k := range keys {
		_, cmd := h.app.Update(keyMsg(k))
		h.run(cmd)
	}
}

func (h *harness) typeText(s string) {
	h.t.Helper()
	_, cmd := h.app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	h.run(cmd)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// openSkills selects the fourth drawer entry.
func (h *harness) openSkills() {
	h.press("down", "down", "down", "enter")
	if got := h.app.screens[h.app.active].Title(); got != "Skills" {
		h.t.Fatalf("opened %q, want Skills", got)
	}
}

func TestAddSkill(t *testing.T) {
	h := newHarness(t)
	h.openSkills()

	h.press("a")
	if k := h.sections.Skills.Controller.Mode().Kind(); k != listsync.Adding {
		t.Fatalf("mode = %v, want adding", k)
	}
	h.typeText("Go")
	h.press("tab")
	h.typeText("xyz")
	h.press("right", "right", "right")
	h.press("enter")

	recs := h.api.Records("habilidades")
	if len(recs) != 1 || recs[0]["nome"] != "Go" || recs[0]["nivel"] != "Advanced" || recs[0]["pessoaId"] != "22" {
		t.Fatalf("backend records = %v", recs)
	}
	if h.app.modal == nil || h.app.modal.title != listsync.TitleSuccess {
		t.Fatalf("modal = %+v, want success alert", h.app.modal)
	}
	h.press("enter")
	if h.app.modal != nil {
		t.Error("enter did not dismiss the alert")
	}
	if n := len(h.sections.Skills.Controller.Items()); n != 1 {
		t.Errorf("items = %d, want 1 after reload", n)
	}
	if !strings.Contains(h.app.View(), "+ Add skill") {
		t.Error("create form did not collapse after submit")
	}
}

func TestBlankFormShowsValidationAlert(t *testing.T) {
	h := newHarness(t)
	h.openSkills()

	h.press("a", "ctrl+s")
	if h.app.modal == nil || h.app.modal.message != "Fill in Name and Level." {
		t.Fatalf("modal = %+v", h.app.modal)
	}
	if n := h.api.Requests("POST"); n != 0 {
		t.Errorf("POST requests = %d, want 0", n)
	}
	h.press("esc")
	if !h.app.screens[h.app.active].Capturing() {
		t.Error("form closed together with the alert")
	}
}

func TestDeleteFlow(t *testing.T) {
	h := newHarness(t)
	h.api.Seed("habilidades", mockapi.Record{"nome": "Go", "nivel": "Expert", "pessoaId": "22"})
	h.openSkills()
	ctrl := h.sections.Skills.Controller

	h.press("d", "enter")
	if k := ctrl.Mode().Kind(); k != listsync.ConfirmingDelete {
		t.Fatalf("mode = %v, want confirming-delete", k)
	}
	if !strings.Contains(h.app.View(), ui.ConfirmDeleteMessage("skill", "Go")) {
		t.Error("confirmation prompt not shown")
	}

	h.press("n")
	if k := ctrl.Mode().Kind(); k != listsync.Deleting {
		t.Fatalf("after n mode = %v, want deleting", k)
	}

	h.press("enter", "y")
	if recs := h.api.Records("habilidades"); len(recs) != 0 {
		t.Fatalf("record not deleted: %v", recs)
	}
	if k := ctrl.Mode().Kind(); k != listsync.Viewing {
		t.Errorf("after delete mode = %v, want viewing", k)
	}
}

func TestEditPrefillsForm(t *testing.T) {
	h := newHarness(t)
	ids := h.api.Seed("habilidades", mockapi.Record{"nome": "Go", "nivel": "Basic", "pessoaId": "22"})
	h.openSkills()

	h.press("e", "tab", "right")
	h.press("enter")

	recs := h.api.Records("habilidades")
	if len(recs) != 1 || recs[0]["id"] != ids[0] || recs[0]["nivel"] != "Intermediate" {
		t.Fatalf("backend records = %v", recs)
	}
}

func TestLevelPickerKeepsUnknownValue(t *testing.T) {
	h := newHarness(t)
	h.api.Seed("habilidades", mockapi.Record{"nome": "Go", "nivel": "Guru", "pessoaId": "22"})
	h.openSkills()

	h.press("e", "tab")
	if !strings.Contains(h.app.View(), "‹ Guru ›") {
		t.Fatalf("picker does not show the stored level:\n%s", h.app.View())
	}
	h.press("left", "enter")
	if recs := h.api.Records("habilidades"); recs[0]["nivel"] != "Expert" {
		t.Errorf("level = %v, want Expert", recs[0]["nivel"])
	}
}

func TestWorkDescriptionIsMultiline(t *testing.T) {
	h := newHarness(t)
	h.press("down", "down", "enter")
	if got := h.app.screens[h.app.active].Title(); got != "Work experience" {
		t.Fatalf("opened %q", got)
	}

	h.press("a")
	h.typeText("ACME")
	h.press("tab")
	h.typeText("Dev")
	h.press("tab")
	h.typeText("line one")
	h.press("enter")
	h.typeText("line two")
	h.press("down", "tab")
	h.typeText("2020-01-01")
	h.press("ctrl+s")

	recs := h.api.Records("experiencias")
	if len(recs) != 1 {
		t.Fatalf("records = %v", recs)
	}
	if got := recs[0]["descricao"]; got != "line one\nline two" {
		t.Errorf("description = %q", got)
	}
	if recs[0]["dataInicio"] != "2020-01-01" {
		t.Errorf("start = %v", recs[0]["dataInicio"])
	}
}

func TestLoadFailureAlerts(t *testing.T) {
	h := newHarness(t)
	h.api.FailNext("GET", 500, "<html>")
	h.openSkills()
	if h.app.modal == nil || h.app.modal.title != listsync.TitleLoadFailed {
		t.Fatalf("modal = %+v, want load failure", h.app.modal)
	}
	if !strings.Contains(h.app.modal.message, apiclient.MsgServerError) {
		t.Errorf("message = %q", h.app.modal.message)
	}
}

func TestDrawerShowsLanding(t *testing.T) {
	h := newHarness(t)
	view := h.app.View()
	l := model.Headline()
	for _, want := range []string{l.Title, l.Subtitle, l.Tagline[:20], "Projects"} {
		if !strings.Contains(view, want) {
			t.Errorf("drawer view lacks %q:\n%s", want, view)
		}
	}

	h.press("enter")
	if strings.Contains(h.app.View(), l.Subtitle) {
		t.Error("landing still shown inside a section")
	}
	h.press("esc")
	if !strings.Contains(h.app.View(), l.Title) {
		t.Error("landing missing after returning to the drawer")
	}
}

func TestAboutMarksPlannedFeatures(t *testing.T) {
	h := newHarness(t)
	h.press("down", "down", "down", "down", "enter")
	if got := h.app.screens[h.app.active].Title(); got != "About" {
		t.Fatalf("opened %q", got)
	}
	if !strings.Contains(h.app.View(), "Next (planned)") {
		t.Errorf("about view:\n%s", h.app.View())
	}
}

func TestThemeToggleAndNavigation(t *testing.T) {
	h := newHarness(t)

	h.press("t")
	if h.app.Theme().Name != "dark" || len(h.saved) != 1 || h.saved[0] != "dark" {
		t.Fatalf("theme = %s, saved = %v", h.app.Theme().Name, h.saved)
	}

	h.press("enter")
	if h.app.active != 0 || !strings.Contains(h.app.View(), "Projects") {
		t.Fatalf("active = %d, want projects", h.app.active)
	}
	h.press("esc")
	if h.app.active != drawerIndex {
		t.Errorf("esc did not return to the drawer")
	}
}
