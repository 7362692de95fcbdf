package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/curriculo/internal/model"
	"github.com/Tiliavir/curriculo/internal/timecalc"
)

// Status labels per section.
var (
	AcademicLabels = timecalc.Labels{Open: "In progress", Closed: "Completed"}
	WorkLabels     = timecalc.Labels{Open: "Current", Closed: "Ended"}
)

// BadgeKind selects a badge colour.
type BadgeKind int

const (
	BadgeNeutral BadgeKind = iota
	BadgeInfo
	BadgeSuccess
	BadgeWarning
)

// Badge renders text as a small coloured tag.
func Badge(t Theme, kind BadgeKind, text string) string {
	fg := t.Neutral
	switch kind {
	case BadgeInfo:
		fg = t.Info
	case BadgeSuccess:
		fg = t.Success
	case BadgeWarning:
		fg = t.Warning
	}
	return lipgloss.NewStyle().Foreground(fg).Bold(true).Render("[" + text + "]")
}

// SkillBadgeKind maps a free-form level to a badge colour, checking the
// highest level first. Unknown levels are neutral.
func SkillBadgeKind(level string) BadgeKind {
	l := strings.ToLower(level)
	switch {
	case strings.Contains(l, "expert"), strings.Contains(l, "especialista"):
		return BadgeWarning
	case strings.Contains(l, "advanced"), strings.Contains(l, "avançado"):
		return BadgeSuccess
	case strings.Contains(l, "intermediate"), strings.Contains(l, "intermediário"):
		return BadgeInfo
	}
	return BadgeNeutral
}

// CardState carries the list-level state a card depends on.
type CardState struct {
	Selected bool
	Deleting bool // delete mode: show the delete affordance instead of edit
	Width    int
	Today    time.Time
}

func (s CardState) today() time.Time {
	if s.Today.IsZero() {
		return time.Now()
	}
	return s.Today
}

func frame(t Theme, st CardState, lines ...string) string {
	styles := t.Styles()
	box := styles.Card
	if st.Selected {
		box = styles.Selected
	}
	if st.Width > 0 {
		box = box.Width(st.Width)
	}
	return box.Render(strings.Join(lines, "\n"))
}

func affordance(t Theme, st CardState) string {
	styles := t.Styles()
	if st.Deleting {
		return styles.Danger.Render("✗ delete")
	}
	return styles.Edit.Render("✎ edit")
}

func statusLine(t Theme, d timecalc.Derived, labels timecalc.Labels) string {
	kind := BadgeInfo
	if d.Closed {
		kind = BadgeSuccess
	}
	return t.Styles().Muted.Render(d.Period) + "  " + Badge(t, kind, labels.Label(d))
}

// AcademicCard renders one education entry.
func AcademicCard(t Theme, item model.AcademicItem, st CardState) string {
	s := t.Styles()
	d := timecalc.Derive(item.StartDate, item.EndDate, st.today())
	return frame(t, st,
		s.Heading.Render(item.Course)+"  "+affordance(t, st),
		s.Subtitle.Render(item.Institution),
		statusLine(t, d, AcademicLabels),
	)
}

// WorkCard renders one professional experience entry.
func WorkCard(t Theme, item model.WorkExpItem, st CardState) string {
	s := t.Styles()
	d := timecalc.Derive(item.StartDate, item.EndDate, st.today())
	lines := []string{
		s.Heading.Render(item.Role) + "  " + affordance(t, st),
		s.Subtitle.Render(item.Company),
	}
	if desc := strings.TrimSpace(item.Description); desc != "" {
		lines = append(lines, s.Text.Render(desc))
	}
	lines = append(lines, statusLine(t, d, WorkLabels))
	return frame(t, st, lines...)
}

// SkillCard renders one skill with its level badge.
func SkillCard(t Theme, item model.SkillItem, st CardState) string {
	s := t.Styles()
	return frame(t, st,
		s.Heading.Render(item.Name)+"  "+affordance(t, st),
		Badge(t, SkillBadgeKind(item.Level), item.Level),
	)
}

// ProjectCard renders a static project. Projects are read-only.
func ProjectCard(t Theme, p model.Project, st CardState) string {
	s := t.Styles()
	techs := make([]string, 0, len(p.Techs))
	for _, tech := range p.Techs {
		techs = append(techs, Badge(t, BadgeInfo, tech))
	}
	return frame(t, st,
		s.Heading.Render(p.Title),
		s.Text.Render(p.Description),
		strings.Join(techs, " "),
		s.Subtitle.Render(p.Link),
	)
}

// ConfirmDeleteMessage is the text of the delete confirmation prompt.
func ConfirmDeleteMessage(noun, name string) string {
	return fmt.Sprintf("Are you sure you want to delete the %s %q?", noun, name)
}
