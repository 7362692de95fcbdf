// Package resume wires the résumé sections: the three API-backed lists and
// the compiled-in projects.
package resume

import (
	"log/slog"
	"time"

	"github.com/Tiliavir/curriculo/internal/apiclient"
	"github.com/Tiliavir/curriculo/internal/listsync"
	"github.com/Tiliavir/curriculo/internal/model"
	"github.com/Tiliavir/curriculo/internal/timecalc"
	"github.com/Tiliavir/curriculo/internal/ui"
)

// Collection paths on the backend.
const (
	AcademicPath = "/educacao"
	WorkPath     = "/experiencias"
	SkillsPath   = "/habilidades"
)

// Section is one API-backed list screen: its controller plus everything a
// front end needs to render and edit records of type T.
type Section[T model.Record, D any] struct {
	Key      string // command name, e.g. "work"
	Title    string
	Noun     string // singular, used in prompts
	Fields   []model.Field[D]
	FromItem func(T) D
	Name     func(T) string
	Card     func(ui.Theme, T, ui.CardState) string
	Columns  func(T, time.Time) []string

	Controller *listsync.Controller[T, D]
}

type (
	AcademicSection = Section[model.AcademicItem, model.AcademicDraft]
	WorkSection     = Section[model.WorkExpItem, model.WorkExpDraft]
	SkillsSection   = Section[model.SkillItem, model.SkillDraft]
)

// Sections groups the API-backed sections.
type Sections struct {
	Academic *AcademicSection
	Work     *WorkSection
	Skills   *SkillsSection
}

// NewSections builds the controllers for ownerID on top of api.
func NewSections(api listsync.API, ownerID string, notify listsync.Notifier, logger *slog.Logger) Sections {
	return Sections{
		Academic: &AcademicSection{
			Key:      "academic",
			Title:    "Academic experience",
			Noun:     "course",
			Fields:   model.AcademicFields,
			FromItem: model.AcademicDraftFrom,
			Name:     func(a model.AcademicItem) string { return a.Course },
			Card:     ui.AcademicCard,
			Columns:  AcademicColumns,
			Controller: listsync.New[model.AcademicItem](api, listsync.Config[model.AcademicDraft]{
				Resource: apiclient.Resource{Path: AcademicPath, Scope: apiclient.ScopeOwnerPath, OwnerID: ownerID},
				Encode:   model.AcademicDraft.Payload,
				Messages: listsync.Messages{
					LoadFailed: "Could not load the academic history.",
					Created:    "New course added.",
					Updated:    "Course updated.",
					Deleted:    "Course deleted.",
				},
			}, notify, logger),
		},
		Work: &WorkSection{
			Key:      "work",
			Title:    "Work experience",
			Noun:     "experience",
			Fields:   model.WorkExpFields,
			FromItem: model.WorkExpDraftFrom,
			Name:     func(w model.WorkExpItem) string { return w.Role + " at " + w.Company },
			Card:     ui.WorkCard,
			Columns:  WorkColumns,
			Controller: listsync.New[model.WorkExpItem](api, listsync.Config[model.WorkExpDraft]{
				Resource: apiclient.Resource{Path: WorkPath, OwnerID: ownerID},
				Encode:   model.WorkExpDraft.Payload,
				Messages: listsync.Messages{
					LoadFailed: "Could not load the work experience.",
					Created:    "New experience added.",
					Updated:    "Experience updated.",
					Deleted:    "Experience deleted.",
				},
			}, notify, logger),
		},
		Skills: &SkillsSection{
			Key:      "skills",
			Title:    "Skills",
			Noun:     "skill",
			Fields:   model.SkillFields,
			FromItem: model.SkillDraftFrom,
			Name:     func(s model.SkillItem) string { return s.Name },
			Card:     ui.SkillCard,
			Columns:  SkillColumns,
			Controller: listsync.New[model.SkillItem](api, listsync.Config[model.SkillDraft]{
				Resource: apiclient.Resource{Path: SkillsPath, OwnerID: ownerID},
				Encode:   model.SkillDraft.Payload,
				Messages: listsync.Messages{
					LoadFailed: "Could not load the skills.",
					Created:    "New skill added.",
					Updated:    "Skill updated.",
					Deleted:    "Skill deleted.",
				},
			}, notify, logger),
		},
	}
}

// AcademicColumns, WorkColumns and SkillColumns are the plain-text table
// rows of one record: title, subtitle, then period and status when dated.
func AcademicColumns(a model.AcademicItem, today time.Time) []string {
	d := timecalc.Derive(a.StartDate, a.EndDate, today)
	return []string{a.Course, a.Institution, d.Period, ui.AcademicLabels.Label(d)}
}

func WorkColumns(w model.WorkExpItem, today time.Time) []string {
	d := timecalc.Derive(w.StartDate, w.EndDate, today)
	return []string{w.Role, w.Company, d.Period, ui.WorkLabels.Label(d)}
}

func SkillColumns(s model.SkillItem, _ time.Time) []string {
	return []string{s.Name, s.Level}
}
