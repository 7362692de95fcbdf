package model

// AcademicItem is one education entry. A nil or empty EndDate means the
// course is still in progress.
type AcademicItem struct {
	ID          ID      `json:"id"`
	Institution string  `json:"instituicao"`
	Course      string  `json:"curso"`
	StartDate   string  `json:"dataInicio"`
	EndDate     *string `json:"dataFim"`
}

func (a AcademicItem) RecordID() ID { return a.ID }

// AcademicDraft is the editable form state for an AcademicItem.
type AcademicDraft struct {
	Institution string `form:"institution" validate:"required"`
	Course      string `form:"course" validate:"required"`
	StartDate   string `form:"start" validate:"required"`
	EndDate     string `form:"end"`
}

type academicPayload struct {
	Institution string  `json:"instituicao"`
	Course      string  `json:"curso"`
	StartDate   string  `json:"dataInicio"`
	EndDate     *string `json:"dataFim"`
	OwnerID     string  `json:"pessoaId"`
}

// Payload is the POST/PUT body for the draft, scoped to ownerID.
func (d AcademicDraft) Payload(ownerID string) any {
	return academicPayload{
		Institution: d.Institution,
		Course:      d.Course,
		StartDate:   d.StartDate,
		EndDate:     nullable(d.EndDate),
		OwnerID:     ownerID,
	}
}

// AcademicDraftFrom pre-populates a draft from an existing item.
func AcademicDraftFrom(a AcademicItem) AcademicDraft {
	return AcademicDraft{
		Institution: a.Institution,
		Course:      a.Course,
		StartDate:   a.StartDate,
		EndDate:     deref(a.EndDate),
	}
}

// AcademicFields is the field table for AcademicDraft.
var AcademicFields = []Field[AcademicDraft]{
	{
		Key: "institution", Label: "Institution",
		Get: func(d *AcademicDraft) string { return d.Institution },
		Set: func(d *AcademicDraft, v string) { d.Institution = v },
	},
	{
		Key: "course", Label: "Course",
		Get: func(d *AcademicDraft) string { return d.Course },
		Set: func(d *AcademicDraft, v string) { d.Course = v },
	},
	{
		Key: "start", Label: "Start date", Hint: "YYYY-MM-DD",
		Get: func(d *AcademicDraft) string { return d.StartDate },
		Set: func(d *AcademicDraft, v string) { d.StartDate = v },
	},
	{
		Key: "end", Label: "End date", Hint: "YYYY-MM-DD, empty if in progress",
		Get: func(d *AcademicDraft) string { return d.EndDate },
		Set: func(d *AcademicDraft, v string) { d.EndDate = v },
	},
}
