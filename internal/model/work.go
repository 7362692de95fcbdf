package model

// WorkExpItem is one professional experience entry.
type WorkExpItem struct {
	ID          ID      `json:"id"`
	Company     string  `json:"empresa"`
	Role        string  `json:"cargo"`
	Description string  `json:"descricao"`
	StartDate   string  `json:"dataInicio"`
	EndDate     *string `json:"dataFim"`
}

func (w WorkExpItem) RecordID() ID { return w.ID }

// WorkExpDraft is the editable form state for a WorkExpItem.
type WorkExpDraft struct {
	Company     string `form:"company" validate:"required"`
	Role        string `form:"role" validate:"required"`
	Description string `form:"description"`
	StartDate   string `form:"start" validate:"required"`
	EndDate     string `form:"end"`
}

type workExpPayload struct {
	Company     string  `json:"empresa"`
	Role        string  `json:"cargo"`
	Description string  `json:"descricao"`
	StartDate   string  `json:"dataInicio"`
	EndDate     *string `json:"dataFim"`
	OwnerID     string  `json:"pessoaId"`
}

func (d WorkExpDraft) Payload(ownerID string) any {
	return workExpPayload{
		Company:     d.Company,
		Role:        d.Role,
		Description: d.Description,
		StartDate:   d.StartDate,
		EndDate:     nullable(d.EndDate),
		OwnerID:     ownerID,
	}
}

func WorkExpDraftFrom(w WorkExpItem) WorkExpDraft {
	return WorkExpDraft{
		Company:     w.Company,
		Role:        w.Role,
		Description: w.Description,
		StartDate:   w.StartDate,
		EndDate:     deref(w.EndDate),
	}
}

var WorkExpFields = []Field[WorkExpDraft]{
	{
		Key: "company", Label: "Company",
		Get: func(d *WorkExpDraft) string { return d.Company },
		Set: func(d *WorkExpDraft, v string) { d.Company = v },
	},
	{
		Key: "role", Label: "Role",
		Get: func(d *WorkExpDraft) string { return d.Role },
		Set: func(d *WorkExpDraft, v string) { d.Role = v },
	},
	{
		Key: "description", Label: "Description", Multiline: true,
		Get: func(d *WorkExpDraft) string { return d.Description },
		Set: func(d *WorkExpDraft, v string) { d.Description = v },
	},
	{
		Key: "start", Label: "Start date", Hint: "YYYY-MM-DD",
		Get: func(d *WorkExpDraft) string { return d.StartDate },
		Set: func(d *WorkExpDraft, v string) { d.StartDate = v },
	},
	{
		Key: "end", Label: "End date", Hint: "YYYY-MM-DD, empty if current",
		Get: func(d *WorkExpDraft) string { return d.EndDate },
		Set: func(d *WorkExpDraft, v string) { d.EndDate = v },
	},
}
