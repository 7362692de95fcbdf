package model

// SkillItem is one skill with a free-form level such as "Advanced".
type SkillItem struct {
	ID    ID     `json:"id"`
	Name  string `json:"nome"`
	Level string `json:"nivel"`
}

func (s SkillItem) RecordID() ID { return s.ID }

// SkillLevels are the values offered by the level picker. The backend does
// not restrict the field to these.
var SkillLevels = []string{"Basic", "Intermediate", "Advanced", "Expert"}

type SkillDraft struct {
	Name  string `form:"name" validate:"required"`
	Level string `form:"level" validate:"required"`
}

type skillPayload struct {
	Name    string `json:"nome"`
	Level   string `json:"nivel"`
	OwnerID string `json:"pessoaId"`
}

func (d SkillDraft) Payload(ownerID string) any {
	return skillPayload{Name: d.Name, Level: d.Level, OwnerID: ownerID}
}

func SkillDraftFrom(s SkillItem) SkillDraft {
	return SkillDraft{Name: s.Name, Level: s.Level}
}

var SkillFields = []Field[SkillDraft]{
	{
		Key: "name", Label: "Name",
		Get: func(d *SkillDraft) string { return d.Name },
		Set: func(d *SkillDraft, v string) { d.Name = v },
	},
	{
		Key: "level", Label: "Level", Options: SkillLevels,
		Get: func(d *SkillDraft) string { return d.Level },
		Set: func(d *SkillDraft, v string) { d.Level = v },
	},
}
