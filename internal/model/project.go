package model

// Project is a portfolio entry. Projects are not served by the API; the list
// is compiled in.
type Project struct {
	ID          ID       `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Techs       []string `json:"techs"`
	Link        string   `json:"link"`
}

func (p Project) RecordID() ID { return p.ID }

var projects = []Project{
	{
		ID:          "2",
		Title:       "This résumé app",
		Description: "The app you are using right now: an interactive portfolio that manages education, experience and skills against a REST backend.",
		Techs:       []string{"Go", "Cobra", "Bubble Tea", "Lip Gloss", "Gin"},
		Link:        "https://github.com/ewayrton/curriculo-react-native",
	},
	{
		ID:          "1",
		Title:       "Hangman (in progress)",
		Description: "A simple hangman game. Players guess letters and try to find the secret word.",
		Techs:       []string{"React Native", "TypeScript", "Gluestack UI", "Reanimated"},
		Link:        "https://github.com/Ewayrton/atv-JOGO-DA-FORCA-PDM",
	},
}

// Projects returns a copy of the compiled-in project list.
func Projects() []Project {
	out := make([]Project, len(projects))
	for i, p := range projects {
		p.Techs = append([]string(nil), p.Techs...)
		out[i] = p
	}
	return out
}
