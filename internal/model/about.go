package model

// Group is a titled list of short entries on the about screen.
type Group struct {
	Title   string
	Planned bool
	Items   []string
}

// Landing is the headline shown before the sections.
type Landing struct {
	Title    string
	Subtitle string
	Tagline  string
}

func Headline() Landing {
	return Landing{
		Title:    "CURRÍCULO",
		Subtitle: "React Native Developer",
		Tagline:  "I build mobile apps focused on experience, performance and intuitive design.",
	}
}

// AboutInfo is the static content of the about screen.
type AboutInfo struct {
	Intro    string
	Techs    []Group
	Features []Group
}

// About returns the about screen content.
func About() AboutInfo {
	return AboutInfo{
		Intro: "This app is a terminal résumé built on the Go ecosystem.",
		Techs: []Group{
			{Title: "Core", Items: []string{"Go", "Cobra", "net/http"}},
			{Title: "Terminal UI", Items: []string{"Bubble Tea", "Bubbles", "Lip Gloss"}},
			{Title: "Validation & config", Items: []string{"validator", "godotenv"}},
			{Title: "Tooling", Items: []string{"go test", "Gin fake backend"}},
		},
		Features: []Group{
			{Title: "User experience", Items: []string{
				"Dark mode / light mode",
				"Refresh on every screen",
				"Collapsible create forms",
			}},
			{Title: "Content management", Items: []string{
				"REST backend integration",
				"Skills CRUD",
				"Work experience CRUD",
				"Academic experience CRUD",
			}},
			{Title: "Next", Planned: true, Items: []string{
				"Projects stored on the backend",
				"Profile photo",
			}},
		},
	}
}
