package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a colour palette. Light and Dark are the only built-ins.
type Theme struct {
	Name    string
	Surface lipgloss.Color
	Border  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
	Edit    lipgloss.Color
	Danger  lipgloss.Color

	Success lipgloss.Color
	Info    lipgloss.Color
	Warning lipgloss.Color
	Neutral lipgloss.Color
}

var Light = Theme{
	Name:    "light",
	Surface: "#FFFFFF",
	Border:  "#E2E8F0",
	Text:    "#000000",
	Muted:   "#475569",
	Accent:  "#2563EB",
	Edit:    "#2563EB",
	Danger:  "#DC2626",
	Success: "#166534",
	Info:    "#1E40AF",
	Warning: "#854D0E",
	Neutral: "#1E293B",
}

var Dark = Theme{
	Name:    "dark",
	Surface: "#1E293B",
	Border:  "#334155",
	Text:    "#FFFFFF",
	Muted:   "#94A3B8",
	Accent:  "#60A5FA",
	Edit:    "#60A5FA",
	Danger:  "#F87171",
	Success: "#BBF7D0",
	Info:    "#BFDBFE",
	Warning: "#FEF08A",
	Neutral: "#E2E8F0",
}

// ThemeByName returns the named theme.
func ThemeByName(name string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "light":
		return Light, nil
	case "dark":
		return Dark, nil
	}
	return Theme{}, fmt.Errorf("unknown theme %q (want light or dark)", name)
}

// Toggle returns the other built-in theme.
func (t Theme) Toggle() Theme {
	if t.Name == Dark.Name {
		return Light
	}
	return Dark
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Title    lipgloss.Style
	Heading  lipgloss.Style
	Subtitle lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Edit     lipgloss.Style
	Danger   lipgloss.Style
	Card     lipgloss.Style
	Selected lipgloss.Style
	Modal    lipgloss.Style
}

// Styles builds the style set for t.
func (t Theme) Styles() Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		MarginBottom(1)
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(t.Text),
		Heading:  lipgloss.NewStyle().Bold(true).Foreground(t.Text),
		Subtitle: lipgloss.NewStyle().Foreground(t.Accent),
		Text:     lipgloss.NewStyle().Foreground(t.Text),
		Muted:    lipgloss.NewStyle().Foreground(t.Muted),
		Edit:     lipgloss.NewStyle().Foreground(t.Edit),
		Danger:   lipgloss.NewStyle().Foreground(t.Danger).Bold(true),
		Card:     card,
		Selected: card.BorderForeground(t.Accent),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(t.Accent).
			Padding(1, 2),
	}
}
