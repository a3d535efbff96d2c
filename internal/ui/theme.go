package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	Text          string
	Muted         string
	Accent        string
	Success       string
	Warning       string
	Danger        string
	Border        string
	SelectionBg   string
	SelectionText string
}

// Styles holds the lipgloss styles derived from a theme.
type Styles struct {
	Title    Style
	Text     Style
	Muted    Style
	Accent   Style
	Success  Style
	Warning  Style
	Danger   Style
	Selected Style
	Box      Style
	Badge    Style
	Help     Style
}

// Style aliases lipgloss.Style so view code reads cleanly.
type Style = lipgloss.Style

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
	}
}

var themes = map[string]Theme{
	"Boutique": boutiqueTheme(),
	"Ledger":   ledgerTheme(),
}

var themeOrder = []string{"Boutique", "Ledger"}

// GetTheme returns the named theme, falling back to the default.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return boutiqueTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func boutiqueTheme() Theme {
	return Theme{
		Name: "Boutique",

		Text:          "#e6e1dc",
		Muted:         "#8a8378",
		Accent:        "#d7a86e",
		Success:       "#9ec49f",
		Warning:       "#e3b341",
		Danger:        "#e06c75",
		Border:        "#5c564d",
		SelectionBg:   "#3a352e",
		SelectionText: "#f3efe9",
	}
}

func ledgerTheme() Theme {
	return Theme{
		Name: "Ledger",

		Text:          "#d8dee9",
		Muted:         "#616e88",
		Accent:        "#88c0d0",
		Success:       "#a3be8c",
		Warning:       "#ebcb8b",
		Danger:        "#bf616a",
		Border:        "#4c566a",
		SelectionBg:   "#434c5e",
		SelectionText: "#eceff4",
	}
}
