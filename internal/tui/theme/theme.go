// Package theme maps the configured editor theme onto terminal colors.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors used for rendering.
type Theme struct {
	Name         string
	AddColor     string
	DelColor     string
	MetaColor    string
	DividerColor string
	AccentColor  string
	ErrorColor   string
	AddBgColor   string
	DelBgColor   string
}

func dark(name string) Theme {
	return Theme{
		Name:         name,
		AddColor:     "34",
		DelColor:     "196",
		MetaColor:    "63",
		DividerColor: "240",
		AccentColor:  "214",
		ErrorColor:   "203",
		AddBgColor:   "235",
		DelBgColor:   "235",
	}
}

func light(name string) Theme {
	return Theme{
		Name:         name,
		AddColor:     "22",
		DelColor:     "9",
		MetaColor:    "27",
		DividerColor: "244",
		AccentColor:  "130",
		ErrorColor:   "160",
		AddBgColor:   "255",
		DelBgColor:   "255",
	}
}

var darkThemes = map[string]bool{
	"ambiance":       true,
	"monokai":        true,
	"tomorrow_night": true,
	"twilight":       true,
	"vibrant_ink":    true,
}

// ForEditorTheme returns the palette for an editor theme name. Unknown
// names get the light palette unless they mention "dark".
func ForEditorTheme(name string) Theme {
	n := strings.ToLower(strings.TrimSpace(name))
	if darkThemes[n] || strings.Contains(n, "dark") {
		return dark(name)
	}
	return light(name)
}

// Default is the palette for the default "github" editor theme.
func Default() Theme {
	return ForEditorTheme("github")
}

func (t Theme) fg(color, s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(s)
}

func (t Theme) AddText(s string) string     { return t.fg(t.AddColor, s) }
func (t Theme) DelText(s string) string     { return t.fg(t.DelColor, s) }
func (t Theme) MetaText(s string) string    { return t.fg(t.MetaColor, s) }
func (t Theme) DividerText(s string) string { return t.fg(t.DividerColor, s) }
func (t Theme) AccentText(s string) string  { return t.fg(t.AccentColor, s) }
func (t Theme) ErrorText(s string) string   { return t.fg(t.ErrorColor, s) }

// Faint renders s dimmed.
func (t Theme) Faint(s string) string {
	return lipgloss.NewStyle().Faint(true).Render(s)
}

// Bold renders s bold.
func (t Theme) Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}

// AddLine colors a whole added line, background included.
func (t Theme) AddLine(s string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.AddColor)).
		Background(lipgloss.Color(t.AddBgColor)).
		Render(s)
}

// DelLine colors a whole removed line, background included.
func (t Theme) DelLine(s string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.DelColor)).
		Background(lipgloss.Color(t.DelBgColor)).
		Render(s)
}
