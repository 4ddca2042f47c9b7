package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the live view.
type Theme struct {
	Name     string
	Leader   lipgloss.Color
	Follower lipgloss.Color
	Group    lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Warning  lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:     "cyberpunk",
		Leader:   lipgloss.Color("#ff00ff"),
		Follower: lipgloss.Color("#00ffff"),
		Group:    lipgloss.Color("#ffff00"),
		Accent:   lipgloss.Color("#00ff88"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666666"),
		Warning:  lipgloss.Color("#ff8800"),
	}

	ThemeRetro = Theme{
		Name:     "retro",
		Leader:   lipgloss.Color("#88ff88"),
		Follower: lipgloss.Color("#00cc00"),
		Group:    lipgloss.Color("#00ff00"),
		Accent:   lipgloss.Color("#ccffcc"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Warning:  lipgloss.Color("#ffff00"),
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Leader:   lipgloss.Color("#ffd700"),
		Follower: lipgloss.Color("#00a8cc"),
		Group:    lipgloss.Color("#0077be"),
		Accent:   lipgloss.Color("#00ff88"),
		Text:     lipgloss.Color("#e0f0ff"),
		Muted:    lipgloss.Color("#4488aa"),
		Warning:  lipgloss.Color("#ffcc00"),
	}

	Themes = []Theme{ThemeCyberpunk, ThemeRetro, ThemeOcean}
)

// GetTheme returns a theme by name, or the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// next returns the theme after t in Themes.
func (t Theme) next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
