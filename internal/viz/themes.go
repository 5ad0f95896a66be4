package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the stage palette.
type Theme struct {
	Name       string
	Background lipgloss.Color
	Frame      lipgloss.Color // card and panel borders
	Stroke     lipgloss.Color // artwork of unpicked cards
	Highlight  lipgloss.Color // picked card while recoloring
	Recolor    lipgloss.Color // picked card after recoloring
	Title      lipgloss.Color // title bar border and text
	Text       lipgloss.Color
	Muted      lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Background: lipgloss.Color("#0a0a0a"),
		Frame:      lipgloss.Color("#444466"),
		Stroke:     lipgloss.Color("#888888"),
		Highlight:  lipgloss.Color("#ff00ff"),
		Recolor:    lipgloss.Color("#ffff00"),
		Title:      lipgloss.Color("#00ffff"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Background: lipgloss.Color("#001100"),
		Frame:      lipgloss.Color("#005500"),
		Stroke:     lipgloss.Color("#00cc00"),
		Highlight:  lipgloss.Color("#88ff88"),
		Recolor:    lipgloss.Color("#ffff00"),
		Title:      lipgloss.Color("#00ff00"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Background: lipgloss.Color("#000000"),
		Frame:      lipgloss.Color("#888888"),
		Stroke:     lipgloss.Color("#888888"),
		Highlight:  lipgloss.Color("#d2691e"),
		Recolor:    lipgloss.Color("#ff5722"),
		Title:      lipgloss.Color("#1976d2"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#555555"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Background: lipgloss.Color("#001a33"),
		Frame:      lipgloss.Color("#4488aa"),
		Stroke:     lipgloss.Color("#00a8cc"),
		Highlight:  lipgloss.Color("#ffcc00"),
		Recolor:    lipgloss.Color("#ffd700"),
		Title:      lipgloss.Color("#0077be"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Background: lipgloss.Color("#2d1b2e"),
		Frame:      lipgloss.Color("#8b6b8c"),
		Stroke:     lipgloss.Color("#feca57"),
		Highlight:  lipgloss.Color("#ff9ff3"),
		Recolor:    lipgloss.Color("#ff6b6b"),
		Title:      lipgloss.Color("#ff9ff3"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// NextTheme returns the theme after name in cycling order.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
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
