package viz

import (
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

const (
	cardCols = 14 // braille cells of artwork per card
	cardRows = 5
	stageW   = 2*(cardCols+4) + 8
	stageH   = 2*(cardRows+2) + 6
)

var (
	keyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	helpStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(1, 2)
)

// cardStyle frames one card's artwork.
func cardStyle(border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}

func titleBarStyle(border, text lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Foreground(text).
		Bold(true).
		Align(lipgloss.Center).
		Width(stageW - 2)
}

func menuStyle(border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), false, true, true, true).
		BorderForeground(border).
		Padding(0, 2).
		Width(stageW - 6)
}

// Fade blends from toward to by t in [0, 1]. It stands in for opacity on a
// terminal: t=0 is fully from, t=1 fully to.
func Fade(from, to lipgloss.Color, t float64) lipgloss.Color {
	t = clamp01(t)
	fr, fg, fb := parseHex(string(from))
	tr, tg, tb := parseHex(string(to))
	mix := func(a, b int) int { return int(math.Round(float64(a) + t*float64(b-a))) }
	return lipgloss.Color(hexColor(mix(fr, tr), mix(fg, tg), mix(fb, tb)))
}

// easeInOut is the smoothstep curve used for every fade.
func easeInOut(t float64) float64 {
	t = clamp01(t)
	return t * t * (3 - 2*t)
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 255, 255, 255
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
