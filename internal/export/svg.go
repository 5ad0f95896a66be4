// Package export renders decks and session timelines as SVG.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/san-kum/deckmenu/internal/deck"
	"github.com/san-kum/deckmenu/internal/sequencer"
	"github.com/san-kum/deckmenu/internal/trace"
	"github.com/san-kum/deckmenu/internal/viz"
)

func header(sb *strings.Builder, width, height float64, bg string) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, bg))
}

// CanvasToSVG converts a braille canvas to SVG, one circle per dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64, theme viz.Theme) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Cols) * scale * 2
	height := float64(canvas.Rows) * scale * 4

	var sb strings.Builder
	header(&sb, width, height, string(theme.Background))
	sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", theme.Stroke))

	dotRadius := scale * 0.4
	for y := 0; y < canvas.Rows*4; y++ {
		for x := 0; x < canvas.Cols*2; x++ {
			if !canvas.Dot(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// DeckSVG draws the four cards on their 2x2 grid using their own path data.
// The selected card, if any (selected < 0 for none), is drawn recolored.
func DeckSVG(selected int, theme viz.Theme) string {
	const cell, gap = 100.0, 20.0
	size := 2*cell + 3*gap

	var sb strings.Builder
	header(&sb, size, size, string(theme.Background))
	for _, c := range deck.Cards() {
		x, y := gap, gap
		if !c.Anchor.Left() {
			x += cell + gap
		}
		if !c.Anchor.Top() {
			y += cell + gap
		}
		stroke := theme.Stroke
		if c.ID == selected {
			stroke = theme.Recolor
		}
		sb.WriteString(fmt.Sprintf(`<g transform="translate(%.0f,%.0f)">
<rect width="%.0f" height="%.0f" rx="8" fill="none" stroke="%s"/>
<path d="%s" fill="none" stroke="%s" stroke-width="2"/>
</g>
`, x, y, cell, cell, theme.Frame, c.Path, stroke))
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// TimelineSVG draws the phase index of a session as a step chart.
func TimelineSVG(events []trace.Event, width, height int, theme viz.Theme) string {
	if len(events) == 0 {
		return ""
	}

	end := events[len(events)-1].At
	if end <= 0 {
		end = time.Second
	}
	maxPhase := float64(sequencer.Terminal)
	pad := 10.0
	w, h := float64(width)-2*pad, float64(height)-2*pad
	px := func(t time.Duration) float64 { return pad + float64(t)/float64(end)*w }
	py := func(p sequencer.Phase) float64 { return pad + h - float64(p)/maxPhase*h }

	var sb strings.Builder
	header(&sb, float64(width), float64(height), string(theme.Background))
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M%.1f,%.1f`,
		theme.Title, px(0), py(events[0].From)))

	for _, ev := range events {
		x := px(ev.At)
		sb.WriteString(fmt.Sprintf(" H%.1f V%.1f", x, py(ev.To)))
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
