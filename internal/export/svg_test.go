package export

import (
	"strings"
	"testing"
	"time"

	"github.com/san-kum/deckmenu/internal/deck"
	"github.com/san-kum/deckmenu/internal/sequencer"
	"github.com/san-kum/deckmenu/internal/trace"
	"github.com/san-kum/deckmenu/internal/viz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckSVG(t *testing.T) {
	theme := viz.GetTheme("minimal")
	svg := DeckSVG(2, theme)

	for _, c := range deck.Cards() {
		assert.Contains(t, svg, c.Path, "card %d path", c.ID)
	}
	assert.Equal(t, 1, strings.Count(svg, string(theme.Recolor)), "exactly one recolored card")
	assert.True(t, strings.HasSuffix(svg, "</svg>"))

	assert.NotContains(t, DeckSVG(-1, theme), string(theme.Recolor))
}

func TestCanvasToSVG(t *testing.T) {
	cv := viz.NewCanvas(2, 1)
	cv.Set(0, 0)
	cv.Set(3, 3)

	svg := CanvasToSVG(cv, 10, viz.GetTheme("retro"))
	assert.Equal(t, 2, strings.Count(svg, "<circle"))
	assert.Contains(t, svg, `width="40" height="40"`)
	assert.Empty(t, CanvasToSVG(nil, 10, viz.ThemeMinimal))
}

func TestTimelineSVG(t *testing.T) {
	events := []trace.Event{
		{At: 0, From: sequencer.Idle, To: sequencer.Recoloring},
		{At: 1500 * time.Millisecond, From: sequencer.Recoloring, To: sequencer.SiblingsFading},
	}
	svg := TimelineSVG(events, 200, 100, viz.ThemeMinimal)
	require.NotEmpty(t, svg)
	assert.Equal(t, len(events), strings.Count(svg, " H"), "one step per event")
	// starts at idle, bottom left
	assert.Contains(t, svg, `d="M10.0,90.0`)

	assert.Empty(t, TimelineSVG(nil, 200, 100, viz.ThemeMinimal))
}
