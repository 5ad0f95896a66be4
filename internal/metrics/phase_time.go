package metrics

import (
	"strings"
	"time"

	"github.com/san-kum/deckmenu/internal/sequencer"
	"github.com/san-kum/deckmenu/internal/trace"
)

// PhaseTime is the number of seconds spent in one phase, from entering it to
// the next transition. For the menu this includes the confirm delay after an
// entry is picked. A phase still current at the end of the timeline counts up
// to the last event.
type PhaseTime struct {
	phase   sequencer.Phase
	total   time.Duration
	entered time.Duration
	inside  bool
	last    time.Duration
}

func NewPhaseTime(p sequencer.Phase) *PhaseTime {
	return &PhaseTime{phase: p}
}

func (p *PhaseTime) Name() string {
	return "time_in_" + strings.ReplaceAll(p.phase.String(), "-", "_")
}

func (p *PhaseTime) Observe(ev trace.Event) {
	if p.inside {
		p.total += ev.At - p.entered
		p.inside = false
	}
	if ev.To == p.phase {
		p.entered, p.inside = ev.At, true
	}
	p.last = ev.At
}

func (p *PhaseTime) Value() float64 {
	total := p.total
	if p.inside {
		total += p.last - p.entered
	}
	return total.Seconds()
}

func (p *PhaseTime) Reset() {
	*p = PhaseTime{phase: p.phase}
}
