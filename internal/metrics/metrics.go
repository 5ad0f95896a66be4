// Package metrics summarises a recorded session timeline.
package metrics

import (
	"github.com/san-kum/deckmenu/internal/sequencer"
	"github.com/san-kum/deckmenu/internal/trace"
)

// Metric folds timeline events into one number.
type Metric interface {
	Name() string
	Observe(ev trace.Event)
	Value() float64
	Reset()
}

// Default returns the metrics reported for every session.
func Default() []Metric {
	return []Metric{
		NewTransitions(),
		NewLatency("time_to_menu", sequencer.Recoloring, sequencer.MenuRevealing),
		NewLatency("time_to_settle", sequencer.Recoloring, sequencer.Terminal),
		NewPhaseTime(sequencer.MenuRevealing),
	}
}

// Compute resets ms, feeds them events in order and collects the values.
func Compute(events []trace.Event, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for _, ev := range events {
			m.Observe(ev)
		}
		out[m.Name()] = m.Value()
	}
	return out
}
