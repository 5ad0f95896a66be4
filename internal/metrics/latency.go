package metrics

import (
	"time"

	"github.com/san-kum/deckmenu/internal/sequencer"
	"github.com/san-kum/deckmenu/internal/trace"
)

// Latency measures seconds between entering from and entering to. It is -1
// until both have been seen.
type Latency struct {
	name     string
	from, to sequencer.Phase
	start    time.Duration
	end      time.Duration
	started  bool
	done     bool
}

func NewLatency(name string, from, to sequencer.Phase) *Latency {
	return &Latency{name: name, from: from, to: to}
}

func (l *Latency) Name() string { return l.name }

func (l *Latency) Observe(ev trace.Event) {
	switch {
	case ev.To == l.from && !l.started:
		l.start, l.started = ev.At, true
	case ev.To == l.to && l.started && !l.done:
		l.end, l.done = ev.At, true
	}
}

func (l *Latency) Value() float64 {
	if !l.done {
		return -1
	}
	return (l.end - l.start).Seconds()
}

func (l *Latency) Reset() {
	l.started, l.done = false, false
	l.start, l.end = 0, 0
}

// Transitions counts phase changes.
type Transitions struct {
	count int
}

func NewTransitions() *Transitions { return &Transitions{} }

func (t *Transitions) Name() string { return "transitions" }

func (t *Transitions) Observe(trace.Event) { t.count++ }

func (t *Transitions) Value() float64 { return float64(t.count) }

func (t *Transitions) Reset() { t.count = 0 }
