// Package trace records the phase timeline of a session and stores it on
// disk for later inspection.
package trace

import (
	"time"

	"github.com/san-kum/deckmenu/internal/sequencer"
)

// Event is one recorded phase change.
type Event struct {
	At    time.Duration
	From  sequencer.Phase
	To    sequencer.Phase
	Card  int
	Entry string
}

// Recorder collects events. The clock supplies the offset of each event from
// session start, virtual or real.
type Recorder struct {
	clock  func() time.Duration
	events []Event
}

func NewRecorder(clock func() time.Duration) *Recorder {
	return &Recorder{clock: clock, events: make([]Event, 0, len(sequencer.Phases()))}
}

func (r *Recorder) OnTransition(tr sequencer.Transition) {
	card := -1
	if c, ok := tr.Snapshot.Selected(); ok {
		card = c
	}
	r.events = append(r.events, Event{
		At:    r.clock(),
		From:  tr.From,
		To:    tr.To,
		Card:  card,
		Entry: tr.Snapshot.TitleText(),
	})
}

// Events returns the recorded events in order.
func (r *Recorder) Events() []Event {
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Elapsed is the offset of the last event.
func (r *Recorder) Elapsed() time.Duration {
	if len(r.events) == 0 {
		return 0
	}
	return r.events[len(r.events)-1].At
}
