package viz

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/deckmenu/internal/sequencer"
)

type fireMsg struct{ id sequencer.TimerID }

type queuedTimer struct {
	id    sequencer.TimerID
	delay time.Duration
}

// teaScheduler turns sequencer timers into tea.Tick commands. Callbacks come
// back as fireMsg and run inside Update, so the sequencer stays on the Bubble
// Tea goroutine.
type teaScheduler struct {
	queued []queuedTimer
	live   map[sequencer.TimerID]func()
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{live: make(map[sequencer.TimerID]func())}
}

func (s *teaScheduler) Schedule(id sequencer.TimerID, d time.Duration, fire func()) {
	s.live[id] = fire
	s.queued = append(s.queued, queuedTimer{id: id, delay: d})
}

func (s *teaScheduler) Cancel(id sequencer.TimerID) {
	delete(s.live, id)
}

// flush hands timers scheduled since the last call to Bubble Tea.
func (s *teaScheduler) flush() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(s.queued))
	for _, q := range s.queued {
		id := q.id
		cmds = append(cmds, tea.Tick(q.delay, func(time.Time) tea.Msg { return fireMsg{id: id} }))
	}
	s.queued = s.queued[:0]
	return tea.Batch(cmds...)
}

// fire runs the callback for id once. Cancelled or repeated ids are dropped.
func (s *teaScheduler) fire(id sequencer.TimerID) bool {
	f, ok := s.live[id]
	if !ok {
		return false
	}
	delete(s.live, id)
	f()
	return true
}
