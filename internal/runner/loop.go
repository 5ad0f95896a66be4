package runner

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/san-kum/deckmenu/internal/sequencer"
)

// Loop is a cooperative event loop with real timers. Every callback runs on
// the goroutine that called Run, so a Sequencer driven by a Loop never sees
// concurrent calls.
type Loop struct {
	events chan func()
	done   chan struct{}
	log    *slog.Logger

	mu     sync.Mutex
	timers map[sequencer.TimerID]*time.Timer
	closed bool
}

func NewLoop(log *slog.Logger) *Loop {
	if log == nil {
		log = slog.Default()
	}
	return &Loop{
		events: make(chan func(), 16),
		done:   make(chan struct{}),
		log:    log,
		timers: make(map[sequencer.TimerID]*time.Timer),
	}
}

// Post queues f to run on the loop goroutine. It reports false once the loop
// has stopped.
func (l *Loop) Post(f func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.events <- f:
		return true
	case <-l.done:
		return false
	}
}

func (l *Loop) Schedule(id sequencer.TimerID, d time.Duration, fire func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.timers[id] = time.AfterFunc(d, func() {
		l.Post(func() {
			if l.take(id) {
				fire()
			}
		})
	})
}

func (l *Loop) Cancel(id sequencer.TimerID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if t, ok := l.timers[id]; ok {
		t.Stop()
		delete(l.timers, id)
	}
}

// take removes id and reports whether it was still scheduled.
func (l *Loop) take(id sequencer.TimerID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.timers[id]
	delete(l.timers, id)
	return ok
}

// Pending is the number of timers that have not fired.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

// Run processes callbacks until ctx is done. Outstanding timers are stopped
// on return so no callback outlives the session.
func (l *Loop) Run(ctx context.Context) error {
	defer l.stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-l.events:
			f()
		}
	}
}

func (l *Loop) stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	close(l.done)
	for id, t := range l.timers {
		t.Stop()
		delete(l.timers, id)
	}
	l.log.Debug("event loop stopped")
}
