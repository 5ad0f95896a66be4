package sequencer

import (
	"sort"
	"time"
)

// TimerID identifies one scheduled step. IDs are never reused within a
// session.
type TimerID uint64

// Scheduler runs one-shot delayed callbacks for a Sequencer.
//
// Implementations must invoke fire at most once, after d has elapsed, on the
// goroutine that owns the Sequencer. Cancel must make a pending callback a
// no-op; cancelling an unknown or already fired id is allowed.
type Scheduler interface {
	Schedule(id TimerID, d time.Duration, fire func())
	Cancel(id TimerID)
}

type manualTimer struct {
	id   TimerID
	due  time.Duration
	fire func()
}

// ManualClock is a Scheduler over virtual time. Nothing fires until Advance
// is called, which makes sessions deterministic.
type ManualClock struct {
	now    time.Duration
	timers []manualTimer
}

func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) Schedule(id TimerID, d time.Duration, fire func()) {
	if d < 0 {
		d = 0
	}
	c.timers = append(c.timers, manualTimer{id: id, due: c.now + d, fire: fire})
	sort.SliceStable(c.timers, func(i, j int) bool {
		return c.timers[i].due < c.timers[j].due
	})
}

func (c *ManualClock) Cancel(id TimerID) {
	for i, t := range c.timers {
		if t.id == id {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}

// Now is the virtual time elapsed since the clock was created.
func (c *ManualClock) Now() time.Duration { return c.now }

// Pending is the number of scheduled callbacks that have not fired.
func (c *ManualClock) Pending() int { return len(c.timers) }

// Advance moves virtual time forward by d, firing every callback that falls
// due in order. Callbacks scheduled while advancing fire too when their due
// time is inside the window.
func (c *ManualClock) Advance(d time.Duration) {
	target := c.now + d
	for len(c.timers) > 0 && c.timers[0].due <= target {
		t := c.timers[0]
		c.timers = c.timers[1:]
		c.now = t.due
		t.fire()
	}
	c.now = target
}

// AdvanceTo moves virtual time to the absolute offset at. Offsets in the past
// are ignored.
func (c *ManualClock) AdvanceTo(at time.Duration) {
	if at > c.now {
		c.Advance(at - c.now)
	}
}

// RunUntilIdle fires callbacks until none are left and returns the virtual
// time reached.
func (c *ManualClock) RunUntilIdle() time.Duration {
	for len(c.timers) > 0 {
		c.AdvanceTo(c.timers[0].due)
	}
	return c.now
}
