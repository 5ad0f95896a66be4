package sequencer

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/deckmenu/internal/deck"
)

// step is one timer-driven row of the transition table.
type step struct {
	from  Phase
	delay time.Duration
	to    Phase
	set   Flags
}

// Delays are fixed literals of the choreography.
var steps = [...]step{
	{Recoloring, 1500 * time.Millisecond, SiblingsFading, FlagRecolored | FlagSiblingsHidden},
	{SiblingsFading, 1500 * time.Millisecond, Centering, FlagSelectedHidden},
	{Centering, 1000 * time.Millisecond, TitleBarRevealing, FlagTitleBar},
	{TitleBarRevealing, 500 * time.Millisecond, MenuRevealing, FlagMenu},
	{MenuRevealing, 500 * time.Millisecond, MenuChoiceConfirming, FlagEntryChosen},
	{MenuChoiceConfirming, 1000 * time.Millisecond, MenuDismissing, FlagMenuFading},
	// exit animation of menu and title bar
	{MenuDismissing, 500 * time.Millisecond, Terminal, FlagSettled},
}

func stepFrom(p Phase) (step, bool) {
	for _, s := range steps {
		if s.from == p {
			return s, true
		}
	}
	return step{}, false
}

// Delay returns the timer that moves the session out of from, or false when
// no timer ever does. For MenuRevealing the timer is the confirm delay, armed
// when an entry is picked rather than when the phase is entered.
func Delay(from Phase) (time.Duration, bool) {
	s, ok := stepFrom(from)
	return s.delay, ok
}

// AwaitsInput reports whether p is only left after a user selection.
func AwaitsInput(p Phase) bool {
	return p == Idle || p == MenuRevealing
}

// Transition describes one phase change.
type Transition struct {
	From, To Phase
	Snapshot Snapshot
}

// Observer is notified after every phase change.
type Observer interface {
	OnTransition(tr Transition)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(tr Transition)

func (f ObserverFunc) OnTransition(tr Transition) { f(tr) }

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithLogger sets the logger used for transitions and ignored input.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sequencer) { s.log = l }
}

// WithObserver registers an observer at construction time.
func WithObserver(o Observer) Option {
	return func(s *Sequencer) { s.observers = append(s.observers, o) }
}

// Sequencer owns one session.
type Sequencer struct {
	sched     Scheduler
	log       *slog.Logger
	observers []Observer
	state     Snapshot
	lastID    TimerID
	pending   TimerID
	closed    bool
}

// New starts a session in the Idle phase.
func New(sched Scheduler, opts ...Option) *Sequencer {
	s := &Sequencer{
		sched:     sched,
		log:       slog.Default(),
		observers: make([]Observer, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sequencer) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Snapshot returns a copy of the current session state.
func (s *Sequencer) Snapshot() Snapshot { return s.state }

func (s *Sequencer) Phase() Phase { return s.state.Phase }

// SelectCard picks card id. Only the first pick made in Idle is accepted;
// later calls return false and change nothing. An id outside the deck is a
// contract violation and returns ErrUnknownCard.
func (s *Sequencer) SelectCard(id int) (bool, error) {
	if _, ok := deck.CardByID(id); !ok {
		return false, fmt.Errorf("%w: %d", ErrUnknownCard, id)
	}
	if s.closed || s.state.Phase != Idle {
		s.log.Debug("card selection ignored", "card", id, "phase", s.state.Phase)
		return false, nil
	}

	next := s.state
	next.Card = id
	next.Flags |= FlagCardSelected
	s.enter(Recoloring, next)
	return true, nil
}

// SelectMenuEntry picks a menu entry. It is accepted only once the menu is
// revealed and no other entry has been picked; the entry is confirmed after a
// short delay. Unknown labels return ErrUnknownMenuEntry.
func (s *Sequencer) SelectMenuEntry(label string) (bool, error) {
	if deck.MenuIndex(label) < 0 {
		return false, fmt.Errorf("%w: %q", ErrUnknownMenuEntry, label)
	}
	if s.closed || s.state.Phase != MenuRevealing || s.state.Flags.Has(FlagEntryPending) {
		s.log.Debug("menu selection ignored", "entry", label, "phase", s.state.Phase)
		return false, nil
	}

	s.state.Pending = label
	s.state.Flags |= FlagEntryPending
	s.log.Debug("menu entry pending", "entry", label)
	s.arm(MenuRevealing)
	return true, nil
}

// Close ends the session. The pending timer, if any, is cancelled and all
// further input is ignored.
func (s *Sequencer) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.pending != 0 {
		s.sched.Cancel(s.pending)
		s.pending = 0
	}
	s.log.Debug("session closed", "phase", s.state.Phase)
}

// Closed reports whether Close was called.
func (s *Sequencer) Closed() bool { return s.closed }

func (s *Sequencer) arm(from Phase) {
	st, ok := stepFrom(from)
	if !ok || s.closed {
		return
	}
	s.lastID++
	id := s.lastID
	s.pending = id
	s.sched.Schedule(id, st.delay, func() { s.fire(id, st) })
}

func (s *Sequencer) fire(id TimerID, st step) {
	if s.closed || id != s.pending || s.state.Phase != st.from {
		s.log.Debug("stale timer ignored", "timer", uint64(id), "phase", s.state.Phase)
		return
	}
	s.pending = 0

	next := s.state
	next.Flags |= st.set
	if st.set.Has(FlagEntryChosen) {
		next.Entry = next.Pending
	}
	s.enter(st.to, next)
}

func (s *Sequencer) enter(to Phase, next Snapshot) {
	from := s.state.Phase
	next.Phase = to
	s.state = next

	s.log.Debug("phase transition", "from", from, "to", to, "flags", uint16(next.Flags))
	tr := Transition{From: from, To: to, Snapshot: next}
	for _, o := range s.observers {
		o.OnTransition(tr)
	}

	if to != MenuRevealing {
		s.arm(to)
	}
}
