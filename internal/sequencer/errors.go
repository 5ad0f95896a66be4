package sequencer

import "errors"

// Contract violations. Selections that are merely out of phase are ignored,
// these are returned only for identifiers the deck does not know.
var (
	// ErrUnknownCard indicates selectCard was called with an id outside the deck.
	ErrUnknownCard = errors.New("sequencer: unknown card id")

	// ErrUnknownMenuEntry indicates selectMenuEntry was called with a label
	// that is not one of the menu entries.
	ErrUnknownMenuEntry = errors.New("sequencer: unknown menu entry")
)
