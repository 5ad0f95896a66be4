package sequencer

// Flags is the set of phase flags reached so far. A session only ever adds
// bits, which keeps every flag monotonic.
type Flags uint16

const (
	FlagCardSelected Flags = 1 << iota
	FlagRecolored
	FlagSiblingsHidden
	// FlagSelectedHidden marks the picked card as leaving: it moves to the
	// center and fades away.
	FlagSelectedHidden
	FlagTitleBar
	FlagMenu
	FlagEntryPending
	FlagEntryChosen
	FlagMenuFading
	FlagSettled
)

// Has reports whether every bit in f is set.
func (fl Flags) Has(f Flags) bool { return fl&f == f }

// Snapshot is a read-only copy of a session, taken after a transition.
// Snapshots are comparable with ==.
type Snapshot struct {
	Phase Phase
	Flags Flags
	// Card is meaningful only when FlagCardSelected is set.
	Card int
	// Pending is the menu entry waiting for confirmation.
	Pending string
	// Entry is the confirmed menu entry.
	Entry string
}

// Selected returns the picked card, if any.
func (s Snapshot) Selected() (int, bool) {
	return s.Card, s.Flags.Has(FlagCardSelected)
}

// IsSelected reports whether id is the picked card.
func (s Snapshot) IsSelected(id int) bool {
	c, ok := s.Selected()
	return ok && c == id
}

// CardPresent reports whether card id is still part of the stage layout.
func (s Snapshot) CardPresent(id int) bool {
	if s.IsSelected(id) {
		return !s.Flags.Has(FlagSelectedHidden)
	}
	return !s.Flags.Has(FlagSiblingsHidden)
}

// CardFading reports whether card id is running its exit animation during the
// current phase.
func (s Snapshot) CardFading(id int) bool {
	if s.IsSelected(id) {
		return s.Phase == Centering
	}
	_, picked := s.Selected()
	return picked && s.Phase == SiblingsFading
}

// CardRecolored reports whether id is the picked card and its color change
// has finished.
func (s Snapshot) CardRecolored(id int) bool {
	return s.IsSelected(id) && s.Flags.Has(FlagRecolored)
}

// TitleBarVisible reports whether the title bar is on stage. It leaves
// together with the menu.
func (s Snapshot) TitleBarVisible() bool {
	return s.Flags.Has(FlagTitleBar) && !s.Flags.Has(FlagMenuFading)
}

// MenuVisible reports whether the menu is on stage.
func (s Snapshot) MenuVisible() bool {
	return s.Flags.Has(FlagMenu) && !s.Flags.Has(FlagMenuFading)
}

// TitleText is the text shown inside the title bar.
func (s Snapshot) TitleText() string {
	if s.Flags.Has(FlagEntryChosen) {
		return s.Entry
	}
	return ""
}

// EntryChosen reports whether label is the confirmed menu entry.
func (s Snapshot) EntryChosen(label string) bool {
	return s.Flags.Has(FlagEntryChosen) && s.Entry == label
}

// Done reports whether the session reached the terminal phase.
func (s Snapshot) Done() bool { return s.Phase == Terminal }
