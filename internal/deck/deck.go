// Package deck holds the static layout data of the widget: the four cards and
// the fixed menu entries. Values are built once and never mutated.
package deck

import "fmt"

// Anchor is the corner of the stage a card is fanned out to.
type Anchor int

const (
	TopLeft Anchor = iota
	TopRight
	BottomLeft
	BottomRight
)

func (a Anchor) String() string {
	switch a {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	}
	return fmt.Sprintf("anchor(%d)", int(a))
}

// Top reports whether the anchor sits on the upper edge.
func (a Anchor) Top() bool { return a == TopLeft || a == TopRight }

// Left reports whether the anchor sits on the left edge.
func (a Anchor) Left() bool { return a == TopLeft || a == BottomLeft }

// Card describes one decorative card.
type Card struct {
	ID     int
	Anchor Anchor
	// Delay is the appearance delay in seconds.
	Delay float64
	// Path is an SVG path in a 100x100 viewbox. Purely decorative.
	Path string
}

var cards = [...]Card{
	{ID: 0, Anchor: TopLeft, Delay: 0.1, Path: "M10,20 C40,10 60,40 90,20"},
	{ID: 1, Anchor: TopRight, Delay: 0.4, Path: "M10,10 L90,10 L90,90 L10,90 Z"},
	{ID: 2, Anchor: BottomLeft, Delay: 0.6, Path: "M50,10 L10,90 L90,90 Z"},
	{ID: 3, Anchor: BottomRight, Delay: 0.9, Path: "M10,50 Q50,10 90,50 Q50,90 10,50 Z"},
}

var menuEntries = [...]string{"選單 1", "選單 2", "選單 3"}

// Cards returns a copy of the card set in id order.
func Cards() []Card {
	out := make([]Card, len(cards))
	copy(out, cards[:])
	return out
}

// NumCards is the number of cards in the deck.
func NumCards() int { return len(cards) }

// CardByID looks up a card.
func CardByID(id int) (Card, bool) {
	if id < 0 || id >= len(cards) {
		return Card{}, false
	}
	return cards[id], true
}

// MenuEntries returns a copy of the menu labels in display order.
func MenuEntries() []string {
	out := make([]string, len(menuEntries))
	copy(out, menuEntries[:])
	return out
}

// MenuIndex returns the position of label in the menu, or -1.
func MenuIndex(label string) int {
	for i, e := range menuEntries {
		if e == label {
			return i
		}
	}
	return -1
}
