package sequencer

import "fmt"

// Phase is a named point in the forward-only choreography.
type Phase int

const (
	Idle Phase = iota
	Recoloring
	SiblingsFading
	Centering
	TitleBarRevealing
	MenuRevealing
	MenuChoiceConfirming
	MenuDismissing
	Terminal
)

var phaseNames = [...]string{
	Idle:                 "idle",
	Recoloring:           "recoloring",
	SiblingsFading:       "siblings-fading",
	Centering:            "centering",
	TitleBarRevealing:    "title-bar-revealing",
	MenuRevealing:        "menu-revealing",
	MenuChoiceConfirming: "menu-choice-confirming",
	MenuDismissing:       "menu-dismissing",
	Terminal:             "terminal",
}

func (p Phase) String() string {
	if p < Idle || p > Terminal {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Phases lists every phase in visiting order.
func Phases() []Phase {
	out := make([]Phase, 0, len(phaseNames))
	for p := Idle; p <= Terminal; p++ {
		out = append(out, p)
	}
	return out
}

// ParsePhase is the inverse of String.
func ParsePhase(s string) (Phase, error) {
	for i, name := range phaseNames {
		if name == s {
			return Phase(i), nil
		}
	}
	return Idle, fmt.Errorf("sequencer: unknown phase %q", s)
}
