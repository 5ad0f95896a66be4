// Package script loads timed input events for headless sessions.
package script

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/san-kum/deckmenu/internal/deck"
	"gopkg.in/yaml.v3"
)

// Script is a scripted session: a list of user inputs at fixed offsets.
type Script struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one user input. Exactly one of Card or Menu is set.
type Step struct {
	At   time.Duration `yaml:"at"`
	Card *int          `yaml:"card,omitempty"`
	Menu string        `yaml:"menu,omitempty"`
}

func (s Step) String() string {
	if s.Card != nil {
		return fmt.Sprintf("%v selectCard(%d)", s.At, *s.Card)
	}
	return fmt.Sprintf("%v selectMenuEntry(%q)", s.At, s.Menu)
}

// CardStep builds a card selection step.
func CardStep(at time.Duration, id int) Step {
	return Step{At: at, Card: &id}
}

// MenuStep builds a menu selection step.
func MenuStep(at time.Duration, label string) Step {
	return Step{At: at, Menu: label}
}

// Default picks card 2 and then the second menu entry once the menu is up.
func Default() *Script {
	return &Script{
		Name:        "default",
		Description: "pick card 2, then the second menu entry",
		Steps: []Step{
			CardStep(0, 2),
			MenuStep(5*time.Second, "選單 2"),
		},
	}
}

// Load reads a script from a YAML file. Steps are validated and sorted by
// offset.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a script from YAML.
func Parse(data []byte) (*Script, error) {
	var sc Script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	sc.Sort()
	return &sc, nil
}

// Validate checks that every step names exactly one known input. Unknown
// identifiers are rejected here so a script never feeds the sequencer a
// contract violation.
func (sc *Script) Validate() error {
	if len(sc.Steps) == 0 {
		return fmt.Errorf("script %q has no steps", sc.Name)
	}
	for i, st := range sc.Steps {
		switch {
		case st.At < 0:
			return fmt.Errorf("step %d: negative offset %v", i+1, st.At)
		case st.Card != nil && st.Menu != "":
			return fmt.Errorf("step %d: both card and menu set", i+1)
		case st.Card != nil:
			if _, ok := deck.CardByID(*st.Card); !ok {
				return fmt.Errorf("step %d: unknown card %d", i+1, *st.Card)
			}
		case st.Menu != "":
			if deck.MenuIndex(st.Menu) < 0 {
				return fmt.Errorf("step %d: unknown menu entry %q", i+1, st.Menu)
			}
		default:
			return fmt.Errorf("step %d: neither card nor menu set", i+1)
		}
	}
	return nil
}

// Sort orders steps by offset, keeping file order for equal offsets.
func (sc *Script) Sort() {
	sort.SliceStable(sc.Steps, func(i, j int) bool {
		return sc.Steps[i].At < sc.Steps[j].At
	})
}

// Save writes the script as YAML.
func Save(path string, sc *Script) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
