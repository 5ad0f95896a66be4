package script

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/san-kum/deckmenu/internal/deck"
)

// Random builds a script of one to three card picks and one to three menu
// picks at random offsets within horizon. Picks may land out of phase, which
// is the point: they exercise the ignored-input paths.
func Random(rng *rand.Rand, horizon time.Duration) *Script {
	at := func() time.Duration {
		return time.Duration(rng.Int63n(int64(horizon))).Round(10 * time.Millisecond)
	}
	entries := deck.MenuEntries()

	sc := &Script{
		Name:        fmt.Sprintf("random-%d", rng.Int63()),
		Description: "randomly generated",
	}
	for i := rng.Intn(3); i >= 0; i-- {
		sc.Steps = append(sc.Steps, CardStep(at(), rng.Intn(deck.NumCards())))
	}
	for i := rng.Intn(3); i >= 0; i-- {
		sc.Steps = append(sc.Steps, MenuStep(at(), entries[rng.Intn(len(entries))]))
	}
	sc.Sort()
	return sc
}
