package runner

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/san-kum/deckmenu/internal/script"
	"github.com/san-kum/deckmenu/internal/sequencer"
)

func TestEnsembleVirtual(t *testing.T) {
	e := &Ensemble{NumRuns: 64, SeedStart: 1, Workers: 4}
	results, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 64 {
		t.Fatalf("expected 64 results, got %d", len(results))
	}

	for _, r := range results {
		final := r.Result.Final
		if _, ok := final.Selected(); !ok && final.Phase != sequencer.Idle {
			t.Errorf("seed %d: phase %s without a card", r.Seed, final.Phase)
		}
		// every script picks a card, so the card sequence always completes
		if final.Phase < sequencer.MenuRevealing {
			t.Errorf("seed %d: stopped at %s", r.Seed, final.Phase)
		}
		if final.Done() && final.TitleText() == "" {
			t.Errorf("seed %d: settled without a title", r.Seed)
		}
		for i := 1; i < len(r.Result.Events); i++ {
			if r.Result.Events[i].To <= r.Result.Events[i-1].To {
				t.Errorf("seed %d: phase went backwards", r.Seed)
			}
		}
	}
}

func TestEnsembleDeterministic(t *testing.T) {
	a := script.Random(rand.New(rand.NewSource(7)), 5*time.Second)
	b := script.Random(rand.New(rand.NewSource(7)), 5*time.Second)
	if len(a.Steps) != len(b.Steps) {
		t.Fatal("same seed must give the same script")
	}
	for i := range a.Steps {
		if a.Steps[i].String() != b.Steps[i].String() {
			t.Errorf("step %d differs: %s vs %s", i, a.Steps[i], b.Steps[i])
		}
	}
	if err := a.Validate(); err != nil {
		t.Errorf("random script invalid: %v", err)
	}
}

func TestEnsembleRejectsEmpty(t *testing.T) {
	if _, err := (&Ensemble{}).Run(context.Background()); err == nil {
		t.Error("expected error for zero runs")
	}
}
