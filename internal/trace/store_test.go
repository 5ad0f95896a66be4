package trace

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/deckmenu/internal/sequencer"
)

func recordSession(t *testing.T) []Event {
	t.Helper()
	clk := sequencer.NewManualClock()
	rec := NewRecorder(clk.Now)
	seq := sequencer.New(clk, sequencer.WithObserver(rec))

	if _, err := seq.SelectCard(2); err != nil {
		t.Fatal(err)
	}
	clk.Advance(5 * time.Second)
	if _, err := seq.SelectMenuEntry("選單 2"); err != nil {
		t.Fatal(err)
	}
	clk.RunUntilIdle()
	return rec.Events()
}

func TestRecorder(t *testing.T) {
	events := recordSession(t)
	if len(events) != 8 {
		t.Fatalf("expected 8 transitions, got %d", len(events))
	}
	if events[0].At != 0 || events[0].To != sequencer.Recoloring {
		t.Errorf("unexpected first event %+v", events[0])
	}
	if events[3].At != 4*time.Second || events[3].To != sequencer.TitleBarRevealing {
		t.Errorf("expected title bar at 4s, got %+v", events[3])
	}
	last := events[len(events)-1]
	if last.To != sequencer.Terminal || last.Entry != "選單 2" || last.Card != 2 {
		t.Errorf("unexpected last event %+v", last)
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	events := recordSession(t)
	id, err := st.Save(Metadata{Script: "test", Mode: "virtual"}, events)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if id == "" {
		t.Error("expected non-empty trace id")
	}

	meta, err := st.Load(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Card != 2 {
		t.Errorf("expected card 2, got %d", meta.Card)
	}
	if meta.FinalPhase != "terminal" {
		t.Errorf("expected terminal, got %s", meta.FinalPhase)
	}
	if meta.Elapsed != 7.0 {
		t.Errorf("expected 7.0s elapsed, got %f", meta.Elapsed)
	}

	loaded, err := st.LoadEvents(id)
	if err != nil {
		t.Fatalf("load events failed: %v", err)
	}
	if diff := cmp.Diff(events, loaded); diff != "" {
		t.Errorf("events changed on disk (-saved +loaded):\n%s", diff)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 traces, got %d", len(runs))
	}

	if _, err := st.Save(Metadata{Script: "empty"}, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 trace, got %d", len(runs))
	}
	if runs[0].Card != -1 || runs[0].FinalPhase != "idle" {
		t.Errorf("unexpected metadata for empty trace %+v", runs[0])
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	id, err := st.Save(Metadata{Script: "test"}, recordSession(t))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{metadataFile, timelineFile} {
		if _, err := os.Stat(filepath.Join(tmpDir, id, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestStoreSaveKeepsInsideDir(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "traces")
	st := New(base)
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"../escape", "a/b", "..", ""} {
		id, err := st.Save(Metadata{Script: name}, recordSession(t))
		if err != nil {
			t.Fatalf("%q: save failed: %v", name, err)
		}
		if filepath.Dir(filepath.Join(base, id)) != base {
			t.Errorf("%q: trace %q is not directly under the store", name, id)
		}
		if _, err := st.Load(id); err != nil {
			t.Errorf("%q: load failed: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "escape")); !os.IsNotExist(err) {
		t.Error("a script name must not create directories outside the store")
	}
}

func TestSafeName(t *testing.T) {
	cases := map[string]string{
		"default":    "default",
		"../x":       ".._x",
		"a/b c":      "a_b_c",
		"..":         "trace",
		"":           "trace",
		"a:b":        "a_b",
		"run-1.demo": "run-1.demo",
	}
	for in, want := range cases {
		if got := safeName(in); got != want {
			t.Errorf("safeName(%q) = %q, want %q", in, got, want)
		}
	}
}
