package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/deckmenu/internal/sequencer"
	"github.com/san-kum/deckmenu/internal/trace"
	"github.com/spf13/cobra"
)

func TestPhaseSamples(t *testing.T) {
	events := []trace.Event{
		{At: 0, From: sequencer.Idle, To: sequencer.Recoloring},
		{At: 1500 * time.Millisecond, From: sequencer.Recoloring, To: sequencer.SiblingsFading},
	}
	data := phaseSamples(events, 500*time.Millisecond)

	// 0, 0.5, 1.0, 1.5 and one sample past the end
	if len(data) != 5 {
		t.Fatalf("expected 5 samples, got %d", len(data))
	}
	want := []float64{1, 1, 1, 2, 2}
	for i, v := range want {
		if data[i] != v {
			t.Errorf("sample %d: expected %v, got %v", i, v, data[i])
		}
	}
}

func TestLoadConfigLayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deckmenu.yaml")
	if err := os.WriteFile(path, []byte("fps: 50\n"), 0644); err != nil {
		t.Fatal(err)
	}
	oldPreset, oldFile := preset, configFile
	t.Cleanup(func() { preset, configFile = oldPreset, oldFile })
	preset, configFile = "retro", path
	t.Setenv("DECKMENU_LOG_LEVEL", "warn")

	cmd := &cobra.Command{}
	cmd.Flags().StringVar(&dataDir, "data", "", "")
	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Theme != "retro" || cfg.FPS != 50 || cfg.Log.Level != "warn" {
		t.Errorf("expected retro preset, file fps and env level, got %+v", cfg)
	}

	if err := cmd.Flags().Set("data", "elsewhere"); err != nil {
		t.Fatal(err)
	}
	cfg, err = loadConfig(cmd)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DataDir != "elsewhere" || cfg.Theme != "retro" {
		t.Errorf("flag should override only data dir, got %+v", cfg)
	}
}
