package trace

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/deckmenu/internal/sequencer"
)

const (
	metadataFile = "metadata.json"
	timelineFile = "timeline.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Metadata summarises one stored session.
type Metadata struct {
	ID          string    `json:"id"`
	Script      string    `json:"script"`
	Mode        string    `json:"mode"`
	Timestamp   time.Time `json:"timestamp"`
	Card        int       `json:"card"`
	Entry       string    `json:"entry,omitempty"`
	FinalPhase  string    `json:"final_phase"`
	Elapsed     float64   `json:"elapsed_s"`
	Transitions int       `json:"transitions"`
	// Metrics is filled by the caller.
	Metrics map[string]float64 `json:"metrics,omitempty"`
}

// Save writes metadata and events under a new trace id. Card, FinalPhase,
// Elapsed and Transitions are filled from events.
func (s *Store) Save(meta Metadata, events []Event) (string, error) {
	u, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("trace id: %w", err)
	}
	id := fmt.Sprintf("%s_%s", safeName(meta.Script), u)
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta.ID = id
	meta.Timestamp = time.Now()
	meta.Card = -1
	meta.FinalPhase = sequencer.Idle.String()
	meta.Transitions = len(events)
	if n := len(events); n > 0 {
		last := events[n-1]
		meta.Card = last.Card
		meta.Entry = last.Entry
		meta.FinalPhase = last.To.String()
		meta.Elapsed = last.At.Seconds()
	}

	metaFile, err := os.Create(filepath.Join(dir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(dir, timelineFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"time", "from", "to", "card", "entry"}); err != nil {
		return "", err
	}
	for _, ev := range events {
		row := []string{
			strconv.FormatFloat(ev.At.Seconds(), 'f', 3, 64),
			ev.From.String(),
			ev.To.String(),
			strconv.Itoa(ev.Card),
			ev.Entry,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return id, nil
}

// List returns stored traces, oldest first.
func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	traces := make([]Metadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		traces = append(traces, *meta)
	}
	sort.Slice(traces, func(i, j int) bool {
		return traces[i].Timestamp.Before(traces[j].Timestamp)
	})
	return traces, nil
}

func (s *Store) Load(id string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadEvents(id string) ([]Event, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, timelineFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 5

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Event{}, nil
	}

	events := make([]Event, 0, len(records)-1)
	for i, rec := range records[1:] {
		secs, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		from, err := sequencer.ParsePhase(rec[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		to, err := sequencer.ParsePhase(rec[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		card, err := strconv.Atoi(rec[3])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		events = append(events, Event{
			At:    time.Duration(secs * float64(time.Second)).Round(time.Millisecond),
			From:  from,
			To:    to,
			Card:  card,
			Entry: rec[4],
		})
	}
	return events, nil
}

// safeName keeps letters, digits, '.', '-' and '_' so a script name can
// never leave the store directory.
func safeName(name string) string {
	out := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, name)
	if strings.Trim(out, "._") == "" {
		return "trace"
	}
	return out
}
