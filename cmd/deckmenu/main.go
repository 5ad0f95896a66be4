package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/deckmenu/internal/config"
	"github.com/san-kum/deckmenu/internal/deck"
	"github.com/san-kum/deckmenu/internal/export"
	"github.com/san-kum/deckmenu/internal/logutil"
	"github.com/san-kum/deckmenu/internal/runner"
	"github.com/san-kum/deckmenu/internal/script"
	"github.com/san-kum/deckmenu/internal/sequencer"
	"github.com/san-kum/deckmenu/internal/trace"
	"github.com/san-kum/deckmenu/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	dataDir    string
	preset     string
	theme      string
	logLevel   string
	// tui
	frameRate int
	// run
	realtime bool
	save     bool
	timeout  time.Duration
	// timeline
	resolution time.Duration
	// bench
	seed    int64
	workers int
	// export-svg
	svgKind string
	svgOut  string
)

// main registers the deckmenu commands and runs the interactive widget when
// no subcommand is given. It exits with status 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "deckmenu",
		Short:        "card selection and menu widget",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "", "color theme")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.Flags().IntVar(&frameRate, "fps", 0, "frame rate")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal widget",
		RunE:  runTUI,
	}
	tuiCmd.Flags().IntVar(&frameRate, "fps", 0, "frame rate")

	runCmd := &cobra.Command{
		Use:   "run [script.yaml]",
		Short: "play a scripted session headless",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScript,
	}
	runCmd.Flags().BoolVar(&realtime, "realtime", false, "run on wall-clock time instead of virtual time")
	runCmd.Flags().BoolVar(&save, "save", false, "store the session trace")
	runCmd.Flags().DurationVar(&timeout, "timeout", runner.DefaultTimeout, "give up on a real-time session after this long")

	benchCmd := &cobra.Command{
		Use:   "bench [runs]",
		Short: "play many random scripts and summarise the outcomes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchSessions,
	}
	benchCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "first random seed")
	benchCmd.Flags().IntVar(&workers, "workers", 0, "concurrent sessions (default GOMAXPROCS)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored traces",
		RunE:  listTraces,
	}

	timelineCmd := &cobra.Command{
		Use:   "timeline [trace_id]",
		Short: "plot the phase timeline of a trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotTimeline,
	}
	timelineCmd.Flags().DurationVar(&resolution, "resolution", 50*time.Millisecond, "sample interval")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [trace_id]",
		Short: "export a trace to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [trace_id]",
		Short: "render a trace as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgKind, "kind", "timeline", "what to draw: timeline, deck or braille")
	exportSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default stdout)")

	deckCmd := &cobra.Command{
		Use:   "deck",
		Short: "show the cards and menu entries",
		RunE:  showDeck,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-8s theme=%s fps=%d log=%s\n", name, p.Theme, p.FPS, p.Log.Level)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file with default values",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(tuiCmd, runCmd, benchCmd, listCmd, timelineCmd, exportJSONCmd, exportSVGCmd, deckCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers defaults, preset, config file, DECKMENU_* environment
// and flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("data") {
		cfg.DataDir = dataDir
	}
	if cmd.Flags().Changed("theme") {
		cfg.Theme = theme
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if f := cmd.Flags().Lookup("fps"); f != nil && f.Changed {
		cfg.FPS = frameRate
	}
	if f := cmd.Flags().Lookup("realtime"); f != nil && f.Changed {
		cfg.Run.Realtime = realtime
	}
	if f := cmd.Flags().Lookup("save"); f != nil && f.Changed {
		cfg.Run.Save = save
	}
	return cfg, cfg.Validate()
}

// cliLogger logs to stderr for commands that do not own the terminal.
func cliLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := logutil.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger := logutil.NewLogger(os.Stderr, level)
	slog.SetDefault(logger)
	return logger, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	level, err := logutil.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}

	// bubbletea owns the terminal, so logs go to a file
	logger := slog.New(slog.DiscardHandler)
	if path := cfg.LogPath(); path != "" {
		f, err := logutil.OpenFile(path)
		if err != nil {
			return err
		}
		defer f.Close()
		logger = logutil.NewLogger(f, level)
	}
	slog.SetDefault(logger)

	logger.Info("starting tui", "theme", cfg.Theme, "fps", cfg.FPS)
	return viz.Run(viz.Options{
		Theme:  cfg.Theme,
		FPS:    cfg.FPS,
		Logger: logger,
	})
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := cliLogger(cfg)
	if err != nil {
		return err
	}

	sc := script.Default()
	if len(args) > 0 {
		sc, err = script.Load(args[0])
		if err != nil {
			return err
		}
	}

	mode := "virtual"
	if cfg.Run.Realtime {
		mode = "realtime"
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running script %s (%s time)...\n", sc.Name, mode)
	start := time.Now()

	res, err := runner.Run(ctx, sc, runner.Options{
		Realtime: cfg.Run.Realtime,
		Timeout:  timeout,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start).Round(time.Millisecond))
	fmt.Println("\nsteps:")
	for _, st := range res.Steps {
		status := "accepted"
		if !st.Accepted {
			status = "ignored"
		}
		fmt.Printf("  %-32s %s\n", st.Step, status)
	}

	fmt.Println("\ntimeline:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, ev := range res.Events {
		fmt.Fprintf(w, "  %7.3fs\t%s\t→ %s\n", ev.At.Seconds(), ev.From, ev.To)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nfinal phase: %s\n", res.Final.Phase)
	if card, ok := res.Final.Selected(); ok {
		fmt.Printf("card: %d\n", card)
	}
	if title := res.Final.TitleText(); title != "" {
		fmt.Printf("title: %s\n", title)
	}

	fmt.Println("\nmetrics:")
	for _, name := range slices.Sorted(maps.Keys(res.Metrics)) {
		fmt.Printf("  %s: %.3f\n", name, res.Metrics[name])
	}

	if !cfg.Run.Save {
		return nil
	}
	st := trace.New(cfg.TraceDir())
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(trace.Metadata{Script: sc.Name, Mode: mode, Metrics: res.Metrics}, res.Events)
	if err != nil {
		return err
	}
	fmt.Printf("trace id: %s\n", id)
	return nil
}

func benchSessions(cmd *cobra.Command, args []string) error {
	runs := 100
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid run count: %s", args[0])
		}
		runs = n
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := cliLogger(cfg)
	if err != nil {
		return err
	}

	e := &runner.Ensemble{
		NumRuns:   runs,
		SeedStart: seed,
		Workers:   workers,
		Options:   runner.Options{Logger: logger},
	}

	fmt.Printf("playing %d random sessions...\n", runs)
	start := time.Now()
	results, err := e.Run(cmd.Context())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	phases := make(map[sequencer.Phase]int)
	entries := make(map[string]int)
	var accepted, ignored int
	var settle float64
	for _, r := range results {
		phases[r.Result.Final.Phase]++
		if t := r.Result.Final.TitleText(); t != "" {
			entries[t]++
		}
		for _, st := range r.Result.Steps {
			if st.Accepted {
				accepted++
			} else {
				ignored++
			}
		}
		if v := r.Result.Metrics["time_to_settle"]; v > 0 {
			settle += v
		}
	}

	fmt.Printf("completed in %v\n", elapsed.Round(time.Millisecond))
	fmt.Printf("inputs: %d accepted, %d ignored\n", accepted, ignored)

	fmt.Println("\nfinal phases:")
	for _, p := range sequencer.Phases() {
		if n := phases[p]; n > 0 {
			fmt.Printf("  %-24s %d\n", p, n)
		}
	}
	fmt.Println("\nchosen entries:")
	for _, label := range deck.MenuEntries() {
		fmt.Printf("  %s  %d\n", label, entries[label])
	}
	if n := phases[sequencer.Terminal]; n > 0 {
		fmt.Printf("\nmean time to settle: %.3fs\n", settle/float64(n))
	}
	return nil
}

func listTraces(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := trace.New(cfg.TraceDir())
	traces, err := st.List()
	if err != nil {
		return err
	}

	if len(traces) == 0 {
		fmt.Println("no traces found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCRIPT\tMODE\tTIME\tCARD\tENTRY\tFINAL\tELAPSED")
	for _, t := range traces {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\t%.3fs\n",
			t.ID,
			t.Script,
			t.Mode,
			t.Timestamp.Format("2006-01-02 15:04:05"),
			t.Card,
			t.Entry,
			t.FinalPhase,
			t.Elapsed,
		)
	}
	return w.Flush()
}

func plotTimeline(cmd *cobra.Command, args []string) error {
	traceID := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := trace.New(cfg.TraceDir())
	meta, err := st.Load(traceID)
	if err != nil {
		return err
	}
	events, err := st.LoadEvents(traceID)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return fmt.Errorf("no data to plot")
	}
	if resolution <= 0 {
		return fmt.Errorf("resolution must be positive")
	}

	fmt.Printf("trace: %s\n", meta.ID)
	fmt.Printf("script: %s (%s)\n", meta.Script, meta.Mode)
	fmt.Printf("transitions: %d\n\n", len(events))

	data := phaseSamples(events, resolution)
	graph := asciigraph.Plot(data,
		asciigraph.Height(len(sequencer.Phases())-1),
		asciigraph.Width(80),
		asciigraph.Precision(0),
		asciigraph.Caption("phase index vs time"),
	)
	fmt.Println(graph)
	fmt.Println()

	for _, p := range sequencer.Phases() {
		fmt.Printf("  %d %s\n", int(p), p)
	}
	return nil
}

// phaseSamples steps through the trace every dt and records the phase index
// in effect, ending one sample after the last transition.
func phaseSamples(events []trace.Event, dt time.Duration) []float64 {
	end := events[len(events)-1].At
	data := make([]float64, 0, int(end/dt)+2)
	phase := events[0].From
	next := 0
	for t := time.Duration(0); t <= end+dt; t += dt {
		for next < len(events) && events[next].At <= t {
			phase = events[next].To
			next++
		}
		data = append(data, float64(phase))
	}
	return data
}

type traceJSON struct {
	*trace.Metadata
	Events []eventJSON `json:"events"`
}

type eventJSON struct {
	At    float64 `json:"t"`
	From  string  `json:"from"`
	To    string  `json:"to"`
	Card  int     `json:"card"`
	Entry string  `json:"entry,omitempty"`
}

func exportJSON(cmd *cobra.Command, args []string) error {
	traceID := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := trace.New(cfg.TraceDir())
	meta, err := st.Load(traceID)
	if err != nil {
		return err
	}
	events, err := st.LoadEvents(traceID)
	if err != nil {
		return err
	}

	out := traceJSON{Metadata: meta, Events: make([]eventJSON, len(events))}
	for i, ev := range events {
		out.Events[i] = eventJSON{
			At:    ev.At.Seconds(),
			From:  ev.From.String(),
			To:    ev.To.String(),
			Card:  ev.Card,
			Entry: ev.Entry,
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	traceID := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := trace.New(cfg.TraceDir())
	meta, err := st.Load(traceID)
	if err != nil {
		return err
	}
	th := viz.GetTheme(cfg.Theme)

	var svg string
	switch svgKind {
	case "timeline":
		events, err := st.LoadEvents(traceID)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return fmt.Errorf("no data to plot")
		}
		svg = export.TimelineSVG(events, 800, 300, th)
	case "deck":
		svg = export.DeckSVG(meta.Card, th)
	case "braille":
		c, ok := deck.CardByID(meta.Card)
		if !ok {
			return fmt.Errorf("trace %s has no selected card", meta.ID)
		}
		lines, err := viz.ParsePath(c.Path)
		if err != nil {
			return err
		}
		cv := viz.NewCanvas(40, 20)
		cv.Plot(lines)
		svg = export.CanvasToSVG(cv, 4, th)
	default:
		return fmt.Errorf("unknown svg kind: %s (available: timeline, deck, braille)", svgKind)
	}

	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func showDeck(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tANCHOR\tDELAY\tPATH")
	for _, c := range deck.Cards() {
		fmt.Fprintf(w, "%d\t%s\t%.1fs\t%s\n", c.ID, c.Anchor, c.Delay, c.Path)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nmenu:")
	for _, e := range deck.MenuEntries() {
		fmt.Printf("  %s\n", e)
	}

	fmt.Println("\nchoreography:")
	for _, p := range sequencer.Phases() {
		d, ok := sequencer.Delay(p)
		switch {
		case ok && sequencer.AwaitsInput(p):
			fmt.Printf("  %-24s waits for a pick, then %v\n", p, d)
		case ok:
			fmt.Printf("  %-24s %v\n", p, d)
		case sequencer.AwaitsInput(p):
			fmt.Printf("  %-24s waits for a pick\n", p)
		}
	}
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "deckmenu.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
