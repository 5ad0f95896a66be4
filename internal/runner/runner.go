// Package runner plays a script against a fresh session, either on virtual
// time or on a real-time event loop.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/deckmenu/internal/metrics"
	"github.com/san-kum/deckmenu/internal/script"
	"github.com/san-kum/deckmenu/internal/sequencer"
	"github.com/san-kum/deckmenu/internal/trace"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds a real-time session that never reaches the terminal
// phase, for example when the script never picks a menu entry.
const DefaultTimeout = 15 * time.Second

type Options struct {
	Realtime bool
	Timeout  time.Duration
	Logger   *slog.Logger
}

// StepResult reports whether a scripted input was accepted.
type StepResult struct {
	Step     script.Step
	Accepted bool
}

type Result struct {
	Final   sequencer.Snapshot
	Steps   []StepResult
	Events  []trace.Event
	Elapsed time.Duration
	Metrics map[string]float64
}

// Run plays sc against a new session and returns the recorded timeline.
func Run(ctx context.Context, sc *script.Script, opts Options) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Realtime {
		return runRealtime(ctx, sc, opts)
	}
	return runVirtual(sc, opts)
}

func apply(seq *sequencer.Sequencer, st script.Step) (bool, error) {
	if st.Card != nil {
		return seq.SelectCard(*st.Card)
	}
	return seq.SelectMenuEntry(st.Menu)
}

func runVirtual(sc *script.Script, opts Options) (*Result, error) {
	clk := sequencer.NewManualClock()
	rec := trace.NewRecorder(clk.Now)
	seq := sequencer.New(clk, sequencer.WithLogger(opts.Logger), sequencer.WithObserver(rec))
	defer seq.Close()

	res := &Result{Steps: make([]StepResult, 0, len(sc.Steps))}
	for i, st := range sc.Steps {
		clk.AdvanceTo(st.At)
		ok, err := apply(seq, st)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		res.Steps = append(res.Steps, StepResult{Step: st, Accepted: ok})
	}
	clk.RunUntilIdle()

	res.Final = seq.Snapshot()
	res.Events = rec.Events()
	res.Elapsed = clk.Now()
	res.Metrics = metrics.Compute(res.Events, metrics.Default()...)
	return res, nil
}

var errSettled = errors.New("session settled")

func runRealtime(ctx context.Context, sc *script.Script, opts Options) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	start := time.Now()
	loop := NewLoop(opts.Logger)
	rec := trace.NewRecorder(func() time.Duration {
		return time.Since(start).Round(time.Millisecond)
	})
	seq := sequencer.New(loop, sequencer.WithLogger(opts.Logger), sequencer.WithObserver(rec))

	settled := make(chan struct{})
	seq.AddObserver(sequencer.ObserverFunc(func(tr sequencer.Transition) {
		if tr.To == sequencer.Terminal {
			close(settled)
		}
	}))

	res := &Result{Steps: make([]StepResult, len(sc.Steps))}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return loop.Run(gctx) })

	g.Go(func() error {
		for i, st := range sc.Steps {
			wait := time.NewTimer(time.Until(start.Add(st.At)))
			select {
			case <-gctx.Done():
				wait.Stop()
				return nil
			case <-wait.C:
			}

			errc := make(chan error, 1)
			if !loop.Post(func() {
				ok, err := apply(seq, st)
				res.Steps[i] = StepResult{Step: st, Accepted: ok}
				errc <- err
			}) {
				return nil
			}
			select {
			case err := <-errc:
				if err != nil {
					return fmt.Errorf("step %d: %w", i+1, err)
				}
			case <-gctx.Done():
				return nil
			}
		}

		select {
		case <-settled:
			return errSettled
		case <-gctx.Done():
			return nil
		}
	})

	err := g.Wait()

	// The loop goroutine has returned, so reading session state is safe.
	seq.Close()
	switch {
	case errors.Is(err, errSettled):
	case errors.Is(err, context.DeadlineExceeded):
		opts.Logger.Warn("session did not settle before timeout", "timeout", opts.Timeout, "phase", seq.Phase())
	case err != nil && !errors.Is(err, context.Canceled):
		return nil, err
	case ctx.Err() != nil && !errors.Is(ctx.Err(), context.DeadlineExceeded):
		return nil, ctx.Err()
	}

	res.Final = seq.Snapshot()
	res.Events = rec.Events()
	res.Elapsed = rec.Elapsed()
	res.Metrics = metrics.Compute(res.Events, metrics.Default()...)
	return res, nil
}
