package bench

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// RunConfig configures a measurement run.
type RunConfig struct {
	// Iterations is the number of measured passes over the full target set.
	// Must be positive.
	Iterations int

	// Warmup is the number of untimed passes over every target before
	// measurement begins. Warmup invocations are not recorded.
	Warmup int
}

func (cfg RunConfig) validate(reg *Registry) error {
	if cfg.Iterations <= 0 {
		return &InvalidConfigError{Reason: fmt.Sprintf("iterations must be positive, got %d", cfg.Iterations)}
	}
	if cfg.Warmup < 0 {
		return &InvalidConfigError{Reason: fmt.Sprintf("warmup must not be negative, got %d", cfg.Warmup)}
	}
	if reg == nil || reg.Len() == 0 {
		return &InvalidConfigError{Reason: "no targets registered"}
	}
	return nil
}

// Runner drives iterations over a Registry and owns the measurement log.
// Execution is strictly sequential on the calling goroutine: the point is to
// measure latency without contention noise from co-scheduled work.
type Runner struct {
	Logger *slog.Logger
}

// NewRunner creates a Runner. A nil logger discards all output.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{Logger: logger}
}

// Run executes cfg.Iterations passes over reg's targets, producing exactly one
// Measurement per (target, iteration) pair, in chronological execution order.
//
// The outer loop is by iteration: every target completes iteration i before
// any target begins iteration i+1, and within an iteration targets run in
// registration order. This keeps elapsed times for the targets of one
// iteration from being confounded by unrelated background passes of other
// targets. Failed invocations are recorded and the run proceeds; there are no
// retries.
//
// Cancellation is observed only between invocations: a cancelled context
// stops the run at the next invocation boundary and returns the partial log
// together with the context's error. A target that never returns hangs the
// run; there is no per-invocation timeout.
func (r *Runner) Run(ctx context.Context, reg *Registry, cfg RunConfig) ([]Measurement, error) {
	if err := cfg.validate(reg); err != nil {
		return nil, err
	}
	targets := reg.Targets()

	for pass := 0; pass < cfg.Warmup; pass++ {
		for _, t := range targets {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			m := Measure(t, pass)
			r.Logger.Debug("warmup pass",
				"target", t.Name, "pass", pass, "elapsed", m.Elapsed, "error", m.Err)
		}
	}

	log := make([]Measurement, 0, cfg.Iterations*len(targets))
	for i := 0; i < cfg.Iterations; i++ {
		r.Logger.Info("starting iteration", "iteration", i+1, "total", cfg.Iterations)
		for _, t := range targets {
			if err := ctx.Err(); err != nil {
				return log, err
			}
			m := Measure(t, i)
			if m.Failed() {
				r.Logger.Warn("target failed",
					"target", t.Name, "iteration", i, "elapsed", m.Elapsed, "error", m.Err)
			} else {
				r.Logger.Info("measured",
					"target", t.Name, "iteration", i, "elapsed", m.Elapsed,
					"rows", m.Shape.Rows, "cols", m.Shape.Cols)
			}
			log = append(log, m)
		}
	}
	return log, nil
}
