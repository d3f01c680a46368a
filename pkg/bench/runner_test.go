package bench

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLogger creates a logger for tests that discards output.
func newTestLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingTarget registers a target that counts its invocations.
func countingTarget(t *testing.T, reg *Registry, name string, calls *int) {
	t.Helper()
	require.NoError(t, reg.Register(name, func() (Shape, error) {
		*calls++
		return Shape{Rows: 10, Cols: 2}, nil
	}))
}

func TestRun_OneMeasurementPerTargetPerIteration(t *testing.T) {
	reg := NewRegistry()
	var aCalls, bCalls, cCalls int
	countingTarget(t, reg, "a", &aCalls)
	countingTarget(t, reg, "b", &bCalls)
	countingTarget(t, reg, "c", &cCalls)

	const iterations = 4
	runner := NewRunner(newTestLogger(t))
	log, err := runner.Run(context.Background(), reg, RunConfig{Iterations: iterations})
	require.NoError(t, err)

	require.Len(t, log, iterations*reg.Len())
	assert.Equal(t, iterations, aCalls)
	assert.Equal(t, iterations, bCalls)
	assert.Equal(t, iterations, cCalls)

	// Outer loop by iteration, inner loop in registration order.
	names := reg.Names()
	for idx, m := range log {
		assert.Equal(t, idx/len(names), m.Iteration, "log[%d] iteration", idx)
		assert.Equal(t, names[idx%len(names)], m.Target, "log[%d] target", idx)
	}
}

func TestRun_InvalidIterations(t *testing.T) {
	reg := NewRegistry()
	var calls int
	countingTarget(t, reg, "a", &calls)
	runner := NewRunner(newTestLogger(t))

	for _, iterations := range []int{0, -1, -5} {
		log, err := runner.Run(context.Background(), reg, RunConfig{Iterations: iterations})
		require.Error(t, err, "iterations=%d", iterations)

		var invalid *InvalidConfigError
		assert.True(t, errors.As(err, &invalid), "iterations=%d", iterations)
		assert.Empty(t, log)
	}
	// Validation happens before any invocation.
	assert.Equal(t, 0, calls)
}

func TestRun_EmptyRegistry(t *testing.T) {
	runner := NewRunner(newTestLogger(t))

	for _, reg := range []*Registry{nil, NewRegistry()} {
		_, err := runner.Run(context.Background(), reg, RunConfig{Iterations: 1})
		var invalid *InvalidConfigError
		assert.True(t, errors.As(err, &invalid))
	}
}

func TestRun_NegativeWarmup(t *testing.T) {
	reg := NewRegistry()
	var calls int
	countingTarget(t, reg, "a", &calls)
	runner := NewRunner(newTestLogger(t))

	_, err := runner.Run(context.Background(), reg, RunConfig{Iterations: 1, Warmup: -1})
	var invalid *InvalidConfigError
	assert.True(t, errors.As(err, &invalid))
	assert.Equal(t, 0, calls)
}

func TestRun_FailingTargetDoesNotAbort(t *testing.T) {
	reg := NewRegistry()
	var goodCalls int
	countingTarget(t, reg, "good", &goodCalls)
	require.NoError(t, reg.Register("bad", func() (Shape, error) {
		return Shape{}, errors.New("always fails")
	}))

	const iterations = 2
	runner := NewRunner(newTestLogger(t))
	log, err := runner.Run(context.Background(), reg, RunConfig{Iterations: iterations})
	require.NoError(t, err)

	// One entry per (target, iteration) pair, failed or not.
	require.Len(t, log, iterations*2)
	assert.Equal(t, iterations, goodCalls)

	var failures int
	for _, m := range log {
		if m.Failed() {
			failures++
			assert.Equal(t, "bad", m.Target)
		}
	}
	assert.Equal(t, iterations, failures)
}

func TestRun_WarmupNotRecorded(t *testing.T) {
	reg := NewRegistry()
	var calls int
	countingTarget(t, reg, "a", &calls)

	runner := NewRunner(newTestLogger(t))
	log, err := runner.Run(context.Background(), reg, RunConfig{Iterations: 1, Warmup: 2})
	require.NoError(t, err)

	// Two warmup passes plus one measured pass, but only the measured pass
	// is in the log.
	assert.Equal(t, 3, calls)
	assert.Len(t, log, 1)
}

func TestRun_CancelledBetweenInvocations(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg := NewRegistry()
	require.NoError(t, reg.Register("canceller", func() (Shape, error) {
		cancel()
		return Shape{Rows: 1, Cols: 1}, nil
	}))
	var calls int
	countingTarget(t, reg, "after", &calls)

	runner := NewRunner(newTestLogger(t))
	log, err := runner.Run(ctx, reg, RunConfig{Iterations: 3})
	require.ErrorIs(t, err, context.Canceled)

	// The in-flight invocation completes and is recorded; the next target in
	// the same iteration never starts.
	require.Len(t, log, 1)
	assert.Equal(t, "canceller", log[0].Target)
	assert.Equal(t, 0, calls)
}
