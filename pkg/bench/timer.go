package bench

import (
	"fmt"
	"time"
)

// Measurement records one timed, possibly failed, invocation of a target.
// Exactly one Measurement exists per (target, iteration) pair in a completed
// run, whether or not the invocation failed.
type Measurement struct {
	Target    string
	Iteration int
	Elapsed   time.Duration
	Shape     Shape
	Err       error
}

// Failed reports whether the invocation failed.
func (m Measurement) Failed() bool { return m.Err != nil }

// Measure invokes target.Read exactly once and records how long it took.
//
// time.Now and time.Since carry a monotonic clock reading, so wall-clock
// adjustments during a run cannot skew the elapsed time. A failure inside
// Read, whether a returned error or a panic, is captured into the Measurement
// together with the time spent before the failure, and is never propagated:
// one broken target must not abort the run for the others.
func Measure(target Target, iteration int) (m Measurement) {
	m = Measurement{Target: target.Name, Iteration: iteration}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			m.Elapsed = time.Since(start)
			m.Shape = Shape{}
			m.Err = fmt.Errorf("target %s: panic: %v", target.Name, r)
		}
	}()
	shape, err := target.Read()
	m.Elapsed = time.Since(start)
	if err != nil {
		m.Err = fmt.Errorf("target %s: %w", target.Name, err)
		return m
	}
	m.Shape = shape
	return m
}
