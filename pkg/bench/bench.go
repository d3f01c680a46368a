// Package bench implements the measurement core of tablebench: a registry of
// named read targets, a timer that wraps single invocations, and a runner that
// drives iterations and collects measurements.
//
// The harness knows nothing about file formats. A target is an opaque nullary
// operation that reads some fixed input into an in-memory table and reports the
// table's shape; the concrete readers live in pkg/targets.
package bench

// Shape summarizes the table produced by one target invocation: row and column
// counts. It exists for display and sanity checks only and is never compared
// across targets, since different readers legitimately disagree about headers
// and ragged rows.
type Shape struct {
	Rows int
	Cols int
}

// ReadFunc reads the input artifact into an in-memory table and reports its
// shape. Implementations are supplied by whoever registers the target; the
// harness treats them as black boxes that may block on I/O for as long as they
// like.
type ReadFunc func() (Shape, error)

// Target is a named read operation under comparative measurement.
type Target struct {
	Name string
	Read ReadFunc
}
