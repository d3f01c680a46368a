// Package report aggregates tablebench measurements into per-target summaries
// and renders the human-readable comparison report.
//
// Nothing here performs I/O: Render returns a string and the caller decides
// where it goes.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/baiguangmei/tablebench/pkg/bench"
)

// Summary holds the aggregated statistics for one target across a run.
type Summary struct {
	Target   string
	Mean     time.Duration
	Min      time.Duration
	Max      time.Duration
	Samples  int // successful invocations
	Failures int // failed invocations
}

// HasData reports whether at least one invocation of the target succeeded.
// Mean, Min and Max are meaningless when HasData is false; a zero-sample
// target is rendered as "N/A", never as a zero duration.
func (s Summary) HasData() bool { return s.Samples > 0 }

// Summarize groups the measurement log by target and computes per-target
// statistics. Output order follows the registration order given in order, not
// the log's arrival order, so the report stays deterministic even if a future
// variant interleaves execution differently. Failed invocations count toward
// Failures and are excluded from Mean, Min and Max.
func Summarize(log []bench.Measurement, order []string) []Summary {
	byName := make(map[string]*Summary)
	totals := make(map[string]time.Duration)
	for _, m := range log {
		s, ok := byName[m.Target]
		if !ok {
			s = &Summary{Target: m.Target}
			byName[m.Target] = s
		}
		if m.Failed() {
			s.Failures++
			continue
		}
		totals[m.Target] += m.Elapsed
		if s.Samples == 0 || m.Elapsed < s.Min {
			s.Min = m.Elapsed
		}
		if m.Elapsed > s.Max {
			s.Max = m.Elapsed
		}
		s.Samples++
	}

	out := make([]Summary, 0, len(byName))
	for _, name := range order {
		s, ok := byName[name]
		if !ok {
			continue
		}
		if s.Samples > 0 {
			s.Mean = totals[name] / time.Duration(s.Samples)
		}
		out = append(out, *s)
	}
	return out
}

// Ranked returns the summaries sorted ascending by mean elapsed time. Targets
// without data sort last; the sort is stable, so ties keep registration order.
func Ranked(summaries []Summary) []Summary {
	ranked := make([]Summary, len(summaries))
	copy(ranked, summaries)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.HasData() != b.HasData() {
			return a.HasData()
		}
		if !a.HasData() {
			return false
		}
		return a.Mean < b.Mean
	})
	return ranked
}

// Report is everything Render needs to produce the final output.
type Report struct {
	Input      string
	Iterations int
	Host       *HostInfo // optional environment header
	Summaries  []Summary // in registration order
	Log        []bench.Measurement
	Details    bool // include the per-iteration block
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00CED1"))

	targetStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#9B30FF"))

	faintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555"))
)

// Render produces the fixed-format, multi-line report: a header, one line per
// target in registration order, the optional per-iteration detail block, and
// the ranked comparison.
func Render(r Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", titleStyle.Render("Benchmark:"), r.Input)
	fmt.Fprintf(&b, "%s %d\n", titleStyle.Render("Iterations:"), r.Iterations)
	if r.Host != nil {
		fmt.Fprintf(&b, "%s %s\n", titleStyle.Render("Host:"), faintStyle.Render(r.Host.String()))
	}
	b.WriteString(faintStyle.Render(strings.Repeat("-", 40)))
	b.WriteString("\n")

	nameWidth := 0
	for _, s := range r.Summaries {
		if len(s.Target) > nameWidth {
			nameWidth = len(s.Target)
		}
	}
	for _, s := range r.Summaries {
		name := targetStyle.Render(fmt.Sprintf("%-*s", nameWidth, s.Target))
		if !s.HasData() {
			fmt.Fprintf(&b, "%s  %s\n", name,
				failStyle.Render(fmt.Sprintf("N/A (failed %d times)", s.Failures)))
			continue
		}
		line := fmt.Sprintf("mean %s  min %s  max %s  (%d samples, %d failures)",
			formatDuration(s.Mean), formatDuration(s.Min), formatDuration(s.Max),
			s.Samples, s.Failures)
		fmt.Fprintf(&b, "%s  %s\n", name, line)
	}

	if r.Details && len(r.Log) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Details:"))
		b.WriteString("\n")
		for _, m := range r.Log {
			if m.Failed() {
				fmt.Fprintf(&b, "  run %d  %-*s  %s  %s\n",
					m.Iteration+1, nameWidth, m.Target, formatDuration(m.Elapsed),
					failStyle.Render(m.Err.Error()))
				continue
			}
			fmt.Fprintf(&b, "  run %d  %-*s  %s  shape %dx%d\n",
				m.Iteration+1, nameWidth, m.Target, formatDuration(m.Elapsed),
				m.Shape.Rows, m.Shape.Cols)
		}
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Ranking:"))
	b.WriteString("\n")
	for i, s := range Ranked(r.Summaries) {
		if !s.HasData() {
			fmt.Fprintf(&b, "  %d. %-*s  %s\n", i+1, nameWidth, s.Target,
				failStyle.Render("no data"))
			continue
		}
		fmt.Fprintf(&b, "  %d. %-*s  %s\n", i+1, nameWidth, s.Target, formatDuration(s.Mean))
	}

	return b.String()
}

// formatDuration renders durations the way the benchmark's consumers read
// them: seconds with four decimals, matching per-run log output.
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.4fs", d.Seconds())
}
