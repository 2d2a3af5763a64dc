package orchestration

import (
	"io"
	"time"

	"github.com/agbru/pitaylor/internal/series"
)

// RunResult encapsulates the outcome of a single series evaluation.
// It serves as the shared domain type between orchestration and presentation layers.
type RunResult struct {
	// Name is the policy label of the run (e.g., "chunked/kahan/float64").
	Name string
	// Config is the engine configuration the run used.
	Config series.Config
	// Result is the engine result. It is the zero value if an error occurred.
	Result series.Result
	// Duration is the wall-clock time of the run.
	Duration time.Duration
	// Status is set by AnalyzeComparisonResults.
	Status Status
	// Err contains any error that occurred during the run.
	Err error
}

// Status classifies a run after comparison.
type Status int

const (
	// StatusPending means the run has not been analyzed yet.
	StatusPending Status = iota
	// StatusOK means the run agrees with its reference.
	StatusOK
	// StatusDrift means a naive run left the tolerance. Rounding error in
	// naive sums is expected, so drift is reported but does not fail.
	StatusDrift
	// StatusMismatch means a compensated run disagrees with its reference.
	StatusMismatch
	// StatusFailed means the run returned an error.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusDrift:
		return "Drift"
	case StatusMismatch:
		return "Mismatch"
	case StatusFailed:
		return "Failed"
	}
	return "Pending"
}

// ProgressReporter defines the interface for displaying run progress.
// This interface decouples the orchestration layer from the presentation
// layer. Implementations handle the visual representation (spinners) while
// the orchestration layer coordinates the runs.
type ProgressReporter interface {
	// Start begins displaying progress for total runs.
	Start(total int, out io.Writer)
	// Update reports that run number done (1-based) is starting.
	Update(done int, label string)
	// Stop ends the display. It is always called once after Start.
	Stop()
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
type NullProgressReporter struct{}

// Start does nothing.
func (NullProgressReporter) Start(int, io.Writer) {}

// Update does nothing.
func (NullProgressReporter) Update(int, string) {}

// Stop does nothing.
func (NullProgressReporter) Stop() {}

// RunObserver receives every run outcome, e.g. for metrics.
type RunObserver interface {
	Observe(res series.Result)
	ObserveFailure(cfg series.Config, sequential bool)
}

// ResultPresenter defines the interface for presenting run results.
// This interface decouples the orchestration layer from presentation concerns.
type ResultPresenter interface {
	// PresentComparisonTable displays the comparison summary table.
	PresentComparisonTable(results []RunResult, out io.Writer)

	// PresentResult displays the final result line, and the time line when showTime is set.
	PresentResult(result series.Result, showTime bool, out io.Writer)

	// HandleError reports err and returns the matching exit code.
	HandleError(err error, out io.Writer) int
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}
