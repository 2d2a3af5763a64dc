//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/pitaylor/internal/orchestration"
)

// ProgressRefreshRate defines the refresh frequency of the spinner.
const ProgressRefreshRate = 100 * time.Millisecond

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// It decouples progress display from a specific spinner implementation,
// which keeps it testable.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	//
	// Parameters:
	//   - suffix: The text string to display.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner. The
// spinner goroutine reads the suffix, so the write holds its lock.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner whose suffix names the run in progress.
type CLIProgressReporter struct {
	s     Spinner
	total int
}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = (*CLIProgressReporter)(nil)

// NewCLIProgressReporter returns a reporter that draws nothing until Start.
func NewCLIProgressReporter() *CLIProgressReporter {
	return &CLIProgressReporter{}
}

// Start shows the spinner on out.
func (r *CLIProgressReporter) Start(total int, out io.Writer) {
	r.total = total
	r.s = newSpinner(spinner.WithWriter(out), spinner.WithHiddenCursor(true))
	r.s.UpdateSuffix(" Computing...")
	r.s.Start()
}

// Update names the run that is starting.
func (r *CLIProgressReporter) Update(done int, label string) {
	if r.s == nil {
		return
	}
	if r.total <= 1 {
		r.s.UpdateSuffix(fmt.Sprintf(" Computing %s...", label))
		return
	}
	r.s.UpdateSuffix(fmt.Sprintf(" [%d/%d] %s", done, r.total, label))
}

// Stop halts and clears the spinner.
func (r *CLIProgressReporter) Stop() {
	if r.s != nil {
		r.s.Stop()
		r.s = nil
	}
}
