package orchestration

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	apperrors "github.com/agbru/pitaylor/internal/errors"
	"github.com/agbru/pitaylor/internal/series"
)

// relativeTolerance is the largest relative difference from the reference
// result that still counts as agreement, per precision.
var relativeTolerance = map[series.Precision]float64{
	series.Float64: 1e-6,
	series.Float32: 1e-2,
}

// ExecuteRuns runs each configuration in turn and collects the results.
//
// Runs are sequential so that their worker pools do not compete for CPUs
// and the reported durations stay comparable.
//
// Parameters:
//   - ctx: The context passed to the engine.
//   - configs: The engine configurations to run.
//   - reporter: The progress reporter (use NullProgressReporter for none).
//   - observer: Receives every outcome. May be nil.
//   - out: The io.Writer for progress display.
//
// Returns:
//   - []RunResult: One result per configuration, in order.
func ExecuteRuns(ctx context.Context, configs []series.Config, reporter ProgressReporter, observer RunObserver, out io.Writer) []RunResult {
	results := make([]RunResult, len(configs))

	reporter.Start(len(configs), out)
	defer reporter.Stop()

	for i, cfg := range configs {
		reporter.Update(i+1, cfg.Label())
		startTime := time.Now()
		res, err := series.Run(ctx, cfg)
		results[i] = RunResult{
			Name:     cfg.Label(),
			Config:   cfg,
			Result:   res,
			Duration: time.Since(startTime),
			Err:      err,
		}
		if observer == nil {
			continue
		}
		if err != nil {
			observer.ObserveFailure(cfg, false)
		} else {
			observer.Observe(res)
		}
	}
	return results
}

// AnalyzeComparisonResults classifies every run against the chunked Kahan
// run of the same precision, presents the table, and reports the global
// status.
//
// A compensated run outside the tolerance is a mismatch and fails the
// comparison. A naive run outside the tolerance is only reported as drift.
//
// Parameters:
//   - results: The run results to analyze. Their Status fields are set.
//   - presenter: The result presenter for display formatting.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []RunResult, presenter ResultPresenter, out io.Writer) int {
	references := referenceResults(results)

	var firstError error
	failed, mismatched, drifted := 0, 0, 0
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			r.Status = StatusFailed
			failed++
			if firstError == nil {
				firstError = r.Err
			}
			continue
		}

		ref, ok := references[r.Config.Precision]
		if !ok || agrees(r.Result.Pi, ref, relativeTolerance[r.Config.Precision]) {
			r.Status = StatusOK
			continue
		}
		if r.Config.Summation == series.Kahan {
			r.Status = StatusMismatch
			mismatched++
		} else {
			r.Status = StatusDrift
			drifted++
		}
	}

	presenter.PresentComparisonTable(results, out)

	switch {
	case failed == len(results):
		fmt.Fprintf(out, "\nGlobal Status: Failure. No configuration could complete the calculation.\n")
		return presenter.HandleError(firstError, out)
	case failed > 0:
		fmt.Fprintf(out, "\nGlobal Status: Failure. %d of %d configurations failed.\n", failed, len(results))
		return presenter.HandleError(firstError, out)
	case mismatched > 0:
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %d compensated results disagree with their reference.\n", mismatched)
		return apperrors.ExitErrorMismatch
	case drifted > 0:
		fmt.Fprintf(out, "\nGlobal Status: Success. %d naive results drifted beyond the tolerance.\n", drifted)
	default:
		fmt.Fprintf(out, "\nGlobal Status: Success. All results are consistent.\n")
	}
	return apperrors.ExitSuccess
}

// referenceResults picks, per precision, the chunked Kahan result, or the
// first successful Kahan result when that one failed.
func referenceResults(results []RunResult) map[series.Precision]float64 {
	refs := make(map[series.Precision]float64)
	for _, r := range results {
		if r.Err != nil || r.Config.Summation != series.Kahan {
			continue
		}
		if _, ok := refs[r.Config.Precision]; !ok || r.Config.Partition == series.Chunked {
			refs[r.Config.Precision] = r.Result.Pi
		}
	}
	return refs
}

func agrees(v, ref, tol float64) bool {
	if ref == 0 {
		return math.Abs(v) <= tol
	}
	return math.Abs(v-ref)/math.Abs(ref) <= tol
}
