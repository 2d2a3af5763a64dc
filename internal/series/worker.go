package series

import (
	"fmt"
	"time"

	apperrors "github.com/agbru/pitaylor/internal/errors"
)

// WorkerState is the lifecycle state of a summation worker.
type WorkerState int

const (
	Created WorkerState = iota
	Running
	Completed
	Failed
)

func (s WorkerState) String() string {
	switch s {
	case Created:
		return "created"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// WorkerReport describes what one worker did. Like the partial sum, it is
// written only by the worker that owns it.
type WorkerReport struct {
	Worker     int
	Assignment Assignment
	State      WorkerState
	Terms      uint64
	Duration   time.Duration
	Err        error
}

// runWorker sums one assignment into slot, which must be the worker's own
// one-element window of the results buffer.
func runWorker[F Float](a Assignment, steps uint64, policy SummationPolicy, slot []F, report *WorkerReport) error {
	report.State = Running
	start := time.Now()

	err := a.check(steps)
	if err == nil && len(slot) != 1 {
		err = apperrors.ContractError{Worker: a.Worker, Message: fmt.Sprintf("result slot has length %d, want 1", len(slot))}
	}
	if err != nil {
		report.State = Failed
		report.Err = err
		report.Duration = time.Since(start)
		return err
	}

	slot[0] = Sum[F](a, policy)
	report.Terms = a.Terms()
	report.Duration = time.Since(start)
	report.State = Completed
	return nil
}
