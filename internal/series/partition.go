package series

import (
	"fmt"

	apperrors "github.com/agbru/pitaylor/internal/errors"
)

// Assignment is the index progression owned by one worker:
// Start, Start+Stride, Start+2·Stride, … while < End.
type Assignment struct {
	Worker int
	Start  uint64
	End    uint64
	Stride uint64
}

// Terms returns the number of indices in the assignment.
func (a Assignment) Terms() uint64 {
	if a.Stride == 0 || a.Start >= a.End {
		return 0
	}
	return (a.End-a.Start-1)/a.Stride + 1
}

// String renders the assignment as a half-open range with its stride.
func (a Assignment) String() string {
	if a.Stride == 1 {
		return fmt.Sprintf("[%d,%d)", a.Start, a.End)
	}
	return fmt.Sprintf("[%d,%d) step %d", a.Start, a.End, a.Stride)
}

// check verifies the assignment against the partitioner contract. A failure
// here is an internal bug, never a user error.
func (a Assignment) check(steps uint64) error {
	switch {
	case a.Stride == 0:
		return apperrors.ContractError{Worker: a.Worker, Message: "stride is zero"}
	case a.Start > a.End:
		return apperrors.ContractError{Worker: a.Worker, Message: fmt.Sprintf("start %d > end %d", a.Start, a.End)}
	case a.End > steps:
		return apperrors.ContractError{Worker: a.Worker, Message: fmt.Sprintf("end %d exceeds steps %d", a.End, steps)}
	}
	return nil
}

// ValidateParallel enforces the parallel precondition threads >= 1 and
// steps > threads. steps == threads is rejected.
func ValidateParallel(steps, threads uint64) error {
	if threads == 0 {
		return apperrors.ValidationError{Field: "threads", Message: "must be at least 1"}
	}
	if steps <= threads {
		return apperrors.ValidationError{
			Field:   "steps",
			Message: fmt.Sprintf("the number of steps (%d) should be larger than the number of threads (%d)", steps, threads),
		}
	}
	return nil
}

// ValidateSequential enforces steps >= 1.
func ValidateSequential(steps uint64) error {
	if steps == 0 {
		return apperrors.ValidationError{Field: "steps", Message: "must be at least 1"}
	}
	return nil
}

// Partition deals the indices [0, steps) to threads workers according to
// policy. Every index is assigned to exactly one worker.
func Partition(steps, threads uint64, policy PartitionPolicy) ([]Assignment, error) {
	if err := ValidateParallel(steps, threads); err != nil {
		return nil, err
	}

	assignments := make([]Assignment, threads)
	switch policy {
	case Interleaved:
		for t := range threads {
			assignments[t] = Assignment{Worker: int(t), Start: t, End: steps, Stride: threads}
		}
	case Chunked:
		chunk := steps / threads
		for t := range threads {
			end := (t + 1) * chunk
			if t == threads-1 {
				end = steps
			}
			assignments[t] = Assignment{Worker: int(t), Start: t * chunk, End: end, Stride: 1}
		}
	default:
		return nil, apperrors.NewConfigError("unknown partition policy %d", int(policy))
	}
	return assignments, nil
}
