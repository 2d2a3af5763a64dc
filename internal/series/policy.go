package series

import (
	"strings"

	apperrors "github.com/agbru/pitaylor/internal/errors"
)

// Float is the set of floating-point widths the engine can run in.
type Float interface {
	~float32 | ~float64
}

// PartitionPolicy selects how term indices are dealt to workers.
type PartitionPolicy int

const (
	// Chunked gives worker t the contiguous range [t·⌊S/T⌋, (t+1)·⌊S/T⌋);
	// the last worker's range extends to S.
	Chunked PartitionPolicy = iota
	// Interleaved gives worker t every index n with n mod T == t.
	Interleaved
)

// PartitionPolicies lists every partition policy in display order.
var PartitionPolicies = []PartitionPolicy{Chunked, Interleaved}

func (p PartitionPolicy) String() string {
	switch p {
	case Chunked:
		return "chunked"
	case Interleaved:
		return "interleaved"
	default:
		return "unknown"
	}
}

// ParsePartitionPolicy parses a partition policy name (case-insensitive).
func ParsePartitionPolicy(s string) (PartitionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "chunked", "chunk", "contiguous":
		return Chunked, nil
	case "interleaved", "round-robin", "roundrobin":
		return Interleaved, nil
	}
	return 0, apperrors.NewConfigError("unknown partition policy %q (accepted values: chunked, interleaved)", s)
}

// SummationPolicy selects how a worker accumulates its terms.
type SummationPolicy int

const (
	// Naive adds each term to a running sum.
	Naive SummationPolicy = iota
	// Kahan carries a compensation term that recovers the low-order bits
	// lost by each addition.
	Kahan
)

// SummationPolicies lists every summation policy in display order.
var SummationPolicies = []SummationPolicy{Naive, Kahan}

func (s SummationPolicy) String() string {
	switch s {
	case Naive:
		return "naive"
	case Kahan:
		return "kahan"
	default:
		return "unknown"
	}
}

// ParseSummationPolicy parses a summation policy name (case-insensitive).
func ParseSummationPolicy(s string) (SummationPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "naive":
		return Naive, nil
	case "kahan", "compensated":
		return Kahan, nil
	}
	return 0, apperrors.NewConfigError("unknown summation policy %q (accepted values: naive, kahan)", s)
}

// Precision selects the float width of the computation.
type Precision int

const (
	// Float64 runs the whole computation in IEEE-754 double precision.
	Float64 Precision = iota
	// Float32 runs the whole computation in IEEE-754 single precision.
	Float32
)

// Precisions lists every precision in display order.
var Precisions = []Precision{Float64, Float32}

func (p Precision) String() string {
	switch p {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	default:
		return "unknown"
	}
}

// Bits returns the width of the precision in bits.
func (p Precision) Bits() int {
	if p == Float32 {
		return 32
	}
	return 64
}

// Digits returns the number of significant decimal digits used when printing
// a value of this precision: digits10 + 1.
func (p Precision) Digits() int {
	if p == Float32 {
		return 7
	}
	return 16
}

// ParsePrecision parses a precision name (case-insensitive).
func ParsePrecision(s string) (Precision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "float64", "double", "f64":
		return Float64, nil
	case "float32", "single", "f32":
		return Float32, nil
	}
	return 0, apperrors.NewConfigError("unknown precision %q (accepted values: float64, float32)", s)
}
