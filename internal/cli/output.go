// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* and Print* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [PrintExecutionConfig].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatResultLine], [FormatTimeLine].

package cli

import (
	"fmt"
	"io"

	"github.com/agbru/pitaylor/internal/format"
	"github.com/agbru/pitaylor/internal/series"
)

// FormatPi renders pi with the significant digits its precision carries.
func FormatPi(pi float64, precision series.Precision) string {
	return format.FormatFloat(pi, precision.Digits(), precision.Bits())
}

// FormatResultLine returns the one-line result without a trailing newline.
// Parallel runs echo steps and threads; sequential runs echo steps only.
//
// Parameters:
//   - res: The engine result.
//
// Returns:
//   - string: The result line.
func FormatResultLine(res series.Result) string {
	pi := FormatPi(res.Pi, res.Precision)
	if res.Sequential {
		return fmt.Sprintf("For %d, pi value: %s", res.Steps, pi)
	}
	return fmt.Sprintf("For %d steps and %d threads, pi value: %s", res.Steps, res.Threads, pi)
}

// FormatTimeLine returns the elapsed-time line without a trailing newline.
func FormatTimeLine(res series.Result) string {
	return fmt.Sprintf("Time: %s ms", format.FormatMilliseconds(res.Duration))
}

// DisplayResult writes the result line to out, followed by the time line
// when showTime is set. The output carries no color so that it stays
// machine-readable.
//
// Parameters:
//   - res: The engine result.
//   - showTime: Whether to print the elapsed time.
//   - out: The output writer.
func DisplayResult(res series.Result, showTime bool, out io.Writer) {
	fmt.Fprintln(out, FormatResultLine(res))
	if showTime {
		fmt.Fprintln(out, FormatTimeLine(res))
	}
}
