package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	apperrors "github.com/agbru/pitaylor/internal/errors"
	"github.com/agbru/pitaylor/internal/format"
	"github.com/agbru/pitaylor/internal/orchestration"
	"github.com/agbru/pitaylor/internal/series"
	"github.com/agbru/pitaylor/internal/ui"
)

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
type CLIResultPresenter struct{}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
)

var comparisonHeaders = []string{"Configuration", "Pi", "|pi - π|", "Duration", "Status"}

// PresentComparisonTable displays the comparison summary as a bordered
// table, one row per configuration in run order.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.RunResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	fmt.Fprintln(out, RenderComparisonTable(results))
}

// RenderComparisonTable returns the comparison table as a string.
func RenderComparisonTable(results []orchestration.RunResult) string {
	theme := ui.GetCurrentTableTheme()
	headerStyle := lipgloss.NewStyle().Foreground(theme.Header).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1)

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, comparisonRow(r, theme))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(comparisonHeaders...).
		Rows(rows...)
	return t.Render()
}

func comparisonRow(r orchestration.RunResult, theme ui.TableTheme) []string {
	status := statusStyle(r.Status, theme).Render(r.Status.String())
	if r.Err != nil {
		return []string{r.Name, "-", "-", format.FormatExecutionDuration(r.Duration), status}
	}
	return []string{
		r.Name,
		FormatPi(r.Result.Pi, r.Config.Precision),
		format.FormatError(r.Result.AbsError()),
		format.FormatExecutionDuration(r.Duration),
		status,
	}
}

func statusStyle(s orchestration.Status, theme ui.TableTheme) lipgloss.Style {
	style := lipgloss.NewStyle()
	switch s {
	case orchestration.StatusOK:
		return style.Foreground(theme.Success)
	case orchestration.StatusDrift:
		return style.Foreground(theme.Dim)
	case orchestration.StatusMismatch, orchestration.StatusFailed:
		return style.Foreground(theme.Error).Bold(true)
	}
	return style
}

// PresentResult displays the result line using DisplayResult.
func (CLIResultPresenter) PresentResult(result series.Result, showTime bool, out io.Writer) {
	DisplayResult(result, showTime, out)
}

// FormatDuration formats a duration for display.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError writes the diagnostic for err in the error color and returns
// its exit code.
func (CLIResultPresenter) HandleError(err error, out io.Writer) int {
	if err == nil {
		return apperrors.ExitSuccess
	}
	fmt.Fprintf(out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	return apperrors.ExitCodeFor(err)
}
