package cli

import (
	"fmt"
	"io"

	"github.com/agbru/pitaylor/internal/config"
	"github.com/agbru/pitaylor/internal/format"
	"github.com/agbru/pitaylor/internal/metrics"
	"github.com/agbru/pitaylor/internal/series"
	"github.com/agbru/pitaylor/internal/sysmon"
	"github.com/agbru/pitaylor/internal/ui"
)

// PrintExecutionConfig displays the execution configuration and the host
// environment.
//
// Parameters:
//   - cfg: The application configuration.
//   - env: The host description.
//   - out: The writer for the report (stderr).
func PrintExecutionConfig(cfg config.AppConfig, env sysmon.Environment, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	if cfg.Mode == config.ModeSequential {
		fmt.Fprintf(out, "Summing %s%d%s terms sequentially.\n", ui.ColorMagenta(), cfg.Steps, ui.ColorReset())
	} else {
		fmt.Fprintf(out, "Summing %s%d%s terms on %s%d%s workers, %s partition.\n",
			ui.ColorMagenta(), cfg.Steps, ui.ColorReset(),
			ui.ColorMagenta(), cfg.Threads, ui.ColorReset(),
			cfg.Partition)
	}
	fmt.Fprintf(out, "Summation: %s%s%s, precision: %s%s%s (%d significant digits).\n",
		ui.ColorYellow(), cfg.Summation, ui.ColorReset(),
		ui.ColorYellow(), cfg.Precision, ui.ColorReset(), cfg.Precision.Digits())

	physical := "unknown"
	if env.PhysicalCPUs > 0 {
		physical = fmt.Sprint(env.PhysicalCPUs)
	}
	fmt.Fprintf(out, "Environment: %s%d%s logical / %s%s%s physical processors, GOMAXPROCS=%d, Go %s%s%s on %s.\n",
		ui.ColorCyan(), env.LogicalCPUs, ui.ColorReset(),
		ui.ColorCyan(), physical, ui.ColorReset(),
		env.GOMAXPROCS, ui.ColorCyan(), env.GoVersion, ui.ColorReset(), env.Arch)
	fma := "no"
	if env.FMA {
		fma = "yes (naive sums may differ in the last digit across hosts)"
	}
	fmt.Fprintf(out, "Fused multiply-add: %s. Memory in use: %.1f%%.\n", fma, env.Stats.MemPercent)
}

// PrintWorkerReport displays one line per worker: its index range, term
// count, duration and partial sum.
//
// Parameters:
//   - res: The engine result.
//   - out: The writer for the report (stderr).
func PrintWorkerReport(res series.Result, out io.Writer) {
	fmt.Fprintf(out, "\n--- Worker Report ---\n")
	for i, w := range res.Workers {
		partial := "-"
		if i < len(res.Partials) {
			partial = FormatPi(res.Partials[i], res.Precision)
		}
		fmt.Fprintf(out, "%sworker %2d%s  %-28s  %10d terms  %8s  %s  %s\n",
			ui.ColorBlue(), w.Worker, ui.ColorReset(),
			w.Assignment, w.Terms, format.FormatExecutionDuration(w.Duration),
			w.State, partial)
	}
	fmt.Fprintf(out, "Total: %d terms in %s, |pi - π| = %s\n",
		res.TotalTerms(), format.FormatExecutionDuration(res.Duration), format.FormatError(res.AbsError()))
}

// DisplayMemoryStats shows memory statistics for the run.
func DisplayMemoryStats(delta metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %d KiB\n", delta.HeapAlloc/1024)
	fmt.Fprintf(out, "  Allocated (run): %d KiB\n", delta.TotalAlloc/1024)
	fmt.Fprintf(out, "  GC cycles (run): %d\n", delta.NumGC)
	fmt.Fprintf(out, "  GC pause (run):  %.2fms\n", float64(delta.PauseTotalNs)/1e6)
}
