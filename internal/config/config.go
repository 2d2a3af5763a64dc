// Package config parses the command line and environment into an AppConfig.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "github.com/agbru/pitaylor/internal/errors"
	"github.com/agbru/pitaylor/internal/logging"
	"github.com/agbru/pitaylor/internal/series"
)

// EnvPrefix is the prefix of every environment variable read by the application.
const EnvPrefix = "PITAYLOR_"

// Mode selects which command-line shape is accepted.
type Mode int

const (
	// ModeParallel accepts "<steps> <threads>".
	ModeParallel Mode = iota
	// ModeSequential accepts "<steps>".
	ModeSequential
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	Mode        Mode
	ProgramName string

	// Steps is the number of series terms to sum.
	Steps uint64
	// Threads is the number of workers (parallel mode only).
	Threads uint64

	Partition series.PartitionPolicy
	Summation series.SummationPolicy
	Precision series.Precision

	// ShowTime prints the elapsed-milliseconds line after the result.
	ShowTime bool
	// Verbose writes the execution report and debug logs to stderr.
	Verbose bool
	// Progress shows a spinner on stderr while the workers run.
	Progress bool
	// Compare runs every policy/precision combination and prints a table.
	Compare bool
	// MetricsFile, when set, receives a Prometheus textfile after the run.
	MetricsFile string
	// NoColor disables ANSI colors.
	NoColor bool
	// Completion, when set, prints a completion script for that shell and exits.
	Completion string
}

// EngineConfig returns the engine configuration for this run.
func (c AppConfig) EngineConfig(logger logging.Logger) series.Config {
	return series.Config{
		Steps:     c.Steps,
		Threads:   c.Threads,
		Partition: c.Partition,
		Summation: c.Summation,
		Precision: c.Precision,
		Logger:    logger,
	}
}

// Synopsis returns the positional-argument synopsis for the mode.
func (c AppConfig) Synopsis() string {
	if c.Mode == ModeSequential {
		return c.ProgramName + " <steps>"
	}
	return c.ProgramName + " <steps> <threads>"
}

// flagValues holds the raw string flags before they are parsed into policies.
type flagValues struct {
	partition string
	summation string
	precision string
}

// ParseConfig parses command-line arguments into an AppConfig.
//
// Priority is: command-line flags > PITAYLOR_* environment variables > defaults.
// Positional arguments are never read from the environment.
//
// Parameters:
//   - programName: The name of the program (used in usage messages).
//   - args: The command-line arguments, excluding the program name.
//   - errWriter: The writer that receives usage output.
//   - mode: The command-line shape to accept.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp for --help, otherwise a usage, parse or validation error.
func ParseConfig(programName string, args []string, errWriter io.Writer, mode Mode) (AppConfig, error) {
	cfg := AppConfig{Mode: mode, ProgramName: filepath.Base(programName)}
	var raw flagValues

	fs := flag.NewFlagSet(cfg.ProgramName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags] %s\n\nFlags:\n", cfg.ProgramName, strings.TrimPrefix(cfg.Synopsis(), cfg.ProgramName+" "))
		fs.PrintDefaults()
	}

	if mode == ModeParallel {
		fs.StringVar(&raw.partition, "partition", series.Chunked.String(), "Partition policy: chunked or interleaved.")
		fs.BoolVar(&cfg.Compare, "compare", false, "Run every partition/summation/precision combination and compare.")
	}
	fs.StringVar(&raw.summation, "summation", series.Naive.String(), "Summation policy: naive or kahan.")
	fs.StringVar(&raw.precision, "precision", series.Float64.String(), "Floating-point width: float64 or float32.")
	fs.BoolVar(&cfg.ShowTime, "time", mode == ModeSequential, "Print the elapsed time in milliseconds.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Write the execution report and debug logs to stderr.")
	fs.BoolVar(&cfg.Progress, "progress", false, "Show a spinner on stderr while computing.")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus metrics for the run to this file.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a completion script (bash, zsh, fish) and exit.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, err
		}
		return cfg, apperrors.NewConfigError("%v", err)
	}

	applyEnvOverrides(&raw, &cfg, fs)
	if err := raw.apply(&cfg); err != nil {
		return cfg, err
	}

	if cfg.Completion != "" {
		return cfg, nil
	}

	if err := parsePositional(&cfg, fs.Args()); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// apply parses the raw policy names into cfg.
func (raw flagValues) apply(cfg *AppConfig) error {
	var err error
	if cfg.Mode == ModeParallel {
		if cfg.Partition, err = series.ParsePartitionPolicy(raw.partition); err != nil {
			return err
		}
	}
	if cfg.Summation, err = series.ParseSummationPolicy(raw.summation); err != nil {
		return err
	}
	if cfg.Precision, err = series.ParsePrecision(raw.precision); err != nil {
		return err
	}
	return nil
}

// parsePositional reads <steps> [<threads>] and validates them for the mode.
func parsePositional(cfg *AppConfig, positional []string) error {
	want := 2
	if cfg.Mode == ModeSequential {
		want = 1
	}
	if len(positional) != want {
		return apperrors.NewConfigError("Invalid syntax: %s", cfg.Synopsis())
	}

	steps, err := parseCount("steps", positional[0])
	if err != nil {
		return err
	}
	cfg.Steps = steps

	if cfg.Mode == ModeSequential {
		return series.ValidateSequential(cfg.Steps)
	}

	threads, err := parseCount("threads", positional[1])
	if err != nil {
		return err
	}
	cfg.Threads = threads
	return series.ValidateParallel(cfg.Steps, cfg.Threads)
}

// parseCount parses a base-10 unsigned integer. Signs, whitespace and
// non-digit characters are rejected.
func parseCount(field, value string) (uint64, error) {
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, apperrors.ParseError{Field: field, Value: value, Cause: err}
	}
	return n, nil
}
