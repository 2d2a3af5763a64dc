// Package app wires configuration, the series engine and the presentation
// layer into the pitaylor programs.
package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/agbru/pitaylor/internal/cli"
	"github.com/agbru/pitaylor/internal/config"
	apperrors "github.com/agbru/pitaylor/internal/errors"
	"github.com/agbru/pitaylor/internal/logging"
	"github.com/agbru/pitaylor/internal/metrics"
	"github.com/agbru/pitaylor/internal/orchestration"
	"github.com/agbru/pitaylor/internal/ui"
)

// Application represents one pitaylor process.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger
	Metrics   *metrics.RunMetrics
	Presenter orchestration.ResultPresenter
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger sets the logger used by the engine and the application.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithPresenter replaces the CLI result presenter.
func WithPresenter(p orchestration.ResultPresenter) AppOption {
	return func(a *Application) { a.Presenter = p }
}

// New creates a new Application instance by parsing command-line arguments.
//
// Parameters:
//   - args: The full argument vector, including the program name.
//   - errWriter: The writer for diagnostics, logs and reports.
//   - mode: The command-line shape to accept.
//   - opts: Optional overrides.
//
// Returns:
//   - *Application: The configured application.
//   - error: flag.ErrHelp, or a usage, parse or validation error.
func New(args []string, errWriter io.Writer, mode config.Mode, opts ...AppOption) (*Application, error) {
	programName := defaultProgramName(mode)
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, mode)
	if err != nil {
		return nil, err
	}

	app := &Application{Config: cfg, ErrWriter: errWriter, Presenter: cli.CLIResultPresenter{}}
	for _, opt := range opts {
		opt(app)
	}
	if app.Logger == nil {
		app.Logger = logging.NewConsoleLogger(errWriter, filepath.Base(programName), cfg.NoColor)
	}
	if cfg.MetricsFile != "" {
		app.Metrics = metrics.NewRunMetrics()
	}
	return app, nil
}

func defaultProgramName(mode config.Mode) string {
	if mode == config.ModeSequential {
		return "pitaylor-seq"
	}
	return "pitaylor"
}

// Run executes the application based on the configured mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	level := zerolog.InfoLevel
	if a.Config.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	ui.InitTheme(a.Config.NoColor)

	var code int
	if a.Config.Compare {
		code = a.runCompare(ctx, out)
	} else {
		code = a.runCalculate(ctx, out)
	}

	if code == apperrors.ExitSuccess || code == apperrors.ExitErrorMismatch {
		if err := a.writeMetrics(); err != nil {
			return a.Presenter.HandleError(err, a.ErrWriter)
		}
	}
	return code
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	sequential := a.Config.Mode == config.ModeSequential
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Config.ProgramName, sequential); err != nil {
		return apperrors.HandleError(err, a.ErrWriter)
	}
	return apperrors.ExitSuccess
}

// observer returns the metrics as a RunObserver, or nil when disabled.
func (a *Application) observer() orchestration.RunObserver {
	if a.Metrics == nil {
		return nil
	}
	return a.Metrics
}

// writeMetrics exports the collected metrics when --metrics-file is set.
func (a *Application) writeMetrics() error {
	if a.Metrics == nil {
		return nil
	}
	if err := a.Metrics.WriteTextfile(a.Config.MetricsFile); err != nil {
		return apperrors.WrapError(err, "writing metrics to %s", a.Config.MetricsFile)
	}
	a.Logger.Debug("metrics written", logging.String("path", a.Config.MetricsFile))
	return nil
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
