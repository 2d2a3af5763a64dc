package app

import (
	"context"
	"io"

	"github.com/agbru/pitaylor/internal/cli"
	"github.com/agbru/pitaylor/internal/config"
	apperrors "github.com/agbru/pitaylor/internal/errors"
	"github.com/agbru/pitaylor/internal/logging"
	"github.com/agbru/pitaylor/internal/metrics"
	"github.com/agbru/pitaylor/internal/orchestration"
	"github.com/agbru/pitaylor/internal/series"
	"github.com/agbru/pitaylor/internal/sysmon"
)

// runCalculate runs one series evaluation and prints its result line.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	cfg := a.Config
	sequential := cfg.Mode == config.ModeSequential
	engineCfg := cfg.EngineConfig(a.Logger)

	env := sysmon.Describe()
	if cfg.Verbose {
		cli.PrintExecutionConfig(cfg, env, a.ErrWriter)
	}
	if !sequential && env.Oversubscribed(cfg.Threads) {
		a.Logger.Info("more workers than logical CPUs, workers will time-share",
			logging.Uint64("threads", cfg.Threads), logging.Int("cpus", env.LogicalCPUs))
	}

	reporter := a.progressReporter()
	reporter.Start(1, a.ErrWriter)
	reporter.Update(1, engineCfg.Label())

	mem := metrics.NewMemoryCollector()
	before := mem.Snapshot()

	var (
		res series.Result
		err error
	)
	if sequential {
		res, err = series.RunSequential(ctx, engineCfg)
	} else {
		res, err = series.Run(ctx, engineCfg)
	}
	reporter.Stop()

	if err != nil {
		if a.Metrics != nil {
			a.Metrics.ObserveFailure(engineCfg, sequential)
		}
		a.Logger.Error("calculation failed", err, logging.String("config", engineCfg.Label()))
		return a.Presenter.HandleError(err, a.ErrWriter)
	}
	if a.Metrics != nil {
		a.Metrics.Observe(res)
	}

	a.Presenter.PresentResult(res, cfg.ShowTime, out)

	if cfg.Verbose {
		cli.PrintWorkerReport(res, a.ErrWriter)
		cli.DisplayMemoryStats(mem.Snapshot().Since(before), a.ErrWriter)
	}
	return apperrors.ExitSuccess
}

// progressReporter returns the spinner reporter when --progress is set.
func (a *Application) progressReporter() orchestration.ProgressReporter {
	if a.Config.Progress {
		return cli.NewCLIProgressReporter()
	}
	return orchestration.NullProgressReporter{}
}
