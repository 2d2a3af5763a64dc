package app

import (
	"context"
	"io"

	"github.com/agbru/pitaylor/internal/logging"
	"github.com/agbru/pitaylor/internal/orchestration"
)

// runCompare runs every policy and precision combination for the
// configured steps and threads, then prints the comparison table.
func (a *Application) runCompare(ctx context.Context, out io.Writer) int {
	configs := orchestration.BuildComparisonConfigs(a.Config, a.Logger)
	a.Logger.Debug("starting comparison",
		logging.Int("configurations", len(configs)),
		logging.Uint64("steps", a.Config.Steps),
		logging.Uint64("threads", a.Config.Threads))

	results := orchestration.ExecuteRuns(ctx, configs, a.progressReporter(), a.observer(), a.ErrWriter)
	return orchestration.AnalyzeComparisonResults(results, a.Presenter, out)
}
