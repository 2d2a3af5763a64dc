package orchestration

import (
	"github.com/agbru/pitaylor/internal/config"
	"github.com/agbru/pitaylor/internal/logging"
	"github.com/agbru/pitaylor/internal/series"
)

// BuildComparisonConfigs returns one engine configuration per combination of
// precision, partition and summation, for the steps and threads in cfg.
// Configurations are grouped by precision, widest first, so that each group
// can be checked against its own reference.
func BuildComparisonConfigs(cfg config.AppConfig, logger logging.Logger) []series.Config {
	configs := make([]series.Config, 0, len(series.Precisions)*len(series.PartitionPolicies)*len(series.SummationPolicies))
	for _, precision := range series.Precisions {
		for _, partition := range series.PartitionPolicies {
			for _, summation := range series.SummationPolicies {
				ec := cfg.EngineConfig(logger)
				ec.Partition = partition
				ec.Summation = summation
				ec.Precision = precision
				configs = append(configs, ec)
			}
		}
	}
	return configs
}
