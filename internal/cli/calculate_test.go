package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/pitaylor/internal/config"
	"github.com/agbru/pitaylor/internal/metrics"
	"github.com/agbru/pitaylor/internal/series"
	"github.com/agbru/pitaylor/internal/sysmon"
	"github.com/agbru/pitaylor/internal/ui"
)

func TestPrintExecutionConfig(t *testing.T) {
	ui.SetTheme("none")
	defer ui.SetTheme("dark")

	env := sysmon.Environment{LogicalCPUs: 8, PhysicalCPUs: 4, GOMAXPROCS: 8, GoVersion: "go1.25.0", Arch: "amd64", FMA: true}

	var par bytes.Buffer
	PrintExecutionConfig(config.AppConfig{Steps: 1000, Threads: 4, Partition: series.Interleaved, Summation: series.Kahan}, env, &par)
	out := par.String()
	for _, want := range []string{
		"Summing 1000 terms on 4 workers, interleaved partition.",
		"Summation: kahan, precision: float64 (16 significant digits).",
		"8 logical / 4 physical processors",
		"Fused multiply-add: yes",
	} {
		assert.Contains(t, out, want)
	}

	var seq bytes.Buffer
	env.PhysicalCPUs = 0
	PrintExecutionConfig(config.AppConfig{Mode: config.ModeSequential, Steps: 50, Precision: series.Float32}, env, &seq)
	assert.Contains(t, seq.String(), "Summing 50 terms sequentially.")
	assert.Contains(t, seq.String(), "(7 significant digits)")
	assert.Contains(t, seq.String(), "unknown physical")
}

func TestPrintWorkerReport(t *testing.T) {
	ui.SetTheme("none")
	defer ui.SetTheme("dark")

	res, err := series.Run(context.Background(), series.Config{Steps: 100, Threads: 3})
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintWorkerReport(res, &buf)
	out := buf.String()

	assert.Equal(t, 3, strings.Count(out, "completed"))
	assert.Contains(t, out, "[66,100)")
	assert.Contains(t, out, "Total: 100 terms")
}

func TestDisplayMemoryStats(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayMemoryStats(metrics.MemorySnapshot{HeapAlloc: 4096, TotalAlloc: 2048, NumGC: 2, PauseTotalNs: 1_500_000}, &buf)
	out := buf.String()
	assert.Contains(t, out, "Heap in use:     4 KiB")
	assert.Contains(t, out, "GC cycles (run): 2")
	assert.Contains(t, out, "1.50ms")
}
