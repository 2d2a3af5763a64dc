package series

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/pitaylor/internal/errors"
	"github.com/agbru/pitaylor/internal/logging"
)

const tracerName = "github.com/agbru/pitaylor/internal/series"

// Config selects one point in the engine's design space.
type Config struct {
	Steps     uint64
	Threads   uint64
	Partition PartitionPolicy
	Summation SummationPolicy
	Precision Precision
	// Logger receives per-worker debug reports after the join. Nil disables logging.
	Logger logging.Logger
}

// Label returns a compact "partition/summation/precision" identifier.
func (c Config) Label() string {
	return fmt.Sprintf("%s/%s/%s", c.Partition, c.Summation, c.Precision)
}

// Result is the outcome of one engine run. Pi and Partials hold values
// computed in the configured precision, widened to float64 for reporting.
type Result struct {
	Steps      uint64
	Threads    uint64
	Partition  PartitionPolicy
	Summation  SummationPolicy
	Precision  Precision
	Sequential bool
	Pi         float64
	Partials   []float64
	Workers    []WorkerReport
	Duration   time.Duration
}

// AbsError returns |Pi - π|.
func (r Result) AbsError() float64 {
	return math.Abs(r.Pi - math.Pi)
}

// Label returns a compact "partition/summation/precision" identifier.
func (r Result) Label() string {
	if r.Sequential {
		return fmt.Sprintf("sequential/%s/%s", r.Summation, r.Precision)
	}
	return fmt.Sprintf("%s/%s/%s", r.Partition, r.Summation, r.Precision)
}

// TotalTerms returns the number of terms summed across all workers.
func (r Result) TotalTerms() uint64 {
	var n uint64
	for _, w := range r.Workers {
		n += w.Terms
	}
	return n
}

// Run computes the π approximation with cfg.Threads parallel workers.
//
// The configuration is validated (steps > threads >= 1) before anything is
// started. The results buffer is allocated once, sized to the worker count,
// and each worker receives its own one-element window of it. Run returns
// only after every worker has finished.
//
// The context is used for tracing only; a run is never cancelled.
func Run(ctx context.Context, cfg Config) (Result, error) {
	assignments, err := Partition(cfg.Steps, cfg.Threads, cfg.Partition)
	if err != nil {
		return Result{}, err
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "series.Run", trace.WithAttributes(spanAttributes(cfg)...))
	defer span.End()

	res, err := dispatch(ctx, cfg, assignments, false)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return res, err
}

// RunSequential computes the π approximation over [0, cfg.Steps) on the
// calling goroutine. cfg.Threads and cfg.Partition are ignored.
func RunSequential(ctx context.Context, cfg Config) (Result, error) {
	if err := ValidateSequential(cfg.Steps); err != nil {
		return Result{}, err
	}
	cfg.Threads = 1
	cfg.Partition = Chunked

	_, span := otel.Tracer(tracerName).Start(ctx, "series.RunSequential", trace.WithAttributes(spanAttributes(cfg)...))
	defer span.End()

	assignments := []Assignment{{Worker: 0, Start: 0, End: cfg.Steps, Stride: 1}}
	res, err := dispatch(ctx, cfg, assignments, true)
	res.Sequential = true
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return res, err
}

func dispatch(ctx context.Context, cfg Config, assignments []Assignment, inline bool) (Result, error) {
	if cfg.Precision == Float32 {
		return execute[float32](ctx, cfg, assignments, inline)
	}
	return execute[float64](ctx, cfg, assignments, inline)
}

func execute[F Float](ctx context.Context, cfg Config, assignments []Assignment, inline bool) (Result, error) {
	start := time.Now()

	partials := make([]F, len(assignments))
	reports := make([]WorkerReport, len(assignments))
	for i, a := range assignments {
		reports[i] = WorkerReport{Worker: i, Assignment: a, State: Created}
	}

	var err error
	if inline {
		err = runWorker(assignments[0], cfg.Steps, cfg.Summation, partials[0:1:1], &reports[0])
	} else {
		tracer := otel.Tracer(tracerName)
		var g errgroup.Group
		for i := range assignments {
			a, slot, report := assignments[i], partials[i:i+1:i+1], &reports[i]
			g.Go(func() error {
				_, span := tracer.Start(ctx, "series.worker", trace.WithAttributes(
					attribute.Int("worker", a.Worker),
					attribute.Int64("start", int64(a.Start)),
					attribute.Int64("end", int64(a.End)),
					attribute.Int64("stride", int64(a.Stride)),
				))
				defer span.End()
				return runWorker(a, cfg.Steps, cfg.Summation, slot, report)
			})
		}
		// Barrier: partials are read only after every worker has returned.
		err = g.Wait()
	}

	res := Result{
		Steps:     cfg.Steps,
		Threads:   uint64(len(assignments)),
		Partition: cfg.Partition,
		Summation: cfg.Summation,
		Precision: cfg.Precision,
		Partials:  make([]float64, len(partials)),
		Workers:   reports,
	}
	for i, p := range partials {
		res.Partials[i] = float64(p)
	}
	logReports(cfg.Logger, res)

	if err != nil {
		res.Duration = time.Since(start)
		return res, apperrors.CalculationError{Cause: err}
	}
	res.Pi = float64(Combine(partials))
	res.Duration = time.Since(start)
	return res, nil
}

func logReports(logger logging.Logger, res Result) {
	if logger == nil {
		return
	}
	for i, w := range res.Workers {
		if w.State == Failed {
			logger.Error("worker failed", w.Err, logging.Int("worker", w.Worker))
			continue
		}
		logger.Debug("worker completed",
			logging.Int("worker", w.Worker),
			logging.String("range", w.Assignment.String()),
			logging.Uint64("terms", w.Terms),
			logging.Float64("partial", res.Partials[i]),
			logging.String("duration", w.Duration.String()),
		)
	}
}

func spanAttributes(cfg Config) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int64("steps", int64(cfg.Steps)),
		attribute.Int64("threads", int64(cfg.Threads)),
		attribute.String("partition", cfg.Partition.String()),
		attribute.String("summation", cfg.Summation.String()),
		attribute.String("precision", cfg.Precision.String()),
	}
}
