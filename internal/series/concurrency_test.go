package series

import (
	"context"
	"sync"
	"testing"
)

// TestRunConcurrentCallers verifies that independent Run calls share no
// state: many callers released at once each get the result a lone call gets.
func TestRunConcurrentCallers(t *testing.T) {
	ctx := context.Background()
	configs := []Config{
		{Steps: 50_000, Threads: 8, Partition: Chunked, Summation: Naive},
		{Steps: 50_000, Threads: 8, Partition: Interleaved, Summation: Kahan},
		{Steps: 50_000, Threads: 3, Partition: Interleaved, Summation: Naive, Precision: Float32},
		{Steps: 49_999, Threads: 16, Partition: Chunked, Summation: Kahan, Precision: Float32},
	}
	want := make([]float64, len(configs))
	for i, cfg := range configs {
		res, err := Run(ctx, cfg)
		if err != nil {
			t.Fatalf("Run(%s): %v", cfg.Label(), err)
		}
		want[i] = res.Pi
	}

	const callers = 64
	got := make([]float64, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	barrier := make(chan struct{})

	wg.Add(callers)
	for i := range callers {
		go func(id int) {
			defer wg.Done()
			<-barrier
			res, err := Run(ctx, configs[id%len(configs)])
			got[id], errs[id] = res.Pi, err
		}(i)
	}
	close(barrier)
	wg.Wait()

	for i := range callers {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		// Partials are combined in worker order, so results are bit-identical.
		if got[i] != want[i%len(configs)] {
			t.Errorf("caller %d (%s): got %v, want %v", i, configs[i%len(configs)].Label(), got[i], want[i%len(configs)])
		}
	}
}
