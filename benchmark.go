// Measurement harness for the decision kernel.
//
// Unlike testing.B benchmarks, which report a single mean, this harness
// records every call latency so percentiles and jitter are visible: the
// numbers that actually matter for a kernel sold on deterministic timing.
//
// The sweep runs at multiple concurrency levels with one kernel per worker,
// matching the library's ownership rule (a Kernel is never shared). Higher
// levels therefore measure aggregate decision throughput of partitioned
// streams, not lock contention.
//
// CRITICAL: If a level exceeds GOMAXPROCS you measure Go scheduler context
// switching, not the kernel. Set MaxProcs = runtime.NumCPU() for realistic
// numbers.

package aetherlink

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Operation is one measured unit of work. Implementations are invoked in a
// tight loop from a single worker goroutine.
type Operation func(ctx context.Context) error

// Factory builds the Operation for one worker. It is called once per worker
// per phase, so state created here (a Kernel, a reused stream buffer) is
// exclusively owned by that worker for the whole phase.
type Factory func(worker int) Operation

// Config controls harness execution.
type Config struct {
	Duration time.Duration // measured time at each concurrency level
	Warmup   time.Duration // discarded time before measurement
	Levels   []int         // concurrency levels to sweep
	MaxProcs int           // GOMAXPROCS limit (0 = runtime default)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Duration: 5 * time.Second,
		Warmup:   1 * time.Second,
		Levels:   []int{1, 2, 4, 8, 16},
		MaxProcs: 0,
	}
}

// Result contains measurements from a single concurrency level.
type Result struct {
	N          int             // number of workers
	Duration   time.Duration   // measured wall time
	Operations int64           // operations completed
	Throughput float64         // operations per second
	Latencies  []time.Duration // individual call latencies
	Errors     int64           // failed operations
}

// Statistics contains percentile latency data for one Result.
type Statistics struct {
	Mean   time.Duration
	Stddev time.Duration
	P50    time.Duration
	P95    time.Duration
	P99    time.Duration
}

// Jitter returns P99 − P50, the consistency number latency-critical
// callers care about more than the mean.
func (s Statistics) Jitter() time.Duration {
	return s.P99 - s.P50
}

// CycleFactory builds a Factory in which every worker drives its own kernel
// over the same address stream. newKernel is typically one of the preset
// constructors.
func CycleFactory(newKernel func() *Kernel, stream []uint64) Factory {
	return func(worker int) Operation {
		k := newKernel()
		return func(ctx context.Context) error {
			k.ProcessCycle(stream)
			return nil
		}
	}
}

// Run sweeps the configured concurrency levels and returns one Result per
// level. Each level runs an optional warmup phase, then a measured phase.
func Run(ctx context.Context, factory Factory, cfg Config) ([]Result, error) {
	if factory == nil {
		return nil, fmt.Errorf("nil factory")
	}
	if cfg.MaxProcs > 0 {
		old := runtime.GOMAXPROCS(cfg.MaxProcs)
		defer runtime.GOMAXPROCS(old)
	}

	results := make([]Result, 0, len(cfg.Levels))
	for _, n := range cfg.Levels {
		result, err := runAtLevel(ctx, factory, n, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed at N=%d: %w", n, err)
		}
		results = append(results, result)
	}
	return results, nil
}

func runAtLevel(ctx context.Context, factory Factory, n int, cfg Config) (Result, error) {
	if cfg.Warmup > 0 {
		warmupCtx, cancel := context.WithTimeout(ctx, cfg.Warmup)
		_, err := runPhase(warmupCtx, factory, n)
		cancel()
		if err != nil {
			return Result{}, err
		}
	}

	measureCtx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()
	return runPhase(measureCtx, factory, n)
}

// runPhase drives n workers until the context expires, recording per-call
// latency in per-worker slices to keep the hot loop append-only and
// unshared.
func runPhase(ctx context.Context, factory Factory, n int) (Result, error) {
	var (
		operations int64
		errCount   int64
		latencies  = make([][]time.Duration, n)
	)

	g, ctx := errgroup.WithContext(ctx)
	start := time.Now()

	for i := 0; i < n; i++ {
		worker := i
		latencies[worker] = make([]time.Duration, 0, 1<<14)

		g.Go(func() error {
			op := factory(worker)
			if op == nil {
				return fmt.Errorf("worker %d: factory returned nil operation", worker)
			}

			for {
				select {
				case <-ctx.Done():
					return nil
				default:
					opStart := time.Now()
					err := op(ctx)
					opDuration := time.Since(opStart)

					if err != nil {
						atomic.AddInt64(&errCount, 1)
					} else {
						atomic.AddInt64(&operations, 1)
						latencies[worker] = append(latencies[worker], opDuration)
					}
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	elapsed := time.Since(start)

	all := make([]time.Duration, 0, operations)
	for _, workerLatencies := range latencies {
		all = append(all, workerLatencies...)
	}

	return Result{
		N:          n,
		Duration:   elapsed,
		Operations: operations,
		Throughput: float64(operations) / elapsed.Seconds(),
		Latencies:  all,
		Errors:     errCount,
	}, nil
}

// CalculateStatistics computes percentile latencies for one Result.
func CalculateStatistics(result Result) Statistics {
	if len(result.Latencies) == 0 {
		return Statistics{}
	}

	sorted := make([]time.Duration, len(result.Latencies))
	copy(sorted, result.Latencies)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	var sum time.Duration
	for _, lat := range sorted {
		sum += lat
	}
	mean := sum / time.Duration(len(sorted))

	var variance float64
	for _, lat := range sorted {
		diff := float64(lat - mean)
		variance += diff * diff
	}
	stddev := time.Duration(math.Sqrt(variance / float64(len(sorted))))

	return Statistics{
		Mean:   mean,
		Stddev: stddev,
		P50:    sorted[len(sorted)*50/100],
		P95:    sorted[len(sorted)*95/100],
		P99:    sorted[len(sorted)*99/100],
	}
}
