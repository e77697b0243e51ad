// Package aetherlink provides an adaptive prefetch decision kernel for
// latency-critical I/O paths.
//
// # Overview
//
// aetherlink answers one question per I/O cycle: given the block addresses a
// caller has touched recently, should the next access bypass the normal cache
// path and go through a direct fetch path instead? The decision is a few
// nanoseconds of branch-light float arithmetic with no allocation and no
// blocking, which makes it usable inline in trading-tick ingestion loops and
// streaming asset loaders.
//
// The kernel does not move or store any data itself. It only emits a boolean
// recommendation; dispatching the actual prefetch is the caller's job.
//
// # Architecture
//
// The package components:
//
//   - fastmath.go   - bounded-error approximations (atan, exp, sigmoid, rsqrt)
//   - telemetry.go  - address stream → feature vector → angle vector
//   - kernel.go     - adaptive state and the per-cycle decision loop
//   - workload.go   - synthetic address stream generators
//   - benchmark.go  - latency/throughput measurement harness
//   - assertions.go - test helpers for kernel properties
//
// # The Decision Cycle
//
// Each call to ProcessCycle runs the same fixed pipeline:
//
//	addresses → telemetry[6] → angles[8] → observables (a1, a2, a3)
//
// The observables drive the two persistent parameters:
//
//	φ ← (φ + λ₂·a2) mod 2π           (measurement basis rotation)
//	ε ← clamp(ε + λ₁·a1, 0.1, 0.9)   (threshold evolution)
//
// and the gate itself:
//
//	P(fetch) = σ(−(λ₃·a3 + bias))
//	fetch    = P(fetch) > ε
//
// The "angle"/"observable" vocabulary is a geometric encoding for a
// probabilistic heuristic, not a physics simulation. There is no optimality
// guarantee; the kernel is a fast, tunable heuristic that adapts its two
// scalars to the access pattern it sees.
//
// # Quick Start
//
//	kernel := aetherlink.NewDefault()
//	stream := []uint64{100, 101, 102, 105, 110, 200, 205}
//
//	if kernel.ProcessCycle(stream) {
//	    // bypass the page cache, dispatch a direct fetch
//	}
//
//	fmt.Printf("prefetch ratio: %.1f%%\n", kernel.PrefetchRatio()*100)
//
// # Presets
//
// Three parameter bundles cover the common operating points:
//
//   - NewHFT()     - conservative: high threshold, small rates, negative bias.
//     Fewer false-positive fetches, for paths where a wasted fetch costs real money.
//   - NewGaming()  - aggressive: low threshold, large rates, positive bias.
//     More fetches, for streaming workloads where a miss stalls a frame.
//   - NewDefault() - the middle ground.
//
// Presets only set initial values. The update rule is identical across all
// configurations; there are no modes and every cycle is structurally the same.
//
// # Concurrency
//
// A Kernel is mutated in place on every cycle and is not safe for concurrent
// use. Own one instance per independent address stream, or wrap shared use in
// external locking. The fast-math functions and the telemetry/angle/observable
// computations are pure and safe from any number of goroutines.
//
// # Testing
//
// Use the assertion helpers to validate kernel properties:
//
//	func TestMyWorkload(t *testing.T) {
//	    k := aetherlink.NewHFT()
//	    for i := 0; i < 10000; i++ {
//	        k.ProcessCycle(aetherlink.PatternTick.Generate(uint64(i)*100, 20))
//	        aetherlink.AssertKernelInvariants(t, k)
//	    }
//	}
//
// The benchmark harness measures call latency percentiles across concurrency
// levels, one kernel per worker:
//
//	results, err := aetherlink.Run(ctx,
//	    aetherlink.CycleFactory(aetherlink.NewHFT, stream),
//	    aetherlink.DefaultConfig())
//
// # See Also
//
//   - examples/basic/        - construction, one decision, adaptation
//   - examples/streaming-io/ - workload sweep with latency percentiles
package aetherlink
