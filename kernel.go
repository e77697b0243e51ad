package aetherlink

import "math"

// Kernel is the adaptive prefetch decision state.
//
// Two parameters evolve continuously: Threshold, the cutoff the fetch
// probability must beat, and Phase, the basis angle fed into the observable
// evaluation. The learning coefficients and bias are fixed at construction
// and never touched by cycles.
//
// A Kernel is owned by exactly one goroutine. Partition one instance per
// independent address stream, or guard shared use with external locking;
// there is no internal synchronization.
type Kernel struct {
	// Threshold is the adaptive cutoff for the fetch probability.
	// Invariant: always in [0.1, 0.9]; updates saturate at the bounds.
	Threshold float32

	// Phase is the adaptive basis angle in radians.
	// Invariant: always in [0, 2π); updates wrap.
	Phase float32

	// Rates are the fixed learning coefficients:
	// Rates[0] scales threshold adaptation, Rates[1] phase rotation,
	// Rates[2] the fetch probability exponent.
	Rates [3]float32

	// Bias offsets the sigmoid exponent. Negative biases the kernel
	// toward fewer fetches, positive toward more.
	Bias float32

	// Cycles counts ProcessCycle invocations.
	Cycles uint64

	// Prefetches counts cycles that decided to fetch.
	// Invariant: Prefetches ≤ Cycles.
	Prefetches uint64
}

// New creates a kernel with explicit parameters. No validation is
// performed; out-of-range values degrade decision quality, not execution.
// Threshold and Phase are pulled into their invariant ranges by the first
// cycle's clamp and wrap.
func New(threshold, phase float32, rates [3]float32, bias float32) *Kernel {
	return &Kernel{
		Threshold: threshold,
		Phase:     phase,
		Rates:     rates,
		Bias:      bias,
	}
}

// NewDefault creates a kernel with the middle-ground parameters.
func NewDefault() *Kernel {
	return New(0.5, 0.1, [3]float32{0.1, 0.2, 0.3}, 0.05)
}

// NewHFT creates a kernel tuned for trading-tick ingestion: high initial
// threshold, small rates, negative bias. Minimizes false-positive fetches
// at the cost of missing some opportunities.
func NewHFT() *Kernel {
	return New(0.65, 0.05, [3]float32{0.03, 0.08, 0.15}, -0.02)
}

// NewGaming creates a kernel tuned for streaming asset loads: low initial
// threshold, large rates, positive bias. Prefers a wasted fetch over a
// stalled load.
func NewGaming() *Kernel {
	return New(0.4, 0.2, [3]float32{0.15, 0.25, 0.35}, 0.05)
}

// ProcessCycle runs one complete decision cycle over the address stream
// and reports whether the next access should bypass the cache path.
//
// This is the only mutating entry point. Every cycle is structurally
// identical: extract telemetry, encode angles, evaluate observables
// against the pre-update Phase, rotate Phase, evolve Threshold, gate on
// the sigmoid fetch probability. Cycles and Prefetches update as a side
// effect. The stream is read-only and never retained.
func (k *Kernel) ProcessCycle(stream []uint64) bool {
	k.Cycles++

	features := k.ExtractTelemetry(stream)
	angles := k.EncodeAngles(features)
	a1, a2, a3 := evalObservables(&angles, k.Phase)

	// Rotate the basis, normalized into [0, 2π). math.Mod keeps the
	// sign of the dividend, so a negative rotation needs the extra wrap.
	phase := float32(math.Mod(float64(k.Phase+k.Rates[1]*a2), twoPi))
	if phase < 0 {
		phase += twoPi
	}
	if phase >= twoPi {
		// Narrowing to float32 can round a remainder just below 2π up
		// to exactly float32(2π); fold it back to keep Phase in range.
		phase -= twoPi
	}
	k.Phase = phase

	// Evolve the threshold, saturating into [0.1, 0.9].
	k.Threshold += k.Rates[0] * a1
	if k.Threshold < 0.1 {
		k.Threshold = 0.1
	}
	if k.Threshold > 0.9 {
		k.Threshold = 0.9
	}

	exponent := -(k.Rates[2]*a3 + k.Bias)
	pFetch := FastSigmoid(exponent)

	shouldFetch := pFetch > k.Threshold
	if shouldFetch {
		k.Prefetches++
	}
	return shouldFetch
}

// PrefetchRatio returns Prefetches / Cycles, or 0 when no cycles have run.
func (k *Kernel) PrefetchRatio() float32 {
	if k.Cycles == 0 {
		return 0
	}
	return float32(k.Prefetches) / float32(k.Cycles)
}

// ResetStats zeroes the cycle counters without touching the learned
// parameters. Useful for measuring the prefetch ratio of a workload phase
// with an already-adapted kernel.
func (k *Kernel) ResetStats() {
	k.Cycles = 0
	k.Prefetches = 0
}
