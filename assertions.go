package aetherlink

import (
	"math"
	"testing"
)

// AssertionConfig contains tolerances for kernel property checks.
type AssertionConfig struct {
	// SigmoidTolerance is the allowed deviation of FastSigmoid(0) from 0.5.
	SigmoidTolerance float64

	// AtanTolerance is the allowed relative error of FastAtan(1) vs π/4.
	AtanTolerance float64

	// Cycles is how many cycles load-based assertions drive the kernel.
	Cycles int
}

// DefaultAssertionConfig returns the documented error bounds.
func DefaultAssertionConfig() AssertionConfig {
	return AssertionConfig{
		SigmoidTolerance: 0.01, // 1%
		AtanTolerance:    0.02, // 2%
		Cycles:           1000,
	}
}

// AssertKernelInvariants verifies the state invariants that must hold after
// any number of cycles: Threshold in [0.1, 0.9], Phase in [0, 2π),
// Prefetches ≤ Cycles. Quiet on success so it can run inside cycle loops.
func AssertKernelInvariants(t *testing.T, k *Kernel) {
	t.Helper()

	if k.Threshold < 0.1 || k.Threshold > 0.9 {
		t.Errorf("Threshold out of range: %v (want [0.1, 0.9]) after %d cycles",
			k.Threshold, k.Cycles)
	}

	if k.Phase < 0 || k.Phase >= twoPi {
		t.Errorf("Phase out of range: %v (want [0, 2π)) after %d cycles",
			k.Phase, k.Cycles)
	}

	if k.Prefetches > k.Cycles {
		t.Errorf("Prefetches exceed cycles: %d > %d", k.Prefetches, k.Cycles)
	}
}

// AssertInvariantsUnderLoad drives a fresh kernel through cfg.Cycles cycles
// of the given workload pattern, checking the invariants after every cycle.
func AssertInvariantsUnderLoad(t *testing.T, build func() *Kernel, p Pattern, cfg AssertionConfig) {
	t.Helper()

	k := build()
	buf := make([]uint64, 0, 20)
	for i := 0; i < cfg.Cycles; i++ {
		buf = p.GenerateInto(buf[:0], uint64(i)*100, 20)
		k.ProcessCycle(buf)
		AssertKernelInvariants(t, k)
		if t.Failed() {
			t.Fatalf("Invariant violated on %s workload at cycle %d", p, i+1)
		}
	}

	t.Logf("✓ Invariants held: %s workload, %d cycles, ratio %.1f%%",
		p, cfg.Cycles, k.PrefetchRatio()*100)
}

// AssertDeterministic verifies that two kernels built identically and fed
// identical streams produce bit-identical decision sequences and final
// state. There is no hidden randomness to excuse a divergence.
func AssertDeterministic(t *testing.T, build func() *Kernel, streams [][]uint64) {
	t.Helper()

	a, b := build(), build()
	for i, stream := range streams {
		da := a.ProcessCycle(stream)
		db := b.ProcessCycle(stream)
		if da != db {
			t.Fatalf("Decision diverged at cycle %d: %v vs %v", i, da, db)
		}
	}

	if *a != *b {
		t.Errorf("Final state diverged:\n  a = %+v\n  b = %+v", *a, *b)
	}

	t.Logf("✓ Deterministic: %d cycles, identical decisions and final state", len(streams))
}

// AssertSigmoidMonotone verifies FastSigmoid is strictly increasing and
// bounded inside (0, 1) over [-10, 10], and that σ(0) ≈ 0.5 within the
// configured tolerance.
func AssertSigmoidMonotone(t *testing.T, cfg AssertionConfig) {
	t.Helper()

	prev := FastSigmoid(-10)
	for x := float32(-9.5); x <= 10; x += 0.5 {
		y := FastSigmoid(x)
		if y <= prev {
			t.Errorf("Sigmoid not strictly increasing: σ(%v) = %v ≤ %v", x, y, prev)
		}
		if y <= 0 || y >= 1 {
			t.Errorf("Sigmoid out of (0, 1): σ(%v) = %v", x, y)
		}
		prev = y
	}

	mid := float64(FastSigmoid(0))
	if math.Abs(mid-0.5) > cfg.SigmoidTolerance {
		t.Errorf("σ(0) = %v, want 0.5 ± %v", mid, cfg.SigmoidTolerance)
	}

	t.Logf("✓ Sigmoid monotone in (0, 1), σ(0) = %.4f", mid)
}

// AssertPresetOrdering verifies the conservative-to-aggressive ordering of
// the preset initial thresholds: HFT > default > gaming.
func AssertPresetOrdering(t *testing.T) {
	t.Helper()

	hft := NewHFT()
	def := NewDefault()
	gaming := NewGaming()

	if !(hft.Threshold > def.Threshold) {
		t.Errorf("HFT threshold %v not above default %v", hft.Threshold, def.Threshold)
	}
	if !(def.Threshold > gaming.Threshold) {
		t.Errorf("Default threshold %v not above gaming %v", def.Threshold, gaming.Threshold)
	}

	t.Logf("✓ Preset ordering: HFT %.2f > default %.2f > gaming %.2f",
		hft.Threshold, def.Threshold, gaming.Threshold)
}

// PrintAnalysis outputs a latency table for harness results to the test log.
func PrintAnalysis(t *testing.T, results []Result) {
	t.Helper()

	t.Logf("\n=== Latency Analysis ===")
	t.Logf("  N    Ops           Throughput      P50        P99        Jitter")
	t.Logf("  --   -----------   -------------   --------   --------   --------")
	for _, r := range results {
		stats := CalculateStatistics(r)
		t.Logf("  %-4d %-11d   %11.0f/s   %8v   %8v   %8v",
			r.N, r.Operations, r.Throughput, stats.P50, stats.P99, stats.Jitter())
	}
}
