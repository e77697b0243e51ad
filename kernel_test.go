package aetherlink

import (
	"math"
	"testing"
)

func TestNew_Fields(t *testing.T) {
	k := New(0.5, 0.1, [3]float32{0.1, 0.2, 0.3}, 0.05)

	if k.Threshold != 0.5 || k.Phase != 0.1 || k.Bias != 0.05 {
		t.Errorf("Unexpected state: %+v", k)
	}
	if k.Rates != ([3]float32{0.1, 0.2, 0.3}) {
		t.Errorf("Rates = %v, want [0.1 0.2 0.3]", k.Rates)
	}
	if k.Cycles != 0 || k.Prefetches != 0 {
		t.Errorf("Counters not zero: cycles=%d prefetches=%d", k.Cycles, k.Prefetches)
	}
}

func TestPresets_Literals(t *testing.T) {
	hft := NewHFT()
	if hft.Threshold != 0.65 || hft.Phase != 0.05 || hft.Bias != -0.02 {
		t.Errorf("HFT preset: %+v", hft)
	}
	if hft.Rates != ([3]float32{0.03, 0.08, 0.15}) {
		t.Errorf("HFT rates = %v", hft.Rates)
	}

	gaming := NewGaming()
	if gaming.Threshold != 0.4 || gaming.Phase != 0.2 || gaming.Bias != 0.05 {
		t.Errorf("Gaming preset: %+v", gaming)
	}
	if gaming.Rates != ([3]float32{0.15, 0.25, 0.35}) {
		t.Errorf("Gaming rates = %v", gaming.Rates)
	}

	def := NewDefault()
	if def.Threshold != 0.5 || def.Phase != 0.1 || def.Bias != 0.05 {
		t.Errorf("Default preset: %+v", def)
	}
}

func TestPresets_Ordering(t *testing.T) {
	AssertPresetOrdering(t)
}

func TestProcessCycle_CountsOneCycle(t *testing.T) {
	k := NewDefault()
	stream := []uint64{100, 101, 102, 105, 110, 200, 205}

	k.ProcessCycle(stream)

	if k.Cycles != 1 {
		t.Errorf("Cycles = %d, want 1", k.Cycles)
	}
	if k.Prefetches > 1 {
		t.Errorf("Prefetches = %d, want 0 or 1", k.Prefetches)
	}
	AssertKernelInvariants(t, k)
}

// TestProcessCycle_MatchesRecomputation replays one cycle by hand from a
// state snapshot and checks the kernel agrees on the decision and on every
// updated field.
func TestProcessCycle_MatchesRecomputation(t *testing.T) {
	k := New(0.5, 0.1, [3]float32{0.1, 0.2, 0.3}, 0.05)
	stream := []uint64{100, 101, 102, 105, 110, 200, 205}
	snap := *k

	got := k.ProcessCycle(stream)

	angles := snap.EncodeAngles(snap.ExtractTelemetry(stream))
	a1, a2, a3 := evalObservables(&angles, snap.Phase)

	phase := float32(math.Mod(float64(snap.Phase+snap.Rates[1]*a2), twoPi))
	if phase < 0 {
		phase += twoPi
	}
	if phase >= twoPi {
		phase -= twoPi
	}

	threshold := snap.Threshold + snap.Rates[0]*a1
	if threshold < 0.1 {
		threshold = 0.1
	}
	if threshold > 0.9 {
		threshold = 0.9
	}

	pFetch := FastSigmoid(-(snap.Rates[2]*a3 + snap.Bias))
	want := pFetch > threshold

	if got != want {
		t.Errorf("Decision = %v, recomputation says %v (p=%v threshold=%v)",
			got, want, pFetch, threshold)
	}
	if k.Phase != phase {
		t.Errorf("Phase = %v, recomputation says %v", k.Phase, phase)
	}
	if k.Threshold != threshold {
		t.Errorf("Threshold = %v, recomputation says %v", k.Threshold, threshold)
	}

	wantPrefetches := uint64(0)
	if want {
		wantPrefetches = 1
	}
	if k.Prefetches != wantPrefetches {
		t.Errorf("Prefetches = %d, want %d", k.Prefetches, wantPrefetches)
	}
}

func TestProcessCycle_ObservablesUsePreUpdatePhase(t *testing.T) {
	// Two kernels differing only in phase must decide from their own
	// pre-update phase, so their first-cycle thresholds diverge.
	a := New(0.5, 0.0, [3]float32{0.1, 0.2, 0.3}, 0.05)
	b := New(0.5, 1.5, [3]float32{0.1, 0.2, 0.3}, 0.05)
	stream := []uint64{100, 110}

	a.ProcessCycle(stream)
	b.ProcessCycle(stream)

	if a.Threshold == b.Threshold && a.Phase == b.Phase {
		t.Errorf("Different initial phases produced identical updates: %+v vs %+v", a, b)
	}
}

func TestProcessCycle_InvariantsUnderLoad(t *testing.T) {
	cfg := DefaultAssertionConfig()
	cfg.Cycles = 5000

	builds := map[string]func() *Kernel{
		"default": NewDefault,
		"hft":     NewHFT,
		"gaming":  NewGaming,
		// Hostile construction: out-of-range start, oversized rates.
		"hostile": func() *Kernel {
			return New(2.5, -7.0, [3]float32{0.9, 0.9, 0.9}, 0.5)
		},
	}

	for name, build := range builds {
		build := build
		t.Run(name, func(t *testing.T) {
			for _, p := range Patterns() {
				AssertInvariantsUnderLoad(t, build, p, cfg)
			}
		})
	}
}

func TestProcessCycle_DegenerateStreams(t *testing.T) {
	k := NewDefault()

	// Length < 2 is a defined case, not an error: the cycle still runs
	// on the zero telemetry vector.
	for _, stream := range [][]uint64{nil, {}, {7}} {
		k.ProcessCycle(stream)
	}

	if k.Cycles != 3 {
		t.Errorf("Cycles = %d, want 3", k.Cycles)
	}
	AssertKernelInvariants(t, k)
}

func TestProcessCycle_Deterministic(t *testing.T) {
	streams := make([][]uint64, 0, 400)
	for i := 0; i < 100; i++ {
		for _, p := range Patterns() {
			streams = append(streams, p.Generate(uint64(i)*37, 20))
		}
	}

	AssertDeterministic(t, NewDefault, streams)
	AssertDeterministic(t, NewHFT, streams)
	AssertDeterministic(t, NewGaming, streams)
}

func TestPrefetchRatio_ZeroCycles(t *testing.T) {
	if got := NewDefault().PrefetchRatio(); got != 0 {
		t.Errorf("PrefetchRatio with no cycles = %v, want 0", got)
	}
}

func TestPrefetchRatio_MatchesCounters(t *testing.T) {
	k := NewGaming()
	for i := 0; i < 1000; i++ {
		k.ProcessCycle(PatternBursty.Generate(uint64(i)*100, 20))
	}

	want := float32(k.Prefetches) / float32(k.Cycles)
	if got := k.PrefetchRatio(); got != want {
		t.Errorf("PrefetchRatio = %v, want %v (%d/%d)", got, want, k.Prefetches, k.Cycles)
	}
	if got := k.PrefetchRatio(); got < 0 || got > 1 {
		t.Errorf("PrefetchRatio out of [0, 1]: %v", got)
	}
}

func TestResetStats_PreservesLearnedState(t *testing.T) {
	k := NewDefault()
	for i := 0; i < 100; i++ {
		k.ProcessCycle(PatternTick.Generate(uint64(i)*100, 20))
	}

	threshold, phase := k.Threshold, k.Phase
	rates, bias := k.Rates, k.Bias

	k.ResetStats()

	if k.Cycles != 0 || k.Prefetches != 0 {
		t.Errorf("Counters not reset: cycles=%d prefetches=%d", k.Cycles, k.Prefetches)
	}
	if k.Threshold != threshold || k.Phase != phase {
		t.Errorf("Learned parameters changed: threshold %v→%v phase %v→%v",
			threshold, k.Threshold, phase, k.Phase)
	}
	if k.Rates != rates || k.Bias != bias {
		t.Errorf("Fixed coefficients changed: rates %v→%v bias %v→%v",
			rates, k.Rates, bias, k.Bias)
	}
	if k.PrefetchRatio() != 0 {
		t.Errorf("PrefetchRatio after reset = %v, want 0", k.PrefetchRatio())
	}
}
