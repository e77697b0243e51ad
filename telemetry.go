package aetherlink

import "math"

// Placeholder values for the telemetry slots that a full implementation
// would compute from the stream (running variance, spectral bin, temporal
// weight, workload fingerprint). The current design feeds fixed constants;
// the encoder and evaluator treat them like any other feature.
const (
	telemetryVariance = 0.1
	telemetrySpectrum = 0.01
	telemetryHistory  = 0.8
	telemetryContext  = 1.0
)

// ExtractTelemetry reduces an address stream to the six-element feature
// vector [delta, velocity, variance, spectrum, history, context].
//
// Streams shorter than two addresses yield the zero vector; that is the
// defined degenerate case, not an error. Only the first and last address
// are read, so the cost is constant in the stream length.
//
// delta is the wrapped uint64 difference last−first converted as an
// unsigned value. A backward stream therefore produces a huge positive
// delta, which the angle encoder saturates to the same bounded range as
// any other large jump.
func (k *Kernel) ExtractTelemetry(stream []uint64) [6]float32 {
	if len(stream) < 2 {
		return [6]float32{}
	}

	delta := float32(stream[len(stream)-1] - stream[0])
	velocity := delta * 0.5

	return [6]float32{
		delta,
		velocity,
		telemetryVariance,
		telemetrySpectrum,
		telemetryHistory,
		telemetryContext,
	}
}

// EncodeAngles maps the feature vector into the bounded angle domain,
// 2·atan(f) per entry, so every angle lands in (−π, π) regardless of the
// feature's magnitude. The output is padded to eight entries to give
// vectorized consumers a power-of-two lane count; the evaluator ignores
// the padding.
func (k *Kernel) EncodeAngles(features [6]float32) [8]float32 {
	var angles [8]float32
	for i, f := range features {
		angles[i] = FastAtan(f) * 2
	}
	return angles
}

// evalObservables derives the three observables from the angle vector and
// the current phase:
//
//	a1 = cos(θ₀ + θ₁ + φ)
//	a2 = sin((θ₀ + θ₁)·0.5 − φ)
//	a3 = cos(θ₂·φ)
//
// Pure function of its inputs. a1 drives the threshold, a2 rotates the
// phase, a3 feeds the fetch probability.
func evalObservables(angles *[8]float32, phi float32) (a1, a2, a3 float32) {
	s := angles[0] + angles[1]
	a1 = float32(math.Cos(float64(s + phi)))
	a2 = float32(math.Sin(float64(s*0.5 - phi)))
	a3 = float32(math.Cos(float64(angles[2] * phi)))
	return a1, a2, a3
}
