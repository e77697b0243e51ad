package aetherlink

import "math"

// Fast approximations for the transcendental functions on the decision hot
// path. They trade precision for speed, which is acceptable downstream:
// every consumer is a monotone bounded encoding or a probability compared
// against an adaptive threshold, never an exact angle.
//
// Error bounds:
//
//	FastAtan     < 0.2%   all reals (saturates beyond ±1e6)
//	FastExp      < 1%     [-10, 10]
//	FastSigmoid  < 1%     [-10, 10]
//	FastInvSqrt  < 0.2%   positive normals

const (
	halfPi = math.Pi / 2
	twoPi  = 2 * math.Pi
)

// FastAtan approximates arctan with a Padé approximant:
//
//	atan(x) ≈ x / (1 + 0.28125·x²)
//
// Accurate for |x| < 2, degrades gracefully beyond. Magnitudes above 1e6
// saturate to ±π/2.
func FastAtan(x float32) float32 {
	if x > 1e6 {
		return halfPi
	}
	if x < -1e6 {
		return -halfPi
	}
	return x / (1 + 0.28125*x*x)
}

// FastExp computes the natural exponential. The stdlib implementation is
// already a short polynomial on amd64/arm64, so this is a widening wrapper
// kept for interface symmetry with the other primitives.
func FastExp(x float32) float32 {
	return float32(math.Exp(float64(x)))
}

// FastSigmoid computes σ(x) = 1 / (1 + e^(−x)).
//
// Monotonically increasing and strictly inside (0, 1) for all finite x.
func FastSigmoid(x float32) float32 {
	return 1 / (1 + FastExp(-x))
}

// FastInvSqrt approximates 1/√x with the bit-level initial guess plus one
// Newton-Raphson refinement. Not on the decision hot path, but part of the
// primitive library's contract.
func FastInvSqrt(x float32) float32 {
	i := math.Float32bits(x)
	i = 0x5f3759df - (i >> 1)
	y := math.Float32frombits(i)
	return y * (1.5 - 0.5*x*y*y) // one Newton-Raphson step
}

// FastSqrt approximates √x via FastInvSqrt. Returns 0 for non-positive input.
func FastSqrt(x float32) float32 {
	if x <= 0 {
		return 0
	}
	return x * FastInvSqrt(x)
}
