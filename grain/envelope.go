// SPDX-License-Identifier: EPL-2.0

package grain

import "math"

// LinearDecay falls from 1 at phase 0 to 0 at phase 1.
func LinearDecay(phase float64) float64 {
	return 1 - clampUnit(phase)
}

// Triangular rises to 1 at phase 0.5 and returns to 0 at both ends.
func Triangular(phase float64) float64 {
	return 1 - math.Abs(2*clampUnit(phase)-1)
}

// Hann is the raised-cosine window: 0 at both ends, 1 at phase 0.5.
func Hann(phase float64) float64 {
	return 0.5 * (1 - math.Cos(2*math.Pi*clampUnit(phase)))
}

// Envelope evaluates the envelope selected by kind at phase.
// Unknown kinds produce a flat gain of 1.
func Envelope(kind EnvelopeType, phase float64) float64 {
	switch kind {
	case LinearDecayEnvelope:
		return LinearDecay(phase)
	case TriangularEnvelope:
		return Triangular(phase)
	case HannEnvelope:
		return Hann(phase)
	default:
		return 1
	}
}

// PanGains returns the constant-power gains for pan in [0, 1]:
// gL = sqrt(1-pan), gR = sqrt(pan), so gL² + gR² = 1.
func PanGains(pan float64) (float64, float64) {
	pan = clampUnit(pan)
	return math.Sqrt(1 - pan), math.Sqrt(pan)
}

func clampUnit(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
