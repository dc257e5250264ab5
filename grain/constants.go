// SPDX-License-Identifier: EPL-2.0

package grain

const (
	// SampleRate is the fixed engine rate in Hz. Sources are converted to it on load.
	SampleRate = 48000

	MinGrainSizeMs = 10.0
	MaxGrainSizeMs = 3000.0

	MinPitch = 0.25
	MaxPitch = 4.0

	// phaseEpsilon absorbs accumulated rounding so a one-shot of N samples
	// finishes on its Nth step.
	phaseEpsilon = 1e-9
)

// MsToSamples converts a duration in milliseconds to a whole number of samples at
// SampleRate. The result is at least one sample for any positive duration.
func MsToSamples(ms float64) int {
	n := int(ms*SampleRate/1000 + 0.5)
	if n < 1 {
		return 1
	}
	return n
}
