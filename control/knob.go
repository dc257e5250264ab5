// SPDX-License-Identifier: EPL-2.0

package control

import (
	"math"

	"github.com/ik5/grainbox/grain"
	"github.com/ik5/grainbox/synth"
)

// Knob identifies a continuous control.
type Knob int

const (
	KnobSize Knob = iota
	KnobPosition
	KnobDensity
	KnobPitch
	KnobPan

	numKnobs
)

// NumKnobs is the number of continuous controls.
const NumKnobs = int(numKnobs)

var knobNames = [...]string{
	KnobSize:     "size",
	KnobPosition: "position",
	KnobDensity:  "density",
	KnobPitch:    "pitch",
	KnobPan:      "pan",
}

func (k Knob) String() string {
	if k < 0 || k >= numKnobs {
		return "unknown"
	}
	return knobNames[k]
}

// Param returns the synth parameter the knob randomizes on the shift layer.
func (k Knob) Param() synth.Param {
	switch k {
	case KnobSize:
		return synth.ParamSize
	case KnobPosition:
		return synth.ParamPosition
	case KnobDensity:
		return synth.ParamActiveCount
	case KnobPitch:
		return synth.ParamPitch
	default:
		return synth.ParamPan
	}
}

func unit(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// SizeMs maps a knob position linearly onto the grain size range.
func SizeMs(v float64) float64 {
	return grain.MinGrainSizeMs + unit(v)*(grain.MaxGrainSizeMs-grain.MinGrainSizeMs)
}

func sizeKnob(ms float64) float64 {
	return unit((ms - grain.MinGrainSizeMs) / (grain.MaxGrainSizeMs - grain.MinGrainSizeMs))
}

// PitchRatio maps a knob position exponentially onto the pitch range, so the
// centre is unity and equal turns give equal musical intervals.
func PitchRatio(v float64) float64 {
	return grain.MinPitch * math.Pow(grain.MaxPitch/grain.MinPitch, unit(v))
}

func pitchKnob(ratio float64) float64 {
	if ratio <= 0 || math.IsNaN(ratio) {
		return 0
	}
	return unit(math.Log(ratio/grain.MinPitch) / math.Log(grain.MaxPitch/grain.MinPitch))
}

// Density maps a knob position onto a voice count in [0, synth.MaxGrains].
func Density(v float64) int {
	return int(math.Round(unit(v) * synth.MaxGrains))
}

func densityKnob(n int) float64 {
	return unit(float64(n) / synth.MaxGrains)
}
