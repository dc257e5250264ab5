// SPDX-License-Identifier: EPL-2.0

package control

import (
	"github.com/ik5/grainbox/grain"
	"github.com/ik5/grainbox/synth"
)

// Target receives parameter changes. *synth.Synth implements it.
type Target interface {
	SetGrainSize(ms float64)
	SetSpawnPosition(pos float64)
	SetActiveCount(n int)
	SetPitchRatio(ratio float64)
	SetPan(pan float64)
	SetPhasorMode(mode grain.Mode)
	SetEnvelope(kind grain.EnvelopeType)
	SetRandomness(param synth.Param, amount float64)
}

// randomSteps are the amounts the shifted mode and envelope buttons cycle through.
var randomSteps = [...]float64{0, 0.25, 0.5, 1}

// State is what a front end needs to draw the surface.
type State struct {
	Knobs      [NumKnobs]float64
	Randomness [NumKnobs]float64
	Shift      bool
	Mode       grain.Mode
	Envelope   grain.EnvelopeType
	ModeRandom float64
	EnvRandom  float64
	SizeMs     float64
	Pitch      float64
	Density    int
}

// Surface turns normalized knob positions and button presses into Target
// calls. With shift held the knobs set randomness amounts instead, and the
// buttons step the mode and envelope randomness.
//
// Surface also implements Target, so presets applied through it keep the
// displayed knob positions in sync. It is not safe for concurrent use.
type Surface struct {
	target Target

	knobs    [numKnobs]float64
	random   [numKnobs]float64
	shift    bool
	mode     grain.Mode
	envelope grain.EnvelopeType
	modeStep int
	envStep  int
}

// NewSurface returns a surface positioned at the target's current parameters.
func NewSurface(target Target, initial synth.Snapshot) *Surface {
	s := &Surface{
		target:   target,
		mode:     initial.Mode,
		envelope: initial.Envelope,
	}

	s.knobs[KnobSize] = sizeKnob(initial.SizeMs)
	s.knobs[KnobPosition] = unit(initial.Position)
	s.knobs[KnobDensity] = densityKnob(initial.ActiveCount)
	s.knobs[KnobPitch] = pitchKnob(initial.Pitch)
	s.knobs[KnobPan] = unit(initial.Pan)

	for k := range numKnobs {
		s.random[k] = unit(initial.Randomness[k.Param()])
	}
	s.modeStep = nearestStep(initial.Randomness[synth.ParamMode])
	s.envStep = nearestStep(initial.Randomness[synth.ParamEnvelope])

	return s
}

func nearestStep(v float64) int {
	best := 0
	for i, step := range randomSteps {
		if abs(step-v) < abs(randomSteps[best]-v) {
			best = i
		}
	}
	return best
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// SetShift engages or releases the randomness layer.
func (s *Surface) SetShift(on bool) { s.shift = on }

// Shift reports whether the randomness layer is engaged.
func (s *Surface) Shift() bool { return s.shift }

// SetKnob moves knob k to v in [0, 1].
func (s *Surface) SetKnob(k Knob, v float64) {
	if k < 0 || k >= numKnobs {
		return
	}
	v = unit(v)

	if s.shift {
		s.random[k] = v
		s.target.SetRandomness(k.Param(), v)
		return
	}

	s.knobs[k] = v
	s.apply(k)
}

// Nudge moves knob k by delta on the active layer.
func (s *Surface) Nudge(k Knob, delta float64) {
	if k < 0 || k >= numKnobs {
		return
	}
	if s.shift {
		s.SetKnob(k, s.random[k]+delta)
		return
	}
	s.SetKnob(k, s.knobs[k]+delta)
}

func (s *Surface) apply(k Knob) {
	v := s.knobs[k]
	switch k {
	case KnobSize:
		s.target.SetGrainSize(SizeMs(v))
	case KnobPosition:
		s.target.SetSpawnPosition(v)
	case KnobDensity:
		s.target.SetActiveCount(Density(v))
	case KnobPitch:
		s.target.SetPitchRatio(PitchRatio(v))
	case KnobPan:
		s.target.SetPan(v)
	}
}

// PressMode selects the next phasor mode, or with shift the next mode
// randomness step.
func (s *Surface) PressMode() {
	if s.shift {
		s.modeStep = (s.modeStep + 1) % len(randomSteps)
		s.target.SetRandomness(synth.ParamMode, randomSteps[s.modeStep])
		return
	}

	s.mode = (s.mode + 1) % grain.Mode(grain.NumModes)
	s.target.SetPhasorMode(s.mode)
}

// PressEnvelope selects the next envelope, or with shift the next envelope
// randomness step.
func (s *Surface) PressEnvelope() {
	if s.shift {
		s.envStep = (s.envStep + 1) % len(randomSteps)
		s.target.SetRandomness(synth.ParamEnvelope, randomSteps[s.envStep])
		return
	}

	s.envelope = (s.envelope + 1) % grain.EnvelopeType(grain.NumEnvelopes)
	s.target.SetEnvelope(s.envelope)
}

// State returns a copy of the surface for display.
func (s *Surface) State() State {
	return State{
		Knobs:      s.knobs,
		Randomness: s.random,
		Shift:      s.shift,
		Mode:       s.mode,
		Envelope:   s.envelope,
		ModeRandom: randomSteps[s.modeStep],
		EnvRandom:  randomSteps[s.envStep],
		SizeMs:     SizeMs(s.knobs[KnobSize]),
		Pitch:      PitchRatio(s.knobs[KnobPitch]),
		Density:    Density(s.knobs[KnobDensity]),
	}
}

// The Target methods below take engine units, move the matching knob and
// forward the call.

func (s *Surface) SetGrainSize(ms float64) {
	s.knobs[KnobSize] = sizeKnob(ms)
	s.target.SetGrainSize(ms)
}

func (s *Surface) SetSpawnPosition(pos float64) {
	s.knobs[KnobPosition] = unit(pos)
	s.target.SetSpawnPosition(pos)
}

func (s *Surface) SetActiveCount(n int) {
	s.knobs[KnobDensity] = densityKnob(n)
	s.target.SetActiveCount(n)
}

func (s *Surface) SetPitchRatio(ratio float64) {
	s.knobs[KnobPitch] = pitchKnob(ratio)
	s.target.SetPitchRatio(ratio)
}

func (s *Surface) SetPan(pan float64) {
	s.knobs[KnobPan] = unit(pan)
	s.target.SetPan(pan)
}

func (s *Surface) SetPhasorMode(mode grain.Mode) {
	if mode.Valid() {
		s.mode = mode
	}
	s.target.SetPhasorMode(mode)
}

func (s *Surface) SetEnvelope(kind grain.EnvelopeType) {
	if kind.Valid() {
		s.envelope = kind
	}
	s.target.SetEnvelope(kind)
}

func (s *Surface) SetRandomness(param synth.Param, amount float64) {
	switch param {
	case synth.ParamMode:
		s.modeStep = nearestStep(amount)
	case synth.ParamEnvelope:
		s.envStep = nearestStep(amount)
	default:
		for k := range numKnobs {
			if k.Param() == param {
				s.random[k] = unit(amount)
			}
		}
	}
	s.target.SetRandomness(param, amount)
}
