// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"math"
	"sync/atomic"

	"github.com/ik5/grainbox/grain"
)

// Param names a global synth parameter for SetRandomness.
type Param int

const (
	ParamSize Param = iota
	ParamPosition
	ParamActiveCount
	ParamPitch
	ParamPan
	ParamMode
	ParamEnvelope

	numParams
)

// NumParams is the number of randomizable parameters.
const NumParams = int(numParams)

var paramNames = [...]string{
	ParamSize:        "size",
	ParamPosition:    "position",
	ParamActiveCount: "density",
	ParamPitch:       "pitch",
	ParamPan:         "pan",
	ParamMode:        "mode",
	ParamEnvelope:    "envelope",
}

func (p Param) String() string {
	if p < 0 || p >= numParams {
		return "unknown"
	}
	return paramNames[p]
}

// ParseParam returns the parameter named s.
func ParseParam(s string) (Param, bool) {
	for i, name := range paramNames {
		if name == s {
			return Param(i), true
		}
	}
	return 0, false
}

// atomicFloat is a float64 cell written by the control path and read by the
// audio path without locking.
type atomicFloat struct {
	bits atomic.Uint64
}

func (f *atomicFloat) Load() float64   { return math.Float64frombits(f.bits.Load()) }
func (f *atomicFloat) Store(v float64) { f.bits.Store(math.Float64bits(v)) }

// params is the global parameter state. Each field is a single atomic store;
// readers may observe a mix of old and new values across fields.
type params struct {
	sizeMs      atomicFloat
	position    atomicFloat
	activeCount atomic.Int32
	pitch       atomicFloat
	pan         atomicFloat
	mode        atomic.Int32
	envelope    atomic.Int32

	randomness [numParams]atomicFloat
}

// Snapshot is a plain copy of the global parameters.
type Snapshot struct {
	SizeMs      float64
	Position    float64
	ActiveCount int
	Pitch       float64
	Pan         float64
	Mode        grain.Mode
	Envelope    grain.EnvelopeType
	Randomness  [NumParams]float64
}

func (p *params) reset() {
	p.sizeMs.Store(100)
	p.position.Store(0)
	p.activeCount.Store(8)
	p.pitch.Store(1)
	p.pan.Store(0.5)
	p.mode.Store(int32(grain.OneShot))
	p.envelope.Store(int32(grain.HannEnvelope))
	for i := range p.randomness {
		p.randomness[i].Store(0)
	}
}

func (p *params) snapshot() Snapshot {
	s := Snapshot{
		SizeMs:      p.sizeMs.Load(),
		Position:    p.position.Load(),
		ActiveCount: int(p.activeCount.Load()),
		Pitch:       p.pitch.Load(),
		Pan:         p.pan.Load(),
		Mode:        grain.Mode(p.mode.Load()),
		Envelope:    grain.EnvelopeType(p.envelope.Load()),
	}
	for i := range p.randomness {
		s.Randomness[i] = p.randomness[i].Load()
	}
	return s
}

// SetGrainSize sets the grain length in milliseconds, clamped to
// [grain.MinGrainSizeMs, grain.MaxGrainSizeMs].
func (s *Synth) SetGrainSize(ms float64) {
	s.params.sizeMs.Store(clamp(ms, grain.MinGrainSizeMs, grain.MaxGrainSizeMs))
}

// SetSpawnPosition sets where new grains start, as a fraction in [0, 1] of the
// loaded sample.
func (s *Synth) SetSpawnPosition(pos float64) {
	s.params.position.Store(clamp(pos, 0, 1))
}

// SetActiveCount sets how many voices the trigger policy keeps sounding,
// clamped to [0, MaxGrains].
func (s *Synth) SetActiveCount(n int) {
	n = max(0, min(n, MaxGrains))
	s.params.activeCount.Store(int32(n))
}

// SetPitchRatio sets the playback ratio of new grains, clamped to
// [grain.MinPitch, grain.MaxPitch].
func (s *Synth) SetPitchRatio(ratio float64) {
	s.params.pitch.Store(clamp(ratio, grain.MinPitch, grain.MaxPitch))
}

// SetPan sets the stereo position of new grains in [0, 1].
func (s *Synth) SetPan(pan float64) {
	s.params.pan.Store(clamp(pan, 0, 1))
}

// SetPhasorMode sets the playback mode of new grains. Unknown modes are ignored.
func (s *Synth) SetPhasorMode(mode grain.Mode) {
	if mode.Valid() {
		s.params.mode.Store(int32(mode))
	}
}

// SetEnvelope sets the envelope of new grains. Unknown types are ignored.
func (s *Synth) SetEnvelope(kind grain.EnvelopeType) {
	if kind.Valid() {
		s.params.envelope.Store(int32(kind))
	}
}

// SetRandomness sets how much param is perturbed per grain, in [0, 1].
func (s *Synth) SetRandomness(param Param, amount float64) {
	if param < 0 || param >= numParams {
		return
	}
	s.params.randomness[param].Store(clamp(amount, 0, 1))
}

// Params returns a copy of the current global parameters.
func (s *Synth) Params() Snapshot {
	return s.params.snapshot()
}
