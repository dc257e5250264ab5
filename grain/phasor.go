// SPDX-License-Identifier: EPL-2.0

package grain

import "math"

// Phasor is a ramp generator driving one grain's read position and lifetime.
//
// Phase lives in [0, 1]. Increment is the fractional progress per output sample,
// pitchRatio / sizeSamples.
type Phasor struct {
	phase     float64
	direction float64
	increment float64

	size  float64
	pitch float64
	mode  Mode

	finished bool
	// completed is set by Process when a looping mode closes a cycle.
	completed bool
}

// Init prepares the phasor for a grain of sizeSamples played at pitchRatio.
// Reverse one-shots start at phase 1 moving backwards. Non-positive sizes are
// treated as one sample.
func (p *Phasor) Init(sizeSamples int, pitchRatio float64, mode Mode) {
	if sizeSamples < 1 {
		sizeSamples = 1
	}
	if !mode.Valid() {
		mode = OneShot
	}

	p.size = float64(sizeSamples)
	p.pitch = pitchRatio
	p.mode = mode
	p.finished = false
	p.completed = false

	p.phase = 0
	p.direction = 1
	if mode == OneShotReverse {
		p.phase = 1
		p.direction = -1
	}

	p.updateIncrement()
}

// SetPitchRatio changes the playback ratio; the increment is recomputed at once.
func (p *Phasor) SetPitchRatio(pitchRatio float64) {
	p.pitch = pitchRatio
	p.updateIncrement()
}

// SetMode switches the playback policy without resetting the phase. A finished
// one-shot switched to a looping mode resumes from where it stopped.
func (p *Phasor) SetMode(mode Mode) {
	if !mode.Valid() {
		return
	}
	p.mode = mode
	if mode.Looping() {
		p.finished = false
	}
	switch mode {
	case OneShotReverse:
		p.direction = -1
	case OneShot, Cycle:
		p.direction = 1
	}
	p.updateIncrement()
}

func (p *Phasor) updateIncrement() {
	if p.size <= 0 || p.pitch <= 0 {
		p.increment = 0
		return
	}
	p.increment = p.pitch / p.size
}

// Process advances the phase by one sample, applies the mode policy and returns
// the new phase.
func (p *Phasor) Process() float64 {
	if p.finished {
		return p.phase
	}

	p.completed = false
	p.phase += p.increment * p.direction

	switch p.mode {
	case OneShot:
		if p.phase >= 1-phaseEpsilon {
			p.phase = 1
			p.finished = true
		} else if p.phase < 0 {
			p.phase = 0
			p.finished = true
		}

	case OneShotReverse:
		p.direction = -1
		if p.phase <= phaseEpsilon {
			p.phase = 0
			p.finished = true
		} else if p.phase > 1 {
			p.phase = 1
		}

	case Cycle:
		if p.phase >= 1 || p.phase < 0 {
			p.phase -= math.Floor(p.phase)
			if p.phase >= 1 {
				p.phase = 0
			}
			p.completed = true
		}

	case PingPong:
		if p.phase > 1 {
			p.phase = 2 - p.phase
			p.direction = -1
		} else if p.phase < 0 {
			p.phase = -p.phase
			p.direction = 1
			p.completed = true
		}
		// increments above 2 can overshoot a single reflection
		p.phase = clampUnit(p.phase)
	}

	return p.phase
}

// Phase returns the current phase without advancing.
func (p *Phasor) Phase() float64 { return p.phase }

// Increment returns the per-sample phase step.
func (p *Phasor) Increment() float64 { return p.increment }

// Mode returns the current playback policy.
func (p *Phasor) Mode() Mode { return p.mode }

// GrainFinished reports whether a one-shot phasor reached its terminal phase.
// It stays true until the next Init and is never true for looping modes.
func (p *Phasor) GrainFinished() bool { return p.finished }

// CycleCompleted reports whether the last Process call closed a loop cycle:
// a wrap in Cycle mode, or the return to phase 0 in PingPong mode.
func (p *Phasor) CycleCompleted() bool { return p.completed }
