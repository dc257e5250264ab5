// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"fmt"
	"sync/atomic"

	"github.com/ik5/grainbox/grain"
)

// Synth owns the voice pool, the global parameters and the trigger policy.
//
// ProcessGrains is the real-time entry point: it never allocates, blocks or
// returns an error. Setters may be called concurrently from a control goroutine.
// Init and Reset replace structural state and must only be called while no
// goroutine is inside ProcessGrains.
type Synth struct {
	cfg    Config
	params params

	buf  grain.Buffer
	pool [MaxGrains]grain.Grain

	rng   Rand
	tick  int
	clock uint64
	// started is the clock at which the trigger policy last started each
	// slot. Re-arming a loop continues a voice and leaves it unchanged.
	started [MaxGrains]uint64

	voices atomic.Int32
}

// New returns a synth with an inactive pool and default parameters. It is silent
// until Init is given a sample.
func New(cfg Config) *Synth {
	if cfg.TriggerDivider < 1 {
		cfg.TriggerDivider = 1
	}
	if cfg.Polyphony < 1 || cfg.Polyphony > MaxGrains {
		cfg.Polyphony = MaxGrains
	}

	s := &Synth{cfg: cfg}
	s.params.reset()
	s.rng.Seed(cfg.Seed)

	return s
}

// Init points the synth at a loaded sample and resets the pool. left and right
// must stay unmodified until the next Init.
func (s *Synth) Init(left, right []int16, audioLen int) error {
	if audioLen <= 0 || len(left) == 0 || len(right) == 0 {
		return ErrEmptyBuffer
	}
	if len(left) != len(right) {
		return fmt.Errorf("%w: %d != %d", ErrChannelMismatch, len(left), len(right))
	}

	s.buf = grain.NewBuffer(left, right, audioLen)
	s.Reset()

	return nil
}

// Reset silences every voice and rewinds the trigger clock and generator.
// Parameters are kept.
func (s *Synth) Reset() {
	for i := range s.pool {
		s.pool[i].Deactivate()
		s.started[i] = 0
	}
	s.tick = 0
	s.clock = 0
	s.rng.Seed(s.cfg.Seed)
	s.voices.Store(0)
}

// Config returns the structural configuration.
func (s *Synth) Config() Config { return s.cfg }

// SamplesPerChannel returns the length of the loaded sample.
func (s *Synth) SamplesPerChannel() int { return s.buf.Len() }

// ProcessGrains renders blockSize stereo samples into outLeft and outRight.
// For every sample it runs the trigger policy (at the configured sub-rate) and
// sums all voices; inactive voices contribute silence at constant cost.
func (s *Synth) ProcessGrains(outLeft, outRight []float32, blockSize int) {
	n := min(blockSize, len(outLeft), len(outRight))
	if n <= 0 {
		return
	}

	if s.buf.Len() == 0 {
		clear(outLeft[:n])
		clear(outRight[:n])
		return
	}

	for i := range n {
		if s.tick == 0 {
			s.RunTriggerPolicy()
		}
		s.tick++
		if s.tick >= s.cfg.TriggerDivider {
			s.tick = 0
		}

		var l, r float32
		for v := range s.pool {
			g := &s.pool[v]
			gl, gr := g.Process(&s.buf)
			l += gl
			r += gr

			if s.cfg.RearmLoops && g.LoopCompleted() {
				s.trigger(v)
			}
		}

		outLeft[i] = l
		outRight[i] = r
		s.clock++
	}

	s.voices.Store(int32(s.ActiveCount()))
}

// RunTriggerPolicy starts at most one voice. Below the active-voice target it
// uses the first free slot of the first Polyphony slots. When none is free the
// trigger is dropped, or with StealOldest the least recently started voice that
// has sounded for at least its grain length is re-triggered. It reports whether
// a voice was triggered.
func (s *Synth) RunTriggerPolicy() bool {
	if s.buf.Len() == 0 {
		return false
	}

	target := int(s.params.activeCount.Load())
	if amt := s.params.randomness[ParamActiveCount].Load(); amt > 0 {
		target = int(s.rng.Perturb(float64(target), amt, 0, MaxGrains) + 0.5)
	}

	if s.ActiveCount() >= target {
		return false
	}

	slot := s.freeSlot()
	if slot < 0 && s.cfg.Steal == StealOldest {
		slot = s.oldestSlot()
	}
	if slot < 0 {
		return false
	}

	s.started[slot] = s.clock
	return s.trigger(slot)
}

// ActiveCount returns the number of sounding voices. It reads the pool directly
// and belongs to the audio path; other goroutines should use Voices.
func (s *Synth) ActiveCount() int {
	n := 0
	for i := range s.pool {
		if s.pool[i].Active() {
			n++
		}
	}
	return n
}

// Voices returns the active-voice count published at the end of the last block.
// It is safe to call from any goroutine.
func (s *Synth) Voices() int { return int(s.voices.Load()) }

func (s *Synth) freeSlot() int {
	for i := range s.cfg.Polyphony {
		if !s.pool[i].Active() {
			return i
		}
	}
	return -1
}

// oldestSlot returns the least recently started voice that is old enough to
// steal, or -1.
func (s *Synth) oldestSlot() int {
	slot := -1
	for i := range s.cfg.Polyphony {
		g := &s.pool[i]
		if !g.Active() || s.clock-s.started[i] < uint64(g.SizeSamples()) {
			continue
		}
		if slot < 0 || s.started[i] < s.started[slot] {
			slot = i
		}
	}
	return slot
}

// trigger draws this voice's parameters from the globals and starts it.
func (s *Synth) trigger(slot int) bool {
	p := &s.params
	rnd := &p.randomness

	size := s.rng.Perturb(p.sizeMs.Load(), rnd[ParamSize].Load(), grain.MinGrainSizeMs, grain.MaxGrainSizeMs)
	pos := s.rng.Perturb(p.position.Load(), rnd[ParamPosition].Load(), 0, 1)
	pitch := s.rng.Perturb(p.pitch.Load(), rnd[ParamPitch].Load(), grain.MinPitch, grain.MaxPitch)
	pan := s.rng.Perturb(p.pan.Load(), rnd[ParamPan].Load(), 0, 1)

	mode := grain.Mode(p.mode.Load())
	if amt := rnd[ParamMode].Load(); amt > 0 && s.rng.Float64() < amt {
		mode = grain.Mode(s.rng.Intn(grain.NumModes))
	}

	env := grain.EnvelopeType(p.envelope.Load())
	if amt := rnd[ParamEnvelope].Load(); amt > 0 && s.rng.Float64() < amt {
		env = grain.EnvelopeType(s.rng.Intn(grain.NumEnvelopes))
	}

	spawn := int(pos * float64(s.buf.Len()-1))

	g := &s.pool[slot]
	g.SetPan(pan)
	g.SetEnvelope(env)

	return g.Trigger(size, spawn, pitch, mode)
}
