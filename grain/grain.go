// SPDX-License-Identifier: EPL-2.0

package grain

// Grain is one voice of the granular engine. The zero value is an inactive grain.
//
// Grains are created once with their pool and re-activated in place by Trigger.
type Grain struct {
	phasor Phasor

	spawnPos    int
	sizeSamples int
	pan         float64
	gainL       float64
	gainR       float64
	envelope    EnvelopeType

	active        bool
	loopCompleted bool
}

// Trigger starts the grain at spawnPos, sizeMs long, played at pitchRatio with the
// given mode. Non-positive sizes or pitch ratios and negative positions deactivate
// the grain instead; Trigger reports whether the grain was started.
func (g *Grain) Trigger(sizeMs float64, spawnPos int, pitchRatio float64, mode Mode) bool {
	if !(sizeMs > 0) || !(pitchRatio > 0) || spawnPos < 0 || !mode.Valid() {
		g.active = false
		return false
	}

	g.sizeSamples = MsToSamples(sizeMs)
	g.spawnPos = spawnPos
	g.phasor.Init(g.sizeSamples, pitchRatio, mode)
	g.loopCompleted = false
	g.gainL, g.gainR = PanGains(g.pan)
	g.active = true

	return true
}

// SetPan sets the stereo position in [0, 1]; 0 is hard left, 1 hard right.
func (g *Grain) SetPan(pan float64) {
	g.pan = clampUnit(pan)
	g.gainL, g.gainR = PanGains(g.pan)
}

// SetEnvelope selects the amplitude envelope. Unknown types are ignored.
func (g *Grain) SetEnvelope(kind EnvelopeType) {
	if kind.Valid() {
		g.envelope = kind
	}
}

// Process returns the grain's next stereo sample read from buf. Inactive grains
// return silence without touching buf.
//
// One-shot grains deactivate themselves once their phasor reaches its terminal
// phase. Looping grains keep running; LoopCompleted reports a closed cycle.
func (g *Grain) Process(buf *Buffer) (float32, float32) {
	if !g.active {
		return 0, 0
	}

	phase := g.phasor.Phase()
	offset := int(phase*float64(g.sizeSamples) + 0.5)
	l, r := buf.Frame(Wrap(g.spawnPos+offset, buf.Len()))

	env := Envelope(g.envelope, phase)
	outL := float32(env*g.gainL) * l
	outR := float32(env*g.gainR) * r

	g.phasor.Process()
	g.loopCompleted = g.phasor.CycleCompleted()
	if g.phasor.GrainFinished() {
		g.active = false
	}

	return outL, outR
}

// Active reports whether the grain is sounding.
func (g *Grain) Active() bool { return g.active }

// Deactivate silences the grain immediately.
func (g *Grain) Deactivate() {
	g.active = false
	g.loopCompleted = false
}

// LoopCompleted reports whether the last Process call closed a loop cycle.
func (g *Grain) LoopCompleted() bool { return g.active && g.loopCompleted }

// Phase returns the current phasor phase.
func (g *Grain) Phase() float64 { return g.phasor.Phase() }

// Increment returns the phasor's per-sample phase step.
func (g *Grain) Increment() float64 { return g.phasor.Increment() }

// Mode returns the grain's playback mode.
func (g *Grain) Mode() Mode { return g.phasor.Mode() }

// SizeSamples returns the grain length in samples.
func (g *Grain) SizeSamples() int { return g.sizeSamples }

// SpawnPos returns the sample offset the grain reads from.
func (g *Grain) SpawnPos() int { return g.spawnPos }

// Pan returns the stereo position.
func (g *Grain) Pan() float64 { return g.pan }

// EnvelopeType returns the selected envelope.
func (g *Grain) EnvelopeType() EnvelopeType { return g.envelope }
