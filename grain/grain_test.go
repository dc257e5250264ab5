// SPDX-License-Identifier: EPL-2.0

package grain

import (
	"math"
	"testing"
)

func constantBuffer(n int, left, right int16) Buffer {
	l := make([]int16, n)
	r := make([]int16, n)
	for i := range n {
		l[i] = left
		r[i] = right
	}
	return NewBuffer(l, r, n)
}

func rampBuffer(n int) Buffer {
	l := make([]int16, n)
	r := make([]int16, n)
	for i := range n {
		l[i] = int16(i)
		r[i] = int16(-i)
	}
	return NewBuffer(l, r, n)
}

func TestGrain_InactiveIsSilentWithoutBufferAccess(t *testing.T) {
	t.Parallel()

	var g Grain

	// A nil buffer would panic on any read.
	l, r := g.Process(nil)
	if l != 0 || r != 0 {
		t.Errorf("Process() = (%v, %v), want (0, 0)", l, r)
	}
}

func TestGrain_TriggerRejectsInvalidArguments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		sizeMs   float64
		spawnPos int
		pitch    float64
		mode     Mode
	}{
		{"zero size", 0, 0, 1, OneShot},
		{"negative size", -5, 0, 1, OneShot},
		{"NaN size", math.NaN(), 0, 1, OneShot},
		{"zero pitch", 50, 0, 0, OneShot},
		{"negative pitch", 50, 0, -1, OneShot},
		{"negative position", 50, -1, 1, OneShot},
		{"unknown mode", 50, 0, 1, Mode(9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := constantBuffer(64, 1000, 1000)

			var g Grain
			g.Trigger(50, 0, 1, Cycle)
			if !g.Active() {
				t.Fatal("valid Trigger() left grain inactive")
			}

			if g.Trigger(tt.sizeMs, tt.spawnPos, tt.pitch, tt.mode) {
				t.Error("Trigger() = true, want false")
			}
			if g.Active() {
				t.Error("Active() = true after rejected Trigger()")
			}
			if l, r := g.Process(&buf); l != 0 || r != 0 {
				t.Errorf("Process() = (%v, %v), want silence", l, r)
			}
		})
	}
}

func TestGrain_OneShotDeactivatesAtEnd(t *testing.T) {
	t.Parallel()

	buf := constantBuffer(4800, 16384, 16384)

	var g Grain
	if !g.Trigger(10, 0, 1.0, OneShot) {
		t.Fatal("Trigger() = false")
	}

	size := g.SizeSamples()
	if size != 480 {
		t.Fatalf("SizeSamples() = %d, want 480", size)
	}

	calls := 0
	for g.Active() && calls < 10*size {
		g.Process(&buf)
		calls++
	}

	if g.Active() {
		t.Fatal("one-shot grain never deactivated")
	}
	if calls != size {
		t.Errorf("grain sounded for %d samples, want %d", calls, size)
	}
}

func TestGrain_LoopingGrainPersists(t *testing.T) {
	t.Parallel()

	buf := constantBuffer(4800, 16384, 16384)

	for _, mode := range []Mode{Cycle, PingPong} {
		var g Grain
		g.Trigger(10, 0, 1.0, mode)

		completed := 0
		for range 5000 {
			g.Process(&buf)
			if g.LoopCompleted() {
				completed++
			}
		}

		if !g.Active() {
			t.Errorf("%s grain deactivated on its own", mode)
		}
		if completed == 0 {
			t.Errorf("%s grain reported no completed cycle", mode)
		}
	}
}

func TestGrain_PanAndEnvelopeScaling(t *testing.T) {
	t.Parallel()

	buf := constantBuffer(4800, 16384, 16384)

	var g Grain
	g.SetPan(0.25)
	g.SetEnvelope(LinearDecayEnvelope)
	g.Trigger(100, 0, 1.0, OneShot)

	// phase 0: envelope 1, sample 0.5
	l, r := g.Process(&buf)
	gL, gR := PanGains(0.25)

	if math.Abs(float64(l)-0.5*gL) > 1e-6 {
		t.Errorf("left = %v, want %v", l, 0.5*gL)
	}
	if math.Abs(float64(r)-0.5*gR) > 1e-6 {
		t.Errorf("right = %v, want %v", r, 0.5*gR)
	}
}

func TestGrain_HannStartsSilent(t *testing.T) {
	t.Parallel()

	buf := constantBuffer(4800, 32000, 32000)

	var g Grain
	g.SetPan(0.5)
	g.SetEnvelope(HannEnvelope)
	g.Trigger(20, 0, 1.0, OneShot)

	if l, r := g.Process(&buf); l != 0 || r != 0 {
		t.Errorf("first Hann sample = (%v, %v), want (0, 0)", l, r)
	}
}

func TestGrain_ReadPositionWrapsAroundBuffer(t *testing.T) {
	t.Parallel()

	buf := rampBuffer(100)

	var g Grain
	g.SetPan(0)
	g.SetEnvelope(TriangularEnvelope)
	// spawn beyond the end: reads must wrap instead of panicking
	g.Trigger(10, 1234, 1.0, Cycle)

	for range 2000 {
		g.Process(&buf)
	}
}

func TestGrain_PitchDoublesReadSpeed(t *testing.T) {
	t.Parallel()

	var a, b Grain
	a.Trigger(100, 0, 1.0, Cycle)
	b.Trigger(100, 0, 2.0, Cycle)

	if math.Abs(b.Increment()-2*a.Increment()) > 1e-15 {
		t.Errorf("Increment() at pitch 2 = %v, want %v", b.Increment(), 2*a.Increment())
	}
}

func TestGrain_ProcessDoesNotAllocate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	buf := rampBuffer(48000)

	var g Grain
	g.SetEnvelope(HannEnvelope)
	g.Trigger(50, 1000, 1.5, PingPong)

	allocs := testing.AllocsPerRun(1000, func() {
		g.Process(&buf)
	})

	if allocs != 0 {
		t.Errorf("Process() allocated %v times, want 0", allocs)
	}
}

func BenchmarkGrain_Process(b *testing.B) {
	buf := rampBuffer(48000)

	var g Grain
	g.SetEnvelope(HannEnvelope)
	g.Trigger(100, 0, 1.0, Cycle)

	b.ReportAllocs()

	for b.Loop() {
		g.Process(&buf)
	}
}
