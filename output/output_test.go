// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ik5/grainbox/synth"
)

// rampEngine writes an increasing counter to left and its negation to right.
type rampEngine struct {
	next   float32
	calls  int
	blocks []int
}

func (e *rampEngine) ProcessGrains(l, r []float32, blockSize int) {
	e.calls++
	e.blocks = append(e.blocks, blockSize)
	for i := range blockSize {
		l[i] = e.next
		r[i] = -e.next
		e.next++
	}
}

type collector struct {
	left, right []float32
	failAt      int
}

func (c *collector) WriteFrames(l, r []float32) error {
	if c.failAt > 0 && len(c.left)+len(l) > c.failAt {
		return errors.New("disk full")
	}
	c.left = append(c.left, l...)
	c.right = append(c.right, r...)
	return nil
}

type countingMonitor struct{ frames int }

func (m *countingMonitor) Write(l, _ []float32) { m.frames += len(l) }

func frameAt(b []byte, f int) (float32, float32) {
	l := math.Float32frombits(binary.LittleEndian.Uint32(b[8*f:]))
	r := math.Float32frombits(binary.LittleEndian.Uint32(b[8*f+4:]))
	return l, r
}

func TestRender(t *testing.T) {
	t.Parallel()

	e := &rampEngine{}
	var c collector
	if err := Render(e, &c, 100, 32); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if len(c.left) != 100 || len(c.right) != 100 {
		t.Fatalf("wrote %d/%d frames, want 100", len(c.left), len(c.right))
	}
	if e.calls != 4 {
		t.Errorf("engine calls = %d, want 4", e.calls)
	}
	for _, b := range e.blocks {
		if b != 32 {
			t.Errorf("block size %d, want 32", b)
		}
	}
	if c.left[99] != 99 || c.right[99] != -99 {
		t.Errorf("last frame = (%v, %v)", c.left[99], c.right[99])
	}
}

func TestRenderErrors(t *testing.T) {
	t.Parallel()

	if err := Render(&rampEngine{}, &collector{}, 10, 0); !errors.Is(err, ErrInvalidBlockSize) {
		t.Errorf("Render(block 0) error = %v, want ErrInvalidBlockSize", err)
	}
	if err := Render(&rampEngine{}, &collector{failAt: 40}, 100, 16); err == nil {
		t.Error("Render() ignored a writer error")
	}
}

func TestRenderSynthIsBounded(t *testing.T) {
	t.Parallel()

	left := make([]int16, 4800)
	right := make([]int16, 4800)
	for i := range left {
		left[i] = int16(8000 * math.Sin(float64(i)/10))
		right[i] = left[i]
	}

	s := synth.New(synth.DefaultConfig())
	if err := s.Init(left, right, len(left)); err != nil {
		t.Fatal(err)
	}

	var c collector
	if err := Render(s, &c, 9600, 128); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var energy float64
	for _, v := range c.left {
		if math.IsNaN(float64(v)) || math.Abs(float64(v)) > synth.MaxGrains {
			t.Fatalf("sample out of range: %v", v)
		}
		energy += float64(v * v)
	}
	if energy == 0 {
		t.Error("rendered silence from a loaded synth")
	}
}

func TestPumpSilenceWhenDetached(t *testing.T) {
	t.Parallel()

	p := newPump(16, nil)
	b := make([]byte, 64)
	for i := range b {
		b[i] = 0xff
	}

	n, err := p.Read(b)
	if err != nil || n != len(b) {
		t.Fatalf("Read() = %d, %v", n, err)
	}
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d = %#x, want silence", i, v)
		}
	}
}

func TestPumpServesFixedBlocks(t *testing.T) {
	t.Parallel()

	e := &rampEngine{}
	m := &countingMonitor{}
	p := newPump(16, m)
	p.attach(e)

	// 10 frames, then 20, then a trailing partial frame.
	b1 := make([]byte, 10*8)
	b2 := make([]byte, 20*8+3)
	if _, err := p.Read(b1); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Read(b2); err != nil {
		t.Fatal(err)
	}

	if l, r := frameAt(b1, 9); l != 9 || r != -9 {
		t.Errorf("frame 9 = (%v, %v)", l, r)
	}
	if l, _ := frameAt(b2, 0); l != 10 {
		t.Errorf("frame 10 = %v, want continuity", l)
	}
	if l, _ := frameAt(b2, 19); l != 29 {
		t.Errorf("frame 29 = %v", l)
	}
	if b2[len(b2)-1] != 0 {
		t.Error("trailing partial frame not cleared")
	}

	for _, bs := range e.blocks {
		if bs != 16 {
			t.Errorf("engine block = %d, want 16", bs)
		}
	}
	if e.calls != 2 || m.frames != 32 {
		t.Errorf("calls %d monitored %d, want 2 and 32", e.calls, m.frames)
	}
}

func TestPumpReadDoesNotAllocate(t *testing.T) {
	p := newPump(64, nil)
	p.attach(&rampEngine{blocks: make([]int, 0, 1<<16)})
	b := make([]byte, 512*8)

	allocs := testing.AllocsPerRun(100, func() {
		_, _ = p.Read(b)
	})
	if allocs != 0 {
		t.Errorf("Read() allocates %v times per call", allocs)
	}
}

// slowEngine blocks inside ProcessGrains until released.
type slowEngine struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (e *slowEngine) ProcessGrains(_, _ []float32, _ int) {
	e.once.Do(func() { close(e.entered) })
	<-e.release
}

func TestPumpDetachWaitsForReader(t *testing.T) {
	t.Parallel()

	e := &slowEngine{entered: make(chan struct{}), release: make(chan struct{})}
	p := newPump(8, nil)
	p.attach(e)

	go func() { _, _ = p.Read(make([]byte, 64)) }()
	<-e.entered

	var detached atomic.Bool
	done := make(chan struct{})
	go func() {
		p.detach()
		detached.Store(true)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	if detached.Load() {
		t.Fatal("detach returned while a block was rendering")
	}

	close(e.release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("detach did not return after the block finished")
	}
}

func TestDefaultPlayerConfig(t *testing.T) {
	t.Parallel()

	c := PlayerConfig{BlockSize: 64}.withDefaults()
	if c.SampleRate != 48000 || c.BlockSize != 64 || c.Latency <= 0 {
		t.Errorf("withDefaults() = %+v", c)
	}
}

func BenchmarkPumpRead(b *testing.B) {
	s := synth.New(synth.DefaultConfig())
	buf := make([]int16, 48000)
	_ = s.Init(buf, buf, len(buf))

	p := newPump(DefaultBlockSize, nil)
	p.attach(s)
	out := make([]byte, 1024*8)
	b.ReportAllocs()

	for b.Loop() {
		_, _ = p.Read(out)
	}
}
