// SPDX-License-Identifier: EPL-2.0

package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nsf/termbox-go"

	"github.com/ik5/grainbox/control"
	"github.com/ik5/grainbox/formats/wav"
	"github.com/ik5/grainbox/grain"
	"github.com/ik5/grainbox/output"
	"github.com/ik5/grainbox/sample"
	"github.com/ik5/grainbox/synth"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	opts, err := parseFlags([]string{"-dir", "x", "-steal", "oldest", "-voices", "8", "-seed", "7", "-divider", "4"})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}

	cfg := opts.synthConfig()
	if opts.dir != "x" || cfg.Steal != synth.StealOldest || cfg.Polyphony != 8 || cfg.Seed != 7 || cfg.TriggerDivider != 4 {
		t.Errorf("options %+v config %+v", opts, cfg)
	}
	if opts, _ := parseFlags(nil); opts.voices != synth.MaxGrains {
		t.Errorf("default voices = %d, want %d", opts.voices, synth.MaxGrains)
	}
	if opts.block != output.DefaultBlockSize || opts.seconds != 10 {
		t.Errorf("defaults block %d seconds %v", opts.block, opts.seconds)
	}
}

func TestParseFlagsRejects(t *testing.T) {
	t.Parallel()

	tests := [][]string{
		{"-steal", "newest"},
		{"-steal", "oldest"},
		{"-voices", "0"},
		{"-voices", "33"},
		{"-seed", "4294967296"},
		{"-block", "0"},
		{"-seconds", "-1"},
		{"-unknown"},
	}

	for _, args := range tests {
		if _, err := parseFlags(args); err == nil {
			t.Errorf("parseFlags(%v) succeeded", args)
		}
	}
}

func writeSamples(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	for i, name := range []string{"a.wav", "b.wav", "c.wav"} {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		samples := make([]int16, 2*(i+1)*1000)
		for j := range samples {
			samples[j] = int16(j % 2000)
		}
		if err := wav.WriteWAV16(f, grain.SampleRate, 2, samples); err != nil {
			t.Fatal(err)
		}
		_ = f.Close()
	}

	return dir
}

type fakePlayer struct {
	events   []string
	attached output.Engine
}

func (p *fakePlayer) Attach(e output.Engine) { p.events = append(p.events, "attach"); p.attached = e }
func (p *fakePlayer) Detach()                { p.events = append(p.events, "detach"); p.attached = nil }

func TestSessionStepDetachesAroundLoad(t *testing.T) {
	t.Parallel()

	bank := sample.NewBank(sample.DefaultRegistry(), 0)
	if err := bank.Init(writeSamples(t)); err != nil {
		t.Fatal(err)
	}
	s := synth.New(synth.DefaultConfig())
	if err := load(bank, s, 0); err != nil {
		t.Fatal(err)
	}

	p := &fakePlayer{}
	sess := &session{bank: bank, synth: s, surface: control.NewSurface(s, s.Params()), player: p}

	sess.step(-1)
	if bank.Current() != 2 || s.SamplesPerChannel() != 3000 {
		t.Errorf("after previous: current %d length %d, want 2 and 3000", bank.Current(), s.SamplesPerChannel())
	}
	sess.step(1)
	if bank.Current() != 0 || s.SamplesPerChannel() != 1000 {
		t.Errorf("after next: current %d length %d, want 0 and 1000", bank.Current(), s.SamplesPerChannel())
	}

	want := []string{"detach", "attach", "detach", "attach"}
	if len(p.events) != len(want) {
		t.Fatalf("events = %v, want %v", p.events, want)
	}
	for i := range want {
		if p.events[i] != want[i] {
			t.Errorf("events = %v, want %v", p.events, want)
			break
		}
	}
	if p.attached != s {
		t.Error("synth not attached after load")
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	dir := writeSamples(t)
	out := filepath.Join(t.TempDir(), "bounce.wav")

	opts, err := parseFlags([]string{"-dir", dir, "-render", out, "-seconds", "0.5", "-block", "128"})
	if err != nil {
		t.Fatal(err)
	}
	if err := run(opts); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	src, err := wav.Decoder{}.Decode(f)
	if err != nil {
		t.Fatalf("decoding render: %v", err)
	}

	var total int
	buf := make([]float32, 4096)
	for {
		n, err := src.ReadSamples(buf)
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
	}
	if total != 2*24000 {
		t.Errorf("rendered %d samples, want %d", total, 2*24000)
	}
}

func TestPollEventsStopsWhenDone(t *testing.T) {
	t.Parallel()

	poll := func() termbox.Event { return termbox.Event{Type: termbox.EventKey, Ch: 'x'} }
	done := make(chan struct{})
	events := pollEvents(poll, done)

	if ev := <-events; ev.Ch != 'x' {
		t.Fatalf("event = %+v, want key x", ev)
	}

	// the forwarder closes events once it sees done
	close(done)

	timeout := time.After(time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("event goroutine still running after done was closed")
		}
	}
}
