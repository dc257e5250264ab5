// SPDX-License-Identifier: EPL-2.0

// Command grainbox plays a directory of samples through the granular synth,
// either live with a terminal control panel or rendered to a WAV file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/ik5/grainbox/control"
	"github.com/ik5/grainbox/formats/wav"
	"github.com/ik5/grainbox/grain"
	"github.com/ik5/grainbox/meter"
	"github.com/ik5/grainbox/output"
	"github.com/ik5/grainbox/sample"
	"github.com/ik5/grainbox/synth"
)

type options struct {
	dir     string
	index   int
	preset  string
	render  string
	seconds float64
	block   int
	steal   string
	voices  int
	seed    uint
	divider int
	latency time.Duration
}

func parseFlags(args []string) (options, error) {
	var o options

	fs := flag.NewFlagSet("grainbox", flag.ContinueOnError)
	fs.StringVar(&o.dir, "dir", "samples", "directory of wav, aiff, mp3 or ogg files")
	fs.IntVar(&o.index, "index", 0, "index of the sample to start with")
	fs.StringVar(&o.preset, "preset", "", "Lua preset to apply at start")
	fs.StringVar(&o.render, "render", "", "render to this WAV file instead of playing")
	fs.Float64Var(&o.seconds, "seconds", 10, "length of the render in seconds")
	fs.IntVar(&o.block, "block", output.DefaultBlockSize, "frames per engine block")
	fs.StringVar(&o.steal, "steal", "none", "voice stealing policy: none or oldest")
	fs.IntVar(&o.voices, "voices", synth.MaxGrains, "voice slots the trigger policy may use")
	fs.UintVar(&o.seed, "seed", 1, "random seed for grain parameters")
	fs.IntVar(&o.divider, "divider", 1, "run the trigger policy every N samples")
	fs.DurationVar(&o.latency, "latency", 20*time.Millisecond, "audio device buffer")

	if err := fs.Parse(args); err != nil {
		return o, err
	}

	if o.block <= 0 {
		return o, fmt.Errorf("invalid -block %d", o.block)
	}
	if o.seconds <= 0 {
		return o, fmt.Errorf("invalid -seconds %v", o.seconds)
	}
	steal, ok := synth.ParseStealPolicy(o.steal)
	if !ok {
		return o, fmt.Errorf("invalid -steal %q", o.steal)
	}
	if o.voices < 1 || o.voices > synth.MaxGrains {
		return o, fmt.Errorf("invalid -voices %d, want 1..%d", o.voices, synth.MaxGrains)
	}
	// the density target never exceeds MaxGrains, so a full pool never steals
	if steal == synth.StealOldest && o.voices == synth.MaxGrains {
		return o, fmt.Errorf("-steal oldest needs -voices below %d", synth.MaxGrains)
	}
	if o.seed > math.MaxUint32 {
		return o, fmt.Errorf("invalid -seed %d, want at most %d", o.seed, uint64(math.MaxUint32))
	}

	return o, nil
}

func (o options) synthConfig() synth.Config {
	cfg := synth.DefaultConfig()
	cfg.Steal, _ = synth.ParseStealPolicy(o.steal)
	cfg.Polyphony = o.voices
	cfg.Seed = uint32(o.seed)
	cfg.TriggerDivider = o.divider
	return cfg
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("grainbox: ")

	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Fatal(err)
	}

	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}

func run(opts options) error {
	bank := sample.NewBank(sample.DefaultRegistry(), 0)
	if err := bank.Init(opts.dir); err != nil {
		return err
	}

	s := synth.New(opts.synthConfig())
	if err := load(bank, s, opts.index); err != nil {
		return err
	}

	surface := control.NewSurface(s, s.Params())
	if opts.preset != "" {
		if err := control.LoadPreset(surface, opts.preset); err != nil {
			return err
		}
	}

	if opts.render != "" {
		return render(s, opts)
	}

	return play(bank, s, surface, opts)
}

// load decodes file index into the bank and points the synth at it. The
// caller must keep the synth off the audio path meanwhile.
func load(bank *sample.Bank, s *synth.Synth, index int) error {
	if err := bank.LoadFile(index); err != nil {
		return err
	}
	if bank.Truncated() {
		log.Printf("%s truncated to %d samples", bank.Name(index), bank.GetSamplesPerChannel())
	}

	return s.Init(bank.Left(), bank.Right(), bank.GetSamplesPerChannel())
}

func render(s *synth.Synth, opts options) error {
	f, err := os.Create(opts.render)
	if err != nil {
		return err
	}
	defer f.Close()

	rec, err := wav.NewRecorder(f, grain.SampleRate)
	if err != nil {
		return err
	}

	frames := int(opts.seconds * grain.SampleRate)
	if err := output.Render(s, rec, frames, opts.block); err != nil {
		return err
	}
	if err := rec.Close(); err != nil {
		return err
	}

	log.Printf("wrote %d frames to %s", rec.Frames(), opts.render)
	return f.Close()
}

func play(bank *sample.Bank, s *synth.Synth, surface *control.Surface, opts options) error {
	tap := meter.NewTap(8192)

	cfg := output.DefaultPlayerConfig()
	cfg.BlockSize = opts.block
	cfg.Latency = opts.latency
	cfg.Monitor = tap

	player, err := output.NewPlayer(cfg)
	if err != nil {
		return err
	}
	defer player.Close()

	player.Attach(s)
	player.Start()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Printf("playing %s, interrupt to stop", bank.Name(bank.Current()))
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		return nil
	}

	m, err := meter.New(tap, 1024, 16)
	if err != nil {
		return err
	}

	return runTUI(&session{
		bank:    bank,
		synth:   s,
		surface: surface,
		player:  player,
		meter:   m,
	})
}
