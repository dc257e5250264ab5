// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"time"

	"github.com/nsf/termbox-go"

	"github.com/ik5/grainbox/control"
	"github.com/ik5/grainbox/grain"
	"github.com/ik5/grainbox/meter"
	"github.com/ik5/grainbox/output"
	"github.com/ik5/grainbox/sample"
	"github.com/ik5/grainbox/synth"
)

const (
	colDef    = termbox.ColorDefault
	colWhite  = termbox.ColorWhite
	colGreen  = termbox.ColorGreen
	colYellow = termbox.ColorYellow
	colCyan   = termbox.ColorCyan
	colRed    = termbox.ColorRed

	knobStep = 0.02
	barWidth = 40
)

type audioPlayer interface {
	Attach(e output.Engine)
	Detach()
}

type session struct {
	bank    *sample.Bank
	synth   *synth.Synth
	surface *control.Surface
	player  audioPlayer
	meter   *meter.Meter

	selected control.Knob
	status   string
	exit     bool
}

// pollEvents forwards poll results until done is closed. The returned channel
// is closed when the forwarding goroutine exits.
func pollEvents(poll func() termbox.Event, done <-chan struct{}) <-chan termbox.Event {
	events := make(chan termbox.Event)
	go func() {
		defer close(events)
		for {
			ev := poll()
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}

func runTUI(s *session) error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("starting terminal UI: %w", err)
	}
	defer termbox.Close()

	termbox.SetInputMode(termbox.InputEsc)

	done := make(chan struct{})
	defer close(done)
	events := pollEvents(termbox.PollEvent, done)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	s.draw()

	for !s.exit {
		select {
		case ev := <-events:
			switch ev.Type {
			case termbox.EventKey:
				s.handleKey(ev)
				s.draw()
			case termbox.EventResize:
				s.draw()
			case termbox.EventError:
				return ev.Err
			}
		case <-ticker.C:
			s.meter.Update()
			s.draw()
		}
	}

	return nil
}

func (s *session) handleKey(ev termbox.Event) {
	switch {
	case ev.Key == termbox.KeyEsc || ev.Ch == 'q':
		s.exit = true
	case ev.Key == termbox.KeyArrowUp:
		s.selected = (s.selected + control.Knob(control.NumKnobs) - 1) % control.Knob(control.NumKnobs)
	case ev.Key == termbox.KeyArrowDown:
		s.selected = (s.selected + 1) % control.Knob(control.NumKnobs)
	case ev.Key == termbox.KeyArrowRight:
		s.surface.Nudge(s.selected, knobStep)
	case ev.Key == termbox.KeyArrowLeft:
		s.surface.Nudge(s.selected, -knobStep)
	case ev.Key == termbox.KeyTab:
		s.surface.SetShift(!s.surface.Shift())
	case ev.Ch == 'm':
		s.surface.PressMode()
	case ev.Ch == 'e':
		s.surface.PressEnvelope()
	case ev.Ch == 'n':
		s.step(1)
	case ev.Ch == 'p':
		s.step(-1)
	}
}

// step loads the next or previous sample with the synth detached from the
// audio path. On failure the synth stays detached and the panel plays silence.
func (s *session) step(dir int) {
	n := s.bank.Len()
	next := ((s.bank.Current()+dir)%n + n) % n

	s.player.Detach()
	if err := load(s.bank, s.synth, next); err != nil {
		s.status = err.Error()
		return
	}
	s.player.Attach(s.synth)
	s.status = "loaded " + s.bank.Name(next)
}

func (s *session) draw() {
	termbox.Clear(colDef, colDef)

	st := s.surface.State()
	layer := "main"
	if st.Shift {
		layer = "shift (randomness)"
	}

	printTB(0, 0, colCyan, colDef, "grainbox - granular sampler")
	printTB(0, 1, colDef, colDef, "Arrows select/adjust, Tab shift, m mode, e envelope, n/p sample, q quit")
	printTB(0, 2, colDef, colDef, fmt.Sprintf("Sample %d/%d: %s (%d samples)",
		s.bank.Current()+1, s.bank.Len(), s.bank.Name(s.bank.Current()), s.bank.GetSamplesPerChannel()))
	printTB(0, 3, colYellow, colDef, "Layer: "+layer)

	values := [control.NumKnobs]string{
		control.KnobSize:     fmt.Sprintf("%.0f ms", st.SizeMs),
		control.KnobPosition: fmt.Sprintf("%.2f", st.Knobs[control.KnobPosition]),
		control.KnobDensity:  fmt.Sprintf("%d grains", st.Density),
		control.KnobPitch:    fmt.Sprintf("x%.2f", st.Pitch),
		control.KnobPan:      fmt.Sprintf("%.2f", st.Knobs[control.KnobPan]),
	}

	for k := range control.Knob(control.NumKnobs) {
		fg, bg, prefix := colWhite, colDef, "  "
		if k == s.selected {
			fg, bg, prefix = colDef, colWhite, "> "
		}
		line := fmt.Sprintf("%-12s %-12s rnd %.2f", prefix+k.String(), values[k], st.Randomness[k])
		printTB(0, 5+int(k), fg, bg, line)
	}

	printTB(0, 11, colDef, colDef, fmt.Sprintf("Mode     %-10s rnd %.2f", st.Mode, st.ModeRandom))
	printTB(0, 12, colDef, colDef, fmt.Sprintf("Envelope %-10s rnd %.2f", st.Envelope, st.EnvRandom))
	printTB(0, 13, colDef, colDef, fmt.Sprintf("Voices   %d/%d", s.synth.Voices(), synth.MaxGrains))

	drawBar(0, 15, "Level", (s.meter.DBFS()+60)/60, fmt.Sprintf("%6.1f dB", s.meter.DBFS()), colGreen)
	for b, v := range s.meter.Bands() {
		label := fmt.Sprintf("%5.0f", s.meter.BandFrequency(b, grain.SampleRate))
		drawBar(0, 17+b, label, v, "", colYellow)
	}

	if s.status != "" {
		printTB(0, 18+len(s.meter.Bands()), colRed, colDef, s.status)
	}

	termbox.Flush()
}

func drawBar(x, y int, label string, ratio float64, suffix string, color termbox.Attribute) {
	ratio = max(0, min(ratio, 1))
	filled := int(ratio * barWidth)

	printTB(x, y, colDef, colDef, label)
	for i := range barWidth {
		ch := '░'
		if i < filled {
			ch = '█'
		}
		termbox.SetCell(x+7+i, y, ch, color, colDef)
	}
	printTB(x+8+barWidth, y, colDef, colDef, suffix)
}

func printTB(x, y int, fg, bg termbox.Attribute, msg string) {
	for _, c := range msg {
		termbox.SetCell(x, y, c, fg, bg)
		x++
	}
}
