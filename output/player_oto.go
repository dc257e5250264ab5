//go:build !headless

// SPDX-License-Identifier: EPL-2.0

package output

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Player streams an Engine to the default audio device through oto.
type Player struct {
	pump *pump

	ctx     *oto.Context
	player  *oto.Player
	started bool
	mutex   sync.Mutex
}

// NewPlayer opens the audio device. oto allows one context per process, so
// only one Player may exist.
func NewPlayer(cfg PlayerConfig) (*Player, error) {
	cfg = cfg.withDefaults()

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   cfg.Latency,
	})
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	p := &Player{
		pump: newPump(cfg.BlockSize, cfg.Monitor),
		ctx:  ctx,
	}
	p.player = ctx.NewPlayer(p.pump)
	p.player.SetBufferSize(cfg.BlockSize * 8 * 2)

	return p, nil
}

// Attach makes e the rendered engine. It is safe while playing.
func (p *Player) Attach(e Engine) { p.pump.attach(e) }

// Detach stops rendering and returns once the audio goroutine has left the
// engine. The device keeps playing silence.
func (p *Player) Detach() { p.pump.detach() }

func (p *Player) Start() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.started && p.player != nil {
		p.player.Play()
		p.started = true
	}
}

func (p *Player) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.started && p.player != nil {
		p.player.Pause()
		p.started = false
	}
}

func (p *Player) IsStarted() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.started
}

// Close detaches the engine and releases the device player.
func (p *Player) Close() error {
	p.Stop()
	p.Detach()

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	if err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}

	return nil
}

