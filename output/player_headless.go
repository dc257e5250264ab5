//go:build headless

// SPDX-License-Identifier: EPL-2.0

package output

import "sync"

// Player consumes the engine without an audio device. Read pulls frames the
// way the device would, so tests and CI can drive the same path.
type Player struct {
	pump *pump

	started bool
	mutex   sync.Mutex
}

func NewPlayer(cfg PlayerConfig) (*Player, error) {
	cfg = cfg.withDefaults()
	return &Player{pump: newPump(cfg.BlockSize, cfg.Monitor)}, nil
}

func (p *Player) Attach(e Engine) { p.pump.attach(e) }
func (p *Player) Detach()         { p.pump.detach() }

// Read renders interleaved float32 little-endian stereo into b.
func (p *Player) Read(b []byte) (int, error) { return p.pump.Read(b) }

func (p *Player) Start() {
	p.mutex.Lock()
	p.started = true
	p.mutex.Unlock()
}

func (p *Player) Stop() {
	p.mutex.Lock()
	p.started = false
	p.mutex.Unlock()
}

func (p *Player) IsStarted() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.started
}

func (p *Player) Close() error {
	p.Stop()
	p.Detach()
	return nil
}
