// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"math"
	"runtime"
	"sync/atomic"
)

type engineSlot struct {
	e Engine
}

// pump adapts the block-based engine to a byte stream of interleaved
// little-endian float32 stereo. Read runs on the audio device goroutine; the
// engine pointer is swapped without locks.
type pump struct {
	engine   atomic.Pointer[engineSlot]
	inFlight atomic.Int32
	monitor  Monitor

	blockSize   int
	left, right []float32
	pos         int
}

func newPump(blockSize int, monitor Monitor) *pump {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}

	return &pump{
		monitor:   monitor,
		blockSize: blockSize,
		left:      make([]float32, blockSize),
		right:     make([]float32, blockSize),
		pos:       blockSize,
	}
}

func (p *pump) attach(e Engine) {
	if e == nil {
		p.detach()
		return
	}
	p.engine.Store(&engineSlot{e: e})
}

// detach removes the engine and waits until no Read is using it.
func (p *pump) detach() {
	p.engine.Store(nil)
	for p.inFlight.Load() != 0 {
		runtime.Gosched()
	}
}

func (p *pump) Read(b []byte) (int, error) {
	p.inFlight.Add(1)
	defer p.inFlight.Add(-1)

	frames := len(b) / 8
	slot := p.engine.Load()
	if slot == nil {
		clear(b)
		p.pos = p.blockSize
		return len(b), nil
	}

	for f := range frames {
		if p.pos == p.blockSize {
			slot.e.ProcessGrains(p.left, p.right, p.blockSize)
			if p.monitor != nil {
				p.monitor.Write(p.left, p.right)
			}
			p.pos = 0
		}

		binary.LittleEndian.PutUint32(b[8*f:], math.Float32bits(p.left[p.pos]))
		binary.LittleEndian.PutUint32(b[8*f+4:], math.Float32bits(p.right[p.pos]))
		p.pos++
	}
	clear(b[8*frames:])

	return len(b), nil
}
