// SPDX-License-Identifier: EPL-2.0

package output

import (
	"errors"
	"fmt"
)

// DefaultBlockSize is the number of frames rendered per engine call.
const DefaultBlockSize = 256

var ErrInvalidBlockSize = errors.New("block size must be positive")

// Engine renders fixed-size stereo blocks. *synth.Synth implements it.
type Engine interface {
	ProcessGrains(outLeft, outRight []float32, blockSize int)
}

// FrameWriter consumes rendered blocks. *wav.Recorder implements it.
type FrameWriter interface {
	WriteFrames(left, right []float32) error
}

// Monitor observes every block on the audio path. It must not block or
// allocate. *meter.Tap implements it.
type Monitor interface {
	Write(left, right []float32)
}

// Render pulls frames from e in blockSize chunks and hands them to w. The
// last block is rendered in full and trimmed before writing.
func Render(e Engine, w FrameWriter, frames, blockSize int) error {
	if blockSize <= 0 {
		return ErrInvalidBlockSize
	}

	left := make([]float32, blockSize)
	right := make([]float32, blockSize)

	for done := 0; done < frames; {
		e.ProcessGrains(left, right, blockSize)

		n := min(blockSize, frames-done)
		if err := w.WriteFrames(left[:n], right[:n]); err != nil {
			return fmt.Errorf("render at frame %d: %w", done, err)
		}
		done += n
	}

	return nil
}
