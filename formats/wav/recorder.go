// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/grainbox/utils"
)

const bitDepth = 16

// Recorder streams stereo float frames to a 16-bit PCM WAV file.
// The header sizes are patched on Close, so w must be seekable.
type Recorder struct {
	enc    *wav.Encoder
	buf    *goaudio.IntBuffer
	frames int
	closed bool
}

// NewRecorder starts a stereo recording at sampleRate.
func NewRecorder(w io.WriteSeeker, sampleRate int) (*Recorder, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("wav: invalid sample rate %d", sampleRate)
	}

	format := &goaudio.Format{NumChannels: 2, SampleRate: sampleRate}

	return &Recorder{
		enc: wav.NewEncoder(w, sampleRate, bitDepth, 2, pcmFormat),
		buf: &goaudio.IntBuffer{
			Format:         format,
			Data:           make([]int, 0, 2*1024),
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// WriteFrames appends one block. Frames beyond the shorter channel are ignored.
func (r *Recorder) WriteFrames(left, right []float32) error {
	if r.closed {
		return ErrRecorderClosed
	}

	n := min(len(left), len(right))
	if cap(r.buf.Data) < 2*n {
		r.buf.Data = make([]int, 0, 2*n)
	}
	data := r.buf.Data[:2*n]
	for i := range n {
		data[2*i] = int(utils.Float32ToInt16(left[i]))
		data[2*i+1] = int(utils.Float32ToInt16(right[i]))
	}
	r.buf.Data = data

	if err := r.enc.Write(r.buf); err != nil {
		return fmt.Errorf("wav: writing frames: %w", err)
	}
	r.frames += n

	return nil
}

// Frames returns the number of stereo frames written so far.
func (r *Recorder) Frames() int { return r.frames }

// Close finalizes the header. It does not close the underlying writer.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	if r.frames == 0 {
		// The encoder only emits its header on the first write.
		r.buf.Data = r.buf.Data[:0]
		if err := r.enc.Write(r.buf); err != nil {
			return fmt.Errorf("wav: writing header: %w", err)
		}
	}

	if err := r.enc.Close(); err != nil {
		return fmt.Errorf("wav: finalizing: %w", err)
	}

	return nil
}
