// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/grainbox/utils"
)

// maxEmptyReads bounds how often a source may return (0, nil) in a row before
// the resampler treats it as exhausted.
const maxEmptyReads = 64

// Resampler streams src at a new sample rate using cubic interpolation.
// It works on interleaved samples of any channel count and preserves it.
// When downsampling, a one-pole low-pass smooths the input first.
type Resampler struct {
	src      Source
	channels int
	dstRate  int
	step     float64 // source frames per output frame

	// four-frame history: t-1, t0, t+1, t+2
	hist []float32
	have [4]bool
	frac float64

	in      []float32
	inPos   int
	inLen   int
	srcDone bool

	primed bool
	done   bool

	alpha  float32
	smooth []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := 1.0
	if dstRate > 0 && src.SampleRate() > 0 {
		step = float64(src.SampleRate()) / float64(dstRate)
	}

	bufFrames := 1024
	if bs := src.BufSize(); bs > 0 && channels > 0 {
		bufFrames = max(bufFrames, bs/channels)
	}

	r := &Resampler{
		src:      src,
		channels: channels,
		dstRate:  dstRate,
		step:     step,
		hist:     make([]float32, 4*max(channels, 1)),
		in:       make([]float32, bufFrames*max(channels, 1)),
		smooth:   make([]float32, max(channels, 1)),
	}

	if step > 1 {
		r.alpha = float32(1 / step)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampler source: %w", err)
	}
	return nil
}

func (r *Resampler) frame(k int) []float32 {
	return r.hist[k*r.channels : (k+1)*r.channels]
}

// pull copies the next source frame into dst. It reports false once the source
// is exhausted.
func (r *Resampler) pull(dst []float32) (bool, error) {
	empty := 0
	for r.inPos >= r.inLen {
		if r.srcDone || empty >= maxEmptyReads {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		n -= n % r.channels
		r.inPos, r.inLen = 0, n

		if err == io.EOF {
			r.srcDone = true
		} else if err != nil {
			return false, fmt.Errorf("reading resampler source: %w", err)
		}
		if n == 0 {
			empty++
		}
	}

	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.alpha > 0 {
		for c := range dst {
			r.smooth[c] += r.alpha * (dst[c] - r.smooth[c])
			dst[c] = r.smooth[c]
		}
	}

	return true, nil
}

func (r *Resampler) prime() error {
	r.primed = true

	for k := 1; k < 4; k++ {
		ok, err := r.pull(r.frame(k))
		if err != nil {
			return err
		}
		r.have[k] = ok
		if k == 1 && ok && r.alpha > 0 {
			// start the filter at the first value instead of ramping up from zero
			copy(r.smooth, r.frame(1))
		}
	}

	if !r.have[1] {
		r.done = true
	}

	return nil
}

// advance shifts the history by one source frame.
func (r *Resampler) advance() error {
	copy(r.hist, r.hist[r.channels:])
	copy(r.have[:], r.have[1:])

	ok, err := r.pull(r.frame(3))
	if err != nil {
		return err
	}
	r.have[3] = ok

	if !r.have[2] {
		r.done = true
	}

	return nil
}

// ReadSamples produces resampled interleaved samples.
// len(dst) must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	ch := r.channels
	if ch <= 0 {
		return 0, ErrNoChannels
	}
	if len(dst)%ch != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / ch
	written := 0

	for written < frames && !r.done {
		for r.frac >= 1 && !r.done {
			r.frac--
			if err := r.advance(); err != nil {
				return written * ch, err
			}
		}
		if r.done || !r.have[2] {
			r.done = true
			break
		}

		prev := r.frame(0)
		if !r.have[0] {
			prev = r.frame(1)
		}
		cur, next := r.frame(1), r.frame(2)
		after := r.frame(3)
		if !r.have[3] {
			after = next
		}

		mu := float32(r.frac)
		out := dst[written*ch : (written+1)*ch]
		for c := range out {
			out[c] = utils.CubicInterpolate(prev[c], cur[c], next[c], after[c], mu)
		}

		written++
		r.frac += r.step
	}

	if r.done {
		return written * ch, io.EOF
	}

	return written * ch, nil
}
