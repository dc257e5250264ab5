// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/grainbox/utils"
)

// ErrBufferFull is returned by ReadStereo16 when the destination filled up
// before the source ended. The frames that fit are still valid.
var ErrBufferFull = errors.New("destination buffer full before end of stream")

// StereoMixer presents any source as two interleaved channels.
// Mono is duplicated to both sides; with more than two channels even-numbered
// channels are averaged into left and odd-numbered ones into right.
type StereoMixer struct {
	src Source
	tmp []float32
}

func NewStereoMixer(src Source) *StereoMixer {
	return &StereoMixer{
		src: src,
		tmp: make([]float32, 4096),
	}
}

func (m *StereoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *StereoMixer) Channels() int   { return 2 }
func (m *StereoMixer) BufSize() int    { return m.src.BufSize() }

func (m *StereoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("closing stereo mixer source: %w", err)
	}
	return nil
}

func (m *StereoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst)%2 != 0 {
		return 0, ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	switch {
	case channels <= 0:
		return 0, ErrNoChannels
	case channels == 2:
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / 2
	need := frames * channels
	if cap(m.tmp) < need {
		m.tmp = make([]float32, need)
	}
	tmp := m.tmp[:need]

	n, err := m.src.ReadSamples(tmp)
	got := n / channels

	if channels == 1 {
		for f := range got {
			dst[2*f] = tmp[f]
			dst[2*f+1] = tmp[f]
		}
		return got * 2, err
	}

	leftCount := float32((channels + 1) / 2)
	rightCount := float32(channels / 2)
	for f := range got {
		var l, r float32
		in := tmp[f*channels : (f+1)*channels]
		for c, v := range in {
			if c%2 == 0 {
				l += v
			} else {
				r += v
			}
		}
		dst[2*f] = l / leftCount
		dst[2*f+1] = r / rightCount
	}

	return got * 2, err
}

// ReadStereo16 drains src into left and right as 16-bit PCM and returns the
// number of frames written. Sources that are not stereo are passed through a
// StereoMixer. Reaching the end of the stream is not an error; running out of
// room in left/right returns ErrBufferFull.
func ReadStereo16(src Source, left, right []int16, bufferSize int) (int, error) {
	if src.Channels() != 2 {
		src = NewStereoMixer(src)
	}

	capacity := min(len(left), len(right))
	if bufferSize < 2 {
		bufferSize = 4096
	}
	buf := make([]float32, bufferSize-bufferSize%2)

	frames, empty := 0, 0
	for {
		n, err := src.ReadSamples(buf)
		got := n / 2
		dropped := got > capacity-frames
		got = min(got, capacity-frames)

		for i := range got {
			left[frames+i] = utils.Float32ToInt16(buf[2*i])
			right[frames+i] = utils.Float32ToInt16(buf[2*i+1])
		}
		frames += got

		switch {
		case dropped:
			return frames, ErrBufferFull
		case err == io.EOF:
			return frames, nil
		case err != nil:
			return frames, fmt.Errorf("reading stereo samples: %w", err)
		case n == 0:
			empty++
			if empty >= maxEmptyReads {
				return frames, nil
			}
		default:
			empty = 0
		}
	}
}
