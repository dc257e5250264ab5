// SPDX-License-Identifier: EPL-2.0

// Package intpcm adapts go-audio integer PCM decoders (wav, aiff) to
// audio.Source.
package intpcm

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// DefaultBufSize is the number of interleaved samples read per decoder call.
const DefaultBufSize = 4096

var ErrUnsupportedBitDepth = errors.New("unsupported PCM bit depth")

// Reader is the part of the go-audio decoders the adapter uses.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source converts integer PCM to float32 in [-1, 1].
type Source struct {
	r        Reader
	rate     int
	channels int
	scale    float32
	buf      *goaudio.IntBuffer
	eof      bool
}

// New wraps r. bitDepth selects the integer full scale.
func New(r Reader, format *goaudio.Format, bitDepth int) (*Source, error) {
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("intpcm: invalid format %+v", format)
	}

	scale, err := Scale(bitDepth)
	if err != nil {
		return nil, err
	}

	return &Source{
		r:        r,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		scale:    scale,
		buf: &goaudio.IntBuffer{
			Format:         format,
			Data:           make([]int, DefaultBufSize),
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// Scale returns the reciprocal of the full-scale value for bitDepth.
func Scale(bitDepth int) (float32, error) {
	switch bitDepth {
	case 8:
		return 1.0 / 128.0, nil
	case 16:
		return 1.0 / 32768.0, nil
	case 24:
		return 1.0 / 8388608.0, nil
	case 32:
		return 1.0 / 2147483648.0, nil
	}

	return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return cap(s.buf.Data) }
func (s *Source) Close() error    { return nil }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.eof {
		return 0, io.EOF
	}

	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.r.PCMBuffer(s.buf)
	for i := range n {
		dst[i] = float32(s.buf.Data[i]) * s.scale
	}

	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		s.eof = true
	case err != nil:
		return n, fmt.Errorf("intpcm: read: %w", err)
	case n == 0:
		s.eof = true
	}

	if n == 0 && s.eof {
		return 0, io.EOF
	}

	return n, nil
}

// Seekable returns r itself when it can seek, otherwise it buffers the whole
// stream in memory. go-audio decoders need to seek over chunks.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("intpcm: buffering input: %w", err)
	}

	return bytes.NewReader(data), nil
}
