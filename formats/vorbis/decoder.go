// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/grainbox/audio"
)

const defaultBufSize = 4096

type floatReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec      floatReader
	channels int
	bufSize  int
	eof      bool
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return s.bufSize }
func (s *source) Close() error    { return nil }

// ReadSamples decodes straight into dst. The request is trimmed to whole
// frames because the decoder drops values of a partial frame.
func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.eof {
		return 0, io.EOF
	}

	whole := len(dst) - len(dst)%s.channels
	if whole == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst[:whole])
	switch {
	case errors.Is(err, io.EOF):
		s.eof = true
	case err != nil:
		return n, fmt.Errorf("vorbis: decoding: %w", err)
	}

	if n == 0 && s.eof {
		return 0, io.EOF
	}

	return n, nil
}

// Decoder reads Ogg Vorbis streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("vorbis: %w", err)
	}
	if dec.Channels() <= 0 {
		return nil, fmt.Errorf("vorbis: %w", audio.ErrNoChannels)
	}

	return &source{
		dec:      dec,
		channels: dec.Channels(),
		bufSize:  defaultBufSize,
	}, nil
}
