// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/ik5/grainbox/audio"
	"github.com/ik5/grainbox/formats/internal/intpcm"
)

const pcmFormat = 1

// Decoder reads 16, 24 and 32-bit integer PCM WAV files.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := intpcm.Seekable(r)
	if err != nil {
		return nil, err
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("wav: reading header: %w", err)
	}

	if dec.WavAudioFormat != pcmFormat {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, dec.WavAudioFormat)
	}
	if dec.BitDepth == 8 {
		// 8-bit WAV is unsigned; the shared adapter only handles signed PCM.
		return nil, fmt.Errorf("%w: 8-bit", ErrUnsupportedFormat)
	}

	src, err := intpcm.New(dec, dec.Format(), int(dec.BitDepth))
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	return src, nil
}
