// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile        = errors.New("not a WAV file")
	ErrUnsupportedFormat = errors.New("only integer PCM WAV is supported")
	ErrRecorderClosed    = errors.New("recorder is closed")
	ErrInvalidChannels   = errors.New("channel count must be positive")
)
