// SPDX-License-Identifier: EPL-2.0

package grainbox

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/grainbox/audio"
	"github.com/ik5/grainbox/utils"
)

// ResampleToStereo16 resamples src to targetRate, folds it to stereo and
// collects the whole stream as two 16-bit channels.
//
// The buffers grow as needed, so this is meant for tools and tests. The
// sample bank uses audio.ReadStereo16 with fixed buffers instead.
func ResampleToStereo16(src audio.Source, targetRate, bufferSize int) (left, right []int16, err error) {
	if targetRate <= 0 {
		return nil, nil, fmt.Errorf("invalid target rate %d", targetRate)
	}
	if bufferSize < 2 {
		bufferSize = 4096
	}

	stereo := audio.NewStereoMixer(audio.NewResampler(src, targetRate))
	buf := make([]float32, bufferSize-bufferSize%2)

	left = make([]int16, 0, targetRate)
	right = make([]int16, 0, targetRate)

	for {
		n, err := stereo.ReadSamples(buf)
		for i := 0; i+1 < n; i += 2 {
			left = append(left, utils.Float32ToInt16(buf[i]))
			right = append(right, utils.Float32ToInt16(buf[i+1]))
		}

		if errors.Is(err, io.EOF) {
			return left, right, nil
		}
		if err != nil {
			return left, right, fmt.Errorf("resampling to stereo: %w", err)
		}
	}
}
