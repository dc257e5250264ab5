// SPDX-License-Identifier: EPL-2.0

package grain

import "github.com/ik5/grainbox/utils"

// Buffer is a read-only stereo view over 16-bit PCM channels.
//
// The view is shared by all grains during synthesis. It must not be replaced or
// mutated while any grain may read from it.
type Buffer struct {
	left  []int16
	right []int16
	n     int
}

// NewBuffer returns a view over left and right limited to length samples.
// The length is clamped to the shorter of the two channels.
func NewBuffer(left, right []int16, length int) Buffer {
	n := min(len(left), len(right))
	if length < n {
		n = length
	}
	if n < 0 {
		n = 0
	}

	return Buffer{
		left:  left[:n],
		right: right[:n],
		n:     n,
	}
}

// Len returns the number of valid samples per channel.
func (b *Buffer) Len() int { return b.n }

// Frame returns the normalized stereo frame at i wrapped into [0, Len).
// An empty buffer yields silence.
func (b *Buffer) Frame(i int) (float32, float32) {
	if b.n == 0 {
		return 0, 0
	}
	i = Wrap(i, b.n)

	return utils.Int16ToFloat32(b.left[i]), utils.Int16ToFloat32(b.right[i])
}

// Wrap maps any index into [0, n). It is the only wrap used for buffer reads.
// Wrap returns 0 when n <= 0.
func Wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
