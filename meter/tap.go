// SPDX-License-Identifier: EPL-2.0

package meter

import "sync/atomic"

// Tap is a lock-free single-producer, single-consumer ring of mono samples.
// The audio goroutine calls Write; one UI goroutine calls Read. When the ring
// is full new samples are dropped and counted.
type Tap struct {
	writePos atomic.Uint64
	_pad1    [56]byte
	readPos  atomic.Uint64
	_pad2    [56]byte
	dropped  atomic.Uint64

	buf  []float32
	mask uint64
}

// NewTap returns a tap holding at least minSize samples, rounded up to a
// power of two.
func NewTap(minSize int) *Tap {
	size := 1
	for size < minSize {
		size <<= 1
	}

	return &Tap{
		buf:  make([]float32, size),
		mask: uint64(size - 1),
	}
}

// Write stores the mono mix of left and right. Producer only.
func (t *Tap) Write(left, right []float32) {
	n := uint64(min(len(left), len(right)))
	w := t.writePos.Load()
	r := t.readPos.Load()

	free := uint64(len(t.buf)) - (w - r)
	if n > free {
		t.dropped.Add(n - free)
		n = free
	}

	for i := range n {
		t.buf[(w+i)&t.mask] = (left[i] + right[i]) * 0.5
	}

	t.writePos.Store(w + n)
}

// Read moves up to len(dst) samples into dst, oldest first. Consumer only.
func (t *Tap) Read(dst []float32) int {
	r := t.readPos.Load()
	w := t.writePos.Load()

	n := min(uint64(len(dst)), w-r)
	pos := r & t.mask
	first := uint64(len(t.buf)) - pos
	if first >= n {
		copy(dst[:n], t.buf[pos:pos+n])
	} else {
		copy(dst[:first], t.buf[pos:])
		copy(dst[first:n], t.buf[:n-first])
	}

	t.readPos.Store(r + n)
	return int(n)
}

// Available returns the number of unread samples.
func (t *Tap) Available() int {
	return int(t.writePos.Load() - t.readPos.Load())
}

// Dropped returns how many samples were lost to a full ring.
func (t *Tap) Dropped() uint64 { return t.dropped.Load() }

// Cap returns the ring size.
func (t *Tap) Cap() int { return len(t.buf) }
