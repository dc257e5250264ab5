// SPDX-License-Identifier: EPL-2.0

package sample

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/grainbox/audio"
	"github.com/ik5/grainbox/grain"
)

// MaxSamplesPerChannel is the default buffer capacity: one minute at the
// engine rate. Longer files are truncated.
const MaxSamplesPerChannel = 60 * grain.SampleRate

const readBufferSize = 4096

// Bank scans a directory of audio files and decodes one at a time into two
// fixed 16-bit buffers at grain.SampleRate.
//
// The buffers are allocated once by Init and reused by every load, so a synth
// reading them must be detached (or re-initialized) around LoadFile and
// LoadSource.
type Bank struct {
	reg      *audio.Registry
	capacity int

	dir   string
	files []string

	left, right []int16
	length      int
	current     int
	truncated   bool
}

// NewBank returns a bank decoding through reg. capacity is the per-channel
// buffer size in samples; zero or less selects MaxSamplesPerChannel.
func NewBank(reg *audio.Registry, capacity int) *Bank {
	if capacity <= 0 {
		capacity = MaxSamplesPerChannel
	}

	return &Bank{
		reg:      reg,
		capacity: capacity,
		current:  -1,
	}
}

// Init lists the decodable files in dir in name order and allocates the
// channel buffers. Nothing is decoded yet.
func (b *Bank) Init(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := b.reg.Lookup(e.Name()); ok {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	if len(files) == 0 {
		return fmt.Errorf("%w: %s", ErrNoFiles, dir)
	}

	b.dir = dir
	b.files = files
	b.allocate()

	return nil
}

func (b *Bank) allocate() {
	if len(b.left) != b.capacity {
		b.left = make([]int16, b.capacity)
		b.right = make([]int16, b.capacity)
	}
	b.length = 0
	b.current = -1
	b.truncated = false
}

// LoadFile decodes the file at index into the channel buffers.
func (b *Bank) LoadFile(index int) error {
	if b.files == nil {
		return ErrNotInitialized
	}
	if index < 0 || index >= len(b.files) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(b.files))
	}

	path := b.files[index]
	dec, ok := b.reg.Lookup(path)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening sample: %w", err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		b.length = 0
		b.current = -1
		return fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	defer src.Close()

	if err := b.LoadSource(src); err != nil {
		return fmt.Errorf("loading %s: %w", filepath.Base(path), err)
	}
	b.current = index

	return nil
}

// LoadSource converts src to stereo at grain.SampleRate and copies it into the
// channel buffers, truncating at capacity. It allocates the buffers on first
// use, so it also works on a bank that was never given a directory.
func (b *Bank) LoadSource(src audio.Source) error {
	if b.left == nil {
		b.allocate()
	}
	b.length = 0
	b.current = -1
	b.truncated = false

	if src.SampleRate() != grain.SampleRate {
		src = audio.NewResampler(src, grain.SampleRate)
	}

	n, err := audio.ReadStereo16(src, b.left, b.right, readBufferSize)
	switch {
	case errors.Is(err, audio.ErrBufferFull):
		b.truncated = true
	case err != nil:
		return err
	}

	if n == 0 {
		return ErrEmptySample
	}
	b.length = n

	return nil
}

// GetSamplesPerChannel returns the length of the loaded sample, 0 if none.
func (b *Bank) GetSamplesPerChannel() int { return b.length }

// Left returns the loaded left channel. The slice aliases the bank's buffer.
func (b *Bank) Left() []int16 { return b.left[:b.length] }

// Right returns the loaded right channel. The slice aliases the bank's buffer.
func (b *Bank) Right() []int16 { return b.right[:b.length] }

// Files returns the scanned paths.
func (b *Bank) Files() []string { return b.files }

// Len returns the number of scanned files.
func (b *Bank) Len() int { return len(b.files) }

// Current returns the index of the loaded file, or -1.
func (b *Bank) Current() int { return b.current }

// Truncated reports whether the last load hit the buffer capacity.
func (b *Bank) Truncated() bool { return b.truncated }

// Capacity returns the per-channel buffer size.
func (b *Bank) Capacity() int { return b.capacity }

// Name returns the base name of the file at index, or "" when out of range.
func (b *Bank) Name(index int) string {
	if index < 0 || index >= len(b.files) {
		return ""
	}
	return filepath.Base(b.files[index])
}
