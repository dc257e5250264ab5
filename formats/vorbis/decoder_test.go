// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// fakeReader returns at most chunk values per call.
type fakeReader struct {
	rate, channels int
	data           []float32
	chunk          int
	err            error
	lastLen        int
}

func (f *fakeReader) SampleRate() int { return f.rate }
func (f *fakeReader) Channels() int   { return f.channels }

func (f *fakeReader) Read(p []float32) (int, error) {
	f.lastLen = len(p)
	if f.err != nil {
		return 0, f.err
	}
	if len(f.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p[:min(len(p), f.chunk)], f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestSourceReadsValues(t *testing.T) {
	t.Parallel()

	fake := &fakeReader{rate: 44100, channels: 2, data: []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}, chunk: 4}
	src := &source{dec: fake, channels: 2, bufSize: defaultBufSize}

	dst := make([]float32, 5)
	n, err := src.ReadSamples(dst)
	if err != nil || n != 4 {
		t.Fatalf("ReadSamples() = %d, %v; want 4, nil", n, err)
	}
	if fake.lastLen != 4 {
		t.Errorf("decoder asked for %d values, want a whole-frame 4", fake.lastLen)
	}
	if dst[3] != 0.4 {
		t.Errorf("dst[3] = %v, want 0.4", dst[3])
	}

	n, err = src.ReadSamples(dst)
	if err != nil || n != 2 {
		t.Fatalf("second ReadSamples() = %d, %v; want 2, nil", n, err)
	}

	n, err = src.ReadSamples(dst)
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() at end = %d, %v; want 0, EOF", n, err)
	}
	if _, err := src.ReadSamples(dst); !errors.Is(err, io.EOF) {
		t.Errorf("EOF not sticky: %v", err)
	}
}

func TestSourceShortDestination(t *testing.T) {
	t.Parallel()

	src := &source{dec: &fakeReader{rate: 8000, channels: 2, data: []float32{1, 1}, chunk: 8}, channels: 2}

	if n, err := src.ReadSamples(make([]float32, 1)); n != 0 || err != nil {
		t.Errorf("ReadSamples(len 1) = %d, %v; want 0, nil", n, err)
	}
}

func TestSourceWrapsErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("bad packet")
	src := &source{dec: &fakeReader{rate: 8000, channels: 1, err: boom}, channels: 1}

	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want wrapped decoder error", err)
	}
}

func TestDecodeRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("OggS but not really")} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
			t.Errorf("Decode(%q) succeeded", data)
		}
	}
}
