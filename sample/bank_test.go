// SPDX-License-Identifier: EPL-2.0

package sample

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/grainbox/formats/wav"
	"github.com/ik5/grainbox/grain"
	"github.com/ik5/grainbox/internal/audiotest"
)

func writeWAV(t *testing.T, dir, name string, rate, channels int, samples []int16) {
	t.Helper()

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := wav.WriteWAV16(f, rate, channels, samples); err != nil {
		t.Fatalf("WriteWAV16(%s) error = %v", name, err)
	}
}

func constant(n int, v int16) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func sampleDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	writeWAV(t, dir, "b_stereo.wav", grain.SampleRate, 2, constant(2*4800, 8192))
	writeWAV(t, dir, "a_mono.WAV", 24000, 1, constant(2400, -16384))
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.wav"), 0o700); err != nil {
		t.Fatal(err)
	}

	return dir
}

func TestBankInitScansSortedSupportedFiles(t *testing.T) {
	t.Parallel()

	b := NewBank(DefaultRegistry(), 0)
	if err := b.Init(sampleDir(t)); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (%v)", b.Len(), b.Files())
	}
	if b.Name(0) != "a_mono.WAV" || b.Name(1) != "b_stereo.wav" {
		t.Errorf("files = %v", b.Files())
	}
	if b.Name(5) != "" {
		t.Errorf("Name(5) = %q, want empty", b.Name(5))
	}
	if b.Current() != -1 || b.GetSamplesPerChannel() != 0 {
		t.Errorf("fresh bank current %d length %d", b.Current(), b.GetSamplesPerChannel())
	}
	if b.Capacity() != MaxSamplesPerChannel {
		t.Errorf("Capacity() = %d, want %d", b.Capacity(), MaxSamplesPerChannel)
	}
}

func TestBankInitErrors(t *testing.T) {
	t.Parallel()

	b := NewBank(DefaultRegistry(), 0)

	if err := b.Init(t.TempDir()); !errors.Is(err, ErrNoFiles) {
		t.Errorf("Init(empty dir) error = %v, want ErrNoFiles", err)
	}
	if err := b.Init(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Init(missing dir) succeeded")
	}
	if err := b.LoadFile(0); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("LoadFile() before Init error = %v, want ErrNotInitialized", err)
	}
}

func TestBankLoadStereo(t *testing.T) {
	t.Parallel()

	b := NewBank(DefaultRegistry(), 0)
	if err := b.Init(sampleDir(t)); err != nil {
		t.Fatal(err)
	}

	if err := b.LoadFile(1); err != nil {
		t.Fatalf("LoadFile(1) error = %v", err)
	}

	if got := b.GetSamplesPerChannel(); got != 4800 {
		t.Errorf("GetSamplesPerChannel() = %d, want 4800", got)
	}
	if len(b.Left()) != len(b.Right()) || len(b.Left()) != 4800 {
		t.Errorf("channel views %d/%d", len(b.Left()), len(b.Right()))
	}
	if v := b.Left()[100]; math.Abs(float64(v)-8192) > 2 {
		t.Errorf("left[100] = %d, want about 8192", v)
	}
	if b.Current() != 1 || b.Truncated() {
		t.Errorf("current %d truncated %v", b.Current(), b.Truncated())
	}
}

func TestBankLoadMonoResamples(t *testing.T) {
	t.Parallel()

	b := NewBank(DefaultRegistry(), 0)
	if err := b.Init(sampleDir(t)); err != nil {
		t.Fatal(err)
	}

	if err := b.LoadFile(0); err != nil {
		t.Fatalf("LoadFile(0) error = %v", err)
	}

	// 2400 frames at 24 kHz become about 4800 at 48 kHz.
	if n := b.GetSamplesPerChannel(); n < 4700 || n > 4800 {
		t.Errorf("GetSamplesPerChannel() = %d, want about 4800", n)
	}
	mid := b.GetSamplesPerChannel() / 2
	if l, r := b.Left()[mid], b.Right()[mid]; l != r || math.Abs(float64(l)+16383) > 200 {
		t.Errorf("frame %d = (%d, %d), want duplicated about -16383", mid, l, r)
	}
}

func TestBankLoadFileErrors(t *testing.T) {
	t.Parallel()

	dir := sampleDir(t)
	if err := os.WriteFile(filepath.Join(dir, "c_broken.wav"), []byte("garbage"), 0o600); err != nil {
		t.Fatal(err)
	}

	b := NewBank(DefaultRegistry(), 0)
	if err := b.Init(dir); err != nil {
		t.Fatal(err)
	}

	if err := b.LoadFile(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("LoadFile(-1) error = %v, want ErrIndexOutOfRange", err)
	}
	if err := b.LoadFile(3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("LoadFile(3) error = %v, want ErrIndexOutOfRange", err)
	}
	if err := b.LoadFile(2); !errors.Is(err, wav.ErrNotWavFile) {
		t.Errorf("LoadFile(broken) error = %v, want ErrNotWavFile", err)
	}
	if b.GetSamplesPerChannel() != 0 {
		t.Errorf("failed load left length %d", b.GetSamplesPerChannel())
	}
}

func TestBankLoadSourceTruncates(t *testing.T) {
	t.Parallel()

	b := NewBank(DefaultRegistry(), 1000)
	err := b.LoadSource(audiotest.NewConstantSource(grain.SampleRate, 2, 5000, 0.25))
	if err != nil {
		t.Fatalf("LoadSource() error = %v", err)
	}

	if b.GetSamplesPerChannel() != 1000 || !b.Truncated() {
		t.Errorf("length %d truncated %v, want 1000 true", b.GetSamplesPerChannel(), b.Truncated())
	}
}

func TestBankLoadSourceEmptyAndFailing(t *testing.T) {
	t.Parallel()

	b := NewBank(DefaultRegistry(), 1000)

	if err := b.LoadSource(audiotest.NewSilentSource(grain.SampleRate, 2, 0)); !errors.Is(err, ErrEmptySample) {
		t.Errorf("LoadSource(empty) error = %v, want ErrEmptySample", err)
	}
	if err := b.LoadSource(audiotest.NewFailingSource(grain.SampleRate, 2, 10)); !errors.Is(err, audiotest.ErrInjected) {
		t.Errorf("LoadSource(failing) error = %v, want ErrInjected", err)
	}
}

func TestDefaultRegistryFormats(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()
	for _, name := range []string{"x.wav", "x.AIFF", "x.aif", "x.mp3", "x.ogg"} {
		if _, ok := reg.Lookup(name); !ok {
			t.Errorf("Lookup(%q) found no decoder", name)
		}
	}
	if _, ok := reg.Lookup("x.flac"); ok {
		t.Error("Lookup(flac) found a decoder")
	}
}
