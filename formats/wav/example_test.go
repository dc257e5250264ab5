// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ik5/grainbox/formats/wav"
)

func ExampleRecorder() {
	dir, err := os.MkdirTemp("", "grainbox")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	f, err := os.Create(filepath.Join(dir, "bounce.wav"))
	if err != nil {
		fmt.Println(err)
		return
	}
	defer f.Close()

	rec, _ := wav.NewRecorder(f, 48000)
	left := make([]float32, 480)
	right := make([]float32, 480)
	_ = rec.WriteFrames(left, right)
	_ = rec.Close()

	_, _ = f.Seek(0, io.SeekStart)
	src, err := wav.Decoder{}.Decode(f)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(rec.Frames(), src.SampleRate(), src.Channels())
	// Output: 480 48000 2
}
