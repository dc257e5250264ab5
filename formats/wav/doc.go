// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes WAV files using github.com/go-audio/wav.
//
// The Decoder accepts signed integer PCM at 16, 24 or 32 bits, mono or
// multichannel, at any sample rate:
//
//	f, _ := os.Open("loop.wav")
//	src, err := wav.Decoder{}.Decode(f)
//
// Recorder streams the engine's stereo float output to a 16-bit file and is
// what the CLI uses for offline bounces:
//
//	f, _ := os.Create("bounce.wav")
//	rec, _ := wav.NewRecorder(f, 48000)
//	_ = rec.WriteFrames(left, right)
//	_ = rec.Close()
//
// WriteWAV16 writes a whole interleaved int16 buffer in one call.
package wav
