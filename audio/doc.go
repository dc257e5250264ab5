// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives used to bring decoded sample
// files into the engine's fixed format.
//
// # Source Interface
//
// Every decoder and processor implements Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are interleaved float32 values in [-1, 1]. A read returning io.EOF
// ends the stream.
//
// # Pipeline
//
// Sample loading chains a decoder, a Resampler to the engine rate and a
// StereoMixer, then drains the result with ReadStereo16:
//
//	dec, _ := registry.Lookup("pad.ogg")
//	decoded, _ := dec.Decode(f)
//	res := audio.NewResampler(decoded, 48000)
//	n, err := audio.ReadStereo16(res, left, right, 4096)
//
// ReadStereo16 writes into caller-owned slices so the loader can allocate its
// buffers once and reuse them for every file.
//
// # Format Registry
//
// Registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, ok := registry.Lookup("/samples/pad.WAV")
//
// Keys are case-insensitive and a leading dot is ignored.
package audio
