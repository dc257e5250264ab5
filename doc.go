// SPDX-License-Identifier: EPL-2.0

// Package grainbox is a granular synthesizer: a fixed pool of grains reads
// short windows of a loaded stereo sample, each with its own playback mode,
// pitch, pan and envelope, and the grains are summed into a stereo stream.
//
// The engine lives in subpackages:
//
//   - grain: phasor, envelopes, pan law and the single-grain voice.
//   - synth: the voice pool, trigger policy, randomization and the global
//     parameter store.
//   - sample: directory scanning and decoding into fixed 48 kHz stereo buffers.
//   - control: knob mapping and Lua preset scripts.
//   - output and meter: real-time playback, offline rendering and level metering.
//   - audio and formats/...: decoding, resampling and channel folding.
//
// A minimal offline render:
//
//	bank := sample.NewBank(sample.DefaultRegistry(), 0)
//	_ = bank.Init("samples")
//	_ = bank.LoadFile(0)
//
//	s := synth.New(synth.DefaultConfig())
//	_ = s.Init(bank.Left(), bank.Right(), bank.GetSamplesPerChannel())
//
//	f, _ := os.Create("out.wav")
//	rec, _ := wav.NewRecorder(f, grain.SampleRate)
//	_ = output.Render(s, rec, 10*grain.SampleRate, 256)
//	_ = rec.Close()
//
// ResampleToStereo16 is a convenience for decoding a whole stream into two
// growing int16 slices outside the real-time path.
package grainbox
