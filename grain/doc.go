// SPDX-License-Identifier: EPL-2.0

// Package grain implements a single granular-synthesis voice and its building blocks.
//
// A grain is a short playback of a fragment of a stereo 16-bit PCM sample. Each grain
// owns a Phasor that drives its position and lifetime, applies an amplitude envelope
// and a constant-power pan law, and returns one stereo sample per call.
//
// # Phasor Modes
//
// The Phasor implements four playback policies:
//   - OneShot: plays forward once, then stops
//   - OneShotReverse: plays backward once, then stops
//   - Cycle: loops forward forever
//   - PingPong: alternates forward and backward forever
//
// Only the one-shot modes finish. Looping grains keep sounding until they are
// re-triggered or deactivated by their owner; LoopCompleted reports each completed
// cycle so the owner can re-arm the voice with fresh parameters.
//
// # Envelopes
//
// Envelopes are pure functions of phase in [0, 1]:
//
//	LinearDecay(p) = 1 - p
//	Triangular(p)  = 1 - |2p - 1|
//	Hann(p)        = 0.5 * (1 - cos(2πp))
//
// # Sample Buffers
//
// Grains read from a Buffer, a read-only view over two equal-length int16 channels.
// Every index is wrapped into [0, Len) with Wrap before it is dereferenced, so a
// grain never reads out of bounds regardless of its parameters.
//
// # Real-time Use
//
// Trigger and Process never allocate, never block and never return errors. Invalid
// trigger arguments deactivate the grain instead, which makes it silent.
package grain
