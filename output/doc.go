// SPDX-License-Identifier: EPL-2.0

// Package output drives an Engine either in real time or offline.
//
// Player feeds the default audio device through github.com/ebitengine/oto/v3
// as 32-bit float stereo. The engine is always called with the configured
// block size; device reads of other sizes are served from the last block.
// Building with the headless tag swaps in a Player without a device.
//
// Detach is the only safe point for structural engine changes such as
// loading a new sample: it returns after the audio goroutine has left the
// engine.
//
// Render produces a fixed number of frames into a FrameWriter, for example a
// wav.Recorder.
package output
