// SPDX-License-Identifier: EPL-2.0

// Package control maps a hardware-style control surface and Lua preset
// scripts onto synth parameters.
//
// Knob positions are normalized to [0, 1]. Size, position and pan are
// linear, pitch is exponential with unity at the centre, and density is
// rounded to a voice count. A shift layer reuses the same knobs for
// per-parameter randomness.
//
// A preset is a plain Lua script:
//
//	size(250)
//	pitch(0.5)
//	mode("pingpong")
//	envelope("triangle")
//	random("position", 0.3)
package control
