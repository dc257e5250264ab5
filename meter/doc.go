// SPDX-License-Identifier: EPL-2.0

// Package meter measures the synth output for display.
//
// A Tap sits on the audio path and copies a mono mix of every block into a
// lock-free ring. A Meter, polled from the UI, drains the ring and computes
// RMS level, peak and a log-spaced band spectrum using github.com/ktye/fft.
package meter
