// SPDX-License-Identifier: EPL-2.0

package synth

import "errors"

var (
	// ErrEmptyBuffer is returned by Init when there is no audio to play.
	ErrEmptyBuffer = errors.New("sample buffer is empty")

	// ErrChannelMismatch is returned by Init when the channels differ in length.
	ErrChannelMismatch = errors.New("left and right channels differ in length")
)
