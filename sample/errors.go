// SPDX-License-Identifier: EPL-2.0

package sample

import "errors"

var (
	ErrNoFiles           = errors.New("no supported audio files in directory")
	ErrIndexOutOfRange   = errors.New("sample index out of range")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrEmptySample       = errors.New("decoded sample is empty")
	ErrNotInitialized    = errors.New("sample bank not initialized")
)
