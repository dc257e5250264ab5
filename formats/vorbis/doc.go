// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files with github.com/jfreymuth/oggvorbis.
//
// The library already produces float32 PCM, so samples are decoded directly
// into the caller's buffer.
package vorbis
