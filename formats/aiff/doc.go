// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files with github.com/go-audio/aiff.
//
// Samples are signed big-endian integers on disk; the decoder hands them to
// the loader as interleaved float32 in [-1, 1]. Inputs that are not
// io.ReadSeekers are buffered in memory first.
package aiff
