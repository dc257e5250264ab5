// SPDX-License-Identifier: EPL-2.0

// Package utils holds small sample-format helpers shared by the decoding
// pipeline, the WAV recorder and the grain buffer.
package utils

// Float32ToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM.
// 32767 is used for both signs so full scale is symmetric.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int16(x * 32767.0)
}

// Int16ToFloat32 scales 16-bit PCM to [-1, 1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}

