// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 converts a normalized sample to 16-bit PCM, clamping
// anything outside [-1, 1].
func Float32ToInt16(x float32) int16 {
	return int16(Clamp(x) * 32767.0)
}

// Int16ToFloat32 is the inverse of Float32ToInt16 for decoded 16-bit PCM.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}

// Clamp limits x to the normalized sample range [-1, 1].
func Clamp(x float32) float32 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// PCMScale returns the divisor that maps signed integer PCM of the given
// bit depth onto [-1, 1). Unknown depths fall back to 16-bit.
func PCMScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	default:
		return 32768.0
	}
}
