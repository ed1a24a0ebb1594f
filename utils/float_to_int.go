// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 clamps x to [-1, 1] and scales it to int16.
func Float32ToInt16(x float32) int16 {
	return int16(FloatToInt(x, 16))
}

// FullScale returns the magnitude of the most negative sample at bitDepth,
// the divisor that maps integer PCM onto [-1, 1). Unknown depths use 16.
func FullScale(bitDepth int) float32 {
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

// IntToFloat32 normalises an integer PCM sample of bitDepth bits.
func IntToFloat32(v, bitDepth int) float32 {
	return float32(v) / FullScale(bitDepth)
}

// FloatToInt clamps x to [-1, 1] and scales it to a signed integer of
// bitDepth bits. Positive full scale maps to the largest positive value.
func FloatToInt(x float32, bitDepth int) int {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	scale := float64(FullScale(bitDepth))
	if x >= 0 {
		return int(float64(x) * (scale - 1))
	}
	return int(float64(x) * scale)
}
