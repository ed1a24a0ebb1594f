// SPDX-License-Identifier: EPL-2.0

package utils

// Lerp blends a towards b by t in float64 precision.
func Lerp(a, b float32, t float64) float32 {
	return float32((1-t)*float64(a) + t*float64(b))
}
