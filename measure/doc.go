// SPDX-License-Identifier: EPL-2.0

// Package measure analyses rendered audio: dominant frequency by FFT, level
// by RMS, and channel extraction from stereo buffers.
package measure
