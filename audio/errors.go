// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize    = errors.New("dst size must be multiple of channels")
	ErrEmptySource       = errors.New("source produced no samples")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrInvalidChannels   = errors.New("channel count must be positive")
	ErrUnknownFormat     = errors.New("no decoder registered for format")
	ErrSourceStalled     = errors.New("source keeps returning no samples")
	ErrUnalignedBuffer   = errors.New("buffer holds a partial stereo frame")
)
