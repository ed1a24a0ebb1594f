// SPDX-License-Identifier: EPL-2.0

package soundtouch

import "errors"

var (
	ErrInvalidFactor    = errors.New("factor must be finite and within range")
	ErrInvalidChunkSize = errors.New("chunk size must be positive")
	ErrNilSource        = errors.New("frame source is nil")
)
