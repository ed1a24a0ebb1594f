// SPDX-License-Identifier: EPL-2.0

package measure

import "errors"

var (
	ErrTooShort          = errors.New("signal too short to analyse")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrNoPeak            = errors.New("spectrum has no peak")
)
