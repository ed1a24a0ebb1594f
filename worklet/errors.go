// SPDX-License-Identifier: EPL-2.0

package worklet

import "errors"

var (
	ErrInboxFull      = errors.New("processor inbox is full")
	ErrNilBuffer      = errors.New("load message carries no buffer")
	ErrUnknownMessage = errors.New("unknown message type")
)
