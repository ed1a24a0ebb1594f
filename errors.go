// SPDX-License-Identifier: EPL-2.0

package audtempo

import "errors"

var ErrNilBuffer = errors.New("buffer is nil")
