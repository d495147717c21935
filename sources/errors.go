// SPDX-License-Identifier: EPL-2.0

package sources

import "errors"

// ErrClosed is reported by a Stream used after Close.
var ErrClosed = errors.New("source closed")
