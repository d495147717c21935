// SPDX-License-Identifier: EPL-2.0

package audiosys

import "errors"

var (
	// ErrInvalidVoiceCount is returned by New for a non-positive active voice count.
	ErrInvalidVoiceCount = errors.New("active voice count must be positive")

	// ErrInvalidBufferSize is returned by New for a non-positive buffering window.
	ErrInvalidBufferSize = errors.New("buffered frame count must be positive")
)
