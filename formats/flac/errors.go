// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	// ErrNotFlac is returned when the input lacks a FLAC signature or stream info.
	ErrNotFlac = errors.New("not a FLAC stream")

	// ErrCorruptStream is returned for frames or headers that contradict the stream info.
	ErrCorruptStream = errors.New("corrupt FLAC stream")
)
