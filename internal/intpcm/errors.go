// SPDX-License-Identifier: EPL-2.0

package intpcm

import "errors"

var (
	// ErrUnsupportedBitDepth is returned for sample sizes other than 8, 16, 24 and 32 bits.
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")

	// ErrInvalidLayout is returned for a non-positive rate or channel count.
	ErrInvalidLayout = errors.New("invalid sample layout")
)
