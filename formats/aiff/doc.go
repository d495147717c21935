// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files through github.com/go-audio/aiff.
//
// Integer PCM at 8, 16, 24 or 32 bits is supported, with any channel count
// and sample rate:
//
//	f, _ := os.Open("door.aiff")
//	src, err := aiff.Decoder{}.Decode(f)
//
// Samples come out as float32 in [-1, 1]; closing the source closes f.
package aiff
