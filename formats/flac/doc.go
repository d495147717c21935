// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC streams through github.com/mewkiz/flac.
//
// Frames are decoded one at a time as the source is read, so memory use
// does not grow with the file:
//
//	f, _ := os.Open("loop.flac")
//	src, err := flac.Decoder{}.Decode(f)
//
// Samples come out interleaved as float32 in [-1, 1].
package flac
