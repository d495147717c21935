// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams through
// github.com/jfreymuth/oggvorbis.
//
// Samples come out interleaved as float32 in [-1, 1] with the stream's own
// rate and channel count:
//
//	f, _ := os.Open("rain.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
package vorbis
