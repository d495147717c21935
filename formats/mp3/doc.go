// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 streams through github.com/hajimehoshi/go-mp3.
//
// The decoder always yields interleaved stereo float32 samples in [-1, 1]
// at the stream's own sample rate; mono files are duplicated by go-mp3.
//
//	f, _ := os.Open("theme.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
package mp3
