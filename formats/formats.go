// SPDX-License-Identifier: EPL-2.0

// Package formats wires every bundled decoder into an audio.Registry.
package formats

import (
	"github.com/ik5/audiosys/audio"
	"github.com/ik5/audiosys/formats/aiff"
	"github.com/ik5/audiosys/formats/flac"
	"github.com/ik5/audiosys/formats/mp3"
	"github.com/ik5/audiosys/formats/vorbis"
	"github.com/ik5/audiosys/formats/wav"
)

// Registry returns a new registry keyed by file extension: wav, wave, aiff,
// aif, mp3, ogg, oga and flac.
func Registry() *audio.Registry {
	r := audio.NewRegistry()

	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	r.Register("flac", flac.Decoder{})

	return r
}
