// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audiosys/audio"
)

// oggReader is the part of oggvorbis.Reader the source uses.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec    oggReader
	closer io.Closer
	done   bool
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.dec.Channels() }

func (s *source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// ReadSamples fills dst with whole frames, reading until dst is full or
// the stream ends.
func (s *source) ReadSamples(dst []float32) (int, error) {
	ch := s.dec.Channels()
	want := len(dst) - len(dst)%ch
	if want == 0 {
		return 0, nil
	}

	n := 0
	for n < want && !s.done {
		// oggvorbis returns samples, always whole frames.
		got, err := s.dec.Read(dst[n:want])
		n += got
		switch {
		case errors.Is(err, io.EOF):
			s.done = true
		case err != nil:
			return n, fmt.Errorf("decoding vorbis: %w", err)
		case got == 0:
			s.done = true
		}
	}

	if s.done && n < want {
		return n, io.EOF
	}
	return n, nil
}

// Decoder decodes Ogg Vorbis streams.
type Decoder struct{}

// Decode reads the Vorbis headers from r. If r is an io.Closer it is closed
// with the source.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbis, err)
	}

	closer, _ := r.(io.Closer)
	return &source{dec: dec, closer: closer}, nil
}
