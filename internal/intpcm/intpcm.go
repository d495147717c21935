// SPDX-License-Identifier: EPL-2.0

// Package intpcm adapts go-audio integer PCM decoders to audio.Source.
package intpcm

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// Reader is the part of the go-audio wav and aiff decoders the adapter
// needs.
type Reader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source converts integer samples from a Reader to float32 in [-1, 1].
type Source struct {
	dec      Reader
	rate     int
	channels int
	scale    float32
	offset   int
	buf      *goaudio.IntBuffer
	closer   io.Closer
}

// Options describe the sample layout of a Reader.
type Options struct {
	SampleRate int
	Channels   int
	BitDepth   int
	// Unsigned8 marks 8-bit samples as unsigned (0..255), as WAV stores them.
	Unsigned8 bool
	// Closer, if set, is closed with the Source.
	Closer io.Closer
}

// New wraps dec. BitDepth must be 8, 16, 24 or 32.
func New(dec Reader, opts Options) (*Source, error) {
	if opts.Channels <= 0 || opts.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidLayout, opts.SampleRate, opts.Channels)
	}

	s := &Source{
		dec:      dec,
		rate:     opts.SampleRate,
		channels: opts.Channels,
		closer:   opts.Closer,
	}
	switch opts.BitDepth {
	case 8:
		s.scale = 1 << 7
		if opts.Unsigned8 {
			s.offset = 128
		}
	case 16:
		s.scale = 1 << 15
	case 24:
		s.scale = 1 << 23
	case 32:
		s.scale = 1 << 31
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, opts.BitDepth)
	}

	return s, nil
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }

func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// ReadSamples fills dst with whole frames. It returns io.EOF with the last
// samples, or alone once the stream is done.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, nil
	}

	if s.buf == nil || cap(s.buf.Data) < want {
		s.buf = &goaudio.IntBuffer{
			Data:   make([]int, want),
			Format: s.dec.Format(),
		}
	}
	s.buf.Data = s.buf.Data[:want]

	// Decoders may return short reads before the end; only an empty read
	// ends the stream.
	n := 0
	for n < want {
		view := goaudio.IntBuffer{Data: s.buf.Data[n:want], Format: s.buf.Format}
		got, err := s.dec.PCMBuffer(&view)
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("reading pcm: %w", err)
		}
		if got == 0 {
			break
		}
		n += got
	}
	if n == 0 {
		return 0, io.EOF
	}

	for i, v := range s.buf.Data[:n] {
		dst[i] = float32(v-s.offset) / s.scale
	}

	if n < want {
		return n, io.EOF
	}
	return n, nil
}
