// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"

	"github.com/ik5/audiosys/audio"
)

// frameParser is the part of flac.Stream the source uses.
type frameParser interface {
	ParseNext() (*frame.Frame, error)
}

type source struct {
	stream   frameParser
	closer   io.Closer
	rate     int
	channels int
	scale    float32

	// pending holds the decoded, not yet returned part of the last frame.
	pending []float32
	buf     []float32
	done    bool
}

func (s *source) SampleRate() int { return s.rate }
func (s *source) Channels() int   { return s.channels }

func (s *source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) - len(dst)%s.channels
	n := 0
	for n < want {
		if len(s.pending) == 0 {
			if s.done {
				break
			}
			if err := s.next(); err != nil {
				return n, err
			}
			continue
		}
		c := copy(dst[n:want], s.pending)
		s.pending = s.pending[c:]
		n += c
	}

	if n == 0 && want > 0 && s.done {
		return 0, io.EOF
	}
	return n, nil
}

// next decodes one frame into pending.
func (s *source) next() error {
	f, err := s.stream.ParseNext()
	if errors.Is(err, io.EOF) {
		s.done = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("decoding flac frame: %w", err)
	}
	if len(f.Subframes) != s.channels {
		return fmt.Errorf("%w: frame has %d channels, stream %d", ErrCorruptStream, len(f.Subframes), s.channels)
	}

	frames := len(f.Subframes[0].Samples)
	buf := s.buf[:0]
	if cap(buf) < frames*s.channels {
		buf = make([]float32, 0, frames*s.channels)
	}
	for i := range frames {
		for _, sub := range f.Subframes {
			buf = append(buf, float32(sub.Samples[i])/s.scale)
		}
	}
	s.buf = buf
	s.pending = buf
	return nil
}

// Decoder decodes FLAC streams.
type Decoder struct{}

// Decode reads the FLAC signature and stream info from r. If r is an
// io.Closer it is closed with the source.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlac, err)
	}

	info := stream.Info
	if info.NChannels == 0 || info.SampleRate == 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrCorruptStream, info.SampleRate, info.NChannels)
	}
	if info.BitsPerSample == 0 || info.BitsPerSample > 32 {
		return nil, fmt.Errorf("%w: %d bits", ErrCorruptStream, info.BitsPerSample)
	}

	closer, _ := r.(io.Closer)
	return &source{
		stream:   stream,
		closer:   closer,
		rate:     int(info.SampleRate),
		channels: int(info.NChannels),
		scale:    float32(uint64(1) << (info.BitsPerSample - 1)),
	}, nil
}
