// SPDX-License-Identifier: EPL-2.0

package sources

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/audiosys"
	"github.com/ik5/audiosys/audio"
)

// noClose hides Close so decoders cannot close the shared reader when a
// Stream throws one decoder away to restart.
type noClose struct{ io.ReadSeeker }

// Stream decodes a seekable input while it plays. Restart and SetPosition
// rewind the input and decode again from the top.
type Stream struct {
	rs  io.ReadSeeker
	dec audio.Decoder
	src audio.Source
	pos int
	err error
}

// NewStream decodes rs with dec. Close closes rs if it is an io.Closer.
func NewStream(rs io.ReadSeeker, dec audio.Decoder) (*Stream, error) {
	s := &Stream{rs: rs, dec: dec}
	if err := s.open(); err != nil {
		return nil, err
	}
	return s, nil
}

// OpenStream opens the file at path and streams it with the decoder reg
// has for its extension.
func OpenStream(reg *audio.Registry, path string) (*Stream, error) {
	dec, err := reg.Lookup(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}

	s, err := NewStream(f, dec)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stream %q: %w", path, err)
	}
	return s, nil
}

func (s *Stream) open() error {
	if s.src != nil {
		s.src.Close()
		s.src = nil
	}

	if _, err := s.rs.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding stream: %w", err)
	}
	src, err := s.dec.Decode(noClose{s.rs})
	if err != nil {
		return fmt.Errorf("decoding stream: %w", err)
	}
	prepared, err := audio.Prepare(src, audiosys.SampleRate)
	if err != nil {
		src.Close()
		return err
	}

	s.src = prepared
	s.pos = 0
	return nil
}

// ReadFrames decodes into dst. It returns a short count at the end of the
// input or on a decoding error, which Err then reports.
func (s *Stream) ReadFrames(dst []float32) int {
	if s.src == nil {
		return 0
	}

	want := len(dst) - len(dst)%2
	n := 0
	for n < want {
		got, err := s.src.ReadSamples(dst[n:want])
		n += got
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.err = err
			}
			break
		}
		if got == 0 {
			break
		}
	}

	frames := n / 2
	s.pos += frames
	return frames
}

// Restart rewinds to the first frame.
func (s *Stream) Restart() {
	if s.src == nil {
		return
	}
	if err := s.open(); err != nil {
		s.err = err
	}
}

// SetPosition decodes from the start up to frame.
func (s *Stream) SetPosition(frame int) {
	s.Restart()

	scratch := make([]float32, 2*4096)
	for s.src != nil && s.pos < frame {
		chunk := min(frame-s.pos, 4096)
		if s.ReadFrames(scratch[:2*chunk]) < chunk {
			return
		}
	}
}

func (s *Stream) Position() int { return s.pos }

// Err returns the first decoding error met, if any.
func (s *Stream) Err() error { return s.err }

// Close releases the decoder and closes the input if it is an io.Closer.
func (s *Stream) Close() error {
	if s.src == nil {
		return ErrClosed
	}

	err := s.src.Close()
	s.src = nil
	if c, ok := s.rs.(io.Closer); ok {
		err = errors.Join(err, c.Close())
	}
	return err
}
