// SPDX-License-Identifier: EPL-2.0

package audiosys

import (
	"encoding/binary"
	"io"
)

// FrameWriter receives interleaved 16-bit stereo frames.
type FrameWriter interface {
	WriteFrames(frames []int16) error
}

type frameSlice []int16

func (f *frameSlice) WriteFrames(frames []int16) error {
	*f = append(*f, frames...)
	return nil
}

// Render drives s offline for frames stereo frames and returns the
// interleaved output. It plays the part of both producer and consumer, one
// window at a time, so it must not be mixed with a live Consume caller.
func Render(s *System, frames int) []int16 {
	out := make(frameSlice, 0, 2*max(0, frames))
	// frameSlice never fails.
	_ = RenderTo(s, frames, &out)
	return out
}

// RenderTo is Render streaming into w. It stops at the first write error.
func RenderTo(s *System, frames int, w FrameWriter) error {
	buf := make([]int16, 2*s.window)

	s.Update()
	for frames > 0 {
		n := s.Consume(min(frames, s.window), buf[:2*min(frames, s.window)])
		if err := w.WriteFrames(buf[:2*n]); err != nil {
			return err
		}
		frames -= n
		s.Update()
	}
	return nil
}

// Reader exposes the mixer output as a little-endian signed 16-bit stereo
// byte stream, the shape audio device players pull from. Every frame read
// counts as consumed. When the producer falls behind and the current window
// is used up, Reader pads with silence rather than blocking.
type Reader struct {
	sys    *System
	buf    []int16
	seq    uint64
	offset int
}

var _ io.Reader = (*Reader)(nil)

// NewReader returns a Reader over s. Read is the consumer side of s and may
// run on its own goroutine.
func NewReader(s *System) *Reader {
	return &Reader{sys: s, buf: make([]int16, 2*s.window)}
}

func (r *Reader) Read(p []byte) (int, error) {
	frames := len(p) / 4
	if frames == 0 {
		return 0, nil
	}

	s := r.sys
	s.mu.Lock()
	if s.seq != r.seq {
		r.seq, r.offset = s.seq, 0
	}
	n := min(frames, s.window-r.offset)
	copy(r.buf[:2*n], s.out[2*r.offset:])
	r.offset += n
	if n > 0 {
		s.pending.Add(int64(n))
	}
	s.mu.Unlock()

	if n > 0 {
		s.metrics.ConsumedFrames.Add(s.ctx, int64(n))
	}

	for i, v := range r.buf[:2*n] {
		binary.LittleEndian.PutUint16(p[2*i:], uint16(v))
	}
	clear(p[4*n : 4*frames])
	return 4 * frames, nil
}
