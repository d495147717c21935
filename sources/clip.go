// SPDX-License-Identifier: EPL-2.0

package sources

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ik5/audiosys"
	"github.com/ik5/audiosys/audio"
)

// Clip is a fully decoded sound held in memory. It is immutable and safe to
// share; each Play returns a cursor of its own.
type Clip struct {
	samples []float32 // interleaved stereo at audiosys.SampleRate
}

// NewClip decodes src to the end and closes it.
func NewClip(src audio.Source) (*Clip, error) {
	prepared, err := audio.Prepare(src, audiosys.SampleRate)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("preparing clip: %w", err)
	}
	defer prepared.Close()

	var samples []float32
	buf := make([]float32, 8192)
	for {
		n, err := prepared.ReadSamples(buf)
		samples = append(samples, buf[:n]...)
		if errors.Is(err, io.EOF) || (err == nil && n == 0) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding clip: %w", err)
		}
	}

	return &Clip{samples: samples[:len(samples)-len(samples)%2]}, nil
}

// NewClipFromFrames wraps already interleaved stereo frames at
// audiosys.SampleRate. The slice is not copied.
func NewClipFromFrames(samples []float32) *Clip {
	return &Clip{samples: samples[:len(samples)-len(samples)%2]}
}

// LoadClip decodes the file at path with the decoder reg has for its
// extension.
func LoadClip(reg *audio.Registry, path string) (*Clip, error) {
	src, err := reg.Open(path)
	if err != nil {
		return nil, err
	}
	return NewClip(src)
}

// Frames returns the clip length in stereo frames.
func (c *Clip) Frames() int { return len(c.samples) / 2 }

// Duration returns the clip length.
func (c *Clip) Duration() time.Duration {
	return time.Duration(c.Frames()) * time.Second / audiosys.SampleRate
}

// Play returns a new cursor at the start of the clip.
func (c *Clip) Play() *Cursor {
	return &Cursor{clip: c}
}

// Cursor plays a Clip.
type Cursor struct {
	clip *Clip
	pos  int // frames
}

func (p *Cursor) ReadFrames(dst []float32) int {
	n := copy(dst[:len(dst)-len(dst)%2], p.clip.samples[2*p.pos:]) / 2
	p.pos += n
	return n
}

func (p *Cursor) Restart() { p.pos = 0 }

// SetPosition moves the cursor, clamped to the clip.
func (p *Cursor) SetPosition(frame int) {
	p.pos = max(0, min(frame, p.clip.Frames()))
}

func (p *Cursor) Position() int { return p.pos }
