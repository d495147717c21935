// SPDX-License-Identifier: EPL-2.0

package sources

import (
	"github.com/gopxl/beep/v2"

	"github.com/ik5/audiosys"
)

// resampleQuality is the beep resampler quality used for foreign rates.
const resampleQuality = 4

// Beep plays a beep.Streamer once. It is not an audiosys.Restarter, so a
// looping voice plays it to the end and releases it. Use [SeekableBeep] for
// streamers that can rewind.
type Beep struct {
	s   beep.Streamer
	buf [][2]float64
	pos int
}

// NewBeep adapts s, whose samples run at rate. Streamers at another rate are
// resampled to audiosys.SampleRate.
func NewBeep(s beep.Streamer, rate beep.SampleRate) *Beep {
	if rate != audiosys.SampleRate {
		s = beep.Resample(resampleQuality, rate, audiosys.SampleRate, s)
	}
	return &Beep{s: s}
}

func (b *Beep) ReadFrames(dst []float32) int {
	frames := len(dst) / 2
	if cap(b.buf) < frames {
		b.buf = make([][2]float64, frames)
	}
	buf := b.buf[:frames]

	n := 0
	for n < frames {
		got, ok := b.s.Stream(buf[n:])
		n += got
		if !ok || got == 0 {
			break
		}
	}

	for i, f := range buf[:n] {
		dst[2*i] = float32(f[0])
		dst[2*i+1] = float32(f[1])
	}
	b.pos += n
	return n
}

// Position returns the frames read so far.
func (b *Beep) Position() int { return b.pos }

// Err returns the streamer's error.
func (b *Beep) Err() error { return b.s.Err() }

// Close closes the streamer if it is a beep.StreamCloser.
func (b *Beep) Close() error {
	if c, ok := b.s.(beep.StreamCloser); ok {
		return c.Close()
	}
	return nil
}

// SeekableBeep plays a beep.StreamSeeker running at audiosys.SampleRate. It
// restarts and seeks, so looping voices rewind it.
type SeekableBeep struct {
	Beep
	seeker beep.StreamSeeker
}

// NewSeekableBeep adapts ss, whose samples must run at audiosys.SampleRate.
func NewSeekableBeep(ss beep.StreamSeeker) *SeekableBeep {
	return &SeekableBeep{Beep: Beep{s: ss}, seeker: ss}
}

// Restart rewinds to the first frame.
func (b *SeekableBeep) Restart() { b.SetPosition(0) }

// SetPosition seeks to frame, clamped to the streamer length.
func (b *SeekableBeep) SetPosition(frame int) {
	frame = max(0, min(frame, b.seeker.Len()))
	if err := b.seeker.Seek(frame); err == nil {
		b.pos = frame
	}
}

// Position returns the streamer position.
func (b *SeekableBeep) Position() int { return b.seeker.Position() }
