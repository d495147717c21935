// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audiosys/internal/dsp"
)

// Resampler streams from src to a target sample rate using Catmull-Rom
// interpolation. Works on interleaved samples; preserves channel count.
//
// The source is read in chunks; a four-frame window slides over them. Once the
// source is exhausted the last real frame is repeated as the right-hand
// control point, and output stops at the last input frame.
type Resampler struct {
	src      Source
	channels int
	dstRate  int
	step     float64 // source frames per output frame

	// window[k*channels:(k+1)*channels] is frame t-1+k.
	window []float32
	// live counts the real frames in window slots 1..3.
	live   int
	pos    float64
	primed bool

	in     []float32
	inHead int
	inLen  int
	eof    bool
	err    error
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()

	return &Resampler{
		src:      src,
		channels: channels,
		dstRate:  dstRate,
		step:     float64(src.SampleRate()) / float64(dstRate),
		window:   make([]float32, 4*channels),
		in:       make([]float32, 1024*channels),
	}
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// ReadSamples produces dst samples at the target rate.
// dst length should be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.step == 1 {
		return r.src.ReadSamples(dst)
	}

	if !r.primed {
		if !r.prime() {
			return 0, r.endErr()
		}
	}

	ch := r.channels
	w := r.window
	n := 0
	for n < len(dst) {
		for r.pos >= 1 {
			if !r.shift() {
				if n == 0 {
					return 0, r.endErr()
				}
				return n, r.endErr()
			}
			r.pos--
		}
		// Never extrapolate past the last real frame.
		if r.live == 1 && r.pos > 0 {
			if n == 0 {
				return 0, r.endErr()
			}
			return n, r.endErr()
		}

		t := float32(r.pos)
		for c := range ch {
			dst[n+c] = dsp.CatmullRom(w[c], w[ch+c], w[2*ch+c], w[3*ch+c], t)
		}
		n += ch
		r.pos += r.step
	}

	return n, nil
}

func (r *Resampler) endErr() error {
	if r.err != nil {
		return r.err
	}
	return io.EOF
}

// prime loads the first frames; slot 0 mirrors slot 1 so the curve starts flat.
func (r *Resampler) prime() bool {
	ch := r.channels
	if !r.pull(r.window[ch : 2*ch]) {
		return false
	}
	copy(r.window[:ch], r.window[ch:2*ch])
	r.live = 1

	for k := 2; k < 4; k++ {
		slot := r.window[k*ch : (k+1)*ch]
		if r.live == k-1 && r.pull(slot) {
			r.live++
		} else {
			copy(slot, r.window[(k-1)*ch:k*ch])
		}
	}
	r.primed = true

	return true
}

// shift slides the window forward one frame. It reports false once slot 2
// no longer holds a real frame.
func (r *Resampler) shift() bool {
	if r.live <= 1 {
		return false
	}

	ch := r.channels
	copy(r.window, r.window[ch:])
	r.live--

	last := r.window[3*ch:]
	if r.live == 2 && r.pull(last) {
		r.live++
	} else {
		copy(last, r.window[2*ch:3*ch])
	}

	return true
}

// pull copies the next source frame into frame.
func (r *Resampler) pull(frame []float32) bool {
	for r.inLen-r.inHead < r.channels {
		if r.eof {
			return false
		}

		n, err := r.src.ReadSamples(r.in)
		r.inHead, r.inLen = 0, n
		if err != nil {
			r.eof = true
			if !errors.Is(err, io.EOF) {
				r.err = fmt.Errorf("%w", err)
			}
		} else if n == 0 {
			// A source that yields nothing without an error is treated as drained.
			r.eof = true
		}
	}

	copy(frame, r.in[r.inHead:r.inHead+r.channels])
	r.inHead += r.channels

	return true
}
