// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Stereo maps any channel layout onto interleaved left/right pairs.
//
// Mono is duplicated to both sides, stereo passes through, and wider layouts
// are folded by averaging the even-numbered channels into the left side and
// the odd-numbered channels into the right.
type Stereo struct {
	src Source
	tmp []float32
}

func NewStereo(src Source) *Stereo {
	return &Stereo{
		src: src,
		tmp: make([]float32, 4096),
	}
}

func (s *Stereo) SampleRate() int { return s.src.SampleRate() }
func (s *Stereo) Channels() int   { return 2 }
func (s *Stereo) Close() error {
	err := s.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (s *Stereo) ReadSamples(dst []float32) (int, error) {
	if len(dst)%2 != 0 {
		return 0, ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	channels := s.src.Channels()
	if channels == 2 {
		return s.src.ReadSamples(dst)
	}

	frames := len(dst) / 2
	needed := frames * channels
	if cap(s.tmp) < needed {
		s.tmp = make([]float32, needed)
	}
	s.tmp = s.tmp[:needed]

	n, err := s.src.ReadSamples(s.tmp)
	read := n / channels

	switch channels {
	case 1:
		for f := range read {
			v := s.tmp[f]
			dst[f<<1] = v
			dst[f<<1+1] = v
		}
	default:
		left := float32(1) / float32((channels+1)/2)
		right := float32(1) / float32(channels/2)
		for f := range read {
			frame := s.tmp[f*channels : (f+1)*channels]
			var l, r float32
			for c, v := range frame {
				if c&1 == 0 {
					l += v
				} else {
					r += v
				}
			}
			dst[f<<1] = l * left
			dst[f<<1+1] = r * right
		}
	}

	return read * 2, err
}
