// SPDX-License-Identifier: EPL-2.0

package audiosys

import "github.com/ik5/audiosys/internal/dsp"

// audible reports whether the voice has a window worth mixing.
func (v *voice) audible() bool {
	return v.initialized && !v.paused && v.state != Queued
}

// mix adds the voice's window into acc, panned and scaled by its volume, its
// fade ramp and master.
func (v *voice) mix(acc []float32, master float32) {
	gain := v.volume * master
	c := v.cache[:len(acc)]
	pan := v.pan

	if v.fadeDelta == 0 {
		g := gain * v.fadeVolume
		if g == 0 {
			return
		}
		if pan == 0 {
			for i, s := range c {
				acc[i] += s * g
			}
			return
		}
		for i := 0; i < len(c); i += 2 {
			l, r := dsp.Pan(c[i], c[i+1], pan)
			acc[i] += l * g
			acc[i+1] += r * g
		}
		return
	}

	fade := v.fadeVolume
	delta := v.fadeDelta
	for i := 0; i < len(c); i += 2 {
		l, r := dsp.Pan(c[i], c[i+1], pan)
		g := gain * fade
		acc[i] += l * g
		acc[i+1] += r * g
		fade = max(0, min(1, fade+delta))
	}
}

// quantize turns the accumulator into 16-bit output. It returns how many
// samples were beyond full scale before shaping.
func quantize(out []int16, acc []float32, scale float32, softClip bool) int {
	clipped := 0
	for i, s := range acc {
		s *= scale
		if s > 1 || s < -1 {
			clipped++
		}
		if softClip {
			s = dsp.SoftClip(s)
		}
		out[i] = dsp.Quantize16(s)
	}
	return clipped
}

// headroom is the output scale for gain with activeVoices mixed. More voices
// get more attenuation; the divisor never drops below one.
func headroom(gain float32, activeVoices int) float32 {
	return gain / max(float32(activeVoices)/8, 1)
}
