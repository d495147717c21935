// SPDX-License-Identifier: EPL-2.0

package dsp

// Pan applies linear crossfeed panning to one stereo frame.
//
// A negative pan folds |pan| of the right channel into the left and
// attenuates the right by the same amount; a positive pan mirrors that.
// pan == 0 returns the frame unchanged.
func Pan(l, r, pan float32) (float32, float32) {
	switch {
	case pan < 0:
		p := -pan
		return l + p*r, r * (1 - p)
	case pan > 0:
		return l * (1 - pan), r + pan*l
	}

	return l, r
}

// ClampPan limits pan to [-1, 1].
func ClampPan(pan float32) float32 {
	return max(-1, min(1, pan))
}
