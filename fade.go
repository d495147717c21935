// SPDX-License-Identifier: EPL-2.0

package audiosys

import "math"

// SampleRate is the fixed mixing rate in Hz. Fade times are wall-clock
// seconds at this rate whatever the buffering window is.
const SampleRate = 44100

// fadeFrames converts a fade time to a whole number of frames, at least one.
func fadeFrames(seconds float32) int {
	return max(1, int(math.Round(float64(seconds)*SampleRate)))
}

// beginFade sets the fade length to seconds and places the fade position
// at the current progress, so a fade-out started mid fade-in carries on
// from the same volume.
func (v *voice) beginFade(seconds float32) {
	v.fadeLen = fadeFrames(seconds)
	v.fadePos = int(math.Round(float64(v.fadeProgress) * float64(v.fadeLen)))
}

// updateFading steps the fade by frames and sets the ramp the mixer applies
// across the window that now starts at the playhead: fadeVolume is the ramp
// value at the first frame and fadeDelta the per-frame change. Progress is
// counted in whole frames so a fade lands on its end exactly when its
// length has elapsed, however the advances are split.
func (v *voice) updateFading(frames int) {
	switch v.state {
	case FadingOut:
		v.fadeDelta = -(1 / v.fadeOutTime) / SampleRate
		v.fadePos -= frames
		v.fadeProgress = float32(v.fadePos) / float32(v.fadeLen)
		if v.fadePos <= 0 {
			v.fadePos = 0
			v.fadeProgress = 0
			v.fadeDelta = 0
			v.state = Stopped
			v.release()
		}
		v.fadeVolume = v.fadeProgress

	case FadingIn:
		v.fadeDelta = (1 / v.fadeInTime) / SampleRate
		v.fadePos += frames
		v.fadeProgress = float32(v.fadePos) / float32(v.fadeLen)
		if v.fadePos >= v.fadeLen {
			v.fadePos = v.fadeLen
			v.fadeProgress = 1
			v.fadeDelta = 0
			v.state = Playing
		}
		v.fadeVolume = v.fadeProgress

	default:
		v.fadeVolume = 1
		v.fadeDelta = 0
	}
}
