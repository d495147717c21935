// SPDX-License-Identifier: EPL-2.0

package audio

// Prepare converts src into interleaved stereo at rate, the layout the mixer
// consumes. Mono input is resampled before it is widened so the interpolator
// only runs once per frame.
func Prepare(src Source, rate int) (Source, error) {
	if rate <= 0 {
		return nil, ErrInvalidRate
	}

	if src.Channels() == 1 {
		return NewStereo(NewResampler(src, rate)), nil
	}

	return NewResampler(NewStereo(src), rate), nil
}
