// SPDX-License-Identifier: EPL-2.0

package dsp

import "math"

// OutputScale maps a full-scale float sample to the int16 range, leaving a
// little headroom below math.MaxInt16.
const OutputScale = 32000.0

// softClipLimit is the value s - s³/3 reaches at |s| == 1.
const softClipLimit = 2.0 / 3.0

// SoftClip shapes x with the cubic s - s³/3 curve, saturating at ±2/3 once
// |x| exceeds 1.
func SoftClip(x float32) float32 {
	switch {
	case x > 1:
		return softClipLimit
	case x < -1:
		return -softClipLimit
	}

	return x - x*x*x/3
}

// Quantize16 scales x by OutputScale and rounds it to the nearest integer,
// ties to even, saturating at the int16 limits.
func Quantize16(x float32) int16 {
	v := math.RoundToEven(float64(x) * OutputScale)
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}

	return int16(v)
}
