// SPDX-License-Identifier: EPL-2.0

// Package dsp holds the per-sample arithmetic shared by the mixer and the
// stream converters: stereo panning, the cubic soft clipper, 16-bit
// quantization and Catmull-Rom interpolation.
//
// Every function here is called inside per-frame loops, so none of them
// allocate.
package dsp
