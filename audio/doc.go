// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoder-facing stream primitives that feed the
// mixer.
//
// This package contains:
//   - Source, the interface every format decoder returns
//   - Registry, which maps file extensions to decoders
//   - Resampler for sample rate conversion
//   - Stereo for channel layout conversion
//   - Prepare, which chains the two into the mixer's 44.1 kHz stereo layout
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// ReadSamples returns the number of float32 values written, not frames, and
// io.EOF once the stream is finished. Samples are interleaved and normalized
// to [-1.0, 1.0].
//
// # Preparing a Stream
//
//	src, _ := registry.Open("music/theme.ogg")
//	prepared, _ := audio.Prepare(src, 44100)
//	// prepared is interleaved stereo at 44.1 kHz
//
// Mono input is resampled first and widened afterwards; wider layouts are
// folded to stereo before resampling, so the interpolator never works on more
// than two channels.
//
// # Resampling
//
// The Resampler uses Catmull-Rom interpolation over a four-frame window. It
// reads its source in chunks and never extrapolates past the last input
// frame, so a stream of N frames at rate A yields floor((N-1)·B/A)+1 frames
// at rate B.
//
// # Error Handling
//
// Stream functions return io.EOF when no more data is available. Errors from
// a wrapped source are wrapped and returned once the frames read before the
// failure have been delivered.
package audio
