// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes WAV files through github.com/go-audio/wav.
//
// Decoder accepts integer PCM at 8, 16, 24 or 32 bits, any channel count and
// any sample rate, and yields float32 samples in [-1, 1]. Run the result
// through audio.Prepare before handing it to the mixer.
//
// Writer streams 16-bit PCM frames to a seekable target; it implements the
// mixer's FrameWriter so a System can be rendered straight to disk:
//
//	f, _ := os.Create("out.wav")
//	w, _ := wav.NewWriter(f, audiosys.SampleRate, 2)
//	err := audiosys.RenderTo(sys, 10*audiosys.SampleRate, w)
//	w.Close()
//	f.Close()
package wav
