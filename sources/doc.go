// SPDX-License-Identifier: EPL-2.0

// Package sources provides ready-made mixer sources.
//
// A [Clip] decodes a short sound once and hands out independent cursors, so
// the same effect can play many times at once. A [Stream] decodes a long
// file as it plays and supports looping and seeking by re-decoding from the
// start. [Beep] adapts any github.com/gopxl/beep streamer and plays it once;
// [SeekableBeep] adapts a beep.StreamSeeker and can loop.
//
// All of them produce interleaved stereo at audiosys.SampleRate and satisfy
// audiosys.Source. Clip cursors, streams and seekable beeps also satisfy
// audiosys.Restarter and audiosys.Seeker.
package sources
