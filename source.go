// SPDX-License-Identifier: EPL-2.0

package audiosys

// Source feeds one voice. ReadFrames fills dst with interleaved stereo
// float32 frames at SampleRate and returns how many frames it wrote. Returning
// fewer than len(dst)/2 frames signals the end of the stream.
//
// The mixer takes ownership of a Source when it is handed one. If the value
// also implements io.Closer, Close is called exactly once: when the source is
// replaced, stopped, runs out, or the System is closed.
type Source interface {
	ReadFrames(dst []float32) int
}

// Restarter is implemented by sources that can rewind to their first frame.
// A looping voice whose source is not a Restarter plays once.
type Restarter interface {
	Restart()
}

// Seeker is implemented by sources that can report and change their read
// position, in frames.
type Seeker interface {
	SetPosition(frame int)
	Position() int
}
