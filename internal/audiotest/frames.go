// SPDX-License-Identifier: EPL-2.0

package audiotest

// Frames is a stereo frame source for the mixer. It produces Total frames
// (forever when Total is negative) and supports restart, seek and close.
type Frames struct {
	Total int
	value func(frame int) (l, r float32)
	pos   int

	Reads    int // ReadFrames calls
	Restarts int // Restart calls
	Closed   int // Close calls
}

// NewFrames creates a frame source from a per-frame value function.
func NewFrames(total int, value func(frame int) (l, r float32)) *Frames {
	return &Frames{Total: total, value: value}
}

// NewConstantFrames creates a frame source whose every frame is (l, r).
func NewConstantFrames(total int, l, r float32) *Frames {
	return NewFrames(total, func(int) (float32, float32) { return l, r })
}

// NewRampFrames creates a frame source whose left and right samples both
// equal the frame index, so shifted windows can be checked by value.
func NewRampFrames(total int) *Frames {
	return NewFrames(total, func(frame int) (float32, float32) {
		return float32(frame), float32(frame)
	})
}

func (f *Frames) ReadFrames(dst []float32) int {
	f.Reads++

	n := len(dst) / 2
	if f.Total >= 0 {
		n = min(n, f.Total-f.pos)
	}
	for i := range max(n, 0) {
		dst[2*i], dst[2*i+1] = f.value(f.pos + i)
	}
	if n <= 0 {
		return 0
	}
	f.pos += n

	return n
}

func (f *Frames) Restart() {
	f.Restarts++
	f.pos = 0
}

func (f *Frames) SetPosition(frame int) { f.pos = frame }
func (f *Frames) Position() int         { return f.pos }

func (f *Frames) Close() error {
	f.Closed++
	return nil
}

// ReaderOnly hides every optional capability of a frame source, leaving
// only ReadFrames.
type ReaderOnly struct {
	Src *Frames
}

func (r ReaderOnly) ReadFrames(dst []float32) int { return r.Src.ReadFrames(dst) }
