// SPDX-License-Identifier: EPL-2.0

package sources

import (
	"errors"
	"testing"
	"time"

	"github.com/ik5/audiosys"
	"github.com/ik5/audiosys/internal/audiotest"
)

var (
	_ audiosys.Source    = (*Cursor)(nil)
	_ audiosys.Restarter = (*Cursor)(nil)
	_ audiosys.Seeker    = (*Cursor)(nil)
)

func TestNewClip_DecodesAndCloses(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampSource(audiosys.SampleRate, 2, 1000)

	clip, err := NewClip(src)
	if err != nil {
		t.Fatalf("NewClip() error = %v", err)
	}

	if clip.Frames() != 1000 {
		t.Errorf("Frames() = %d, want 1000", clip.Frames())
	}
	if src.Closed != 1 {
		t.Errorf("source closed %d times, want 1", src.Closed)
	}

	want := time.Duration(1000) * time.Second / audiosys.SampleRate
	if clip.Duration() != want {
		t.Errorf("Duration() = %v, want %v", clip.Duration(), want)
	}
}

func TestNewClip_MonoIsWidened(t *testing.T) {
	t.Parallel()

	clip, err := NewClip(audiotest.NewConstantSource(audiosys.SampleRate, 1, 10, 0.25))
	if err != nil {
		t.Fatalf("NewClip() error = %v", err)
	}

	dst := make([]float32, 20)
	if n := clip.Play().ReadFrames(dst); n != 10 {
		t.Fatalf("ReadFrames() = %d, want 10", n)
	}
	for i, v := range dst {
		if v != 0.25 {
			t.Fatalf("dst[%d] = %v, want 0.25", i, v)
		}
	}
}

func TestNewClip_ReadError(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampSource(audiosys.SampleRate, 2, 1000)
	src.FailAfter = 100

	if _, err := NewClip(src); !errors.Is(err, audiotest.ErrInjected) {
		t.Errorf("NewClip() error = %v, want %v", err, audiotest.ErrInjected)
	}
	if src.Closed != 1 {
		t.Errorf("source closed %d times, want 1", src.Closed)
	}
}

func TestCursor_IndependentPlayback(t *testing.T) {
	t.Parallel()

	clip, err := NewClip(audiotest.NewRampSource(audiosys.SampleRate, 2, 100))
	if err != nil {
		t.Fatalf("NewClip() error = %v", err)
	}

	a, b := clip.Play(), clip.Play()
	dst := make([]float32, 2*30)
	a.ReadFrames(dst)

	b.ReadFrames(dst[:2])
	if dst[0] != 0 {
		t.Errorf("second cursor starts at %v, want 0", dst[0])
	}

	a.ReadFrames(dst[:2])
	if dst[0] != 30 {
		t.Errorf("first cursor continues at %v, want 30", dst[0])
	}
}

func TestCursor_EndSeekRestart(t *testing.T) {
	t.Parallel()

	cur := NewClipFromFrames(make([]float32, 2*50)).Play()
	dst := make([]float32, 2*40)

	if n := cur.ReadFrames(dst); n != 40 {
		t.Errorf("ReadFrames() = %d, want 40", n)
	}
	if n := cur.ReadFrames(dst); n != 10 {
		t.Errorf("ReadFrames() at tail = %d, want 10", n)
	}
	if n := cur.ReadFrames(dst); n != 0 {
		t.Errorf("ReadFrames() past end = %d, want 0", n)
	}

	cur.SetPosition(1000)
	if cur.Position() != 50 {
		t.Errorf("SetPosition(1000) -> %d, want 50", cur.Position())
	}
	cur.SetPosition(-3)
	if cur.Position() != 0 {
		t.Errorf("SetPosition(-3) -> %d, want 0", cur.Position())
	}

	cur.SetPosition(20)
	cur.Restart()
	if cur.Position() != 0 {
		t.Errorf("Restart() -> %d, want 0", cur.Position())
	}
}

func TestCursor_PlaysThroughSystem(t *testing.T) {
	t.Parallel()

	sys, err := audiosys.New(8, 64, 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer sys.Close()

	clip := NewClipFromFrames(repeat(0.5, 2*1000))
	h := sys.PlaySound(clip.Play(), 1, 0)

	sys.Update()
	out := make([]int16, 2*64)
	sys.Consume(0, out)
	if out[0] != 16000 {
		t.Errorf("out[0] = %d, want 16000", out[0])
	}
	if !sys.SoundValid(h) {
		t.Error("sound reaped while the clip still has frames")
	}
}

func repeat(v float32, n int) []float32 {
	s := make([]float32, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func BenchmarkCursor_ReadFrames(b *testing.B) {
	clip := NewClipFromFrames(make([]float32, 2*audiosys.SampleRate))
	dst := make([]float32, 2*1024)

	b.ReportAllocs()

	for b.Loop() {
		cur := clip.Play()
		for cur.ReadFrames(dst) > 0 {
		}
	}
}
