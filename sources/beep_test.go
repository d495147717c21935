// SPDX-License-Identifier: EPL-2.0

package sources

import (
	"math"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"

	"github.com/ik5/audiosys"
)

var (
	_ audiosys.Source    = (*Beep)(nil)
	_ audiosys.Source    = (*SeekableBeep)(nil)
	_ audiosys.Restarter = (*SeekableBeep)(nil)
	_ audiosys.Seeker    = (*SeekableBeep)(nil)
)

// rampStreamer yields frames whose left sample is the frame index divided by
// frames and right sample its negation, so every sample stays in [-1, 1).
func rampStreamer(frames int) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= frames {
			return 0, false
		}
		n := min(len(samples), frames-pos)
		for i := range n {
			v := float64(pos+i) / float64(frames)
			samples[i] = [2]float64{v, -v}
		}
		pos += n
		return n, true
	})
}

func bufferedRamp(frames int) beep.StreamSeeker {
	buf := beep.NewBuffer(beep.Format{SampleRate: audiosys.SampleRate, NumChannels: 2, Precision: 2})
	buf.Append(rampStreamer(frames))
	return buf.Streamer(0, buf.Len())
}

func TestBeep_ReadFrames(t *testing.T) {
	t.Parallel()

	b := NewBeep(rampStreamer(100), audiosys.SampleRate)

	dst := make([]float32, 2*64)
	if n := b.ReadFrames(dst); n != 64 {
		t.Fatalf("ReadFrames() = %d, want 64", n)
	}
	if dst[2*10] != 0.1 || dst[2*10+1] != -0.1 {
		t.Errorf("frame 10 = (%v, %v), want (0.1, -0.1)", dst[20], dst[21])
	}

	if n := b.ReadFrames(dst); n != 36 {
		t.Errorf("ReadFrames() at tail = %d, want 36", n)
	}
	if n := b.ReadFrames(dst); n != 0 {
		t.Errorf("ReadFrames() past end = %d, want 0", n)
	}
	if b.Position() != 100 {
		t.Errorf("Position() = %d, want 100", b.Position())
	}
}

func TestSeekableBeep_SetPositionAndRestart(t *testing.T) {
	t.Parallel()

	b := NewSeekableBeep(bufferedRamp(1000))

	dst := make([]float32, 2)
	b.SetPosition(400)
	if b.Position() != 400 {
		t.Errorf("Position() = %d, want 400", b.Position())
	}
	b.ReadFrames(dst)
	// The buffer stores 16-bit samples.
	if math.Abs(float64(dst[0])-0.4) > 1e-3 || math.Abs(float64(dst[1])+0.4) > 1e-3 {
		t.Errorf("frame after SetPosition(400) = (%v, %v), want (0.4, -0.4)", dst[0], dst[1])
	}
	if b.Position() != 401 {
		t.Errorf("Position() after one frame = %d, want 401", b.Position())
	}

	b.SetPosition(5000)
	if b.Position() != 1000 {
		t.Errorf("SetPosition past end -> %d, want 1000", b.Position())
	}

	b.Restart()
	b.ReadFrames(dst)
	if dst[0] != 0 {
		t.Errorf("frame after Restart() = %v, want 0", dst[0])
	}
}

func TestBeep_ResamplesForeignRate(t *testing.T) {
	t.Parallel()

	tone, err := generators.SineTone(22050, 440)
	if err != nil {
		t.Fatalf("SineTone() error = %v", err)
	}

	b := NewBeep(beep.Take(22050, tone), 22050)

	total := 0
	dst := make([]float32, 2*4096)
	for {
		n := b.ReadFrames(dst)
		total += n
		if n < 4096 {
			break
		}
	}

	// One second at the source rate is about one second at the mixer rate.
	if math.Abs(float64(total-audiosys.SampleRate)) > 100 {
		t.Errorf("resampled length = %d frames, want about %d", total, audiosys.SampleRate)
	}

	if b.Position() != total {
		t.Errorf("Position() = %d, want %d", b.Position(), total)
	}
}

func TestBeep_LoopingVoicePlaysOnce(t *testing.T) {
	t.Parallel()

	sys, err := audiosys.New(8, 64, 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer sys.Close()

	h := sys.PlaySound(NewBeep(rampStreamer(100), audiosys.SampleRate), 1, 0)
	sys.SetSoundLoop(h, true)
	sys.Update()
	sys.Consume(64, nil)
	sys.Update()
	sys.Consume(64, nil)
	sys.Update()

	if sys.SoundValid(h) {
		t.Error("looping Beep still valid after its frames ran out")
	}
}

func TestSeekableBeep_LoopingVoiceRewinds(t *testing.T) {
	t.Parallel()

	sys, err := audiosys.New(8, 64, 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer sys.Close()

	h := sys.PlaySound(NewSeekableBeep(bufferedRamp(100)), 1, 0)
	sys.SetSoundLoop(h, true)
	for range 4 {
		sys.Update()
		sys.Consume(64, nil)
	}
	sys.Update()

	if !sys.SoundValid(h) {
		t.Error("looping SeekableBeep released after its frames ran out")
	}
}

func TestBeep_InSystem(t *testing.T) {
	t.Parallel()

	sys, err := audiosys.New(8, 32, audiosys.Music)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer sys.Close()

	constant := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{0.25, 0.25}
		}
		return len(samples), true
	})
	sys.Music().Play(NewBeep(constant, audiosys.SampleRate), 0)
	sys.Update()

	out := make([]int16, 2*32)
	sys.Consume(0, out)
	if out[0] != 8000 || out[len(out)-1] != 8000 {
		t.Errorf("output = %d..%d, want 8000", out[0], out[len(out)-1])
	}
}
