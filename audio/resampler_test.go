// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/audiosys/internal/audiotest"
)

// drain reads src to the end and returns everything it produced.
func drain(t *testing.T, src Source, chunk int) []float32 {
	t.Helper()

	buf := make([]float32, chunk)
	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestResampler_OutputLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		srcRate  int
		dstRate  int
		channels int
		frames   int
		want     int // output frames
	}{
		{name: "downsample 44.1k to 16k", srcRate: 44100, dstRate: 16000, channels: 1, frames: 44100, want: 16000},
		{name: "upsample 22.05k to 44.1k", srcRate: 22050, dstRate: 44100, channels: 2, frames: 22050, want: 44099},
		{name: "48k to 44.1k", srcRate: 48000, dstRate: 44100, channels: 2, frames: 4800, want: 4410},
		{name: "same rate", srcRate: 44100, dstRate: 44100, channels: 2, frames: 1000, want: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.srcRate, tt.channels, tt.frames, 440)
			r := NewResampler(src, tt.dstRate)
			out := drain(t, r, 512*tt.channels)

			if got := len(out) / tt.channels; got != tt.want {
				t.Errorf("resampled %d frames, want %d", got, tt.want)
			}
		})
	}
}

// TestResampler_LinearRamp checks that a linear input stays linear: the
// interpolator is exact for first-degree signals away from the edges.
func TestResampler_LinearRamp(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampSource(8000, 1, 200)
	r := NewResampler(src, 16000)
	out := drain(t, r, 64)

	for i := 4; i < len(out)-4; i++ {
		want := float32(i) / 2
		if math.Abs(float64(out[i]-want)) > 1e-3 {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], want)
		}
	}
}

func TestResampler_StereoPreserved(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(44100, 2, 1000, func(_ int, channel int) float32 {
		if channel == 0 {
			return 0.3
		}
		return 0.7
	})
	r := NewResampler(src, 8000)
	out := drain(t, r, 20)

	for f := range len(out) / 2 {
		if math.Abs(float64(out[2*f]-0.3)) > 1e-5 || math.Abs(float64(out[2*f+1]-0.7)) > 1e-5 {
			t.Fatalf("frame %d = (%v, %v), want (0.3, 0.7)", f, out[2*f], out[2*f+1])
		}
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 100), 8000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 1, 0), 8000)
	n, err := r.ReadSamples(make([]float32, 16))
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() = %d, %v; want 0, io.EOF", n, err)
	}
}

func TestResampler_SingleFrame(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewConstantSource(8000, 1, 1, 0.5), 16000)
	out := drain(t, r, 16)
	if len(out) != 1 || out[0] != 0.5 {
		t.Errorf("resampled single frame = %v, want [0.5]", out)
	}
}

func TestResampler_PropagatesErrors(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(44100, 1, 10000, 0.1)
	src.FailAfter = 3000
	r := NewResampler(src, 22050)

	buf := make([]float32, 512)
	var err error
	for range 100 {
		if _, err = r.ReadSamples(buf); err != nil {
			break
		}
	}
	if !errors.Is(err, audiotest.ErrInjected) {
		t.Errorf("ReadSamples() error = %v, want ErrInjected", err)
	}
}

func TestResampler_Close(t *testing.T) {
	t.Parallel()

	mock := audiotest.NewSilentSource(44100, 1, 1)
	if err := NewResampler(mock, 8000).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if mock.Closed != 1 {
		t.Errorf("source closed %d times, want 1", mock.Closed)
	}
}

func TestPrepare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		rate     int
	}{
		{"mono 22k", 1, 22050},
		{"stereo 48k", 2, 48000},
		{"surround 44.1k", 6, 44100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := Prepare(audiotest.NewSineSource(tt.rate, tt.channels, tt.rate/10, 220), 44100)
			if err != nil {
				t.Fatalf("Prepare() error = %v", err)
			}
			if src.SampleRate() != 44100 || src.Channels() != 2 {
				t.Fatalf("Prepare() = %d Hz / %d ch, want 44100 / 2", src.SampleRate(), src.Channels())
			}

			out := drain(t, src, 1024)
			if frames := len(out) / 2; math.Abs(float64(frames-4410)) > 3 {
				t.Errorf("Prepare() produced %d frames, want ≈4410", frames)
			}
		})
	}
}

func TestPrepare_InvalidRate(t *testing.T) {
	t.Parallel()

	if _, err := Prepare(audiotest.NewSilentSource(8000, 1, 1), 0); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("Prepare(rate=0) error = %v, want ErrInvalidRate", err)
	}
}

func BenchmarkResampler_48kTo44k(b *testing.B) {
	src := audiotest.NewSineSource(48000, 2, math.MaxInt32, 440)
	r := NewResampler(src, 44100)
	buf := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		_, _ = r.ReadSamples(buf)
	}
}
