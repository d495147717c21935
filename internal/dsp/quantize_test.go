// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"
	"testing"
)

func TestSoftClip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  float32
	}{
		{name: "zero", input: 0, want: 0},
		{name: "half", input: 0.5, want: 0.5 - 0.125/3},
		{name: "negative half", input: -0.5, want: -0.5 + 0.125/3},
		{name: "unity", input: 1, want: 2.0 / 3.0},
		{name: "negative unity", input: -1, want: -2.0 / 3.0},
		{name: "saturates high", input: 4, want: 2.0 / 3.0},
		{name: "saturates low", input: -4, want: -2.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := SoftClip(tt.input)
			if math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("SoftClip(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestSoftClipContinuous checks there is no jump where the curve meets the
// saturation plateau.
func TestSoftClipContinuous(t *testing.T) {
	t.Parallel()

	below := SoftClip(0.99999)
	above := SoftClip(1.00001)
	if math.Abs(float64(above-below)) > 1e-4 {
		t.Errorf("SoftClip discontinuous at 1: %v vs %v", below, above)
	}
}

func TestSoftClipMonotonic(t *testing.T) {
	t.Parallel()

	prev := SoftClip(-2)
	for x := float32(-2); x <= 2; x += 0.01 {
		cur := SoftClip(x)
		if cur < prev {
			t.Fatalf("SoftClip not monotonic at %v: %v < %v", x, cur, prev)
		}
		prev = cur
	}
}

func TestQuantize16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{name: "zero", input: 0, want: 0},
		{name: "full scale", input: 1, want: 32000},
		{name: "negative full scale", input: -1, want: -32000},
		{name: "half", input: 0.5, want: 16000},
		{name: "rounds up", input: 0.00002, want: 1},           // 0.64
		{name: "rounds down", input: 0.00001, want: 0},         // 0.32
		{name: "tie to even down", input: 1.0 / 512, want: 62}, // 62.5
		{name: "tie to even up", input: 3.0 / 512, want: 188},  // 187.5
		{name: "negative tie", input: -1.0 / 512, want: -62},
		{name: "saturates high", input: 2, want: math.MaxInt16},
		{name: "saturates low", input: -2, want: math.MinInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Quantize16(tt.input); got != tt.want {
				t.Errorf("Quantize16(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestQuantize16_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	buf := make([]float32, 1024)
	out := make([]int16, 1024)
	for i := range buf {
		buf[i] = float32(math.Sin(float64(i) * 0.01))
	}

	allocs := testing.AllocsPerRun(100, func() {
		for i, s := range buf {
			out[i] = Quantize16(SoftClip(s))
		}
	})
	if allocs > 0 {
		t.Errorf("Quantize16/SoftClip allocated %v times, want 0", allocs)
	}
}

func BenchmarkQuantize16SoftClip(b *testing.B) {
	buf := make([]float32, 4096)
	out := make([]int16, 4096)
	for i := range buf {
		buf[i] = float32(math.Sin(float64(i) * 0.01))
	}

	b.ReportAllocs()

	for b.Loop() {
		for i, s := range buf {
			out[i] = Quantize16(SoftClip(s))
		}
	}
}
