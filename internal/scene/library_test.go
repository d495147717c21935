// SPDX-License-Identifier: EPL-2.0

package scene

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ik5/audiosys"
	"github.com/ik5/audiosys/formats"
	"github.com/ik5/audiosys/formats/wav"
	"github.com/ik5/audiosys/internal/config"
	"github.com/ik5/audiosys/sources"
)

func writeWAV(t *testing.T, frames int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clip.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := wav.WriteWAV16(f, audiosys.SampleRate, 2, make([]int16, 2*frames)); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}
	return path
}

func TestLibrary_Open(t *testing.T) {
	t.Parallel()

	path := writeWAV(t, 1000)
	lib, err := NewLibrary(context.Background(), map[string]config.Sound{
		"clip":   {Path: path},
		"stream": {Path: path, Stream: true, Loop: true},
		"tone":   {Tone: 440, Length: 10 * time.Millisecond},
	}, formats.Registry())
	if err != nil {
		t.Fatalf("NewLibrary() error = %v", err)
	}

	if len(lib.clips) != 1 {
		t.Errorf("preloaded %d clips, want 1", len(lib.clips))
	}

	src, loop, err := lib.Open("clip")
	if err != nil {
		t.Fatalf("Open(clip) error = %v", err)
	}
	if _, ok := src.(*sources.Cursor); !ok || loop {
		t.Errorf("Open(clip) = %T loop %v, want *sources.Cursor without loop", src, loop)
	}

	src, loop, err = lib.Open("stream")
	if err != nil {
		t.Fatalf("Open(stream) error = %v", err)
	}
	stream, ok := src.(*sources.Stream)
	if !ok || !loop {
		t.Fatalf("Open(stream) = %T loop %v, want *sources.Stream with loop", src, loop)
	}
	stream.Close()

	src, _, err = lib.Open("tone")
	if err != nil {
		t.Fatalf("Open(tone) error = %v", err)
	}
	dst := make([]float32, 2*1000)
	if n := src.ReadFrames(dst); n != 441 {
		t.Errorf("tone length = %d frames, want 441", n)
	}

	if _, _, err := lib.Open("nope"); !errors.Is(err, ErrUnknownSound) {
		t.Errorf("Open(nope) error = %v, want %v", err, ErrUnknownSound)
	}
}

func TestNewLibrary_LoadError(t *testing.T) {
	t.Parallel()

	_, err := NewLibrary(context.Background(), map[string]config.Sound{
		"gone": {Path: filepath.Join(t.TempDir(), "gone.wav")},
	}, formats.Registry())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("NewLibrary() error = %v, want %v", err, os.ErrNotExist)
	}
}

func TestDurationFrames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		d    time.Duration
		want int
	}{
		{0, 0},
		{time.Second, audiosys.SampleRate},
		{10 * time.Millisecond, 441},
		{time.Minute, 60 * audiosys.SampleRate},
	}

	for _, tt := range tests {
		if got := durationFrames(tt.d); got != tt.want {
			t.Errorf("durationFrames(%v) = %d, want %d", tt.d, got, tt.want)
		}
	}
}
