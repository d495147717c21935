// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/audiosys"
	"github.com/ik5/audiosys/formats/wav"
	"github.com/ik5/audiosys/internal/config"
	"github.com/ik5/audiosys/internal/scene"
)

// finished reports whether the scene has run its course: the configured
// duration has passed, or, without one, everything has played out.
func finished(d *scene.Director, out config.OutputConfig) bool {
	if out.Duration > 0 {
		return d.Elapsed() >= out.Duration
	}
	return d.Idle()
}

// render mixes the scene offline into a WAV file, one Update per window.
func render(ctx context.Context, sys *audiosys.System, d *scene.Director, out config.OutputConfig) error {
	f, err := os.Create(out.Render)
	if err != nil {
		return fmt.Errorf("create %q: %w", out.Render, err)
	}
	defer f.Close()

	w, err := wav.NewWriter(f, audiosys.SampleRate, 2)
	if err != nil {
		return err
	}

	window := sys.Window()
	buf := make([]int16, 2*window)

	d.Advance(0)
	sys.Update()
	for ctx.Err() == nil && !finished(d, out) {
		n := sys.Consume(window, buf)
		if err := w.WriteFrames(buf[:2*n]); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		d.Advance(window)
		sys.Update()
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("finish %q: %w", out.Render, err)
	}
	slog.Info("rendered", "path", out.Render, "duration", d.Elapsed())
	return ctx.Err()
}

// play streams the mix to the default audio device. The device pulls from
// an audiosys.Reader on its own goroutine; this loop is the producer.
func play(ctx context.Context, sys *audiosys.System, d *scene.Director, out config.OutputConfig) error {
	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   audiosys.SampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   out.DeviceBuffer,
	})
	if err != nil {
		return fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	d.Advance(0)
	sys.Update()

	player := otoCtx.NewPlayer(audiosys.NewReader(sys))
	defer player.Close()
	player.Play()

	// Refill well before the device drains a window.
	window := time.Duration(sys.Window()) * time.Second / audiosys.SampleRate
	ticker := time.NewTicker(window / 4)
	defer ticker.Stop()

	var last int64

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		sys.Update()
		played := sys.Advanced()
		d.Advance(int(played - last))
		last = played

		if finished(d, out) {
			// Let the last window reach the speakers.
			time.Sleep(window)
			return nil
		}
	}
}
