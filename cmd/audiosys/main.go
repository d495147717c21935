// SPDX-License-Identifier: EPL-2.0

// Command audiosys plays a scene file through the audio device, or renders
// it to a WAV file.
//
//	audiosys -config scene.yaml
//	audiosys -config scene.yaml -render out.wav
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/audiosys"
	"github.com/ik5/audiosys/formats"
	"github.com/ik5/audiosys/internal/config"
	"github.com/ik5/audiosys/internal/observe"
	"github.com/ik5/audiosys/internal/scene"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "scene.yaml", "path to the YAML scene file")
	renderPath := flag.String("render", "", "render to this WAV file instead of playing")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "audiosys: %v\n", err)
		return 1
	}
	if *renderPath != "" {
		cfg.Output.Render = *renderPath
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := []audiosys.Option{audiosys.WithLogger(logger)}
	if cfg.Metrics.Listen != "" {
		shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{})
		if err != nil {
			slog.Error("failed to start metrics provider", "err", err)
			return 1
		}
		defer shutdown(context.Background())

		metrics, err := observe.NewMetrics(otel.GetMeterProvider())
		if err != nil {
			slog.Error("failed to create metrics", "err", err)
			return 1
		}
		opts = append(opts, audiosys.WithMetrics(metrics))
	}

	sys, err := audiosys.New(cfg.Mixer.Voices, cfg.Mixer.Window, features(cfg.Mixer), opts...)
	if err != nil {
		slog.Error("failed to create mixer", "err", err)
		return 1
	}
	defer sys.Close()

	if g := cfg.Mixer.Gain; g != nil {
		sys.SetGain(float32(*g))
	}
	if v := cfg.Mixer.MasterVolume; v != nil {
		sys.SetMasterVolume(float32(*v))
	}

	lib, err := scene.NewLibrary(ctx, cfg.Sounds, formats.Registry())
	if err != nil {
		slog.Error("failed to load sounds", "err", err)
		return 1
	}
	director := scene.NewDirector(sys, lib, cfg.Events, logger)

	slog.Info("audiosys starting",
		"config", *configPath,
		"voices", cfg.Mixer.Voices,
		"window", cfg.Mixer.Window,
		"sounds", len(cfg.Sounds),
		"events", len(cfg.Events),
		"render", cfg.Output.Render,
	)

	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)
		if cfg.Output.Render != "" {
			return render(gctx, sys, director, cfg.Output)
		}
		return play(gctx, sys, director, cfg.Output)
	})
	if cfg.Metrics.Listen != "" {
		serveMetrics(gctx, g, done, cfg.Metrics.Listen)
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run error", "err", err)
		return 1
	}

	slog.Info("scene finished", "elapsed", director.Elapsed())
	return 0
}

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func features(m config.MixerConfig) audiosys.Feature {
	var f audiosys.Feature
	if m.SoftClip {
		f |= audiosys.SoftClip
	}
	if m.Music {
		f |= audiosys.Music
	}
	if m.MusicCrossFade {
		f |= audiosys.MusicCrossFade
	}
	if m.Ambience {
		f |= audiosys.Ambience
	}
	if m.AmbienceCrossFade {
		f |= audiosys.AmbienceCrossFade
	}
	return f
}
