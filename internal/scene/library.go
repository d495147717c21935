// SPDX-License-Identifier: EPL-2.0

package scene

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/audiosys"
	"github.com/ik5/audiosys/audio"
	"github.com/ik5/audiosys/internal/config"
	"github.com/ik5/audiosys/sources"
)

// ErrUnknownSound is returned when an event names a sound the library does
// not hold.
var ErrUnknownSound = errors.New("scene: unknown sound")

// Opener hands out a fresh source for a named sound, along with whether the
// sound should loop.
type Opener interface {
	Open(name string) (src audiosys.Source, loop bool, err error)
}

// Library opens the sounds of a scene.
type Library struct {
	sounds map[string]config.Sound
	clips  map[string]*sources.Clip
	reg    *audio.Registry
}

// NewLibrary decodes every file sound that is not streamed. Files are
// loaded in parallel; the first failure cancels the rest.
func NewLibrary(ctx context.Context, sounds map[string]config.Sound, reg *audio.Registry) (*Library, error) {
	lib := &Library{
		sounds: sounds,
		clips:  make(map[string]*sources.Clip),
		reg:    reg,
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, name := range slices.Sorted(maps.Keys(sounds)) {
		snd := sounds[name]
		if snd.Path == "" || snd.Stream {
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			clip, err := sources.LoadClip(reg, snd.Path)
			if err != nil {
				return fmt.Errorf("scene: load sound %q: %w", name, err)
			}

			mu.Lock()
			lib.clips[name] = clip
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lib, nil
}

// Open returns a new source for the sound called name.
func (l *Library) Open(name string) (audiosys.Source, bool, error) {
	snd, ok := l.sounds[name]
	if !ok {
		return nil, false, fmt.Errorf("%w: %q", ErrUnknownSound, name)
	}

	switch {
	case snd.Tone != 0:
		src, err := tone(snd.Tone, snd.Length)
		if err != nil {
			return nil, false, fmt.Errorf("scene: tone %q: %w", name, err)
		}
		return src, snd.Loop, nil

	case snd.Stream:
		src, err := sources.OpenStream(l.reg, snd.Path)
		if err != nil {
			return nil, false, fmt.Errorf("scene: stream %q: %w", name, err)
		}
		return src, snd.Loop, nil
	}

	return l.clips[name].Play(), snd.Loop, nil
}

func tone(freq float64, length time.Duration) (audiosys.Source, error) {
	s, err := generators.SineTone(audiosys.SampleRate, freq)
	if err != nil {
		return nil, err
	}
	if length > 0 {
		s = beep.Take(durationFrames(length), s)
	}
	return sources.NewBeep(s, audiosys.SampleRate), nil
}

// durationFrames converts d to frames at the mixer rate.
func durationFrames(d time.Duration) int {
	return int(int64(d) * audiosys.SampleRate / int64(time.Second))
}
