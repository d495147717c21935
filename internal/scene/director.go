// SPDX-License-Identifier: EPL-2.0

package scene

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/ik5/audiosys"
	"github.com/ik5/audiosys/internal/config"
)

// Director fires timeline events against a System. It must be driven from
// the goroutine that calls System.Update.
type Director struct {
	sys    *audiosys.System
	open   Opener
	events []config.Event
	next   int

	elapsed int // frames
	handles map[string]audiosys.SoundHandle
	log     *slog.Logger
}

// NewDirector orders events by time. Events sharing a time keep their
// config order.
func NewDirector(sys *audiosys.System, open Opener, events []config.Event, log *slog.Logger) *Director {
	events = slices.Clone(events)
	slices.SortStableFunc(events, func(a, b config.Event) int {
		return cmp.Compare(a.At, b.At)
	})

	if log == nil {
		log = slog.Default()
	}

	return &Director{
		sys:     sys,
		open:    open,
		events:  events,
		handles: make(map[string]audiosys.SoundHandle),
		log:     log,
	}
}

// Advance moves the scene clock forward by frames and fires every event due
// by then. Events whose sound fails to open are skipped; their errors are
// joined in the result.
func (d *Director) Advance(frames int) error {
	d.elapsed += max(frames, 0)

	var errs []error
	for d.next < len(d.events) && durationFrames(d.events[d.next].At) <= d.elapsed {
		ev := d.events[d.next]
		d.next++

		if err := d.fire(ev); err != nil {
			d.log.Warn("scene event skipped", "at", ev.At, "action", ev.Action, "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Elapsed returns the scene clock.
func (d *Director) Elapsed() time.Duration {
	return time.Duration(int64(d.elapsed) * int64(time.Second) / audiosys.SampleRate)
}

// Done reports whether every event has fired.
func (d *Director) Done() bool { return d.next == len(d.events) }

// Idle reports whether every event has fired and nothing is left playing.
func (d *Director) Idle() bool {
	return d.Done() &&
		d.sys.SoundCount() == 0 &&
		d.sys.Music().State() == audiosys.Stopped &&
		d.sys.Ambience().State() == audiosys.Stopped
}

func seconds(d time.Duration) float32 { return float32(d.Seconds()) }

func (d *Director) fire(ev config.Event) error {
	d.log.Debug("scene event", "at", ev.At, "action", ev.Action, "sound", ev.Sound)

	switch ev.Action {
	case config.MusicPlay, config.MusicSwitch, config.MusicCrossFade:
		return d.track(d.sys.Music(), ev)
	case config.AmbiencePlay, config.AmbienceSwitch, config.AmbienceCrossFade:
		return d.track(d.sys.Ambience(), ev)
	case config.MusicStop:
		d.sys.Music().Stop(seconds(stopFade(ev)))
	case config.AmbienceStop:
		d.sys.Ambience().Stop(seconds(stopFade(ev)))

	case config.SoundPlay:
		src, loop, err := d.open.Open(ev.Sound)
		if err != nil {
			return err
		}
		h := d.sys.PlaySound(src, float32(ev.Priority), seconds(ev.Fade))
		if ev.Volume != nil {
			d.sys.SetSoundVolume(h, float32(*ev.Volume))
		}
		d.sys.SetSoundPan(h, float32(ev.Pan))
		d.sys.SetSoundLoop(h, loop)
		if ev.ID != "" {
			d.handles[ev.ID] = h
		}
	case config.SoundStop:
		h, ok := d.handles[ev.ID]
		if !ok {
			return fmt.Errorf("scene: no sound with id %q", ev.ID)
		}
		d.sys.StopSound(h, seconds(stopFade(ev)))
		delete(d.handles, ev.ID)
	case config.SoundStopAll:
		d.sys.StopAll()
		clear(d.handles)

	case config.MasterVolume:
		d.sys.SetMasterVolume(float32(ev.Value))
	case config.Pause:
		d.sys.Pause()
	case config.Resume:
		d.sys.Resume()

	default:
		return fmt.Errorf("scene: unknown action %q", ev.Action)
	}
	return nil
}

func (d *Director) track(t *audiosys.Track, ev config.Event) error {
	src, loop, err := d.open.Open(ev.Sound)
	if err != nil {
		return err
	}

	switch ev.Action {
	case config.MusicPlay, config.AmbiencePlay:
		t.Play(src, seconds(ev.Fade))
	case config.MusicSwitch, config.AmbienceSwitch:
		t.Switch(src, seconds(ev.FadeOut), seconds(ev.Fade))
	default:
		t.CrossFade(src, seconds(ev.Fade))
	}

	t.SetLoop(loop)
	if ev.Volume != nil {
		t.SetVolume(float32(*ev.Volume))
	}
	t.SetPan(float32(ev.Pan))
	return nil
}

// stopFade is the fade of a stop event: fade_out, or fade when only that is
// given.
func stopFade(ev config.Event) time.Duration {
	if ev.FadeOut > 0 {
		return ev.FadeOut
	}
	return ev.Fade
}
