// SPDX-License-Identifier: EPL-2.0

package audiosys

import (
	"io"
	"log/slog"
)

// State is the playback state of a voice.
type State int

const (
	Stopped State = iota
	Playing
	FadingIn
	FadingOut
	Crossfading
	Queued
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case FadingIn:
		return "fading-in"
	case FadingOut:
		return "fading-out"
	case Crossfading:
		return "crossfading"
	case Queued:
		return "queued"
	}
	return "unknown"
}

// voice is one mixing unit. cache always holds the next window of frames
// from the playhead on, already pulled from src.
type voice struct {
	handle      SoundHandle
	state       State
	src         Source
	initialized bool
	paused      bool
	loop        bool

	priority float32
	volume   float32
	pan      float32

	fadeInTime   float32
	fadeOutTime  float32
	fadeProgress float32
	// fadePos frames of a fade fadeLen frames long have elapsed.
	fadePos int
	fadeLen int
	// fadeVolume and fadeDelta describe the ramp across the current window.
	fadeVolume float32
	fadeDelta  float32

	cache []float32
	// drain counts the frames still to be shifted out after the source ran
	// dry; the voice settles to Stopped once it reaches zero.
	drain int
	log   *slog.Logger
}

func newVoice(window int, log *slog.Logger) voice {
	return voice{
		volume:       1,
		fadeProgress: 1,
		fadeVolume:   1,
		cache:        make([]float32, 2*window),
		log:          log,
	}
}

// start installs src, replacing and releasing any previous source. Volume,
// pan and loop are left alone.
func (v *voice) start(src Source, fadeIn float32) {
	v.release()
	v.src = src
	v.initialized = false
	v.paused = false
	v.fadeInTime = fadeIn
	v.fadeDelta = 0

	switch {
	case src == nil:
		v.state = Stopped
	case fadeIn > 0:
		v.state = FadingIn
		v.fadeProgress = 0
		v.beginFade(fadeIn)
	default:
		v.state = Playing
		v.fadeProgress = 1
	}
	v.fadeVolume = v.fadeProgress
}

// stop fades the voice out over fadeOut seconds, or silences it at once.
func (v *voice) stop(fadeOut float32) {
	if fadeOut > 0 && v.src != nil && v.state != Queued && v.state != Stopped {
		v.state = FadingOut
		v.fadeOutTime = fadeOut
		v.beginFade(fadeOut)
		return
	}

	v.release()
	v.state = Stopped
}

// release closes the source, if any, and leaves the voice sourceless.
func (v *voice) release() {
	src := v.src
	if src == nil {
		return
	}
	v.src = nil

	if c, ok := src.(io.Closer); ok {
		if err := c.Close(); err != nil {
			v.log.Warn("closing audio source", "err", err)
		}
	}
}

// active reports whether the voice still has something to play.
func (v *voice) active() bool {
	return v.src != nil && v.state != Stopped
}

func (v *voice) window() int { return len(v.cache) / 2 }

// advance moves the voice forward by frames: it pulls fresh samples and
// steps the fade. The first call after (re)start fills the whole
// cache and treats no time as elapsed.
func (v *voice) advance(frames int) {
	if v.paused || v.state == Queued {
		return
	}
	if v.src == nil && v.state == Stopped {
		v.initialized = false
		return
	}

	if !v.initialized {
		v.initialized = true
		v.fill(v.cache)
		v.updateFading(0)
		return
	}

	dry := v.src == nil
	v.pull(frames)
	if dry {
		v.drain -= frames
		if v.drain <= 0 {
			v.state = Stopped
		}
	}
	v.updateFading(frames)
}

// pull drops the first frames of the cache and appends as many new frames
// from the source. Frames beyond one window are read and discarded so the
// source stays in step with the playhead.
func (v *voice) pull(frames int) {
	if frames <= 0 {
		return
	}

	w := v.window()
	for frames > w {
		chunk := min(frames-w, w)
		v.fill(v.cache[:2*chunk])
		frames -= chunk
	}

	keep := w - frames
	copy(v.cache, v.cache[2*frames:])
	v.fill(v.cache[2*keep:])
}

// fill reads frames into dst. A looping voice restarts its source on a short
// read; otherwise the source is released and the rest of dst is silenced.
func (v *voice) fill(dst []float32) {
	restarted := false
	for len(dst) > 0 {
		if v.src == nil || v.state == Stopped {
			clear(dst)
			return
		}

		n := v.src.ReadFrames(dst)
		dst = dst[2*n:]
		if len(dst) == 0 {
			return
		}
		if n > 0 {
			restarted = false
		}

		// A source that is empty right after a restart would spin forever.
		if r, ok := v.src.(Restarter); ok && v.loop && !restarted {
			r.Restart()
			restarted = true
			continue
		}

		v.release()
		v.drain = v.window()
	}
}

func (v *voice) position() int {
	if sk, ok := v.src.(Seeker); ok {
		return sk.Position()
	}
	return 0
}

// setPosition seeks the source and forces a full refill on the next advance.
func (v *voice) setPosition(frame int) {
	sk, ok := v.src.(Seeker)
	if !ok {
		return
	}
	sk.SetPosition(max(0, frame))
	v.initialized = false
}
