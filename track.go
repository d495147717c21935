// SPDX-License-Identifier: EPL-2.0

package audiosys

import (
	"io"
	"log/slog"

	"github.com/ik5/audiosys/internal/dsp"
)

// Track drives one primary voice, music or ambience, and its optional
// crossfade partner. The zero Track is disabled: every method is a no-op
// and any source handed to it is closed straight away.
type Track struct {
	primary *voice
	partner *voice
	log     *slog.Logger
}

func newTrack(primary, partner *voice, log *slog.Logger) Track {
	return Track{primary: primary, partner: partner, log: log}
}

// Enabled reports whether the track's feature was requested from New.
func (t *Track) Enabled() bool { return t.primary != nil }

// discard closes a source the track will never play.
func (t *Track) discard(src Source) {
	c, ok := src.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil && t.log != nil {
		t.log.Warn("closing audio source", "err", err)
	}
}

// Play replaces whatever the track plays with src, fading it in over fadeIn
// seconds. Volume, pan and loop carry over.
func (t *Track) Play(src Source, fadeIn float32) {
	if !t.Enabled() {
		t.discard(src)
		return
	}
	t.primary.start(src, fadeIn)
}

// Stop fades the track out over fadeOut seconds, or silences it at once.
// An immediate stop also cuts a voice still fading out in the background.
func (t *Track) Stop(fadeOut float32) {
	if !t.Enabled() {
		return
	}
	t.primary.stop(fadeOut)
	if fadeOut <= 0 && t.partner != nil {
		t.partner.stop(0)
	}
}

// Switch fades the current source out over fadeOut seconds and then plays
// src, fading it in over fadeIn. The new source waits as Queued until the
// old one has stopped. Without a fade-out, or when the crossfade feature
// is off, the swap happens at once.
func (t *Track) Switch(src Source, fadeOut, fadeIn float32) {
	if !t.Enabled() {
		t.discard(src)
		return
	}
	if fadeOut <= 0 || t.partner == nil || !t.primary.active() {
		t.Play(src, fadeIn)
		return
	}

	t.primary.stop(fadeOut)
	t.swap()
	t.primary.start(src, fadeIn)
	if src != nil {
		t.primary.state = Queued
	}
}

// CrossFade fades the current source out while src fades in, both over
// time seconds. Without the crossfade feature it degrades to Play.
func (t *Track) CrossFade(src Source, time float32) {
	if !t.Enabled() {
		t.discard(src)
		return
	}
	if time <= 0 || t.partner == nil || !t.primary.active() {
		t.Play(src, time)
		return
	}

	t.primary.stop(time)
	t.swap()
	t.primary.start(src, time)
}

// swap moves the outgoing primary into the partner slot, dropping whatever
// the partner still held, and carries the mix settings over.
func (t *Track) swap() {
	t.partner.release()
	t.partner.state = Stopped
	t.primary, t.partner = t.partner, t.primary

	t.primary.volume = t.partner.volume
	t.primary.pan = t.partner.pan
	t.primary.loop = t.partner.loop
}

// promote starts a Queued primary once its partner has gone quiet.
func (t *Track) promote() {
	v := t.primary
	if v.state != Queued || (t.partner != nil && t.partner.active()) {
		return
	}

	if v.fadeInTime > 0 {
		v.state = FadingIn
		v.fadeProgress = 0
		v.beginFade(v.fadeInTime)
	} else {
		v.state = Playing
		v.fadeProgress = 1
	}
	v.fadeVolume = v.fadeProgress
}

func (t *Track) advance(frames int) {
	if !t.Enabled() {
		return
	}
	if t.partner != nil {
		t.partner.advance(frames)
	}
	t.promote()
	t.primary.advance(frames)
}

func (t *Track) mix(acc []float32, master float32) {
	if !t.Enabled() {
		return
	}
	if t.primary.audible() {
		t.primary.mix(acc, master)
	}
	if t.partner != nil && t.partner.audible() {
		t.partner.mix(acc, master)
	}
}

// sourced counts the track's voices holding a source, for the mix budget.
func (t *Track) sourced() int {
	if !t.Enabled() {
		return 0
	}
	n := 0
	if t.primary.src != nil {
		n++
	}
	if t.partner != nil && t.partner.src != nil {
		n++
	}
	return n
}

func (t *Track) close() {
	if !t.Enabled() {
		return
	}
	t.primary.release()
	t.primary.state = Stopped
	if t.partner != nil {
		t.partner.release()
		t.partner.state = Stopped
	}
}

// Pause freezes the track, including a voice fading out in the background.
func (t *Track) Pause() { t.setPaused(true) }

// Resume continues a paused track.
func (t *Track) Resume() { t.setPaused(false) }

func (t *Track) setPaused(paused bool) {
	if !t.Enabled() {
		return
	}
	t.primary.paused = paused
	if t.partner != nil {
		t.partner.paused = paused
	}
}

// Paused reports whether the track is paused.
func (t *Track) Paused() bool {
	return t.Enabled() && t.primary.paused
}

// State returns the primary voice's state. A voice whose source ran out
// reads as Stopped.
func (t *Track) State() State {
	if !t.Enabled() {
		return Stopped
	}
	v := t.primary
	if v.src == nil {
		return Stopped
	}
	return v.state
}

// Position returns the read position of the primary source, one buffering
// window ahead of what is heard.
func (t *Track) Position() int {
	if !t.Enabled() {
		return 0
	}
	return t.primary.position()
}

// SetPosition seeks the primary source to frame.
func (t *Track) SetPosition(frame int) {
	if t.Enabled() {
		t.primary.setPosition(frame)
	}
}

// Loop reports whether the primary restarts when its source runs out.
func (t *Track) Loop() bool {
	return t.Enabled() && t.primary.loop
}

// SetLoop sets whether the primary restarts when its source runs out.
func (t *Track) SetLoop(loop bool) {
	if t.Enabled() {
		t.primary.loop = loop
	}
}

// Volume returns the primary's volume.
func (t *Track) Volume() float32 {
	if !t.Enabled() {
		return 0
	}
	return t.primary.volume
}

// SetVolume sets the primary's volume. Negative values are treated as 0.
func (t *Track) SetVolume(volume float32) {
	if t.Enabled() {
		t.primary.volume = max(0, volume)
	}
}

// Pan returns the primary's pan.
func (t *Track) Pan() float32 {
	if !t.Enabled() {
		return 0
	}
	return t.primary.pan
}

// SetPan sets the primary's pan, clamped to [-1, 1].
func (t *Track) SetPan(pan float32) {
	if t.Enabled() {
		t.primary.pan = dsp.ClampPan(pan)
	}
}

// FadeProgress returns the primary's fade position in [0, 1].
func (t *Track) FadeProgress() float32 {
	if !t.Enabled() {
		return 0
	}
	return t.primary.fadeProgress
}
