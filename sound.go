// SPDX-License-Identifier: EPL-2.0

package audiosys

import (
	"github.com/ik5/audiosys/internal/dsp"
)

// PlaySound starts src as a sound effect and returns its handle. Higher
// priorities win when more sounds play than the voice budget allows; the
// rest keep advancing silently. A nil src returns the zero handle.
func (s *System) PlaySound(src Source, priority, fadeIn float32) SoundHandle {
	if src == nil {
		return 0
	}

	v, grew := s.pool.add(src, priority, fadeIn)
	if grew {
		s.metrics.PoolGrowths.Add(s.ctx, 1)
	}
	s.metrics.ActiveSounds.Add(s.ctx, 1)

	return v.handle
}

// StopSound fades the sound out over fadeOut seconds. With no fade the
// sound is removed at once and h stops resolving.
func (s *System) StopSound(h SoundHandle, fadeOut float32) {
	index := s.pool.handles.indexOf(h)
	if index < 0 || index >= s.pool.count {
		return
	}

	v := &s.pool.voices[index]
	v.stop(fadeOut)
	if v.state == Stopped {
		s.removeSound(index)
	}
}

func (s *System) removeSound(index int) {
	s.pool.remove(index)
	s.metrics.ActiveSounds.Add(s.ctx, -1)
}

// PauseSound freezes the sound where it is.
func (s *System) PauseSound(h SoundHandle) {
	if v := s.pool.lookup(h); v != nil {
		v.paused = true
	}
}

// ResumeSound continues a paused sound.
func (s *System) ResumeSound(h SoundHandle) {
	if v := s.pool.lookup(h); v != nil {
		v.paused = false
	}
}

// SoundPaused reports whether the sound is paused.
func (s *System) SoundPaused(h SoundHandle) bool {
	if v := s.pool.lookup(h); v != nil {
		return v.paused
	}
	return false
}

// SoundValid reports whether h still refers to a live sound.
func (s *System) SoundValid(h SoundHandle) bool {
	return s.pool.lookup(h) != nil
}

// SoundState returns the sound's playback state, Stopped for a stale handle.
func (s *System) SoundState(h SoundHandle) State {
	if v := s.pool.lookup(h); v != nil {
		return v.state
	}
	return Stopped
}

// SoundPosition returns the read position of the sound's source, which runs
// one buffering window ahead of what is being heard. It is zero for sources
// that cannot report it.
func (s *System) SoundPosition(h SoundHandle) int {
	if v := s.pool.lookup(h); v != nil {
		return v.position()
	}
	return 0
}

// SetSoundPosition moves the sound's source to frame. The cache is refilled
// from there on the next Update.
func (s *System) SetSoundPosition(h SoundHandle, frame int) {
	if v := s.pool.lookup(h); v != nil {
		v.setPosition(frame)
	}
}

// SoundLoop reports whether the sound restarts when its source runs out.
func (s *System) SoundLoop(h SoundHandle) bool {
	if v := s.pool.lookup(h); v != nil {
		return v.loop
	}
	return false
}

// SetSoundLoop sets whether the sound restarts when its source runs out.
// Sources that do not implement Restarter play once regardless.
func (s *System) SetSoundLoop(h SoundHandle, loop bool) {
	if v := s.pool.lookup(h); v != nil {
		v.loop = loop
	}
}

// SoundVolume returns the sound's volume.
func (s *System) SoundVolume(h SoundHandle) float32 {
	if v := s.pool.lookup(h); v != nil {
		return v.volume
	}
	return 0
}

// SetSoundVolume sets the sound's volume. Negative values are treated as 0.
func (s *System) SetSoundVolume(h SoundHandle, volume float32) {
	if v := s.pool.lookup(h); v != nil {
		v.volume = max(0, volume)
	}
}

// SoundPan returns the sound's pan in [-1, 1].
func (s *System) SoundPan(h SoundHandle) float32 {
	if v := s.pool.lookup(h); v != nil {
		return v.pan
	}
	return 0
}

// SetSoundPan sets the sound's pan, clamped to [-1, 1].
func (s *System) SetSoundPan(h SoundHandle, pan float32) {
	if v := s.pool.lookup(h); v != nil {
		v.pan = dsp.ClampPan(pan)
	}
}

// SoundCount returns how many sound effects are live, audible or not.
func (s *System) SoundCount() int {
	return s.pool.count
}
