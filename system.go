// SPDX-License-Identifier: EPL-2.0

package audiosys

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ik5/audiosys/internal/observe"
)

// Feature selects optional parts of a System at construction.
type Feature uint8

const (
	// SoftClip shapes the mix with a cubic soft clipper before quantizing.
	SoftClip Feature = 1 << iota
	// Music enables the music track.
	Music
	// MusicCrossFade gives the music track a crossfade partner. Implies Music.
	MusicCrossFade
	// Ambience enables the ambience track.
	Ambience
	// AmbienceCrossFade gives the ambience track a crossfade partner.
	// Implies Ambience.
	AmbienceCrossFade
)

// Has reports whether every feature in mask is set.
func (f Feature) Has(mask Feature) bool { return f&mask == mask }

func (f Feature) normalize() Feature {
	if f.Has(MusicCrossFade) {
		f |= Music
	}
	if f.Has(AmbienceCrossFade) {
		f |= Ambience
	}
	return f
}

// Option configures a System.
type Option func(*System)

// WithLogger sets the logger used for pool growth and source close errors.
func WithLogger(log *slog.Logger) Option {
	return func(s *System) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetrics records mixer activity on m instead of discarding it.
func WithMetrics(m *observe.Metrics) Option {
	return func(s *System) {
		if m != nil {
			s.metrics = m
		}
	}
}

const (
	slotMusic = iota
	slotMusicCrossFade
	slotAmbience
	slotAmbienceCrossFade
)

// System is a software mixer. It blends a music track, an ambience track
// and a priority-ordered pool of sound effects into a fixed window of
// interleaved 16-bit stereo frames at SampleRate.
//
// Update and every Play/Stop/Set method belong to one producer goroutine.
// Consume may be called from one other goroutine, typically an audio
// device callback. No other concurrent use is allowed.
type System struct {
	activeVoices int
	window       int
	features     Feature

	primaries [4]voice
	music     Track
	ambience  Track
	pool      pool
	acc       []float32

	master float32
	gain   float32
	paused bool

	pending atomic.Int64

	mu  sync.Mutex
	out []int16
	seq uint64 // windows published, guarded by mu

	advanced int64

	log     *slog.Logger
	metrics *observe.Metrics
	ctx     context.Context
}

// New creates a System that mixes at most activeVoices voices per window
// and buffers bufferedFrames stereo frames ahead in every voice.
func New(activeVoices, bufferedFrames int, features Feature, opts ...Option) (*System, error) {
	if activeVoices <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVoiceCount, activeVoices)
	}
	if bufferedFrames <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBufferSize, bufferedFrames)
	}

	s := &System{
		activeVoices: activeVoices,
		window:       bufferedFrames,
		features:     features.normalize(),
		acc:          make([]float32, 2*bufferedFrames),
		out:          make([]int16, 2*bufferedFrames),
		master:       1,
		gain:         1,
		log:          slog.Default(),
		metrics:      observe.Noop(),
		ctx:          context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.music = s.track(Music, MusicCrossFade, slotMusic)
	s.ambience = s.track(Ambience, AmbienceCrossFade, slotAmbience)
	s.pool = newPool(activeVoices, bufferedFrames, s.log)

	return s, nil
}

// track wires the primary slot at base and, when enabled, its partner.
func (s *System) track(feature, crossFade Feature, base int) Track {
	if !s.features.Has(feature) {
		return Track{}
	}

	s.primaries[base] = newVoice(s.window, s.log)
	var partner *voice
	if s.features.Has(crossFade) {
		s.primaries[base+1] = newVoice(s.window, s.log)
		partner = &s.primaries[base+1]
	}
	return newTrack(&s.primaries[base], partner, s.log)
}

// Music returns the music track. It is disabled unless Music was requested.
func (s *System) Music() *Track { return &s.music }

// Ambience returns the ambience track. It is disabled unless Ambience was
// requested.
func (s *System) Ambience() *Track { return &s.ambience }

// Features returns the features the System was built with.
func (s *System) Features() Feature { return s.features }

// Window returns the buffering window in stereo frames.
func (s *System) Window() int { return s.window }

// ActiveVoices returns how many voices are mixed per window at most.
func (s *System) ActiveVoices() int { return s.activeVoices }

// Update advances every voice by the frames consumed since the previous
// Update, mixes a fresh window and publishes it for Consume.
func (s *System) Update() {
	began := time.Now()

	frames := int(s.pending.Swap(0))
	s.advanced += int64(frames)
	if s.paused {
		s.publish(nil)
		return
	}
	s.music.advance(frames)
	s.ambience.advance(frames)
	for i := range s.pool.live() {
		s.pool.voices[i].advance(frames)
	}

	clear(s.acc)
	s.music.mix(s.acc, s.master)
	s.ambience.mix(s.acc, s.master)

	budget := s.activeVoices - s.music.sourced() - s.ambience.sourced()
	for _, h := range s.pool.byPriority[:max(0, min(budget, s.pool.count))] {
		if v := s.pool.lookup(h); v.audible() {
			v.mix(s.acc, s.master)
		}
	}

	// Reaping after the mix lets a one-shot's final window reach the output.
	reaped := 0
	for i := s.pool.count - 1; i >= 0; i-- {
		if s.pool.voices[i].src == nil {
			s.removeSound(i)
			reaped++
		}
	}

	s.publish(s.acc)

	s.metrics.Updates.Add(s.ctx, 1)
	s.metrics.AdvancedFrames.Add(s.ctx, int64(frames))
	if reaped > 0 {
		s.metrics.ReapedSounds.Add(s.ctx, int64(reaped))
		s.log.Debug("sounds reaped", "count", reaped, "remaining", s.pool.count)
	}
	s.metrics.UpdateDuration.Record(s.ctx, time.Since(began).Seconds())
}

// publish quantizes acc into the output window, or silence when acc is nil.
func (s *System) publish(acc []float32) {
	clipped := 0

	s.mu.Lock()
	if acc == nil {
		clear(s.out)
	} else {
		clipped = quantize(s.out, acc, headroom(s.gain, s.activeVoices), s.features.Has(SoftClip))
	}
	s.seq++
	s.mu.Unlock()

	if clipped > 0 {
		s.metrics.ClippedSamples.Add(s.ctx, int64(clipped))
	}
}

// Consume copies the latest mixed window into out (interleaved stereo) and
// returns the frames written, at most one window. advance is the number of
// frames the caller will have played by the next Update; it accumulates
// until Update picks it up.
func (s *System) Consume(advance int, out []int16) int {
	s.mu.Lock()
	if advance > 0 {
		s.pending.Add(int64(advance))
	}
	frames := min(len(out)/2, s.window)
	copy(out[:2*frames], s.out)
	s.mu.Unlock()

	if frames > 0 {
		s.metrics.ConsumedFrames.Add(s.ctx, int64(frames))
	}
	return frames
}

// Pending returns the frames queued for the next Update.
func (s *System) Pending() int { return int(s.pending.Load()) }

// Advanced returns the total frames Update has picked up from Consume,
// counting frames dropped while paused. Producer side only.
func (s *System) Advanced() int64 { return s.advanced }

// SetMasterVolume scales every voice. Negative values are treated as 0.
func (s *System) SetMasterVolume(volume float32) { s.master = max(0, volume) }

// MasterVolume returns the master volume.
func (s *System) MasterVolume() float32 { return s.master }

// SetGain sets the output gain applied with the voice-count headroom before
// clipping. Negative values are treated as 0.
func (s *System) SetGain(gain float32) { s.gain = max(0, gain) }

// Gain returns the output gain.
func (s *System) Gain() float32 { return s.gain }

// Pause freezes every voice and publishes silence until Resume. Frames
// consumed while paused are dropped.
func (s *System) Pause() { s.paused = true }

// Resume ends a Pause.
func (s *System) Resume() { s.paused = false }

// Paused reports whether the System is paused.
func (s *System) Paused() bool { return s.paused }

// StopAll silences both tracks and removes every sound effect at once.
func (s *System) StopAll() {
	s.music.Stop(0)
	s.ambience.Stop(0)
	for i := s.pool.count - 1; i >= 0; i-- {
		s.removeSound(i)
	}
}

// Close releases every source the System still owns: music, its partner,
// ambience, its partner, then the sound effects.
func (s *System) Close() error {
	s.music.close()
	s.ambience.close()
	for i := s.pool.count - 1; i >= 0; i-- {
		s.removeSound(i)
	}
	return nil
}
