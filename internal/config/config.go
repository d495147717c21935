// SPDX-License-Identifier: EPL-2.0

// Package config defines the YAML configuration of the scene player.
//
// A configuration names the mixer settings, the output, the sounds a scene
// may use and the timeline of events that drives them:
//
//	log_level: info
//	mixer:
//	  voices: 16
//	  window: 4096
//	  soft_clip: true
//	  music: true
//	  music_crossfade: true
//	output:
//	  duration: 30s
//	sounds:
//	  theme: {path: music/theme.ogg, stream: true, loop: true}
//	  boom: {path: sfx/boom.wav}
//	  beep: {tone: 880, length: 200ms}
//	events:
//	  - {at: 0s, action: music.play, sound: theme, fade: 2s}
//	  - {at: 5s, action: sound.play, sound: boom, priority: 3, pan: -0.5}
package config

import "time"

// LogLevel is the minimum level the player logs at.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a known level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Action names a scene event.
type Action string

const (
	MusicPlay         Action = "music.play"
	MusicStop         Action = "music.stop"
	MusicSwitch       Action = "music.switch"
	MusicCrossFade    Action = "music.crossfade"
	AmbiencePlay      Action = "ambience.play"
	AmbienceStop      Action = "ambience.stop"
	AmbienceSwitch    Action = "ambience.switch"
	AmbienceCrossFade Action = "ambience.crossfade"
	SoundPlay         Action = "sound.play"
	SoundStop         Action = "sound.stop"
	SoundStopAll      Action = "sound.stop_all"
	MasterVolume      Action = "master_volume"
	Pause             Action = "pause"
	Resume            Action = "resume"
)

var actions = []Action{
	MusicPlay, MusicStop, MusicSwitch, MusicCrossFade,
	AmbiencePlay, AmbienceStop, AmbienceSwitch, AmbienceCrossFade,
	SoundPlay, SoundStop, SoundStopAll, MasterVolume, Pause, Resume,
}

// NeedsSound reports whether the action starts a new source.
func (a Action) NeedsSound() bool {
	switch a {
	case MusicPlay, MusicSwitch, MusicCrossFade,
		AmbiencePlay, AmbienceSwitch, AmbienceCrossFade, SoundPlay:
		return true
	}
	return false
}

// Config is the root of a scene file.
type Config struct {
	LogLevel LogLevel         `yaml:"log_level"`
	Mixer    MixerConfig      `yaml:"mixer"`
	Output   OutputConfig     `yaml:"output"`
	Metrics  MetricsConfig    `yaml:"metrics"`
	Sounds   map[string]Sound `yaml:"sounds"`
	Events   []Event          `yaml:"events"`
}

// MixerConfig maps to audiosys.New and its global settings.
type MixerConfig struct {
	// Voices is the number of voices mixed per window. Default: 16.
	Voices int `yaml:"voices"`
	// Window is the number of frames buffered ahead. Default: 4096.
	Window int `yaml:"window"`

	SoftClip          bool `yaml:"soft_clip"`
	Music             bool `yaml:"music"`
	MusicCrossFade    bool `yaml:"music_crossfade"`
	Ambience          bool `yaml:"ambience"`
	AmbienceCrossFade bool `yaml:"ambience_crossfade"`

	// Gain and MasterVolume default to 1 when unset.
	Gain         *float64 `yaml:"gain"`
	MasterVolume *float64 `yaml:"master_volume"`
}

// OutputConfig selects where the mix goes.
type OutputConfig struct {
	// Render writes the mix to this WAV file instead of the audio device.
	Render string `yaml:"render"`
	// Duration is how long the scene runs. Zero runs until the last event
	// has fired and every voice has finished.
	Duration time.Duration `yaml:"duration"`
	// DeviceBuffer is the playback buffer requested from the audio device.
	DeviceBuffer time.Duration `yaml:"device_buffer"`
}

// MetricsConfig enables the Prometheus endpoint.
type MetricsConfig struct {
	// Listen is the address /metrics is served on. Empty disables it.
	Listen string `yaml:"listen"`
}

// Sound describes one source the scene can play. Exactly one of Path and
// Tone is set.
type Sound struct {
	Path string `yaml:"path"`
	// Stream decodes the file while it plays instead of loading it whole.
	Stream bool `yaml:"stream"`

	// Tone is the frequency of a generated sine wave in Hz.
	Tone float64 `yaml:"tone"`
	// Length limits a tone. Zero plays it forever.
	Length time.Duration `yaml:"length"`

	Loop bool `yaml:"loop"`
}

// Event is one step of the scene timeline.
type Event struct {
	At     time.Duration `yaml:"at"`
	Action Action        `yaml:"action"`
	Sound  string        `yaml:"sound"`

	// ID names a sound.play so that a later sound.stop can refer to it.
	ID string `yaml:"id"`

	Fade     time.Duration `yaml:"fade"`
	FadeOut  time.Duration `yaml:"fade_out"`
	Priority float64       `yaml:"priority"`
	Volume   *float64      `yaml:"volume"`
	Pan      float64       `yaml:"pan"`
	Value    float64       `yaml:"value"`
}
