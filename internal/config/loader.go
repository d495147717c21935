// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

const (
	defaultVoices = 16
	defaultWindow = 4096
)

// Load reads the YAML configuration file at path and returns a validated
// [Config]. Relative sound paths are kept as written.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, fills defaults and validates
// the result.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}

	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = LogInfo
	}
	if cfg.Mixer.Voices == 0 {
		cfg.Mixer.Voices = defaultVoices
	}
	if cfg.Mixer.Window == 0 {
		cfg.Mixer.Window = defaultWindow
	}
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	// Mixer
	if cfg.Mixer.Voices < 0 {
		errs = append(errs, fmt.Errorf("mixer.voices %d must be positive", cfg.Mixer.Voices))
	}
	if cfg.Mixer.Window < 0 {
		errs = append(errs, fmt.Errorf("mixer.window %d must be positive", cfg.Mixer.Window))
	}
	if g := cfg.Mixer.Gain; g != nil && *g < 0 {
		errs = append(errs, fmt.Errorf("mixer.gain %.2f must not be negative", *g))
	}
	if v := cfg.Mixer.MasterVolume; v != nil && *v < 0 {
		errs = append(errs, fmt.Errorf("mixer.master_volume %.2f must not be negative", *v))
	}

	// Output
	if cfg.Output.Duration < 0 {
		errs = append(errs, fmt.Errorf("output.duration %v must not be negative", cfg.Output.Duration))
	}
	if cfg.Output.DeviceBuffer < 0 {
		errs = append(errs, fmt.Errorf("output.device_buffer %v must not be negative", cfg.Output.DeviceBuffer))
	}

	// Sounds
	for _, name := range slices.Sorted(maps.Keys(cfg.Sounds)) {
		snd := cfg.Sounds[name]
		prefix := fmt.Sprintf("sounds.%s", name)
		switch {
		case snd.Path == "" && snd.Tone == 0:
			errs = append(errs, fmt.Errorf("%s needs a path or a tone", prefix))
		case snd.Path != "" && snd.Tone != 0:
			errs = append(errs, fmt.Errorf("%s sets both path and tone", prefix))
		case snd.Tone < 0 || snd.Tone >= 22050:
			errs = append(errs, fmt.Errorf("%s.tone %.1f is out of range (0, 22050)", prefix, snd.Tone))
		}
		if snd.Length < 0 {
			errs = append(errs, fmt.Errorf("%s.length %v must not be negative", prefix, snd.Length))
		}
		if snd.Tone != 0 && snd.Stream {
			slog.Warn("stream has no effect on a tone", "sound", name)
		}
	}

	// Events
	ids := make(map[string]int)
	for i, ev := range cfg.Events {
		prefix := fmt.Sprintf("events[%d]", i)
		if !slices.Contains(actions, ev.Action) {
			errs = append(errs, fmt.Errorf("%s.action %q is unknown", prefix, ev.Action))
			continue
		}
		if ev.At < 0 {
			errs = append(errs, fmt.Errorf("%s.at %v must not be negative", prefix, ev.At))
		}
		if ev.Action.NeedsSound() {
			if ev.Sound == "" {
				errs = append(errs, fmt.Errorf("%s: %s requires a sound", prefix, ev.Action))
			} else if _, ok := cfg.Sounds[ev.Sound]; !ok {
				errs = append(errs, fmt.Errorf("%s.sound %q is not defined in sounds", prefix, ev.Sound))
			}
		}
		if ev.Fade < 0 || ev.FadeOut < 0 {
			errs = append(errs, fmt.Errorf("%s: fades must not be negative", prefix))
		}
		if ev.Pan < -1 || ev.Pan > 1 {
			errs = append(errs, fmt.Errorf("%s.pan %.2f is out of range [-1, 1]", prefix, ev.Pan))
		}
		if ev.Volume != nil && *ev.Volume < 0 {
			errs = append(errs, fmt.Errorf("%s.volume %.2f must not be negative", prefix, *ev.Volume))
		}

		switch ev.Action {
		case SoundPlay:
			if ev.ID == "" {
				break
			}
			if prev, ok := ids[ev.ID]; ok {
				errs = append(errs, fmt.Errorf("%s.id %q is a duplicate of events[%d]", prefix, ev.ID, prev))
			}
			ids[ev.ID] = i
		case SoundStop:
			if ev.ID == "" {
				errs = append(errs, fmt.Errorf("%s: sound.stop requires an id", prefix))
			}
		case MusicPlay, MusicStop, MusicSwitch, MusicCrossFade:
			if !cfg.Mixer.Music && !cfg.Mixer.MusicCrossFade {
				slog.Warn("music event in a scene without a music track", "event", i, "action", ev.Action)
			}
		case AmbiencePlay, AmbienceStop, AmbienceSwitch, AmbienceCrossFade:
			if !cfg.Mixer.Ambience && !cfg.Mixer.AmbienceCrossFade {
				slog.Warn("ambience event in a scene without an ambience track", "event", i, "action", ev.Action)
			}
		}
	}

	// sound.stop may only refer to ids declared by some sound.play.
	for i, ev := range cfg.Events {
		if ev.Action != SoundStop || ev.ID == "" {
			continue
		}
		if _, ok := ids[ev.ID]; !ok {
			errs = append(errs, fmt.Errorf("events[%d].id %q does not match any sound.play", i, ev.ID))
		}
	}

	return errors.Join(errs...)
}
