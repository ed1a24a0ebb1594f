// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path on top of Default and
// validates the result.
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

// LoadFromReader decodes YAML from r on top of Default and validates the
// result. Unknown keys are rejected. An empty document yields the defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values. It returns a
// joined error listing every failure found.
func Validate(cfg *Config) error {
	var errs []error

	if !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	if err := cfg.Pipeline.Params().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("pipeline: %w", err))
	}
	if cfg.Pipeline.SequenceMs < 0 {
		errs = append(errs, fmt.Errorf("pipeline.sequence_ms must not be negative, got %d", cfg.Pipeline.SequenceMs))
	}
	if cfg.Pipeline.SeekWindowMs < 0 {
		errs = append(errs, fmt.Errorf("pipeline.seek_window_ms must not be negative, got %d", cfg.Pipeline.SeekWindowMs))
	}
	if cfg.Pipeline.OverlapMs < 0 {
		errs = append(errs, fmt.Errorf("pipeline.overlap_ms must not be negative, got %d", cfg.Pipeline.OverlapMs))
	}

	if cfg.Playback.SampleRate < 0 {
		errs = append(errs, fmt.Errorf("playback.sample_rate must not be negative, got %d", cfg.Playback.SampleRate))
	}
	if cfg.Playback.PeriodMs <= 0 {
		errs = append(errs, fmt.Errorf("playback.period_ms must be positive, got %d", cfg.Playback.PeriodMs))
	}
	if cfg.Playback.InboxSize <= 0 {
		errs = append(errs, fmt.Errorf("playback.inbox_size must be positive, got %d", cfg.Playback.InboxSize))
	}

	if cfg.Render.Workers <= 0 {
		errs = append(errs, fmt.Errorf("render.workers must be positive, got %d", cfg.Render.Workers))
	}
	switch cfg.Render.BitDepth {
	case 16, 24, 32:
	default:
		errs = append(errs, fmt.Errorf("render.bit_depth must be 16, 24 or 32, got %d", cfg.Render.BitDepth))
	}

	return errors.Join(errs...)
}
