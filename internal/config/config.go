// SPDX-License-Identifier: EPL-2.0

// Package config holds the audtempo command configuration.
package config

import (
	"log/slog"
	"math"
	"time"

	"github.com/ik5/audtempo/soundtouch"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// SlogLevel maps l to a slog level. Unknown values map to info.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config is the top-level configuration file.
type Config struct {
	LogLevel LogLevel       `yaml:"log_level"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Playback PlaybackConfig `yaml:"playback"`
	Render   RenderConfig   `yaml:"render"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// PipelineConfig sets the initial processing parameters and the stretcher
// sequencing. Zero sequence and seek window lengths select automatic
// values.
type PipelineConfig struct {
	Tempo          float64 `yaml:"tempo"`
	Rate           float64 `yaml:"rate"`
	PitchSemitones float64 `yaml:"pitch_semitones"`
	SequenceMs     int     `yaml:"sequence_ms"`
	SeekWindowMs   int     `yaml:"seek_window_ms"`
	OverlapMs      int     `yaml:"overlap_ms"`
	QuickSeek      bool    `yaml:"quick_seek"`
}

// Params returns the parameter snapshot the pipeline starts with.
func (p PipelineConfig) Params() soundtouch.Params {
	return soundtouch.Params{
		Tempo: p.Tempo,
		Rate:  p.Rate,
		Pitch: math.Exp2(p.PitchSemitones / 12),
	}
}

// StretchOptions returns stretcher options for audio at sampleRate.
func (p PipelineConfig) StretchOptions(sampleRate int) soundtouch.StretchOptions {
	return soundtouch.StretchOptions{
		SampleRate:   sampleRate,
		SequenceMs:   p.SequenceMs,
		SeekWindowMs: p.SeekWindowMs,
		OverlapMs:    p.OverlapMs,
		QuickSeek:    p.QuickSeek,
	}
}

// PlaybackConfig configures the output device.
type PlaybackConfig struct {
	// SampleRate of the device; 0 plays at the file's rate.
	SampleRate int `yaml:"sample_rate"`

	// PeriodMs is the device callback period.
	PeriodMs int `yaml:"period_ms"`

	// InboxSize bounds queued load and seek messages.
	InboxSize int `yaml:"inbox_size"`
}

// Period returns PeriodMs as a duration.
func (p PlaybackConfig) Period() time.Duration {
	return time.Duration(p.PeriodMs) * time.Millisecond
}

// RenderConfig configures offline rendering.
type RenderConfig struct {
	Workers  int `yaml:"workers"`
	BitDepth int `yaml:"bit_depth"`
}

// MetricsConfig configures the Prometheus endpoint. An empty ListenAddr
// disables it.
type MetricsConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: LogInfo,
		Pipeline: PipelineConfig{
			Tempo:     1,
			Rate:      1,
			OverlapMs: soundtouch.DefaultOverlapMs,
			QuickSeek: true,
		},
		Playback: PlaybackConfig{
			PeriodMs:  10,
			InboxSize: 16,
		},
		Render: RenderConfig{
			Workers:  4,
			BitDepth: 16,
		},
	}
}
