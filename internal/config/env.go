// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix starts every environment override.
const EnvPrefix = "AUDTEMPO_"

// LookupFunc finds an environment value; os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables already set. Missing files are
// skipped.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load %q: %w", f, err)
		}
	}
	return nil
}

// MapLookup adapts a map, such as one returned by godotenv.Unmarshal, to a
// LookupFunc.
func MapLookup(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// ApplyEnv overrides cfg with AUDTEMPO_* variables found through lookup and
// validates the result.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	var errs []error

	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	float := func(name string, dst *float64) {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
			return
		}
		*dst = f
	}
	integer := func(name string, dst *int) {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
			return
		}
		*dst = n
	}

	level := string(cfg.LogLevel)
	str("LOG_LEVEL", &level)
	cfg.LogLevel = LogLevel(level)

	float("TEMPO", &cfg.Pipeline.Tempo)
	float("RATE", &cfg.Pipeline.Rate)
	float("PITCH", &cfg.Pipeline.PitchSemitones)
	integer("SAMPLE_RATE", &cfg.Playback.SampleRate)
	integer("RENDER_WORKERS", &cfg.Render.Workers)
	str("METRICS_ADDR", &cfg.Metrics.ListenAddr)

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return Validate(cfg)
}
