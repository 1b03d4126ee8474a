// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ManuGH/epg365/internal/log"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "EPG365_"

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overlays EPG365_* variables on cfg. Empty variables are ignored;
// malformed numbers and durations are errors.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	logger := log.WithComponent("config")
	e := envReader{lookup: lookup, logger: logger}

	e.str("OUTPUT", &cfg.Output)
	e.str("CACHE_DIR", &cfg.CacheDir)
	e.str("BASE_URL", &cfg.BaseURL)
	e.str("LOCALE", &cfg.Locale)
	e.str("UTC_OFFSET", &cfg.UTCOffset)
	e.str("GENERATOR_URL", &cfg.GeneratorURL)
	e.str("LOG_LEVEL", &cfg.LogLevel)
	e.str("METRICS_FILE", &cfg.MetricsFile)
	e.list("GROUPS", &cfg.Groups)
	e.integer("DAYS", &cfg.Days)
	e.duration("HTTP_TIMEOUT", &cfg.HTTPTimeout)
	e.float("REQUESTS_PER_SECOND", &cfg.RequestsPerSecond)

	// present but empty disables the fallback
	if v, ok := lookup(EnvPrefix + "FALLBACK_URL"); ok {
		cfg.FallbackURL = strings.TrimSpace(v)
		e.used("FALLBACK_URL", cfg.FallbackURL)
	}
	return e.err
}

type envReader struct {
	lookup LookupFunc
	logger zerolog.Logger
	err    error
}

func (e *envReader) get(name string) (string, bool) {
	v, ok := e.lookup(EnvPrefix + name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	if v == "" {
		e.logger.Debug().
			Str("key", EnvPrefix+name).
			Str("source", "default").
			Msg("ignoring empty environment variable")
		return "", false
	}
	return v, true
}

func (e *envReader) used(name, value string) {
	e.logger.Debug().
		Str("key", EnvPrefix+name).
		Str("value", value).
		Str("source", "environment").
		Msg("using environment variable")
}

func (e *envReader) fail(name, value string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("%w: %s%s=%q: %w", ErrInvalid, EnvPrefix, name, value, err)
	}
}

func (e *envReader) str(name string, dst *string) {
	if v, ok := e.get(name); ok {
		*dst = v
		e.used(name, v)
	}
}

func (e *envReader) list(name string, dst *[]string) {
	v, ok := e.get(name)
	if !ok {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*dst = out
	e.used(name, v)
}

func (e *envReader) integer(name string, dst *int) {
	v, ok := e.get(name)
	if !ok {
		return
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		e.fail(name, v, err)
		return
	}
	*dst = i
	e.used(name, v)
}

func (e *envReader) float(name string, dst *float64) {
	v, ok := e.get(name)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(name, v, err)
		return
	}
	*dst = f
	e.used(name, v)
}

func (e *envReader) duration(name string, dst *time.Duration) {
	v, ok := e.get(name)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(name, v, err)
		return
	}
	*dst = d
	e.used(name, v)
}
