// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config loads the epg365 run configuration from defaults, an
// optional YAML file and EPG365_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ManuGH/epg365/internal/catalog"
	platformnet "github.com/ManuGH/epg365/internal/platform/net"
	"github.com/ManuGH/epg365/internal/provider"
)

const (
	DefaultDays              = 7
	MaxDays                  = 31
	DefaultFallbackURL       = "http://www.google.com"
	DefaultUTCOffset         = "+0200"
	DefaultHTTPTimeout       = 20 * time.Second
	DefaultRequestsPerSecond = 8.0
	DefaultLogLevel          = "info"
	DefaultCacheDirName      = ".epg365-cache"
)

var offsetPattern = regexp.MustCompile(`^[+-]\d{4}$`)

// Config is the complete run configuration. CLI flags are applied by the
// caller after Load.
type Config struct {
	Days              int           `yaml:"days"`
	Output            string        `yaml:"output"`
	CacheDir          string        `yaml:"cache_dir"`
	BaseURL           string        `yaml:"base_url"`
	Locale            string        `yaml:"locale"`
	FallbackURL       string        `yaml:"fallback_url"`
	Groups            []string      `yaml:"groups"`
	UTCOffset         string        `yaml:"utc_offset"`
	GeneratorURL      string        `yaml:"generator_url"`
	HTTPTimeout       time.Duration `yaml:"http_timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	LogLevel          string        `yaml:"log_level"`
	MetricsFile       string        `yaml:"metrics_file"`
}

// Default returns the built-in configuration. CacheDir is resolved against
// the user's home directory when it is known.
func Default() Config {
	cacheDir := DefaultCacheDirName
	if home, err := os.UserHomeDir(); err == nil {
		cacheDir = filepath.Join(home, DefaultCacheDirName)
	}
	return Config{
		Days:              DefaultDays,
		CacheDir:          cacheDir,
		BaseURL:           provider.DefaultBaseURL,
		Locale:            provider.DefaultLocale,
		FallbackURL:       DefaultFallbackURL,
		Groups:            append([]string(nil), catalog.DefaultGroups...),
		UTCOffset:         DefaultUTCOffset,
		HTTPTimeout:       DefaultHTTPTimeout,
		RequestsPerSecond: DefaultRequestsPerSecond,
		LogLevel:          DefaultLogLevel,
	}
}

// Load returns Default overlaid with the YAML file at path (if path is not
// empty) and then with EPG365_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := mergeFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		if strings.Contains(err.Error(), "not found in type") {
			return fmt.Errorf("%w: %w", ErrUnknownConfigField, err)
		}
		return fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("config file contains multiple documents or trailing content")
	}
	return nil
}

// Validate checks value ranges. It does not touch the filesystem; output and
// cache directory existence is checked by the command before any request.
func (c Config) Validate() error {
	var errs []error
	if c.Days < 1 || c.Days > MaxDays {
		errs = append(errs, fmt.Errorf("days must be between 1 and %d, got %d", MaxDays, c.Days))
	}
	if strings.TrimSpace(c.CacheDir) == "" {
		errs = append(errs, errors.New("cache_dir is empty"))
	}
	if err := validateHTTPURL("base_url", c.BaseURL); err != nil {
		errs = append(errs, err)
	}
	if c.FallbackURL != "" {
		if err := validateHTTPURL("fallback_url", c.FallbackURL); err != nil {
			errs = append(errs, err)
		}
	}
	if strings.TrimSpace(c.Locale) == "" {
		errs = append(errs, errors.New("locale is empty"))
	}
	if len(c.Groups) == 0 {
		errs = append(errs, errors.New("groups is empty"))
	}
	if !offsetPattern.MatchString(c.UTCOffset) {
		errs = append(errs, fmt.Errorf("utc_offset %q must look like +0200", c.UTCOffset))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, fmt.Errorf("http_timeout must be positive, got %s", c.HTTPTimeout))
	}
	if c.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("requests_per_second must not be negative, got %g", c.RequestsPerSecond))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

func validateHTTPURL(field, raw string) error {
	if _, err := platformnet.ParseHTTPURL(raw); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	return nil
}
