// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 7, cfg.Days)
	assert.Equal(t, []string{"Slovenské", "České", "Ostatní"}, cfg.Groups)
	assert.Equal(t, "+0200", cfg.UTCOffset)
	assert.Equal(t, DefaultFallbackURL, cfg.FallbackURL)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, "epg365.yaml", `
days: 3
output: /srv/epg/guide.xml
groups: [České]
utc_offset: "+0100"
http_timeout: 5s
requests_per_second: 2.5
fallback_url: ""
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Days)
	assert.Equal(t, "/srv/epg/guide.xml", cfg.Output)
	assert.Equal(t, []string{"České"}, cfg.Groups)
	assert.Equal(t, "+0100", cfg.UTCOffset)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.InEpsilon(t, 2.5, cfg.RequestsPerSecond, 1e-9)
	assert.Empty(t, cfg.FallbackURL)
	// untouched keys keep their defaults
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, "empty.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultDays, cfg.Days)
}

func TestLoad_RejectsUnknownField(t *testing.T) {
	_, err := Load(writeConfig(t, "epg365.yaml", "dayz: 3\n"))
	require.ErrorIs(t, err, ErrUnknownConfigField)
}

func TestLoad_RejectsMultipleDocuments(t *testing.T) {
	_, err := Load(writeConfig(t, "epg365.yaml", "days: 3\n---\ndays: 4\n"))
	require.Error(t, err)
}

func TestLoad_RejectsNonYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "epg365.toml", "days = 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only YAML supported")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"EPG365_DAYS":                "2",
		"EPG365_GROUPS":              "České, Ostatní,",
		"EPG365_HTTP_TIMEOUT":        "3s",
		"EPG365_REQUESTS_PER_SECOND": "0",
		"EPG365_LOCALE":              "  ",
		"EPG365_FALLBACK_URL":        "",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, ApplyEnv(&cfg, lookup))

	assert.Equal(t, 2, cfg.Days)
	assert.Equal(t, []string{"České", "Ostatní"}, cfg.Groups)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Zero(t, cfg.RequestsPerSecond)
	assert.Equal(t, "cz", cfg.Locale, "blank value keeps default")
	assert.Empty(t, cfg.FallbackURL, "empty fallback disables it")
}

func TestApplyEnv_Malformed(t *testing.T) {
	lookup := func(key string) (string, bool) {
		if key == "EPG365_DAYS" {
			return "seven", true
		}
		return "", false
	}
	cfg := Default()
	err := ApplyEnv(&cfg, lookup)
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "EPG365_DAYS")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero days", func(c *Config) { c.Days = 0 }, "days must be between"},
		{"too many days", func(c *Config) { c.Days = MaxDays + 1 }, "days must be between"},
		{"bad base url", func(c *Config) { c.BaseURL = "ftp://example.org/" }, "base_url"},
		{"bad fallback", func(c *Config) { c.FallbackURL = "http://" }, "fallback_url"},
		{"no groups", func(c *Config) { c.Groups = nil }, "groups is empty"},
		{"bad offset", func(c *Config) { c.UTCOffset = "CET" }, "utc_offset"},
		{"no timeout", func(c *Config) { c.HTTPTimeout = 0 }, "http_timeout"},
		{"negative rate", func(c *Config) { c.RequestsPerSecond = -1 }, "requests_per_second"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
