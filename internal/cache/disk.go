// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package cache provides the key-addressed disk cache that fronts every
// provider fetch.
package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/renameio/v2"
	"golang.org/x/sync/singleflight"

	xglog "github.com/ManuGH/epg365/internal/log"
	"github.com/ManuGH/epg365/internal/metrics"
	"github.com/ManuGH/epg365/internal/provider"
)

const lockFileName = ".epg365.lock"

// Fetcher retrieves a document from the network.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Options configures a Disk cache.
type Options struct {
	Root    string
	Fetcher Fetcher
	// FallbackURL is fetched instead when the provider answers with a non-2xx
	// status; its body is stored under the originally requested key.
	// Empty disables the fallback.
	FallbackURL string
	Metrics     *metrics.Guide
}

// Disk is a flat directory of documents, one file per key. An existing file
// is always served without network access; entries only disappear through Clean.
type Disk struct {
	root        string
	fetcher     Fetcher
	fallbackURL string
	metrics     *metrics.Guide

	group singleflight.Group
	lock  *flock.Flock
}

// NewDisk returns a cache rooted at an existing directory.
func NewDisk(opts Options) (*Disk, error) {
	if opts.Fetcher == nil {
		return nil, errors.New("cache: fetcher is required")
	}
	info, err := os.Stat(opts.Root)
	if err != nil {
		return nil, &IOError{Op: "stat", Path: opts.Root, Err: err}
	}
	if !info.IsDir() {
		return nil, &IOError{Op: "stat", Path: opts.Root, Err: errors.New("not a directory")}
	}
	return &Disk{
		root:        opts.Root,
		fetcher:     opts.Fetcher,
		fallbackURL: opts.FallbackURL,
		metrics:     opts.Metrics,
		lock:        flock.New(filepath.Join(opts.Root, lockFileName)),
	}, nil
}

// Root returns the cache directory.
func (d *Disk) Root() string { return d.root }

// Path returns the file backing key.
func (d *Disk) Path(key string) string { return filepath.Join(d.root, key) }

// Lock takes an exclusive advisory lock on the cache directory for the
// duration of a run.
func (d *Disk) Lock() error {
	ok, err := d.lock.TryLock()
	if err != nil {
		return &IOError{Op: "lock", Path: d.lock.Path(), Err: err}
	}
	if !ok {
		return ErrLocked
	}
	return nil
}

// Unlock releases the directory lock.
func (d *Disk) Unlock() error {
	if err := d.lock.Unlock(); err != nil {
		return &IOError{Op: "unlock", Path: d.lock.Path(), Err: err}
	}
	return nil
}

// Get returns the document cached under key, fetching url on a miss.
// Concurrent calls for the same key share one fetch.
func (d *Disk) Get(ctx context.Context, url, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	v, err, _ := d.group.Do(key, func() (any, error) {
		return d.get(ctx, url, key)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (d *Disk) get(ctx context.Context, url, key string) ([]byte, error) {
	path := d.Path(key)
	data, err := os.ReadFile(path) // #nosec G304 -- key is validated to a plain file name
	if err == nil {
		d.metrics.CacheHit()
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	logger := xglog.WithComponentFromContext(ctx, "cache")
	data, err = d.fetcher.Fetch(ctx, url)
	if err != nil {
		var statusErr *provider.StatusError
		if !errors.As(err, &statusErr) || d.fallbackURL == "" {
			return nil, fmt.Errorf("fetch %s: %w", key, err)
		}
		logger.Warn().
			Err(err).
			Str(xglog.FieldEvent, "cache.fallback").
			Str(xglog.FieldKey, key).
			Int(xglog.FieldStatus, statusErr.Status).
			Str(xglog.FieldURL, d.fallbackURL).
			Msg("provider returned an error status, caching placeholder document")
		d.metrics.CacheFallback()
		data, err = d.fetcher.Fetch(ctx, d.fallbackURL)
		if err != nil {
			return nil, fmt.Errorf("fetch %s via fallback: %w", key, err)
		}
	}

	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return nil, &IOError{Op: "write", Path: path, Err: err}
	}
	d.metrics.CacheMiss()
	logger.Debug().
		Str(xglog.FieldEvent, "cache.store").
		Str(xglog.FieldKey, key).
		Int(xglog.FieldBytes, len(data)).
		Msg("cached document")
	return data, nil
}

// CleanStats summarises a Clean pass.
type CleanStats struct {
	Scanned int // entries matching *-*
	Removed int
	Kept    int // same-day, future or without a parseable date
}

// Clean deletes date-keyed entries whose embedded day is strictly before the
// calendar day of now. Keys look like <id>-<YYYYMMDD>.xml or
// <id>-<YYYYMMDDhhmmss>.xml; anything else matching *-* is left untouched.
func (d *Disk) Clean(ctx context.Context, now time.Time) (CleanStats, error) {
	var stats CleanStats
	matches, err := filepath.Glob(filepath.Join(d.root, "*-*"))
	if err != nil {
		return stats, &IOError{Op: "scan", Path: d.root, Err: err}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	logger := xglog.WithComponentFromContext(ctx, "cache")
	for _, path := range matches {
		info, err := os.Lstat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		stats.Scanned++

		day, ok := KeyDate(filepath.Base(path), now.Location())
		if !ok || !day.Before(today) {
			stats.Kept++
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return stats, &IOError{Op: "remove", Path: path, Err: err}
		}
		stats.Removed++
	}

	d.metrics.CacheEvictions(stats.Removed)
	logger.Info().
		Str(xglog.FieldEvent, "cache.clean").
		Int("scanned", stats.Scanned).
		Int("removed", stats.Removed).
		Msg("expired cache entries removed")
	return stats, nil
}

// KeyDate extracts the day embedded in a date-keyed cache key: the digits after
// the last '-' (ignoring a .xml extension), of which the first eight are YYYYMMDD.
func KeyDate(key string, loc *time.Location) (time.Time, bool) {
	stem := strings.TrimSuffix(key, ".xml")
	i := strings.LastIndexByte(stem, '-')
	if i < 0 {
		return time.Time{}, false
	}
	suffix := stem[i+1:]
	if len(suffix) < 8 || strings.TrimLeft(suffix, "0123456789") != "" {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation("20060102", suffix[:8], loc)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

func validateKey(key string) error {
	if key == "" || key == "." || key == ".." || key == lockFileName ||
		strings.ContainsAny(key, `/\`) || filepath.Base(key) != key {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
