// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package cache

import (
	"errors"
	"fmt"
)

var (
	// ErrLocked is returned by Lock when another process holds the cache directory.
	ErrLocked = errors.New("cache: directory is locked by another run")
	// ErrInvalidKey is returned for keys that are not a plain file name.
	ErrInvalidKey = errors.New("cache: invalid key")
)

// IOError reports a filesystem failure on a cache entry. The cache directory
// is a run precondition, so callers treat it as fatal.
type IOError struct {
	Op   string // read, write, remove, scan, lock
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("cache %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// IsIOError reports whether err carries an *IOError.
func IsIOError(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}
