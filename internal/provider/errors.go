// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package provider

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable marks transport failures where no HTTP response was received.
	ErrUnavailable = errors.New("provider: host unreachable or transport failure")
	// ErrBadStatus marks responses outside the 2xx range.
	ErrBadStatus = errors.New("provider: unexpected HTTP status")
)

// StatusError is returned when the provider answered with a non-2xx status.
// The content cache treats it as the signal to fall back to the placeholder URL.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider: GET %s: HTTP %d", e.URL, e.Status)
}

func (e *StatusError) Unwrap() error { return ErrBadStatus }

// TransportError wraps a lower-level failure (DNS, dial, timeout, body read).
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("provider: GET %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() []error { return []error{ErrUnavailable, e.Err} }
