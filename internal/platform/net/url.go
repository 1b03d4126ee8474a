// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package net holds URL helpers shared by configuration and logging.
package net

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrScheme      = errors.New("scheme must be http or https")
	ErrMissingHost = errors.New("missing host")
	ErrCredentials = errors.New("embedded credentials are not allowed")
)

// SanitizeURL removes user info and query parameters for safe logging.
func SanitizeURL(rawURL string) string {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "invalid-url-redacted"
	}
	parsedURL.User = nil
	parsedURL.RawQuery = ""
	return parsedURL.String()
}

// ParseHTTPURL validates an upstream endpoint: http or https scheme
// (case-insensitive), a non-empty host and no user info.
func ParseHTTPURL(s string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", s, err)
	}
	switch scheme := strings.ToLower(u.Scheme); {
	case scheme != "http" && scheme != "https":
		return nil, fmt.Errorf("%q: %w", s, ErrScheme)
	case u.Host == "":
		return nil, fmt.Errorf("%q: %w", s, ErrMissingHost)
	case u.User != nil:
		return nil, fmt.Errorf("%q: %w", SanitizeURL(s), ErrCredentials)
	}
	return u, nil
}
