// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package provider talks to the upstream programme API.
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	xglog "github.com/ManuGH/epg365/internal/log"
)

// maxBodyBytes bounds a single upstream document.
const maxBodyBytes = 8 << 20

// HTTPDoer is the subset of *http.Client used by Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches raw documents from the provider.
type Client struct {
	http    HTTPDoer
	limiter *rate.Limiter
}

// New returns a Client. rps <= 0 disables pacing.
func New(doer HTTPDoer, rps float64) *Client {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &Client{
		http:    doer,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Fetch performs a GET and returns the response body. Non-2xx statuses yield
// *StatusError, everything without a usable response yields *TransportError.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}
	defer func() {
		if cerr := res.Body.Close(); cerr != nil {
			logger := xglog.FromContext(ctx)
			logger.Debug().Err(cerr).Str(xglog.FieldURL, rawURL).Msg("close response body")
		}
	}()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 64<<10))
		return nil, &StatusError{URL: rawURL, Status: res.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes+1))
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}
	if len(body) > maxBodyBytes {
		return nil, &TransportError{URL: rawURL, Err: errors.New("response body exceeds limit")}
	}
	return body, nil
}
