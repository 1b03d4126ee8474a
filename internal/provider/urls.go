// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package provider

import (
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the Android programme API of 365dni.cz.
const DefaultBaseURL = "http://programandroid.365dni.cz/android/"

// DefaultLocale selects the Czech channel list.
const DefaultLocale = "cz"

// URLs builds the three document URLs of the provider API.
type URLs struct {
	base   string
	locale string
}

// NewURLs returns a URL builder rooted at base. An empty base or locale selects
// the defaults.
func NewURLs(base, locale string) URLs {
	if strings.TrimSpace(base) == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	if locale == "" {
		locale = DefaultLocale
	}
	return URLs{base: base, locale: locale}
}

// Channels returns the channel list URL.
func (u URLs) Channels() string {
	q := url.Values{"locale": {u.locale}}
	return u.base + "v5-tv.php?" + q.Encode()
}

// Listing returns the per-day listing index URL of one channel.
func (u URLs) Listing(channelID string, day time.Time) string {
	return u.base + "v5-program.php?datum=" + day.Format(time.DateOnly) + "&id_tv=" + url.QueryEscape(channelID)
}

// Description returns the per-show description URL. ref is the digits-only
// air date reference of the listing entry.
func (u URLs) Description(channelID, ref string) string {
	return u.base + "v5-porad.php?datum=" + url.QueryEscape(ref) + "&id_tv=" + url.QueryEscape(channelID)
}
