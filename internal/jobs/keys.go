// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package jobs

import "time"

// ListingKey is the cache key of a channel's listing index for one day.
func ListingKey(channelID string, day time.Time) string {
	return channelID + "-" + day.Format("20060102") + ".xml"
}

// DescriptionKey is the cache key of one show description.
func DescriptionKey(channelID, ref string) string {
	return channelID + "-" + ref + ".xml"
}
