// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package jobs

import (
	"context"
	"time"

	"github.com/ManuGH/epg365/internal/epg"
	"github.com/ManuGH/epg365/internal/metrics"
	"github.com/ManuGH/epg365/internal/progress"
)

// Stages of the traversal that can produce a Skip.
const (
	StageListing     = "listing"
	StageDescription = "description"
	StageProgramme   = "programme"
)

// ChannelsKey is the cache key of the provider channel list. It carries no
// date and is never evicted by cache cleaning.
const ChannelsKey = "channels.xml"

// Cache returns a document for url, stored under key.
type Cache interface {
	Get(ctx context.Context, url, key string) ([]byte, error)
}

// URLBuilder builds the provider document URLs.
type URLBuilder interface {
	Channels() string
	Listing(channelID string, day time.Time) string
	Description(channelID, ref string) string
}

// Deps are the collaborators of Refresh.
type Deps struct {
	Cache     Cache
	URLs      URLBuilder
	Assembler *epg.Assembler
	Progress  progress.Reporter // optional
	Metrics   *metrics.Guide    // optional
	Now       func() time.Time  // optional, time.Now by default
}

// Options selects what Refresh traverses.
type Options struct {
	Days   int
	Groups []string
}

// Skip records one traversal item that was dropped.
type Skip struct {
	ChannelID string
	Day       string // YYYY-MM-DD
	Ref       string // digits-only air date reference, empty for listing skips
	Stage     string
	Err       error
}

// ChannelCount is the number of programmes emitted for one channel.
type ChannelCount struct {
	ID         string // XMLTV channel id
	Name       string
	Programmes int
}

// Report summarises a Refresh run.
type Report struct {
	Channels   int
	Programmes int
	Skips      []Skip
	PerChannel []ChannelCount
	Duration   time.Duration
}

// SkipsByStage counts skips per stage.
func (r *Report) SkipsByStage() map[string]int {
	out := make(map[string]int)
	for _, s := range r.Skips {
		out[s.Stage]++
	}
	return out
}
