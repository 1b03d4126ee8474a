// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package jobs drives the guide traversal: channel list, per-day listings and
// per-show descriptions, fed into the XMLTV assembler.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ManuGH/epg365/internal/cache"
	"github.com/ManuGH/epg365/internal/catalog"
	"github.com/ManuGH/epg365/internal/epg"
	xglog "github.com/ManuGH/epg365/internal/log"
	"github.com/ManuGH/epg365/internal/progress"
)

var errNoRef = errors.New("listing entry has no air date reference")

// Refresh walks every wanted channel for opts.Days days starting today and
// appends channels and programmes to deps.Assembler.
//
// A failing channel list aborts the run. A failing listing skips that day of
// the channel and a failing description skips that show; both are recorded in
// the Report. Cache I/O errors and context cancellation abort the run.
func Refresh(ctx context.Context, deps Deps, opts Options) (*Report, error) {
	if err := validate(deps, opts); err != nil {
		return nil, err
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	reporter := deps.Progress
	if reporter == nil {
		reporter = progress.Nop{}
	}
	groups := opts.Groups
	if len(groups) == 0 {
		groups = catalog.DefaultGroups
	}

	started := now()
	logger := xglog.WithComponentFromContext(ctx, "jobs")
	logger.Info().
		Str(xglog.FieldEvent, "refresh.start").
		Int("days", opts.Days).
		Strs("groups", groups).
		Msg("starting guide refresh")

	raw, err := deps.Cache.Get(ctx, deps.URLs.Channels(), ChannelsKey)
	if err != nil {
		return nil, fmt.Errorf("channel list: %w", err)
	}
	list, err := catalog.ParseChannels(raw)
	if err != nil {
		return nil, fmt.Errorf("channel list: %w", err)
	}
	channels := epg.CanonicalChannels(catalog.FilterGroups(list.Channels, groups))

	r := &run{deps: deps, logger: logger, report: &Report{}}
	xmlIDs := make([]string, len(channels))
	for i, ch := range channels {
		xmlIDs[i], _ = deps.Assembler.AddChannel(ch, list.LogoBase)
	}
	r.report.Channels = len(channels)

	today := startOfDay(started)
	reporter.Start("Updating guide", len(channels))
	defer reporter.Finish()

	for i, ch := range channels {
		reporter.Step(ch.Name)
		for d := range opts.Days {
			if err := r.day(ctx, ch, today.AddDate(0, 0, d)); err != nil {
				return nil, err
			}
		}
		r.report.PerChannel = append(r.report.PerChannel, ChannelCount{
			ID:         xmlIDs[i],
			Name:       ch.Name,
			Programmes: deps.Assembler.ProgrammeCount(xmlIDs[i]),
		})
	}

	r.report.Duration = now().Sub(started)
	logger.Info().
		Str(xglog.FieldEvent, "refresh.success").
		Int("channels", r.report.Channels).
		Int("programmes", r.report.Programmes).
		Int("skipped", len(r.report.Skips)).
		Dur("duration", r.report.Duration).
		Msg("guide refresh completed")
	return r.report, nil
}

type run struct {
	deps   Deps
	logger zerolog.Logger
	report *Report
}

// day processes one listing. Only fatal errors are returned.
func (r *run) day(ctx context.Context, ch catalog.Channel, day time.Time) error {
	dayLabel := day.Format(time.DateOnly)

	raw, err := r.deps.Cache.Get(ctx, r.deps.URLs.Listing(ch.ID, day), ListingKey(ch.ID, day))
	if err == nil {
		var entries []catalog.ListingEntry
		entries, err = catalog.ParseListings(raw)
		if err == nil {
			for _, entry := range entries {
				if err := r.show(ctx, ch, dayLabel, entry); err != nil {
					return err
				}
			}
			return nil
		}
	}
	if fatal(ctx, err) {
		return fmt.Errorf("listing %s %s: %w", ch.ID, dayLabel, err)
	}
	r.skip(Skip{ChannelID: ch.ID, Day: dayLabel, Stage: StageListing, Err: err})
	return nil
}

// show resolves and emits one listing entry. Only fatal errors are returned.
func (r *run) show(ctx context.Context, ch catalog.Channel, dayLabel string, entry catalog.ListingEntry) error {
	ref := catalog.RefDigits(entry.AirDateKey)
	if ref == "" {
		r.skip(Skip{ChannelID: ch.ID, Day: dayLabel, Stage: StageDescription, Err: errNoRef})
		return nil
	}

	raw, err := r.deps.Cache.Get(ctx, r.deps.URLs.Description(ch.ID, ref), DescriptionKey(ch.ID, ref))
	if err != nil {
		if fatal(ctx, err) {
			return fmt.Errorf("description %s %s: %w", ch.ID, ref, err)
		}
		r.skip(Skip{ChannelID: ch.ID, Day: dayLabel, Ref: ref, Stage: StageDescription, Err: err})
		return nil
	}
	desc, err := catalog.ParseDescription(raw)
	if err != nil {
		r.skip(Skip{ChannelID: ch.ID, Day: dayLabel, Ref: ref, Stage: StageDescription, Err: err})
		return nil
	}
	if _, err := r.deps.Assembler.AddProgramme(ch.ID, entry, desc); err != nil {
		r.skip(Skip{ChannelID: ch.ID, Day: dayLabel, Ref: ref, Stage: StageProgramme, Err: err})
		return nil
	}
	r.report.Programmes++
	r.deps.Metrics.Programme()
	return nil
}

func (r *run) skip(s Skip) {
	r.report.Skips = append(r.report.Skips, s)
	r.deps.Metrics.Skipped(s.Stage)
	r.logger.Warn().
		Err(s.Err).
		Str(xglog.FieldEvent, "refresh.skip").
		Str(xglog.FieldChannelID, s.ChannelID).
		Str(xglog.FieldDay, s.Day).
		Str(xglog.FieldRef, s.Ref).
		Str(xglog.FieldStage, s.Stage).
		Msg("skipping guide item")
}

// fatal reports whether err must abort the run instead of skipping an item.
func fatal(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return cache.IsIOError(err)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func validate(deps Deps, opts Options) error {
	switch {
	case deps.Cache == nil:
		return errors.New("jobs: nil cache")
	case deps.URLs == nil:
		return errors.New("jobs: nil URL builder")
	case deps.Assembler == nil:
		return errors.New("jobs: nil assembler")
	case opts.Days < 1:
		return fmt.Errorf("jobs: days must be positive, got %d", opts.Days)
	}
	return nil
}
