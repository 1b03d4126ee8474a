// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package metrics provides Prometheus metrics for a guide build run.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Guide holds the collectors of one guide build. A nil *Guide is valid and
// records nothing.
type Guide struct {
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	cacheFallbacks prometheus.Counter
	cacheEvictions prometheus.Counter

	channels   prometheus.Gauge
	programmes prometheus.Counter
	skipped    *prometheus.CounterVec // stage=listing|description|programme

	lastRunDuration prometheus.Gauge
	lastSuccess     prometheus.Gauge
}

// NewGuide registers the guide collectors on reg.
func NewGuide(reg prometheus.Registerer) *Guide {
	f := promauto.With(reg)
	return &Guide{
		cacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "epg365_cache_hits_total",
			Help: "Documents served from the disk cache without network I/O",
		}),
		cacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "epg365_cache_misses_total",
			Help: "Documents fetched from the provider and written to the cache",
		}),
		cacheFallbacks: f.NewCounter(prometheus.CounterOpts{
			Name: "epg365_cache_fallbacks_total",
			Help: "Fetches that failed with an HTTP status and cached the placeholder instead",
		}),
		cacheEvictions: f.NewCounter(prometheus.CounterOpts{
			Name: "epg365_cache_evictions_total",
			Help: "Date-keyed cache entries removed because their day has passed",
		}),
		channels: f.NewGauge(prometheus.GaugeOpts{
			Name: "epg365_channels",
			Help: "Channels written to the guide in the last run",
		}),
		programmes: f.NewCounter(prometheus.CounterOpts{
			Name: "epg365_programmes_total",
			Help: "Programmes written to the guide",
		}),
		skipped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "epg365_skipped_items_total",
			Help: "Listing days or shows skipped because a document was missing or malformed",
		}, []string{"stage"}),
		lastRunDuration: f.NewGauge(prometheus.GaugeOpts{
			Name: "epg365_last_run_duration_seconds",
			Help: "Wall time of the last guide build",
		}),
		lastSuccess: f.NewGauge(prometheus.GaugeOpts{
			Name: "epg365_last_success_timestamp_seconds",
			Help: "Unix time of the last successful guide build",
		}),
	}
}

func (g *Guide) CacheHit() {
	if g != nil {
		g.cacheHits.Inc()
	}
}

func (g *Guide) CacheMiss() {
	if g != nil {
		g.cacheMisses.Inc()
	}
}

func (g *Guide) CacheFallback() {
	if g != nil {
		g.cacheFallbacks.Inc()
	}
}

func (g *Guide) CacheEvictions(n int) {
	if g != nil {
		g.cacheEvictions.Add(float64(n))
	}
}

func (g *Guide) Programme() {
	if g != nil {
		g.programmes.Inc()
	}
}

func (g *Guide) Skipped(stage string) {
	if g != nil {
		g.skipped.WithLabelValues(stage).Inc()
	}
}

// RunFinished records the outcome of a completed build.
func (g *Guide) RunFinished(channels int, seconds float64, finishedUnix int64) {
	if g == nil {
		return
	}
	g.channels.Set(float64(channels))
	g.lastRunDuration.Set(seconds)
	g.lastSuccess.Set(float64(finishedUnix))
}

// WriteTextfile dumps everything gathered by g in the node_exporter textfile format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
