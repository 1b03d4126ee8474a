// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ManuGH/epg365/internal/cache"
	"github.com/ManuGH/epg365/internal/config"
	"github.com/ManuGH/epg365/internal/epg"
	"github.com/ManuGH/epg365/internal/jobs"
	xglog "github.com/ManuGH/epg365/internal/log"
	"github.com/ManuGH/epg365/internal/metrics"
	platformnet "github.com/ManuGH/epg365/internal/platform/net"
	"github.com/ManuGH/epg365/internal/platform/httpx"
	"github.com/ManuGH/epg365/internal/progress"
	"github.com/ManuGH/epg365/internal/provider"
	"github.com/ManuGH/epg365/internal/version"
)

type rootFlags struct {
	configPath  string
	days        int
	output      string
	cacheDir    string
	logLevel    string
	metricsFile string
}

func newRootCommand() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:           "epg365 -o PATH [flags]",
		Short:         "Build an XMLTV guide from the 365dni.cz programme API",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}
	cmd.SetVersionTemplate("epg365 {{.Version}}\n")

	f := cmd.Flags()
	f.IntVarP(&flags.days, "days", "d", config.DefaultDays, "Number of days to fetch, starting today")
	f.StringVarP(&flags.output, "output", "o", "", "Path of the XMLTV file to write (required)")
	f.StringVarP(&flags.cacheDir, "cache", "c", "", "Cache directory (default $HOME/"+config.DefaultCacheDirName+")")
	f.StringVar(&flags.configPath, "config", "", "Configuration file path (YAML)")
	f.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	f.StringVar(&flags.metricsFile, "metrics-file", "", "Write Prometheus metrics in text format to this path")
	return cmd
}

// resolveConfig layers defaults, config file, environment and explicitly set
// flags, then runs the startup checks. Nothing touches the network here.
func resolveConfig(cmd *cobra.Command, flags rootFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return config.Config{}, err
	}

	changed := cmd.Flags().Changed
	if changed("days") {
		cfg.Days = flags.days
	}
	if changed("output") {
		cfg.Output = flags.output
	}
	if changed("cache") {
		cfg.CacheDir = flags.cacheDir
	}
	if changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if changed("metrics-file") {
		cfg.MetricsFile = flags.metricsFile
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if err := checkPaths(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

var (
	errNoOutput        = errors.New("no output file defined")
	errOutputDirectory = errors.New("output directory does not exist")
	errCacheDirectory  = errors.New("cache directory does not exist")
)

// checkPaths requires the output's parent and the cache directory to exist.
// Neither is created.
func checkPaths(cfg config.Config) error {
	if strings.TrimSpace(cfg.Output) == "" {
		return errNoOutput
	}
	dir := filepath.Dir(cfg.Output)
	if !isDir(dir) {
		return fmt.Errorf("%w: %s", errOutputDirectory, dir)
	}
	if !isDir(cfg.CacheDir) {
		return fmt.Errorf("%w: %s", errCacheDirectory, cfg.CacheDir)
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func run(cmd *cobra.Command, cfg config.Config) error {
	stderr := cmd.ErrOrStderr()
	xglog.Configure(xglog.Config{
		Level:   cfg.LogLevel,
		Output:  stderr,
		Version: version.Version,
		Console: progress.IsTerminal(stderr),
	})

	runID := uuid.NewString()
	logger := xglog.WithComponent("cli").With().Str(xglog.FieldRunID, runID).Logger()
	ctx := xglog.ContextWithRunID(cmd.Context(), runID)
	ctx = logger.WithContext(ctx)

	logger.Info().
		Str(xglog.FieldEvent, "startup").
		Int("days", cfg.Days).
		Str(xglog.FieldPath, cfg.Output).
		Str("cache_dir", cfg.CacheDir).
		Str("base_url", platformnet.SanitizeURL(cfg.BaseURL)).
		Msg("building guide")

	reg := prometheus.NewRegistry()
	guide := metrics.NewGuide(reg)

	client := provider.New(httpx.NewClient(cfg.HTTPTimeout, "epg365/"+version.Version), cfg.RequestsPerSecond)
	disk, err := cache.NewDisk(cache.Options{
		Root:        cfg.CacheDir,
		Fetcher:     client,
		FallbackURL: cfg.FallbackURL,
		Metrics:     guide,
	})
	if err != nil {
		return err
	}
	if err := disk.Lock(); err != nil {
		return err
	}
	defer func() {
		if err := disk.Unlock(); err != nil {
			logger.Warn().Err(err).Msg("release cache lock")
		}
	}()

	started := time.Now()
	if _, err := disk.Clean(ctx, started); err != nil {
		return fmt.Errorf("clean cache: %w", err)
	}

	assembler := epg.NewAssembler(epg.Options{
		GeneratorURL: cfg.GeneratorURL,
		Offset:       cfg.UTCOffset,
	})
	report, err := jobs.Refresh(ctx, jobs.Deps{
		Cache:     disk,
		URLs:      provider.NewURLs(cfg.BaseURL, cfg.Locale),
		Assembler: assembler,
		Progress:  progress.ForWriter(stderr),
		Metrics:   guide,
	}, jobs.Options{Days: cfg.Days, Groups: cfg.Groups})
	if err != nil {
		return err
	}

	data, err := epg.Render(assembler.Document())
	if err != nil {
		return err
	}
	if err := epg.WriteFile(ctx, cfg.Output, data); err != nil {
		return err
	}
	if err := epg.WriteXZ(ctx, cfg.Output, data); err != nil {
		return err
	}
	logger.Info().
		Str(xglog.FieldEvent, "xmltv.success").
		Str(xglog.FieldPath, cfg.Output).
		Int(xglog.FieldBytes, len(data)).
		Msg("XMLTV written")

	guide.RunFinished(report.Channels, time.Since(started).Seconds(), time.Now().Unix())
	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile, reg); err != nil {
			logger.Warn().Err(err).Str(xglog.FieldPath, cfg.MetricsFile).Msg("write metrics textfile")
		}
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), renderSummary(report, cfg.Output))
	return err
}
