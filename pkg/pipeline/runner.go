package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/rubisco-sfa/rubiplot/pkg/alias"
	"github.com/rubisco-sfa/rubiplot/pkg/bib"
	"github.com/rubisco-sfa/rubiplot/pkg/cache"
	"github.com/rubisco-sfa/rubiplot/pkg/downloads"
	"github.com/rubisco-sfa/rubiplot/pkg/errors"
	"github.com/rubisco-sfa/rubiplot/pkg/integrations/anaconda"
	"github.com/rubisco-sfa/rubiplot/pkg/integrations/pypistats"
	"github.com/rubisco-sfa/rubiplot/pkg/network"
	"github.com/rubisco-sfa/rubiplot/pkg/render/timeline"
)

// Statistics services known to [Runner.Source] and [Runner.ReleaseSource].
const (
	SourcePyPIStats = pypistats.SourceName
	SourceAnaconda  = "anaconda"
)

// Runner executes the pipelines. The cache backs the HTTP clients of the
// statistics services; it is never consulted for rendered figures.
//
// The Runner holds no results. Multiple goroutines can use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. If cache is nil, a NullCache is used.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Source returns the download statistics source with the given name.
func (r *Runner) Source(name string, mirrors bool) (downloads.Source, error) {
	switch name {
	case SourcePyPIStats:
		c := pypistats.NewClient(r.Cache, cache.TTLHTTP)
		if mirrors {
			c = c.WithMirrors()
		}
		return c, nil
	case "", "none":
		return nil, nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupportedSource,
			"unsupported source: %q (must be one of: %s, none)", name, SourcePyPIStats)
	}
}

// ReleaseSource returns the release listing with the given name.
func (r *Runner) ReleaseSource(name string) (ReleaseSource, error) {
	switch name {
	case SourceAnaconda:
		return anaconda.NewClient(r.Cache, cache.TTLHTTP), nil
	case "", "none":
		return nil, nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupportedSource,
			"unsupported release source: %q (must be one of: %s, none)", name, SourceAnaconda)
	}
}

// RunNetwork runs the co-authorship pipeline: parse → resolve → build → render.
// The alias file must exist; it is never written here.
func (r *Runner) RunNetwork(ctx context.Context, opts NetworkOptions) (*NetworkResult, error) {
	r.applyNetworkLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result := &NetworkResult{RunID: uuid.NewString()}
	logger := opts.Logger.With("run", result.RunID)

	// Stage 1: Parse and resolve
	loadStart := time.Now()
	entries, err := r.readEntries(logger, opts.BibDir, opts.Glob)
	if err != nil {
		return nil, err
	}
	aliases, err := alias.LoadCuratedAliases(opts.AliasFile)
	if err != nil {
		return nil, err
	}
	if err := aliases.Validate(opts.Roster); err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	logger.Info("loaded bibliography",
		"records", len(entries),
		"aliases", aliases.Len(),
		"duration", result.Stats.LoadTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Build
	buildStart := time.Now()
	net := network.Build(entries, opts.Roster, alias.NewResolver(opts.Roster, aliases))
	result.Network = net
	result.Stats.BuildTime = time.Since(buildStart)
	logger.Info("built network",
		"members", net.Size(),
		"edges", len(net.Edges()),
		"skipped", net.Stats.Skipped,
		"resolved", net.Stats.Resolved,
		"duration", result.Stats.BuildTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := RenderNetwork(net, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	logger.Info("rendered outputs",
		"type", opts.VizType,
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// DraftAliases writes the alias candidates found in the bibliography to
// opts.AliasFile. An existing file is kept unless force is set.
func (r *Runner) DraftAliases(ctx context.Context, opts NetworkOptions, force bool) (alias.Candidates, error) {
	r.applyNetworkLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	entries, err := r.readEntries(opts.Logger, opts.BibDir, opts.Glob)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	candidates := alias.BuildAliasCandidates(entries, opts.Roster)
	if err := alias.WriteDraft(opts.AliasFile, candidates, force); err != nil {
		return nil, err
	}

	missing := 0
	for _, spellings := range candidates {
		if len(spellings) == 0 {
			missing++
		}
	}
	opts.Logger.Info("wrote alias draft",
		"path", opts.AliasFile,
		"records", len(entries),
		"members", len(candidates),
		"missing", missing)
	return candidates, nil
}

func (r *Runner) readEntries(logger *log.Logger, dir, glob string) ([]bib.Entry, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		logger.Debug("bibliography directory not found", "dir", dir)
	}
	entries, err := bib.ParseDir(dir, glob)
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed bibliography", "dir", dir, "glob", glob, "records", len(entries))
	return entries, nil
}

// RunDownloads runs the download timeline pipeline: load → render.
func (r *Runner) RunDownloads(ctx context.Context, opts DownloadsOptions) (*DownloadsResult, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result := &DownloadsResult{RunID: uuid.NewString()}
	logger := opts.Logger.With("run", result.RunID)

	// Stage 1: Load
	loadStart := time.Now()
	series, fromStore, err := r.LoadSeriesWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Series = series
	result.FromStore = fromStore
	start, end := series.Span()
	logger.Info("loaded downloads",
		"package", opts.Package,
		"months", len(series),
		"from", start.Format("2006-01"),
		"to", end.Format("2006-01"),
		"stored", fromStore,
		"duration", time.Since(loadStart))

	releases, err := r.releases(ctx, logger, opts)
	if err != nil {
		return nil, err
	}
	result.Releases = series.Annotate(releases)
	result.Stats.LoadTime = time.Since(loadStart)
	logger.Debug("release markers", "versions", releaseVersions(result.Releases))

	// Stage 2: Layout
	buildStart := time.Now()
	layout, err := timeline.Compute(series, releases, opts.Timeline)
	if err != nil {
		return nil, err
	}
	if layout.Refit {
		logger.Warn("series lies outside the configured window, fitting ranges to the data",
			"start", layout.Start.Format("2006-01"), "end", layout.End.Format("2006-01"))
	}
	result.Stats.BuildTime = time.Since(buildStart)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := RenderTimeline(layout, result, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	logger.Info("rendered outputs",
		"markers", len(layout.Markers),
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadSeriesWithCacheInfo loads the monthly series and reports whether it
// came from the stats file.
func (r *Runner) LoadSeriesWithCacheInfo(ctx context.Context, opts DownloadsOptions) (downloads.Series, bool, error) {
	loader := downloads.NewLoader(opts.Source, opts.StorePath)
	series, fromStore, err := loader.LoadWithCacheInfo(ctx, opts.Package, opts.Refresh)
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", opts.Package, err)
	}
	return series, fromStore, nil
}

// LoadSeries is a convenience wrapper that calls LoadSeriesWithCacheInfo and discards the cache info.
func (r *Runner) LoadSeries(ctx context.Context, opts DownloadsOptions) (downloads.Series, error) {
	series, _, err := r.LoadSeriesWithCacheInfo(ctx, opts)
	return series, err
}

// releases merges configured markers with those of the release source.
// Configured versions take precedence.
func (r *Runner) releases(ctx context.Context, logger *log.Logger, opts DownloadsOptions) ([]downloads.Release, error) {
	out := append([]downloads.Release(nil), opts.Releases...)
	if opts.ReleaseSource == nil {
		return out, nil
	}
	fetched, err := opts.ReleaseSource.Releases(ctx, opts.Channel, opts.Package, opts.Refresh)
	if err != nil {
		return nil, fmt.Errorf("releases %s: %w", opts.Package, err)
	}
	seen := make(map[string]bool, len(out))
	for _, rel := range out {
		seen[rel.Version] = true
	}
	added := 0
	for _, rel := range fetched {
		if !seen[rel.Version] {
			out = append(out, rel)
			added++
		}
	}
	logger.Debug("fetched releases", "channel", opts.Channel, "found", len(fetched), "added", added)
	return out, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyNetworkLogger sets the runner's logger on options if not already set.
func (r *Runner) applyNetworkLogger(opts *NetworkOptions) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
