package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rubisco-sfa/rubiplot/pkg/config"
	"github.com/rubisco-sfa/rubiplot/pkg/pipeline"
	"github.com/rubisco-sfa/rubiplot/pkg/render/timeline"
)

// downloadsFlags holds the command-line flags for the downloads command.
// Empty values keep the configured setting.
type downloadsFlags struct {
	source       string // statistics service, or "none" for the stats file only
	cacheFile    string // stats CSV path
	refresh      bool   // refetch and overwrite the stats file
	output       string // output base path
	formats      string // comma-separated formats
	releasesFrom string // release listing service
	channel      string // anaconda.org channel
	mirrors      bool   // count mirror downloads (pypistats)
	noCache      bool   // bypass the HTTP response cache
}

// downloadsCommand creates the downloads command.
func (c *CLI) downloadsCommand() *cobra.Command {
	var flags downloadsFlags

	cmd := &cobra.Command{
		Use:   "downloads [package]",
		Short: "Draw the monthly download timeline of a package",
		Long: `Draw monthly downloads of a package with release markers. The series is
read from the stats file when it exists; otherwise it is fetched from the
statistics service and written there. Use --refresh to fetch again.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return c.runDownloads(cmd.Context(), cfg.Downloads, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.source, "source", "", "statistics service: pypistats (default), none")
	cmd.Flags().StringVar(&flags.cacheFile, "cache-file", "", "stats CSV (default <package>_downloads.csv)")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "fetch again and overwrite the stats file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output base path (default from config: timeline)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): png (default), svg, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&flags.releasesFrom, "releases-from", "", "add release markers from: anaconda")
	cmd.Flags().StringVar(&flags.channel, "channel", "", "anaconda.org channel (default conda-forge)")
	cmd.Flags().BoolVar(&flags.mirrors, "mirrors", false, "include mirror downloads")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "bypass the HTTP response cache")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(pipeline.TimelineFormats, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("source", cobra.FixedCompletions([]string{pipeline.SourcePyPIStats, "none"}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("releases-from", cobra.FixedCompletions([]string{pipeline.SourceAnaconda, "none"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// mergeDownloads applies the positional package and flags to the config
// section. Markers and both ranges are tied to the configured package, so
// they are dropped when a different package is named.
func mergeDownloads(cfg config.DownloadsConfig, args []string, flags downloadsFlags) config.DownloadsConfig {
	if len(args) > 0 && args[0] != cfg.Package {
		cfg.Package = args[0]
		cfg.CacheFile = ""
		cfg.Releases = nil
		cfg.Start, cfg.End = "", ""
		cfg.YMin, cfg.YMax = nil, nil
	}
	if flags.source != "" {
		cfg.Source = flags.source
	}
	if flags.cacheFile != "" {
		cfg.CacheFile = flags.cacheFile
	}
	if flags.output != "" {
		cfg.Output = flags.output
	}
	if flags.releasesFrom != "" {
		cfg.ReleasesFrom = flags.releasesFrom
	}
	if flags.channel != "" {
		cfg.Channel = flags.channel
	}
	cfg.Formats = parseFormats(flags.formats, cfg.Formats)
	return cfg
}

// timelineOptions converts the config section to layout options.
func timelineOptions(cfg config.DownloadsConfig) (timeline.Options, error) {
	start, end, err := cfg.Range()
	if err != nil {
		return timeline.Options{}, err
	}
	opts := timeline.Options{
		Start:       start,
		End:         end,
		YLabel:      cfg.Label(),
		LabelOffset: cfg.LabelOffset,
	}
	if cfg.YMin != nil && cfg.YMax != nil {
		opts.YMin, opts.YMax, opts.YRange = *cfg.YMin, *cfg.YMax, true
	}
	return opts, nil
}

func (c *CLI) runDownloads(ctx context.Context, cfg config.DownloadsConfig, args []string, flags downloadsFlags) error {
	cfg = mergeDownloads(cfg, args, flags)

	tl, err := timelineOptions(cfg)
	if err != nil {
		return err
	}
	releases, err := cfg.ReleaseList()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	src, err := runner.Source(cfg.Source, flags.mirrors)
	if err != nil {
		return err
	}
	relSrc, err := runner.ReleaseSource(cfg.ReleasesFrom)
	if err != nil {
		return err
	}

	opts := pipeline.DownloadsOptions{
		Package:       cfg.Package,
		StorePath:     cfg.StorePath(),
		Refresh:       flags.refresh,
		Source:        src,
		Releases:      releases,
		ReleaseSource: relSrc,
		Channel:       cfg.Channel,
		Timeline:      tl,
		Formats:       cfg.Formats,
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Loading downloads of %s...", cfg.Package))
	spinner.Start()
	result, err := runner.RunDownloads(ctx, opts)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Failed to load %s", cfg.Package))
		return err
	}
	spinner.Stop()

	paths, err := pipeline.WriteArtifacts(cfg.Output, result.Artifacts)
	if err != nil {
		return err
	}

	start, end := result.Series.Span()
	printSuccess("Download timeline for %s", StyleHighlight.Render(cfg.Package))
	printStats([]string{
		fmt.Sprintf("%d months", len(result.Series)),
		fmt.Sprintf("%s to %s", start.Format("2006-01"), end.Format("2006-01")),
		fmt.Sprintf("%d downloads", result.Series.Total()),
		fmt.Sprintf("%d releases", len(result.Releases)),
	}, &result.FromStore)
	if !result.FromStore {
		printDetail("Stats written to %s", opts.StorePath)
	}
	for _, p := range paths {
		printFile(p)
	}
	return nil
}
