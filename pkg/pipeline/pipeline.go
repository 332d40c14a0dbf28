// Package pipeline runs rubiplot's two figure pipelines.
//
// This package implements the read → transform → render sequence shared
// by the CLI commands. Both pipelines are single-threaded batch runs that
// return rendered artifacts keyed by format.
//
// # Architecture
//
// The network pipeline has four stages:
//
//  1. Parse: read bibliography records from a directory
//  2. Resolve: load the curated alias file and check it against the roster
//  3. Build: count papers and co-authored pairs
//  4. Render: chord or node-link diagram in the requested formats
//
// The downloads pipeline has two:
//
//  1. Load: read the stats file, or fetch and write it
//  2. Render: timeline with release markers
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, logger)
//	result, err := runner.RunNetwork(ctx, pipeline.NetworkOptions{
//	    BibDir:    "bib",
//	    AliasFile: "author_alias.yaml",
//	    Roster:    authors.DefaultRoster(),
//	    Formats:   []string{"svg", "pdf"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths, err := pipeline.WriteArtifacts("author_network", result.Artifacts)
//
// Every run gets a random id that is attached to its log lines.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rubisco-sfa/rubiplot/pkg/authors"
	"github.com/rubisco-sfa/rubiplot/pkg/downloads"
	"github.com/rubisco-sfa/rubiplot/pkg/errors"
	"github.com/rubisco-sfa/rubiplot/pkg/network"
	"github.com/rubisco-sfa/rubiplot/pkg/render/timeline"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// Visualization types for the network figure.
const (
	VizChord    = "chord"
	VizNodelink = "nodelink"
)

const (
	DefaultGlob      = "*.bib"
	DefaultVizType   = VizChord
	DefaultPNGScale  = 2.0
	DefaultAliasFile = "author_alias.yaml"
)

// NetworkFormats lists the formats the network figure supports.
var NetworkFormats = []string{FormatSVG, FormatPDF, FormatPNG, FormatDOT, FormatJSON}

// TimelineFormats lists the formats the timeline supports.
var TimelineFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// VizTypes lists the network visualization types.
var VizTypes = []string{VizChord, VizNodelink}

// ValidateFormats checks every format against the allowed list.
func ValidateFormats(formats, allowed []string) error {
	for _, f := range formats {
		if !slices.Contains(allowed, f) {
			return errors.New(errors.ErrCodeInvalidFormat,
				"invalid format: %q (must be one of: %s)", f, strings.Join(allowed, ", "))
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !slices.Contains(VizTypes, vizType) {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid type: %q (must be one of: %s)", vizType, strings.Join(VizTypes, ", "))
	}
	return nil
}

// =============================================================================
// Network pipeline
// =============================================================================

// NetworkOptions configures the co-authorship pipeline.
type NetworkOptions struct {
	BibDir    string
	Glob      string
	AliasFile string
	Roster    authors.Roster
	VizType   string
	Formats   []string
	Detailed  bool
	Isolated  bool
	Title     string
	Logger    *log.Logger
}

// ValidateAndSetDefaults checks required fields and applies defaults.
func (o *NetworkOptions) ValidateAndSetDefaults() error {
	if o.BibDir == "" {
		return errors.New(errors.ErrCodeInvalidInput, "bibliography directory is required")
	}
	if o.Glob == "" {
		o.Glob = DefaultGlob
	}
	if o.AliasFile == "" {
		o.AliasFile = DefaultAliasFile
	}
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := o.Roster.Validate(); err != nil {
		return err
	}
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	return ValidateFormats(o.Formats, NetworkFormats)
}

// NetworkResult contains the outputs of a network run.
type NetworkResult struct {
	RunID     string
	Network   *network.Network
	Artifacts map[string][]byte
	Stats     Stats
}

// =============================================================================
// Downloads pipeline
// =============================================================================

// ReleaseSource lists published versions of a package.
type ReleaseSource interface {
	Releases(ctx context.Context, channel, pkg string, refresh bool) ([]downloads.Release, error)
}

// DownloadsOptions configures the download timeline pipeline.
type DownloadsOptions struct {
	Package   string
	StorePath string
	Refresh   bool
	Source    downloads.Source

	// Releases are drawn as given. When ReleaseSource is set its markers
	// are added for versions not already listed.
	Releases      []downloads.Release
	ReleaseSource ReleaseSource
	Channel       string

	Timeline timeline.Options
	Formats  []string
	Logger   *log.Logger
}

// ValidateAndSetDefaults checks required fields and applies defaults.
func (o *DownloadsOptions) ValidateAndSetDefaults() error {
	if err := errors.ValidatePackageName(o.Package); err != nil {
		return err
	}
	if o.StorePath == "" {
		o.StorePath = downloads.DefaultStorePath(o.Package)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.ReleaseSource != nil {
		if err := errors.ValidateChannel(o.Channel); err != nil {
			return err
		}
	}
	return ValidateFormats(o.Formats, TimelineFormats)
}

// DownloadsResult contains the outputs of a downloads run.
type DownloadsResult struct {
	RunID     string
	Series    downloads.Series
	Releases  []downloads.Release
	FromStore bool
	Artifacts map[string][]byte
	Stats     Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LoadTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// Total returns the summed stage time.
func (s Stats) Total() time.Duration {
	return s.LoadTime + s.BuildTime + s.RenderTime
}

func (s Stats) String() string {
	return fmt.Sprintf("load %s, build %s, render %s",
		s.LoadTime.Round(time.Millisecond), s.BuildTime.Round(time.Millisecond), s.RenderTime.Round(time.Millisecond))
}
