// Package config loads rubiplot's optional TOML configuration.
//
// A configuration file has a [network] table for the co-authorship figure
// and a [downloads] table for the download timeline. Keys left out of the
// file keep their built-in defaults, which reproduce the ILAMB figures:
//
//	[network]
//	bib_dir = "bib"
//	formats = ["svg", "pdf"]
//
//	[downloads]
//	package = "ilamb"
//	source = "pypistats"
//
//	[[downloads.releases]]
//	version = "v2.3"
//	date = "2018-06"
//	counts = 0
//
// The returned [Config] is a plain value. Callers pass it down explicitly;
// nothing in this package holds state.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/rubisco-sfa/rubiplot/pkg/authors"
	"github.com/rubisco-sfa/rubiplot/pkg/downloads"
	"github.com/rubisco-sfa/rubiplot/pkg/errors"
)

// Config is the full configuration.
type Config struct {
	Network   NetworkConfig   `toml:"network"`
	Downloads DownloadsConfig `toml:"downloads"`
}

// NetworkConfig configures the co-authorship figure.
type NetworkConfig struct {
	BibDir       string   `toml:"bib_dir"`
	Glob         string   `toml:"glob"`
	AliasFile    string   `toml:"alias_file"`
	Output       string   `toml:"output"`
	Formats      []string `toml:"formats"`
	Type         string   `toml:"type"`
	Detailed     bool     `toml:"detailed"`
	Names        []string `toml:"names"`
	Affiliations []string `toml:"affiliations"`
}

// DownloadsConfig configures the download timeline.
type DownloadsConfig struct {
	Package      string          `toml:"package"`
	Source       string          `toml:"source"`
	CacheFile    string          `toml:"cache_file"`
	Output       string          `toml:"output"`
	Formats      []string        `toml:"formats"`
	YLabel       string          `toml:"y_label"`
	Start        string          `toml:"start"`
	End          string          `toml:"end"`
	YMin         *float64        `toml:"y_min"`
	YMax         *float64        `toml:"y_max"`
	LabelOffset  float64         `toml:"label_offset"`
	ReleasesFrom string          `toml:"releases_from"`
	Channel      string          `toml:"channel"`
	Releases     []ReleaseConfig `toml:"releases"`
}

// ReleaseConfig is one release marker. Counts may be omitted to read the
// value from the series.
type ReleaseConfig struct {
	Version string `toml:"version"`
	Date    string `toml:"date"`
	Counts  *int   `toml:"counts"`
}

var dateLayouts = []string{"2006-01-02", "2006-01"}

// Default returns the built-in configuration.
func Default() *Config {
	roster := authors.DefaultRoster()
	return &Config{
		Network: NetworkConfig{
			BibDir:       "bib",
			Glob:         "*.bib",
			AliasFile:    "author_alias.yaml",
			Output:       "author_network",
			Formats:      []string{"svg"},
			Type:         "chord",
			Names:        roster.Names,
			Affiliations: roster.Affiliations,
		},
		Downloads: DownloadsConfig{
			Package:     "ilamb",
			Source:      "pypistats",
			Output:      "timeline",
			Formats:     []string{"png"},
			Start:       "2018-05-01",
			End:         "2022-01-01",
			YMin:        ptr(-50.0),
			YMax:        ptr(1700.0),
			LabelOffset: 20,
			Channel:     "conda-forge",
			Releases: []ReleaseConfig{
				{Version: "v2.3", Date: "2018-06", Counts: ptr(0)},
				{Version: "v2.4", Date: "2019-01", Counts: ptr(89)},
				{Version: "v2.5", Date: "2019-09", Counts: ptr(132)},
				{Version: "v2.6", Date: "2021-05", Counts: ptr(1595)},
			},
		},
	}
}

func ptr[T any](v T) *T { return &v }

// Load reads path over the defaults and validates the result. Unknown keys
// are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(string(data))
}

// Parse decodes TOML text over the defaults and validates the result.
func Parse(text string) (*Config, error) {
	cfg := Default()
	// Release tables are replaced as a whole, never merged into the defaults.
	releases := cfg.Downloads.Releases
	cfg.Downloads.Releases = nil

	md, err := toml.Decode(text, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if !md.IsDefined("downloads", "releases") {
		cfg.Downloads.Releases = releases
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the roster and every date.
func (c *Config) Validate() error {
	if _, err := c.Network.Roster(); err != nil {
		return err
	}
	if _, _, err := c.Downloads.Range(); err != nil {
		return err
	}
	if _, err := c.Downloads.ReleaseList(); err != nil {
		return err
	}
	d := c.Downloads
	if d.YMin != nil && d.YMax != nil && *d.YMax <= *d.YMin {
		return errors.New(errors.ErrCodeInvalidConfig, "y_max %g must be greater than y_min %g", *d.YMax, *d.YMin)
	}
	return nil
}

// Roster returns the configured roster.
func (n NetworkConfig) Roster() (authors.Roster, error) {
	return authors.NewRoster(n.Names, n.Affiliations)
}

// Range parses the start and end dates. Missing dates are zero.
func (d DownloadsConfig) Range() (start, end time.Time, err error) {
	if start, err = parseDate("start", d.Start); err != nil {
		return
	}
	if end, err = parseDate("end", d.End); err != nil {
		return
	}
	if !start.IsZero() && !end.IsZero() && !end.After(start) {
		err = errors.New(errors.ErrCodeInvalidConfig, "end %s is not after start %s", d.End, d.Start)
	}
	return
}

// ReleaseList converts the configured release markers.
func (d DownloadsConfig) ReleaseList() ([]downloads.Release, error) {
	out := make([]downloads.Release, 0, len(d.Releases))
	for i, r := range d.Releases {
		if r.Version == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "release %d has no version", i)
		}
		t, err := parseDate("release "+r.Version, r.Date)
		if err != nil {
			return nil, err
		}
		if t.IsZero() {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "release %s has no date", r.Version)
		}
		rel := downloads.Release{Version: r.Version, Date: t}
		if r.Counts != nil {
			rel.Count, rel.HasCount = *r.Counts, true
		}
		out = append(out, rel)
	}
	return out, nil
}

// Label returns the y-axis label: y_label when set, otherwise a label
// naming what the configured source counts.
func (d DownloadsConfig) Label() string {
	if d.YLabel != "" {
		return d.YLabel
	}
	return SourceLabel(d.Source)
}

// SourceLabel names the counts a download source reports.
func SourceLabel(source string) string {
	switch source {
	case "pypistats":
		return "monthly PyPI downloads"
	default:
		return "monthly downloads"
	}
}

// StorePath returns the stats file for the configured package.
func (d DownloadsConfig) StorePath() string {
	if d.CacheFile != "" {
		return d.CacheFile
	}
	return downloads.DefaultStorePath(d.Package)
}

func parseDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(errors.ErrCodeInvalidConfig, "%s: invalid date %q (want YYYY-MM-DD or YYYY-MM)", field, s)
}
