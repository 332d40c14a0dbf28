package anaconda

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rubisco-sfa/rubiplot/pkg/cache"
	"github.com/rubisco-sfa/rubiplot/pkg/downloads"
	"github.com/rubisco-sfa/rubiplot/pkg/integrations"
)

// DefaultChannel is used when no channel is given.
const DefaultChannel = "conda-forge"

var uploadLayouts = []string{
	"2006-01-02 15:04:05.999999-07:00",
	"2006-01-02 15:04:05-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

// File is one uploaded build of a package.
type File struct {
	Version    string `json:"version"`
	UploadTime string `json:"upload_time"`
	Downloads  int    `json:"ndownloads"`
	Basename   string `json:"basename"`
}

// PackageInfo holds the parts of a package listing used for release markers.
type PackageInfo struct {
	Name     string   `json:"name"`
	Versions []string `json:"versions"`
	Files    []File   `json:"files"`
}

// Client provides access to the anaconda.org API.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates an anaconda.org client with the given cache backend.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client:  integrations.NewClient(backend, "anaconda", cacheTTL, nil),
		baseURL: "https://api.anaconda.org",
	}
}

// FetchPackage retrieves the file listing of pkg in channel.
func (c *Client) FetchPackage(ctx context.Context, channel, pkg string, refresh bool) (*PackageInfo, error) {
	if channel == "" {
		channel = DefaultChannel
	}
	pkg = strings.ToLower(strings.TrimSpace(pkg))

	var info PackageInfo
	err := c.Cached(ctx, channel+"/"+pkg, refresh, &info, func() error {
		return c.fetch(ctx, channel, pkg, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) fetch(ctx context.Context, channel, pkg string, info *PackageInfo) error {
	url := fmt.Sprintf("%s/package/%s/%s", c.baseURL, integrations.URLEncode(channel), integrations.URLEncode(pkg))
	if err := c.Get(ctx, url, info); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: anaconda package %s/%s", err, channel, pkg)
		}
		return err
	}
	return nil
}

// Releases returns one marker per version, dated by its earliest upload
// and sorted by date. Version labels are prefixed with "v".
func (c *Client) Releases(ctx context.Context, channel, pkg string, refresh bool) ([]downloads.Release, error) {
	info, err := c.FetchPackage(ctx, channel, pkg, refresh)
	if err != nil {
		return nil, err
	}
	return ReleasesFromFiles(info.Files)
}

// ReleasesFromFiles picks the earliest upload of each version.
func ReleasesFromFiles(files []File) ([]downloads.Release, error) {
	first := make(map[string]time.Time)
	for _, f := range files {
		if f.Version == "" {
			continue
		}
		t, err := parseUploadTime(f.UploadTime)
		if err != nil {
			return nil, fmt.Errorf("anaconda: %s: %w", f.Basename, err)
		}
		if prev, ok := first[f.Version]; !ok || t.Before(prev) {
			first[f.Version] = t
		}
	}

	out := make([]downloads.Release, 0, len(first))
	for v, t := range first {
		out = append(out, downloads.Release{Version: "v" + v, Date: t})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].Version < out[j].Version
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func parseUploadTime(s string) (time.Time, error) {
	for _, layout := range uploadLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid upload time %q", s)
}
