package pypistats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rubisco-sfa/rubiplot/pkg/cache"
	"github.com/rubisco-sfa/rubiplot/pkg/downloads"
	"github.com/rubisco-sfa/rubiplot/pkg/integrations"
)

// SourceName identifies this service in configuration.
const SourceName = "pypistats"

const (
	categoryWithout = "without_mirrors"
	categoryWith    = "with_mirrors"
)

// Day is one day of downloads.
type Day struct {
	Date      string `json:"date"`
	Category  string `json:"category"`
	Downloads int    `json:"downloads"`
}

// Client provides access to the pypistats.org API.
type Client struct {
	*integrations.Client
	baseURL string
	mirrors bool
}

// NewClient creates a pypistats client with the given cache backend.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client:  integrations.NewClient(backend, SourceName, cacheTTL, map[string]string{"Accept": "application/json"}),
		baseURL: "https://pypistats.org/api",
	}
}

// WithMirrors makes the client count mirror downloads.
func (c *Client) WithMirrors() *Client {
	c.mirrors = true
	return c
}

// Name implements downloads.Source.
func (c *Client) Name() string { return SourceName }

// Daily retrieves the overall daily download counts for pkg.
func (c *Client) Daily(ctx context.Context, pkg string, refresh bool) ([]Day, error) {
	pkg = integrations.NormalizePkgName(pkg)

	var days []Day
	err := c.Cached(ctx, pkg+":overall", refresh, &days, func() error {
		return c.fetch(ctx, pkg, &days)
	})
	if err != nil {
		return nil, err
	}
	return days, nil
}

func (c *Client) fetch(ctx context.Context, pkg string, days *[]Day) error {
	var data apiResponse
	url := fmt.Sprintf("%s/packages/%s/overall", c.baseURL, integrations.URLEncode(pkg))
	if err := c.Get(ctx, url, &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: pypistats package %s", err, pkg)
		}
		return err
	}
	*days = data.Data
	return nil
}

// Monthly implements downloads.Source.
func (c *Client) Monthly(ctx context.Context, pkg string, refresh bool) (downloads.Series, error) {
	days, err := c.Daily(ctx, pkg, refresh)
	if err != nil {
		return nil, err
	}
	return c.series(days)
}

func (c *Client) series(days []Day) (downloads.Series, error) {
	want := categoryWithout
	if c.mirrors {
		want = categoryWith
	}

	daily := make(downloads.Series, 0, len(days))
	for _, d := range days {
		if d.Category != want {
			continue
		}
		t, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			return nil, fmt.Errorf("pypistats: invalid date %q: %w", d.Date, err)
		}
		daily = append(daily, downloads.Point{Time: t, Count: d.Downloads})
	}
	return downloads.AggregateMonthly(daily), nil
}

type apiResponse struct {
	Data    []Day  `json:"data"`
	Package string `json:"package"`
	Type    string `json:"type"`
}
