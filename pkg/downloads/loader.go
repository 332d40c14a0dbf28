package downloads

import (
	"context"
	"fmt"

	"github.com/rubisco-sfa/rubiplot/pkg/errors"
)

// Source fetches a monthly series from a statistics service.
type Source interface {
	Name() string
	Monthly(ctx context.Context, pkg string, refresh bool) (Series, error)
}

// Loader reads a series from its store, fetching it on first use.
type Loader struct {
	Source Source
	Store  Store
}

// NewLoader returns a loader for src backed by the CSV file at path.
func NewLoader(src Source, path string) *Loader {
	return &Loader{Source: src, Store: Store{Path: path}}
}

// Load returns the series for pkg. The store is read when it exists and
// refresh is false; otherwise the source is queried and the store written.
func (l *Loader) Load(ctx context.Context, pkg string, refresh bool) (Series, error) {
	s, _, err := l.LoadWithCacheInfo(ctx, pkg, refresh)
	return s, err
}

// LoadWithCacheInfo is Load that also reports whether the store was used.
func (l *Loader) LoadWithCacheInfo(ctx context.Context, pkg string, refresh bool) (Series, bool, error) {
	if !refresh && l.Store.Exists() {
		s, err := l.Store.Read()
		if err != nil {
			return nil, false, err
		}
		return s, true, nil
	}

	if l.Source == nil {
		return nil, false, errors.New(errors.ErrCodeUnsupportedSource,
			"no statistics source configured and %s does not exist", l.Store.Path)
	}
	s, err := l.Source.Monthly(ctx, pkg, refresh)
	if err != nil {
		return nil, false, err
	}
	if len(s) == 0 {
		return nil, false, errors.New(errors.ErrCodeInvalidSeries,
			"%s returned no download data for %s", l.Source.Name(), pkg)
	}
	if err := l.Store.Write(s); err != nil {
		return nil, false, fmt.Errorf("write stats file: %w", err)
	}
	return s, false, nil
}
