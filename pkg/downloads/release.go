package downloads

import (
	"sort"
	"time"
)

// Release marks a published version on the timeline.
type Release struct {
	Version string
	Date    time.Time
	Count   int
	// HasCount is false when Count should be read from the series.
	HasCount bool
}

// Annotate returns a copy of releases with missing counts filled from s,
// sorted by date.
func (s Series) Annotate(releases []Release) []Release {
	out := make([]Release, len(releases))
	copy(out, releases)
	for i := range out {
		if !out[i].HasCount {
			out[i].Count = s.At(out[i].Date)
			out[i].HasCount = true
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
