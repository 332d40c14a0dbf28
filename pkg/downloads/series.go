package downloads

import (
	"sort"
	"time"
)

// Point is a download count for the period starting at Time.
type Point struct {
	Time  time.Time
	Count int
}

// Series is a list of points sorted by time.
type Series []Point

// MonthStart returns midnight UTC on the first day of t's month.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Sort orders the series by time.
func (s Series) Sort() {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Time.Before(s[j].Time) })
}

// At returns the count of the month containing t, or 0 when the series has
// no point in that month.
func (s Series) At(t time.Time) int {
	m := MonthStart(t)
	for _, p := range s {
		if MonthStart(p.Time).Equal(m) {
			return p.Count
		}
	}
	return 0
}

// Max returns the largest count.
func (s Series) Max() int {
	top := 0
	for _, p := range s {
		if p.Count > top {
			top = p.Count
		}
	}
	return top
}

// Span returns the first and last times. Both are zero for an empty series.
func (s Series) Span() (start, end time.Time) {
	if len(s) == 0 {
		return time.Time{}, time.Time{}
	}
	return s[0].Time, s[len(s)-1].Time
}

// Total returns the sum of all counts.
func (s Series) Total() int {
	n := 0
	for _, p := range s {
		n += p.Count
	}
	return n
}

// AggregateMonthly sums points into calendar months. Each result point is
// stamped with the first day of its month in UTC.
func AggregateMonthly(daily Series) Series {
	sums := make(map[time.Time]int)
	for _, p := range daily {
		sums[MonthStart(p.Time)] += p.Count
	}
	out := make(Series, 0, len(sums))
	for t, n := range sums {
		out = append(out, Point{Time: t, Count: n})
	}
	out.Sort()
	return out
}
