package timeline

import (
	"math"
	"time"

	"github.com/rubisco-sfa/rubiplot/pkg/downloads"
	"github.com/rubisco-sfa/rubiplot/pkg/errors"
)

const (
	DefaultWidth       = 1600.0
	DefaultHeight      = 600.0
	DefaultLabelOffset = 20.0

	// Font sizes in pixels.
	TextSize = 25.0
	YearSize = 33.0

	LineColor  = "#1f77b4"
	LineWidth  = 2.0
	MarkerSize = 5.0
	ShadeAlpha = 0.1

	marginLeft  = 120.0
	marginRight = 20.0
	marginTop   = 20.0
	marginBot   = 20.0
)

// Options configures the timeline. Zero values select defaults derived
// from the data.
type Options struct {
	Start, End time.Time
	YMin, YMax float64
	// YRange uses YMin and YMax as given, even when both are zero.
	YRange      bool
	YLabel      string
	LabelOffset float64
	Width       float64
	Height      float64
}

// Point is a canvas position in pixels, y pointing down.
type Point struct{ X, Y float64 }

// Rect is a canvas rectangle.
type Rect struct{ Left, Top, Right, Bottom float64 }

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Marker is a release dot and its label.
type Marker struct {
	At      Point
	Label   string
	LabelAt Point // bottom center of the label
}

// Band is one calendar year of the background.
type Band struct {
	Year   int
	Left   float64
	Right  float64
	Shaded bool
}

// YearLabel is printed at the top of a band, starting at January 1st.
type YearLabel struct {
	Text  string
	At    Point // top left of the text
	White bool  // white on a shaded band, faint black otherwise
}

// Tick is a y-axis tick.
type Tick struct {
	Y     float64
	Label string
}

// Layout is a fully positioned timeline.
type Layout struct {
	Width, Height float64
	Plot          Rect
	Start, End    time.Time
	YMin, YMax    float64
	Line          []Point
	Markers       []Marker
	Bands         []Band
	YearLabels    []YearLabel
	Ticks         []Tick
	YLabel        string
	// Refit is set when the configured window held none of the series and
	// both ranges were derived from the data instead.
	Refit bool
}

// Compute positions the series and releases. Releases without a count take
// the series value for their month.
func Compute(s downloads.Series, releases []downloads.Release, opts Options) (Layout, error) {
	if len(s) == 0 && len(releases) == 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidSeries, "nothing to plot: empty series and no releases")
	}
	releases = s.Annotate(releases)

	opts.setDefaults()
	refit := outsideWindow(s, opts.Start, opts.End)
	if refit {
		opts.Start, opts.End = time.Time{}, time.Time{}
		opts.YMin, opts.YMax, opts.YRange = 0, 0, false
	}
	start, end := xRange(s, releases, opts)
	if !end.After(start) {
		return Layout{}, errors.New(errors.ErrCodeInvalidConfig,
			"timeline end %s is not after start %s", end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	ymin, ymax := yRange(s, releases, opts)
	if ymax <= ymin {
		return Layout{}, errors.New(errors.ErrCodeInvalidConfig, "y range [%g, %g] is empty", ymin, ymax)
	}

	l := Layout{
		Width:  opts.Width,
		Height: opts.Height,
		Plot: Rect{
			Left:   marginLeft,
			Top:    marginTop,
			Right:  opts.Width - marginRight,
			Bottom: opts.Height - marginBot,
		},
		Start:  start,
		End:    end,
		YMin:   ymin,
		YMax:   ymax,
		YLabel: opts.YLabel,
		Refit:  refit,
	}

	for _, p := range s {
		l.Line = append(l.Line, Point{l.X(p.Time), l.Y(float64(p.Count))})
	}
	for _, r := range releases {
		at := Point{l.X(r.Date), l.Y(float64(r.Count))}
		l.Markers = append(l.Markers, Marker{
			At:      at,
			Label:   r.Version,
			LabelAt: Point{at.X, l.Y(float64(r.Count) + opts.LabelOffset)},
		})
	}
	l.years()
	for _, v := range ticks(ymin, ymax) {
		l.Ticks = append(l.Ticks, Tick{Y: l.Y(v), Label: formatTick(v)})
	}
	return l, nil
}

func (o *Options) setDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.LabelOffset == 0 {
		o.LabelOffset = DefaultLabelOffset
	}
}

// X maps a time to a canvas x coordinate.
func (l Layout) X(t time.Time) float64 {
	span := l.End.Sub(l.Start).Seconds()
	return l.Plot.Left + t.Sub(l.Start).Seconds()/span*l.Plot.Width()
}

// Y maps a count to a canvas y coordinate.
func (l Layout) Y(v float64) float64 {
	return l.Plot.Bottom - (v-l.YMin)/(l.YMax-l.YMin)*l.Plot.Height()
}

func xRange(s downloads.Series, releases []downloads.Release, opts Options) (time.Time, time.Time) {
	start, end := opts.Start, opts.End
	if !start.IsZero() && !end.IsZero() {
		return start, end
	}

	var first, last time.Time
	for _, p := range s {
		if first.IsZero() || p.Time.Before(first) {
			first = p.Time
		}
		if p.Time.After(last) {
			last = p.Time
		}
	}
	for _, r := range releases {
		if first.IsZero() || r.Date.Before(first) {
			first = r.Date
		}
		if r.Date.After(last) {
			last = r.Date
		}
	}
	if start.IsZero() {
		start = downloads.MonthStart(first).AddDate(0, -1, 0)
	}
	if end.IsZero() {
		end = downloads.MonthStart(last).AddDate(0, 1, 0)
	}
	return start, end
}

// outsideWindow reports whether a non-empty series has no point between
// start and end. A zero bound is open.
func outsideWindow(s downloads.Series, start, end time.Time) bool {
	if len(s) == 0 || (start.IsZero() && end.IsZero()) {
		return false
	}
	if !start.IsZero() && !end.IsZero() && !end.After(start) {
		return false
	}
	for _, p := range s {
		if (start.IsZero() || !p.Time.Before(start)) && (end.IsZero() || !p.Time.After(end)) {
			return false
		}
	}
	return true
}

func yRange(s downloads.Series, releases []downloads.Release, opts Options) (float64, float64) {
	if opts.YRange || opts.YMin != 0 || opts.YMax != 0 {
		return opts.YMin, opts.YMax
	}
	top := float64(s.Max())
	for _, r := range releases {
		top = math.Max(top, float64(r.Count)+opts.LabelOffset)
	}
	if top <= 0 {
		top = 1
	}
	return -0.03 * top, 1.06 * top
}

// years fills the alternating background bands and their labels.
func (l *Layout) years() {
	first := l.Start.Year()
	for y := first; y <= l.End.Year(); y++ {
		jan1 := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		next := jan1.AddDate(1, 0, 0)
		from, to := maxTime(jan1, l.Start), minTime(next, l.End)
		if !to.After(from) {
			continue
		}
		shaded := (y-first)%2 == 0
		l.Bands = append(l.Bands, Band{Year: y, Left: l.X(from), Right: l.X(to), Shaded: shaded})
		if !jan1.Before(l.Start) {
			l.YearLabels = append(l.YearLabels, YearLabel{
				Text:  " " + jan1.Format("2006"),
				At:    Point{l.X(jan1), l.Y(l.YMax - 0.0286*(l.YMax-l.YMin))},
				White: shaded,
			})
		}
	}
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
