// Package timeline draws monthly download counts with release markers.
//
// [Compute] maps a [downloads.Series] and its releases onto a pixel canvas:
// the series becomes a polyline, each release a dot with its version label
// above it, and calendar years alternate between shaded and clear bands
// with the year printed at each January 1st. The first year, usually
// partial, is shaded. There are no x tick labels; the year bands carry the
// time axis.
//
// The same [Layout] feeds two sinks. [RenderSVG] writes hand-built SVG and
// [RenderPNG] rasterizes natively with gg and the Go fonts, so PNG output
// does not need any external tool.
//
//	l, err := timeline.Compute(series, releases, timeline.Options{YLabel: "monthly downloads"})
//	png, err := timeline.RenderPNG(l)
//
// [downloads.Series]: github.com/rubisco-sfa/rubiplot/pkg/downloads.Series
package timeline
