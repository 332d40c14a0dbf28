// Package render provides the output stage shared by rubiplot's figures.
//
// # Overview
//
// Each figure is drawn by its own subpackage:
//
//   - [chord]: circular co-authorship diagram, hand-written SVG
//   - [nodelink]: co-authorship graph laid out by Graphviz (circo)
//   - [timeline]: monthly downloads with release markers, SVG or PNG
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := chord.RenderSVG(layout)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// The timeline has a native PNG encoder and does not need rsvg-convert.
//
// [chord]: github.com/rubisco-sfa/rubiplot/pkg/render/chord
// [nodelink]: github.com/rubisco-sfa/rubiplot/pkg/render/nodelink
// [timeline]: github.com/rubisco-sfa/rubiplot/pkg/render/timeline
package render
