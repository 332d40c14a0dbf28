// Package nodelink renders a co-authorship network as a node-link diagram.
//
// # Overview
//
// This is an alternative to the chord diagram. Members become circles
// filled with their affiliation color and sized by paper count, and pairs
// that wrote together are joined by undirected edges whose width grows
// with the pair's count. Graphviz places the nodes with the circo engine,
// which arranges them around rings.
//
// # Usage
//
// Convert a network to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(net, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # Options
//
//   - Detailed: node labels include affiliation and paper count
//   - Isolated: keep members that have no co-authors on the roster
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
