package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/rubisco-sfa/rubiplot/pkg/network"
	"github.com/rubisco-sfa/rubiplot/pkg/render"
)

// Engine is the Graphviz layout used for rendering.
const Engine = graphviz.CIRCO

const (
	minPenWidth = 0.5
	maxPenExtra = 8.0
	minNodeSize = 0.4
	maxNodeSize = 1.2
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes affiliation and paper count in node labels.
	Detailed bool

	// Isolated keeps members without any edge.
	Isolated bool
}

// ToDOT converts a network to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(net *network.Network, opts Options) string {
	r := net.Roster
	colors := affiliationColors(r.Affiliations)
	edges := net.Edges()

	linked := make([]bool, net.Size())
	for _, e := range edges {
		linked[e.I], linked[e.J] = true, true
	}
	maxPapers := 0
	for _, p := range net.Papers {
		maxPapers = max(maxPapers, p)
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  layout=%s;\n", Engine)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fontname=\"Helvetica\", fontsize=14, fixedsize=false];\n")
	buf.WriteString("  edge [color=\"#00000080\"];\n")
	buf.WriteString("\n")

	for i, name := range r.Names {
		if !opts.Isolated && !linked[i] {
			continue
		}
		label := name
		if opts.Detailed {
			label = fmt.Sprintf("%s\n%s, %d papers", name, r.Affiliations[i], net.Papers[i])
		}
		size := minNodeSize
		if maxPapers > 0 {
			size += float64(net.Papers[i]) / float64(maxPapers) * (maxNodeSize - minNodeSize)
		}
		fmt.Fprintf(&buf, "  n%d [label=%q, fillcolor=%q, width=%.2f, tooltip=%q];\n",
			i, label, colors[r.Affiliations[i]], size, r.Affiliations[i])
	}

	buf.WriteString("\n")
	top := net.MaxWeight()
	for _, e := range edges {
		w := minPenWidth + float64(e.Weight)/float64(top)*maxPenExtra
		fmt.Fprintf(&buf, "  n%d -- n%d [penwidth=%.2f, weight=%d, tooltip=\"%d\"];\n", e.I, e.J, w, e.Weight, e.Weight)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// affiliationColors assigns palette colors in sorted affiliation order.
func affiliationColors(affiliations []string) map[string]string {
	uniq := make(map[string]bool)
	for _, a := range affiliations {
		uniq[a] = true
	}
	names := make([]string, 0, len(uniq))
	for a := range uniq {
		names = append(names, a)
	}
	sort.Strings(names)

	out := make(map[string]string, len(names))
	for i, a := range names {
		out[a] = render.PaletteColor(i)
	}
	return out
}

// RenderSVG renders a DOT graph to SVG using Graphviz's circo engine.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(Engine)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	var head bytes.Buffer
	render.SVGHeader(&head, w, h)
	return svgTagRe.ReplaceAll(svg, bytes.TrimRight(head.Bytes(), "\n"))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
