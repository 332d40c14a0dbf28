package chord

import (
	"bytes"
	"fmt"
	"math"

	"github.com/rubisco-sfa/rubiplot/pkg/render"
)

const (
	// Size is the width and height of the SVG canvas in pixels.
	Size = 1000.0

	scale      = Size / 2 / Extent
	pxPerPoint = 100.0 / 72.0
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title      string
	background string
}

// WithTitle adds an SVG <title> element.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithBackground fills the canvas with a solid color.
func WithBackground(c string) SVGOption { return func(r *svgRenderer) { r.background = c } }

// RenderSVG draws the layout on a square canvas.
func RenderSVG(l Layout, opts ...SVGOption) []byte {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	render.SVGHeader(&buf, Size, Size)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", render.EscapeXML(r.title))
	}
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.background)
	}

	buf.WriteString(`  <g id="chords" fill="none" stroke-linecap="round">` + "\n")
	for _, c := range l.Chords {
		renderChord(&buf, l, c)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g id="groups" fill="none">` + "\n")
	for _, g := range l.Groups {
		renderArc(&buf, g)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g id="labels" font-family="sans-serif" dominant-baseline="central">` + "\n")
	for _, g := range l.Groups {
		renderLabel(&buf, g.Label)
	}
	for _, lb := range l.Labels {
		renderLabel(&buf, lb)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// px maps figure units to canvas pixels with y pointing down.
func px(x, y float64) (float64, float64) {
	return Size/2 + x*scale, Size/2 - y*scale
}

func renderChord(buf *bytes.Buffer, l Layout, c Chord) {
	a, b := l.Members[c.From], l.Members[c.To]
	x1, y1 := px(a.X(ChordRadius), a.Y(ChordRadius))
	x2, y2 := px(b.X(ChordRadius), b.Y(ChordRadius))
	color := ExternalColor
	if c.Internal {
		color = InternalColor
	}
	fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"><title>%s &amp; %s: %d</title></line>`+"\n",
		x1, y1, x2, y2, color, c.Width*pxPerPoint,
		render.EscapeXML(a.Name), render.EscapeXML(b.Name), c.Weight)
}

func renderArc(buf *bytes.Buffer, g Group) {
	x1, y1 := px(ArcRadius*math.Cos(rad(g.Start)), ArcRadius*math.Sin(rad(g.Start)))
	x2, y2 := px(ArcRadius*math.Cos(rad(g.End)), ArcRadius*math.Sin(rad(g.End)))
	large := 0
	if g.End-g.Start > 180 {
		large = 1
	}
	rpx := ArcRadius * scale
	// sweep-flag 0 runs counterclockwise on screen.
	fmt.Fprintf(buf, `    <path d="M %.2f %.2f A %.2f %.2f 0 %d 0 %.2f %.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
		x1, y1, rpx, rpx, large, x2, y2, g.Color, ArcWidth*pxPerPoint)
}

func renderLabel(buf *bytes.Buffer, lb Label) {
	x, y := px(lb.X, lb.Y)
	anchor := "start"
	if lb.AlignEnd {
		anchor = "end"
	}
	weight := ""
	if lb.Bold {
		weight = ` font-weight="bold"`
	}
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" transform="rotate(%.2f %.2f %.2f)" text-anchor="%s" font-size="%.1f" fill="%s"%s xml:space="preserve">%s</text>`+"\n",
		x, y, -lb.Rotation, x, y, anchor, lb.Size*pxPerPoint, lb.Color, weight, render.EscapeXML(lb.Text))
}
