package timeline

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rubisco-sfa/rubiplot/pkg/render"
)

// RenderSVG draws the layout as SVG.
func RenderSVG(l Layout) []byte {
	var buf bytes.Buffer
	render.SVGHeader(&buf, l.Width, l.Height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="#ffffff"/>`+"\n")
	fmt.Fprintf(&buf, `  <defs><clipPath id="plot"><rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"/></clipPath></defs>`+"\n",
		l.Plot.Left, l.Plot.Top, l.Plot.Width(), l.Plot.Height())

	buf.WriteString(`  <g font-family="sans-serif">` + "\n")
	renderBands(&buf, l)
	renderLine(&buf, l)
	renderMarkers(&buf, l)
	renderAxes(&buf, l)
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderBands(buf *bytes.Buffer, l Layout) {
	for _, b := range l.Bands {
		if !b.Shaded {
			continue
		}
		fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="#000000" fill-opacity="%.2f"/>`+"\n",
			b.Left, l.Plot.Top, b.Right-b.Left, l.Plot.Height(), ShadeAlpha)
	}
	for _, y := range l.YearLabels {
		fill := `fill="#000000" fill-opacity="0.10"`
		if y.White {
			fill = `fill="#ffffff"`
		}
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="%.1f" font-weight="bold" dominant-baseline="hanging" %s xml:space="preserve">%s</text>`+"\n",
			y.At.X, y.At.Y, YearSize, fill, render.EscapeXML(y.Text))
	}
}

func renderLine(buf *bytes.Buffer, l Layout) {
	if len(l.Line) == 0 {
		return
	}
	pts := make([]string, len(l.Line))
	for i, p := range l.Line {
		pts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	fmt.Fprintf(buf, `    <polyline points="%s" fill="none" stroke="%s" stroke-width="%.1f" stroke-linejoin="round" clip-path="url(#plot)"/>`+"\n",
		strings.Join(pts, " "), LineColor, LineWidth)
}

func renderMarkers(buf *bytes.Buffer, l Layout) {
	for _, m := range l.Markers {
		fmt.Fprintf(buf, `    <circle cx="%.2f" cy="%.2f" r="%.1f" fill="#000000"/>`+"\n", m.At.X, m.At.Y, MarkerSize)
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="%.1f" text-anchor="middle">%s</text>`+"\n",
			m.LabelAt.X, m.LabelAt.Y, TextSize, render.EscapeXML(m.Label))
	}
}

func renderAxes(buf *bytes.Buffer, l Layout) {
	p := l.Plot
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="#000000" stroke-width="1"/>`+"\n",
		p.Left, p.Top, p.Width(), p.Height())
	for _, t := range l.Ticks {
		fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#000000"/>`+"\n", p.Left-6, t.Y, p.Left, t.Y)
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="%.1f" text-anchor="end" dominant-baseline="central">%s</text>`+"\n",
			p.Left-10, t.Y, TextSize*0.8, render.EscapeXML(t.Label))
	}
	if l.YLabel != "" {
		x, y := 24.0, p.Top+p.Height()/2
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="%.1f" text-anchor="middle" dominant-baseline="central" transform="rotate(-90 %.2f %.2f)">%s</text>`+"\n",
			x, y, TextSize, x, y, render.EscapeXML(l.YLabel))
	}
}
