package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
)

// Tab10 is the ten-color categorical palette used for affiliations.
var Tab10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// PaletteColor returns the i-th palette color, wrapping around.
func PaletteColor(i int) string {
	return Tab10[((i%len(Tab10))+len(Tab10))%len(Tab10)]
}

// ParseHex parses a "#rrggbb" color.
func ParseHex(s string) (color.RGBA, error) {
	var c color.RGBA
	if len(s) != 7 || s[0] != '#' {
		return c, fmt.Errorf("invalid color %q", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("invalid color %q: %w", s, err)
	}
	c.A = 0xff
	return c, nil
}

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// SVGHeader writes the opening svg tag for a w×h canvas.
func SVGHeader(buf *bytes.Buffer, w, h float64) {
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
}
