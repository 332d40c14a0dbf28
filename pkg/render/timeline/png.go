package timeline

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/rubisco-sfa/rubiplot/pkg/render"
)

var (
	fontsOnce             sync.Once
	regularFont, boldFont *truetype.Font
	fontErr               error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if regularFont, fontErr = truetype.Parse(goregular.TTF); fontErr != nil {
			return
		}
		boldFont, fontErr = truetype.Parse(gobold.TTF)
	})
	return fontErr
}

func face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72})
}

// RenderPNG rasterizes the layout.
func RenderPNG(l Layout) ([]byte, error) {
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}

	dc := gg.NewContext(int(math.Ceil(l.Width)), int(math.Ceil(l.Height)))
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	p := l.Plot
	dc.SetRGBA(0, 0, 0, ShadeAlpha)
	for _, b := range l.Bands {
		if b.Shaded {
			dc.DrawRectangle(b.Left, p.Top, b.Right-b.Left, p.Height())
			dc.Fill()
		}
	}
	dc.SetFontFace(face(boldFont, YearSize))
	for _, y := range l.YearLabels {
		if y.White {
			dc.SetRGB(1, 1, 1)
		} else {
			dc.SetRGBA(0, 0, 0, ShadeAlpha)
		}
		dc.DrawStringAnchored(y.Text, y.At.X, y.At.Y, 0, 1)
	}

	if len(l.Line) > 0 {
		dc.Push()
		dc.DrawRectangle(p.Left, p.Top, p.Width(), p.Height())
		dc.Clip()
		c, _ := render.ParseHex(LineColor)
		dc.SetColor(c)
		dc.SetLineWidth(LineWidth)
		dc.MoveTo(l.Line[0].X, l.Line[0].Y)
		for _, pt := range l.Line[1:] {
			dc.LineTo(pt.X, pt.Y)
		}
		dc.Stroke()
		dc.Pop()
		dc.ResetClip()
	}

	dc.SetFontFace(face(regularFont, TextSize))
	dc.SetRGB(0, 0, 0)
	for _, m := range l.Markers {
		dc.DrawCircle(m.At.X, m.At.Y, MarkerSize)
		dc.Fill()
		dc.DrawStringAnchored(m.Label, m.LabelAt.X, m.LabelAt.Y, 0.5, 0)
	}

	dc.SetLineWidth(1)
	dc.DrawRectangle(p.Left, p.Top, p.Width(), p.Height())
	dc.Stroke()

	dc.SetFontFace(face(regularFont, TextSize*0.8))
	for _, t := range l.Ticks {
		dc.DrawLine(p.Left-6, t.Y, p.Left, t.Y)
		dc.Stroke()
		dc.DrawStringAnchored(t.Label, p.Left-10, t.Y, 1, 0.35)
	}
	if l.YLabel != "" {
		dc.SetFontFace(face(regularFont, TextSize))
		x, y := 24.0, p.Top+p.Height()/2
		dc.Push()
		dc.RotateAbout(-math.Pi/2, x, y)
		dc.DrawStringAnchored(l.YLabel, x, y, 0.5, 0.35)
		dc.Pop()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
