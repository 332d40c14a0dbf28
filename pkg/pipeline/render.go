package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/rubisco-sfa/rubiplot/pkg/downloads"
	"github.com/rubisco-sfa/rubiplot/pkg/errors"
	"github.com/rubisco-sfa/rubiplot/pkg/network"
	"github.com/rubisco-sfa/rubiplot/pkg/render"
	"github.com/rubisco-sfa/rubiplot/pkg/render/chord"
	"github.com/rubisco-sfa/rubiplot/pkg/render/nodelink"
	"github.com/rubisco-sfa/rubiplot/pkg/render/timeline"
)

// RenderNetwork generates network outputs in the requested formats.
func RenderNetwork(net *network.Network, opts NetworkOptions) (map[string][]byte, error) {
	if opts.VizType == VizNodelink {
		return renderNodelink(net, opts)
	}
	return renderChord(net, opts)
}

func renderChord(net *network.Network, opts NetworkOptions) (map[string][]byte, error) {
	var svgOpts []chord.SVGOption
	if opts.Title != "" {
		svgOpts = append(svgOpts, chord.WithTitle(opts.Title))
	}
	svg := chord.RenderSVG(chord.Compute(net), svgOpts...)

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svg
		case FormatPDF:
			data, err = render.ToPDF(svg)
		case FormatPNG:
			data, err = render.ToPNG(svg, DefaultPNGScale)
		case FormatJSON:
			data, err = networkJSON(net)
		default:
			return nil, fmt.Errorf("unsupported chord format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderNodelink(net *network.Network, opts NetworkOptions) (map[string][]byte, error) {
	dot := nodelink.ToDOT(net, nodelink.Options{Detailed: opts.Detailed, Isolated: opts.Isolated})

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = nodelink.RenderSVG(dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(dot, DefaultPNGScale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(dot)
		case FormatJSON:
			data, err = networkJSON(net)
		default:
			return nil, fmt.Errorf("unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func networkJSON(net *network.Network) ([]byte, error) {
	var buf bytes.Buffer
	if err := network.WriteJSON(net, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderTimeline generates timeline outputs in the requested formats.
func RenderTimeline(l timeline.Layout, result *DownloadsResult, opts DownloadsOptions) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = timeline.RenderSVG(l)
		case FormatPNG:
			data, err = timeline.RenderPNG(l)
		case FormatPDF:
			data, err = render.ToPDF(timeline.RenderSVG(l))
		case FormatJSON:
			data, err = timelineJSON(opts.Package, result)
		default:
			return nil, fmt.Errorf("unsupported timeline format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

type timelineDoc struct {
	Package  string       `json:"package"`
	Months   []monthDoc   `json:"months"`
	Releases []releaseDoc `json:"releases"`
}

type monthDoc struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type releaseDoc struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Count   int    `json:"count"`
}

func timelineJSON(pkg string, result *DownloadsResult) ([]byte, error) {
	doc := timelineDoc{
		Package:  pkg,
		Months:   make([]monthDoc, 0, len(result.Series)),
		Releases: make([]releaseDoc, 0, len(result.Releases)),
	}
	for _, p := range result.Series {
		doc.Months = append(doc.Months, monthDoc{Month: p.Time.Format("2006-01"), Count: p.Count})
	}
	for _, rel := range result.Releases {
		doc.Releases = append(doc.Releases, releaseDoc{
			Version: rel.Version,
			Date:    rel.Date.Format(time.DateOnly),
			Count:   rel.Count,
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}

// WriteArtifacts writes each artifact to "<output>.<format>" and returns the
// paths in format order.
func WriteArtifacts(output string, artifacts map[string][]byte) ([]string, error) {
	if output == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "output path is required")
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	formats := make([]string, 0, len(artifacts))
	for format := range artifacts {
		formats = append(formats, format)
	}
	slices.Sort(formats)

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := output + "." + format
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// releaseVersions lists the versions of releases in order.
func releaseVersions(releases []downloads.Release) []string {
	out := make([]string, len(releases))
	for i, r := range releases {
		out[i] = r.Version
	}
	return out
}
