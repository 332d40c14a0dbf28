// Package pkg provides the libraries behind rubiplot, the figure builder for
// the RUBISCO consortium.
//
// # Overview
//
// Rubiplot draws two independent figures:
//
//  1. A co-authorship network of the roster, built from BibTeX exports
//  2. A monthly download timeline of a package, with release markers
//
// # Architecture
//
// The network figure:
//
//	BibTeX directory
//	      ↓
//	  [bib] (records and fields)
//	      ↓
//	  [authors] + [alias] (normalize names, resolve through curated aliases)
//	      ↓
//	  [network] (paper counts and co-authorship matrix)
//	      ↓
//	  [render/chord] or [render/nodelink]
//	      ↓
//	  SVG/PDF/PNG/DOT/JSON output
//
// The download timeline:
//
//	[integrations/pypistats] or a dropped-in CSV
//	      ↓
//	  [downloads] (monthly series, stats file, release markers)
//	      ↓
//	  [render/timeline]
//	      ↓
//	  PNG/SVG/PDF output
//
// [pipeline] runs both sequences for the CLI; [config] loads the TOML file
// that overrides the built-in roster, ranges, and release list.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, logger)
//	result, err := runner.RunNetwork(ctx, pipeline.NetworkOptions{
//	    BibDir:    "bib",
//	    AliasFile: "author_alias.yaml",
//	    Roster:    authors.DefaultRoster(),
//	    Formats:   []string{"svg"},
//	})
//	if err != nil {
//	    return err
//	}
//	_, err = pipeline.WriteArtifacts("author_network", result.Artifacts)
//
// # Package Organization
//
// [bib] - Regex-based BibTeX record and field extraction.
//
// [authors] - Name normalization and the roster.
//
// [alias] - Candidate discovery, the curated YAML alias file, and resolution.
//
// [network] - The co-authorship matrix and its JSON export.
//
// [downloads] - Monthly series, the stats CSV, and release markers.
//
// [integrations] - Cached, retrying HTTP clients for pypistats.org and
// anaconda.org.
//
// [cache] - File cache for raw service responses.
//
// [render] - SVG helpers and rsvg-convert conversion shared by the figures.
//
// [errors] - Coded errors used across packages.
//
// [bib]: https://pkg.go.dev/github.com/rubisco-sfa/rubiplot/pkg/bib
// [authors]: https://pkg.go.dev/github.com/rubisco-sfa/rubiplot/pkg/authors
// [alias]: https://pkg.go.dev/github.com/rubisco-sfa/rubiplot/pkg/alias
// [network]: https://pkg.go.dev/github.com/rubisco-sfa/rubiplot/pkg/network
// [downloads]: https://pkg.go.dev/github.com/rubisco-sfa/rubiplot/pkg/downloads
// [integrations]: https://pkg.go.dev/github.com/rubisco-sfa/rubiplot/pkg/integrations
// [integrations/pypistats]: https://pkg.go.dev/github.com/rubisco-sfa/rubiplot/pkg/integrations/pypistats
// [cache]: https://pkg.go.dev/github.com/rubisco-sfa/rubiplot/pkg/cache
// [config]: https://pkg.go.dev/github.com/rubisco-sfa/rubiplot/pkg/config
// [pipeline]: https://pkg.go.dev/github.com/rubisco-sfa/rubiplot/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/rubisco-sfa/rubiplot/pkg/render
// [render/chord]: https://pkg.go.dev/github.com/rubisco-sfa/rubiplot/pkg/render/chord
// [render/nodelink]: https://pkg.go.dev/github.com/rubisco-sfa/rubiplot/pkg/render/nodelink
// [render/timeline]: https://pkg.go.dev/github.com/rubisco-sfa/rubiplot/pkg/render/timeline
// [errors]: https://pkg.go.dev/github.com/rubisco-sfa/rubiplot/pkg/errors
package pkg
