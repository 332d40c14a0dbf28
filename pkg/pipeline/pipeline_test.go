package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rubisco-sfa/rubiplot/pkg/alias"
	"github.com/rubisco-sfa/rubiplot/pkg/authors"
	"github.com/rubisco-sfa/rubiplot/pkg/downloads"
	"github.com/rubisco-sfa/rubiplot/pkg/errors"
)

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		formats []string
		allowed []string
		wantErr bool
	}{
		{[]string{"svg", "pdf"}, NetworkFormats, false},
		{[]string{"dot"}, NetworkFormats, false},
		{[]string{"dot"}, TimelineFormats, true},
		{[]string{"png", "json"}, TimelineFormats, false},
		{[]string{"SVG"}, NetworkFormats, true}, // case-sensitive
		{[]string{""}, NetworkFormats, true},
		{nil, NetworkFormats, false},
	}

	for _, tt := range tests {
		err := ValidateFormats(tt.formats, tt.allowed)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormats(%q) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormats(%q) code = %s", tt.formats, errors.GetCode(err))
		}
	}
}

func TestValidateVizType(t *testing.T) {
	tests := []struct {
		vizType string
		wantErr bool
	}{
		{"chord", false},
		{"nodelink", false},
		{"tower", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateVizType(tt.vizType)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVizType(%q) error = %v, wantErr %v", tt.vizType, err, tt.wantErr)
		}
	}
}

func TestNetworkOptionsDefaults(t *testing.T) {
	opts := NetworkOptions{BibDir: "bib", Roster: authors.DefaultRoster()}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if opts.Glob != DefaultGlob {
		t.Errorf("Glob = %q", opts.Glob)
	}
	if opts.AliasFile != DefaultAliasFile {
		t.Errorf("AliasFile = %q", opts.AliasFile)
	}
	if opts.VizType != VizChord {
		t.Errorf("VizType = %q", opts.VizType)
	}
	if !reflect.DeepEqual(opts.Formats, []string{FormatSVG}) {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Second call must not change anything.
	before := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if before.Glob != opts.Glob || before.VizType != opts.VizType || len(before.Formats) != len(opts.Formats) {
		t.Error("ValidateAndSetDefaults() is not idempotent")
	}
}

func TestNetworkOptionsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts NetworkOptions
		code errors.Code
	}{
		{"no dir", NetworkOptions{Roster: authors.DefaultRoster()}, errors.ErrCodeInvalidInput},
		{"empty roster", NetworkOptions{BibDir: "bib"}, errors.ErrCodeInvalidRoster},
		{"bad type", NetworkOptions{BibDir: "bib", Roster: authors.DefaultRoster(), VizType: "tower"}, errors.ErrCodeInvalidFormat},
		{"bad format", NetworkOptions{BibDir: "bib", Roster: authors.DefaultRoster(), Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestDownloadsOptionsDefaults(t *testing.T) {
	opts := DownloadsOptions{Package: "ilamb"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if opts.StorePath != "ilamb_downloads.csv" {
		t.Errorf("StorePath = %q", opts.StorePath)
	}
	if !reflect.DeepEqual(opts.Formats, []string{FormatPNG}) {
		t.Errorf("Formats = %v", opts.Formats)
	}

	bad := DownloadsOptions{Package: "../etc"}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidPackage) {
		t.Errorf("path traversal error = %v", err)
	}
}

// writeProject lays out a bibliography directory and a curated alias file.
func writeProject(t *testing.T) (dir, aliasFile string) {
	t.Helper()
	dir = t.TempDir()
	bibDir := filepath.Join(dir, "bib")
	if err := os.MkdirAll(bibDir, 0o755); err != nil {
		t.Fatal(err)
	}
	records := `
@article{p1,
  author = {A One and B Two},
  title = {First}
}
@article{p2,
  author = {B. Two and A One}
}
@misc{p3,
  title = {No authors}
}
`
	if err := os.WriteFile(filepath.Join(bibDir, "refs.bib"), []byte(records), 0o644); err != nil {
		t.Fatal(err)
	}
	aliasFile = filepath.Join(dir, alias.DefaultFile)
	if err := alias.Save(aliasFile, alias.Aliases{"One": {"A One"}, "Two": {"B Two", "B. Two"}}); err != nil {
		t.Fatal(err)
	}
	return bibDir, aliasFile
}

func oneTwoRoster() authors.Roster {
	return authors.Roster{Names: []string{"A One", "B Two"}, Affiliations: []string{"X", "Y"}}
}

func TestRunNetwork(t *testing.T) {
	bibDir, aliasFile := writeProject(t)
	runner := NewRunner(nil, nil)

	result, err := runner.RunNetwork(context.Background(), NetworkOptions{
		BibDir:    bibDir,
		AliasFile: aliasFile,
		Roster:    oneTwoRoster(),
		Formats:   []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("RunNetwork() error: %v", err)
	}
	if result.RunID == "" {
		t.Error("RunID should be set")
	}
	if !reflect.DeepEqual(result.Network.Papers, []int{2, 2}) {
		t.Errorf("Papers = %v, want [2 2]", result.Network.Papers)
	}
	if got := result.Network.Weight(0, 1); got != 2 {
		t.Errorf("Weight(One, Two) = %d, want 2", got)
	}
	if result.Network.Stats.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Network.Stats.Skipped)
	}

	svg := result.Artifacts[FormatSVG]
	if !bytes.HasPrefix(bytes.TrimSpace(svg), []byte("<svg")) && !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("svg artifact does not look like SVG: %.80s", svg)
	}
	var doc struct {
		Nodes []struct {
			Name   string `json:"name"`
			Papers int    `json:"papers"`
		} `json:"nodes"`
		Edges []struct {
			Weight int `json:"weight"`
		} `json:"edges"`
	}
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &doc); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if len(doc.Nodes) != 2 || len(doc.Edges) != 1 || doc.Edges[0].Weight != 2 {
		t.Errorf("json artifact = %+v", doc)
	}
}

func TestRunNetworkNodelinkDOT(t *testing.T) {
	bibDir, aliasFile := writeProject(t)
	result, err := NewRunner(nil, nil).RunNetwork(context.Background(), NetworkOptions{
		BibDir:    bibDir,
		AliasFile: aliasFile,
		Roster:    oneTwoRoster(),
		VizType:   VizNodelink,
		Formats:   []string{FormatDOT},
	})
	if err != nil {
		t.Fatalf("RunNetwork() error: %v", err)
	}
	dot := string(result.Artifacts[FormatDOT])
	if !strings.Contains(dot, "graph G") || !strings.Contains(dot, "n1 -- n0") && !strings.Contains(dot, "n0 -- n1") {
		t.Errorf("unexpected DOT:\n%s", dot)
	}
}

func TestRunNetworkRequiresCuratedAliases(t *testing.T) {
	bibDir, _ := writeProject(t)
	_, err := NewRunner(nil, nil).RunNetwork(context.Background(), NetworkOptions{
		BibDir:    bibDir,
		AliasFile: filepath.Join(t.TempDir(), "missing.yaml"),
		Roster:    oneTwoRoster(),
	})
	if !errors.Is(err, errors.ErrCodeAliasNotCurated) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeAliasNotCurated)
	}
}

func TestRunNetworkRejectsUnknownAliasKey(t *testing.T) {
	bibDir, aliasFile := writeProject(t)
	if err := alias.Save(aliasFile, alias.Aliases{"Three": {"C Three"}}); err != nil {
		t.Fatal(err)
	}
	_, err := NewRunner(nil, nil).RunNetwork(context.Background(), NetworkOptions{
		BibDir:    bibDir,
		AliasFile: aliasFile,
		Roster:    oneTwoRoster(),
	})
	if !errors.Is(err, errors.ErrCodeInvalidAlias) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidAlias)
	}
}

func TestDraftAliases(t *testing.T) {
	bibDir, _ := writeProject(t)
	path := filepath.Join(t.TempDir(), alias.DefaultFile)
	runner := NewRunner(nil, nil)
	opts := NetworkOptions{BibDir: bibDir, AliasFile: path, Roster: oneTwoRoster()}

	c, err := runner.DraftAliases(context.Background(), opts, false)
	if err != nil {
		t.Fatalf("DraftAliases() error: %v", err)
	}
	if got := c.Aliases()["Two"]; !reflect.DeepEqual(got, []string{"B Two", "B. Two"}) {
		t.Errorf("Two candidates = %v", got)
	}
	if _, err := runner.DraftAliases(context.Background(), opts, false); !errors.Is(err, errors.ErrCodeAliasFileExists) {
		t.Errorf("second draft error = %v, want %s", err, errors.ErrCodeAliasFileExists)
	}
	if _, err := runner.DraftAliases(context.Background(), opts, true); err != nil {
		t.Errorf("forced draft error: %v", err)
	}
}

type fakeSource struct {
	series downloads.Series
	calls  int
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Monthly(ctx context.Context, pkg string, refresh bool) (downloads.Series, error) {
	f.calls++
	return f.series, nil
}

type fakeReleases []downloads.Release

func (f fakeReleases) Releases(ctx context.Context, channel, pkg string, refresh bool) ([]downloads.Release, error) {
	return f, nil
}

func month(y int, m time.Month) time.Time { return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC) }

func TestRunDownloads(t *testing.T) {
	src := &fakeSource{series: downloads.Series{
		{Time: month(2019, 1), Count: 10},
		{Time: month(2019, 2), Count: 40},
		{Time: month(2019, 3), Count: 25},
	}}
	store := filepath.Join(t.TempDir(), "pkg_downloads.csv")
	opts := DownloadsOptions{
		Package:   "pkg",
		StorePath: store,
		Source:    src,
		Releases: []downloads.Release{
			{Version: "v1.0", Date: month(2019, 2), Count: 40, HasCount: true},
		},
		ReleaseSource: fakeReleases{
			{Version: "v1.0", Date: month(2019, 1)},
			{Version: "v1.1", Date: month(2019, 3)},
		},
		Channel: "conda-forge",
		Formats: []string{FormatSVG, FormatJSON},
	}
	runner := NewRunner(nil, nil)

	result, err := runner.RunDownloads(context.Background(), opts)
	if err != nil {
		t.Fatalf("RunDownloads() error: %v", err)
	}
	if result.FromStore {
		t.Error("first run should fetch from the source")
	}
	if len(result.Releases) != 2 {
		t.Fatalf("Releases = %+v", result.Releases)
	}
	// Configured v1.0 wins over the fetched one; v1.1 takes its count from the series.
	if r := result.Releases[0]; r.Version != "v1.0" || !r.Date.Equal(month(2019, 2)) {
		t.Errorf("Releases[0] = %+v", r)
	}
	if r := result.Releases[1]; r.Version != "v1.1" || r.Count != 25 {
		t.Errorf("Releases[1] = %+v", r)
	}
	if !bytes.Contains(result.Artifacts[FormatSVG], []byte("v1.1")) {
		t.Error("svg should label release v1.1")
	}
	var doc timelineDoc
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &doc); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if len(doc.Months) != 3 || doc.Months[1].Month != "2019-02" || doc.Months[1].Count != 40 {
		t.Errorf("json months = %+v", doc.Months)
	}

	again, err := runner.RunDownloads(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !again.FromStore || src.calls != 1 {
		t.Errorf("second run: FromStore = %v, calls = %d", again.FromStore, src.calls)
	}
}

func TestRunnerSource(t *testing.T) {
	runner := NewRunner(nil, nil)
	if src, err := runner.Source(SourcePyPIStats, false); err != nil || src == nil || src.Name() != SourcePyPIStats {
		t.Errorf("Source(pypistats) = %v, %v", src, err)
	}
	if src, err := runner.Source("none", false); err != nil || src != nil {
		t.Errorf("Source(none) = %v, %v", src, err)
	}
	if _, err := runner.Source("condastats", false); !errors.Is(err, errors.ErrCodeUnsupportedSource) {
		t.Errorf("Source(condastats) error = %v", err)
	}
	if rs, err := runner.ReleaseSource(SourceAnaconda); err != nil || rs == nil {
		t.Errorf("ReleaseSource(anaconda) = %v, %v", rs, err)
	}
}

func TestWriteArtifacts(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out", "figure")
	paths, err := WriteArtifacts(output, map[string][]byte{
		FormatSVG:  []byte("<svg/>"),
		FormatJSON: []byte("{}"),
	})
	if err != nil {
		t.Fatalf("WriteArtifacts() error: %v", err)
	}
	want := []string{output + ".json", output + ".svg"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
	data, err := os.ReadFile(output + ".svg")
	if err != nil || string(data) != "<svg/>" {
		t.Errorf("svg file = %q, %v", data, err)
	}
	if _, err := WriteArtifacts("", nil); err == nil {
		t.Error("empty output should fail")
	}
}

func TestStatsTotal(t *testing.T) {
	s := Stats{LoadTime: time.Second, BuildTime: 2 * time.Second, RenderTime: 3 * time.Second}
	if s.Total() != 6*time.Second {
		t.Errorf("Total() = %v", s.Total())
	}
	if !strings.Contains(s.String(), "render 3s") {
		t.Errorf("String() = %q", s.String())
	}
}
