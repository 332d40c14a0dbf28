package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rubisco-sfa/rubiplot/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	r, _ := cfg.Network.Roster()
	if r.Len() != 23 {
		t.Errorf("roster = %d members", r.Len())
	}
	releases, err := cfg.Downloads.ReleaseList()
	if err != nil {
		t.Fatal(err)
	}
	if len(releases) != 4 || releases[3].Count != 1595 || !releases[3].HasCount {
		t.Errorf("releases = %+v", releases)
	}
	if !releases[0].Date.Equal(time.Date(2018, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("v2.3 date = %v", releases[0].Date)
	}
	start, end, err := cfg.Downloads.Range()
	if err != nil || start.Year() != 2018 || end.Year() != 2022 {
		t.Errorf("range = %v..%v, %v", start, end, err)
	}
	if cfg.Downloads.StorePath() != "ilamb_downloads.csv" {
		t.Errorf("StorePath() = %q", cfg.Downloads.StorePath())
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse(`
[network]
bib_dir = "refs"
formats = ["svg", "pdf"]
names = ["A One", "B Two"]
affiliations = ["X", "Y"]

[downloads]
package = "numpy"
end = "2023-06"

[[downloads.releases]]
version = "v1.0"
date = "2022-03-15"
`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Network.BibDir != "refs" || cfg.Network.Glob != "*.bib" {
		t.Errorf("network = %+v", cfg.Network)
	}
	if len(cfg.Network.Formats) != 2 {
		t.Errorf("formats = %v", cfg.Network.Formats)
	}
	if cfg.Downloads.Source != "pypistats" || cfg.Downloads.Label() != "monthly PyPI downloads" {
		t.Error("unset keys should keep defaults")
	}
	releases, _ := cfg.Downloads.ReleaseList()
	if len(releases) != 1 || releases[0].HasCount {
		t.Errorf("releases = %+v", releases)
	}
	if cfg.Downloads.StorePath() != "numpy_downloads.csv" {
		t.Errorf("StorePath() = %q", cfg.Downloads.StorePath())
	}
}

func TestDownloadsLabel(t *testing.T) {
	tests := []struct {
		source, yLabel, want string
	}{
		{"pypistats", "", "monthly PyPI downloads"},
		{"none", "", "monthly downloads"},
		{"", "", "monthly downloads"},
		{"pypistats", "monthly conda installs", "monthly conda installs"},
	}
	for _, tt := range tests {
		d := DownloadsConfig{Source: tt.source, YLabel: tt.yLabel}
		if got := d.Label(); got != tt.want {
			t.Errorf("Label(%q, %q) = %q, want %q", tt.source, tt.yLabel, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"syntax", "[network\n"},
		{"unknown key", "[network]\ncolour = \"red\"\n"},
		{"roster mismatch", "[network]\nnames = [\"A One\"]\n"},
		{"duplicate last name", "[network]\nnames = [\"A One\", \"B One\"]\naffiliations = [\"X\", \"Y\"]\n"},
		{"bad date", "[downloads]\nstart = \"May 2018\"\n"},
		{"reversed range", "[downloads]\nstart = \"2022-01-01\"\nend = \"2021-01-01\"\n"},
		{"release without date", "[[downloads.releases]]\nversion = \"v1\"\n"},
		{"y range", "[downloads]\ny_min = 10.0\ny_max = 5.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			code := errors.GetCode(err)
			if code != errors.ErrCodeInvalidConfig && code != errors.ErrCodeInvalidRoster {
				t.Errorf("code = %q, err = %v", code, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rubiplot.toml")
	if err := os.WriteFile(path, []byte("[network]\ntype = \"nodelink\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Network.Type != "nodelink" {
		t.Errorf("type = %q", cfg.Network.Type)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file = %v", err)
	}
}
