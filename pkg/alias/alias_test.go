package alias

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/rubisco-sfa/rubiplot/pkg/authors"
	"github.com/rubisco-sfa/rubiplot/pkg/bib"
	"github.com/rubisco-sfa/rubiplot/pkg/errors"
)

func testRoster() authors.Roster {
	return authors.Roster{
		Names:        []string{"Alice One", "Bob Two", "Carol Three"},
		Affiliations: []string{"X", "Y", "X"},
	}
}

func entries(authorFields ...string) []bib.Entry {
	out := make([]bib.Entry, len(authorFields))
	for i, a := range authorFields {
		out[i] = bib.Entry{Fields: map[string]string{}}
		if a != "" {
			out[i].Fields[bib.FieldAuthor] = a
		}
	}
	return out
}

func TestBuildAliasCandidates(t *testing.T) {
	es := entries(
		"Alice One and Bob Two",
		"A. One and Zed Nobody",
		"",
		"Alice One and Alice One and Dan Two",
	)
	c := BuildAliasCandidates(es, testRoster())

	want := Candidates{
		"One":   {{Name: "A. One", Records: 1}, {Name: "Alice One", Records: 2}},
		"Two":   {{Name: "Bob Two", Records: 1}, {Name: "Dan Two", Records: 1}},
		"Three": {},
	}
	if !reflect.DeepEqual(c, want) {
		t.Errorf("BuildAliasCandidates() = %+v, want %+v", c, want)
	}

	a := c.Aliases()
	if !reflect.DeepEqual(a["One"], []string{"A. One", "Alice One"}) {
		t.Errorf("Aliases()[One] = %v", a["One"])
	}
}

func TestBuildAliasCandidatesDeterministic(t *testing.T) {
	es := entries("Bob Two and B. Two", "Robert Two", "B. Two")
	first := BuildAliasCandidates(es, testRoster())
	for i := 0; i < 10; i++ {
		if got := BuildAliasCandidates(es, testRoster()); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}

func TestAliasesAdd(t *testing.T) {
	a := Aliases{}
	if !a.Add("One", "Alice One") {
		t.Error("first Add should change the set")
	}
	if a.Add("One", "Alice One") {
		t.Error("repeated Add should not change the set")
	}
	a.Add("One", "A. One")
	if !reflect.DeepEqual(a["One"], []string{"A. One", "Alice One"}) {
		t.Errorf("spellings = %v, want sorted", a["One"])
	}
	if !a.Contains("One", "A. One") || a.Contains("One", "A One") {
		t.Error("Contains() mismatch")
	}
	if !a.Remove("One", "A. One") || a.Remove("One", "A. One") {
		t.Error("Remove() mismatch")
	}
	if a.Len() != 1 {
		t.Errorf("Len() = %d, want 1", a.Len())
	}
}

func TestAliasesValidate(t *testing.T) {
	r := testRoster()
	if err := (Aliases{"One": {"Alice One"}, "Three": nil}).Validate(r); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	err := (Aliases{"One": {"Alice One"}, "Four": {"D. Four"}}).Validate(r)
	if !errors.Is(err, errors.ErrCodeInvalidAlias) {
		t.Errorf("Validate() = %v, want INVALID_ALIAS", err)
	}
}

func TestResolver(t *testing.T) {
	aliases := Aliases{"One": {"A. One", "Alice One"}, "Two": {"Bob Two"}}
	r := NewResolver(testRoster(), aliases)

	tests := []struct {
		name string
		want int
		ok   bool
	}{
		{"Alice One", 0, true},
		{"A. One", 0, true},
		{"Bob Two", 1, true},
		{"Dan Two", -1, false},
		{"Carol Three", -1, false},
		{"Zed Nobody", -1, false},
		{"", -1, false},
	}
	for _, tt := range tests {
		got, ok := r.Resolve(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Resolve(%q) = %d, %v; want %d, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}

	all := r.ResolveAll([]string{"Bob Two", "Zed Nobody", "Alice One", "Bob Two"})
	if !reflect.DeepEqual(all, []int{1, 0, 1}) {
		t.Errorf("ResolveAll() = %v, want [1 0 1]", all)
	}
}

func TestResolverMonotonic(t *testing.T) {
	aliases := Aliases{"One": {"Alice One"}}
	r := NewResolver(testRoster(), aliases)
	names := []string{"Alice One", "A. One", "Bob Two", "B. Two"}

	before := len(r.ResolveAll(names))
	aliases.Add("One", "A. One")
	after := len(r.ResolveAll(names))
	if after < before || after != 2 {
		t.Errorf("resolved %d before and %d after adding a spelling", before, after)
	}
	aliases.Add("Two", "B. Two")
	if got := len(r.ResolveAll(names)); got < after {
		t.Errorf("resolved count dropped from %d to %d", after, got)
	}
}

func TestResolverUnsortedAliases(t *testing.T) {
	roster := authors.Roster{Names: []string{"Nathan Collier"}, Affiliations: []string{"ORNL"}}
	aliases := Aliases{"Collier": {"Nathan Collier", "N. Collier", "Nathan Collier"}}
	r := NewResolver(roster, aliases)

	for _, name := range []string{"Nathan Collier", "N. Collier"} {
		if i, ok := r.Resolve(name); !ok || i != 0 {
			t.Errorf("Resolve(%q) = %d, %v; want 0, true", name, i, ok)
		}
	}
	if !reflect.DeepEqual(aliases["Collier"], []string{"N. Collier", "Nathan Collier"}) {
		t.Errorf("aliases = %v, want sorted and deduplicated", aliases["Collier"])
	}

	aliases.Add("Collier", "N. M. Collier")
	if i, ok := r.Resolve("N. M. Collier"); !ok || i != 0 {
		t.Errorf("Resolve(added) = %d, %v; want 0, true", i, ok)
	}
	if !slices.IsSorted(aliases["Collier"]) {
		t.Errorf("Add broke ordering: %v", aliases["Collier"])
	}
}

func TestAliasesContainsUnsorted(t *testing.T) {
	a := Aliases{"Collier": {"Nathan Collier", "N. Collier"}}
	if !a.Contains("Collier", "N. Collier") || !a.Contains("Collier", "Nathan Collier") {
		t.Error("Contains() should find spellings in an unsorted list")
	}
	if a.Contains("Collier", "Forrest Hoffman") {
		t.Error("Contains() found a spelling that is not listed")
	}
}

func TestWriteDraftAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases", DefaultFile)
	c := BuildAliasCandidates(entries("Alice One and Bob Two", "Alice One"), testRoster())

	if err := WriteDraft(path, c, false); err != nil {
		t.Fatalf("WriteDraft() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{"# Author aliases", "Alice One", "2 records", "1 record"} {
		if !strings.Contains(text, want) {
			t.Errorf("draft missing %q:\n%s", want, text)
		}
	}

	got, err := LoadCuratedAliases(path)
	if err != nil {
		t.Fatalf("LoadCuratedAliases() error: %v", err)
	}
	want := Aliases{"One": {"Alice One"}, "Two": {"Bob Two"}, "Three": {}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadCuratedAliases() = %v, want %v", got, want)
	}
}

func TestWriteDraftRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := os.WriteFile(path, []byte("One: [\"Alice One\"]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := WriteDraft(path, Candidates{"Two": {{Name: "Bob Two", Records: 1}}}, false)
	if !stderrors.Is(err, ErrCuratedExists) {
		t.Fatalf("WriteDraft() = %v, want ErrCuratedExists", err)
	}
	a, err := LoadCuratedAliases(path)
	if err != nil || !a.Contains("One", "Alice One") {
		t.Fatalf("curated file was modified: %v, %v", a, err)
	}

	if err := WriteDraft(path, Candidates{"Two": {{Name: "Bob Two", Records: 1}}}, true); err != nil {
		t.Fatalf("forced WriteDraft() error: %v", err)
	}
	a, _ = LoadCuratedAliases(path)
	if a.Contains("One", "Alice One") || !a.Contains("Two", "Bob Two") {
		t.Errorf("forced draft not written: %v", a)
	}
}

func TestLoadCuratedAliasesMissing(t *testing.T) {
	_, err := LoadCuratedAliases(filepath.Join(t.TempDir(), DefaultFile))
	if !stderrors.Is(err, ErrNoCuratedAliases) {
		t.Errorf("err = %v, want ErrNoCuratedAliases", err)
	}
	if !errors.Is(err, errors.ErrCodeAliasNotCurated) {
		t.Errorf("err code = %q", errors.GetCode(err))
	}
}

func TestLoadCuratedAliasesNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	content := "One:\n  - Alice One\n  - A. One\n  - Alice One\nThree:\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	a, err := LoadCuratedAliases(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a["One"], []string{"A. One", "Alice One"}) {
		t.Errorf("One = %v", a["One"])
	}
	if a["Three"] == nil || len(a["Three"]) != 0 {
		t.Errorf("Three = %#v, want empty list", a["Three"])
	}
}

func TestLoadCuratedAliasesInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := os.WriteFile(path, []byte("- just\n- a list\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCuratedAliases(path); !errors.Is(err, errors.ErrCodeInvalidAlias) {
		t.Errorf("err = %v, want INVALID_ALIAS", err)
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	a := Aliases{"One": {"Alice One"}}
	if err := Save(path, a); err != nil {
		t.Fatal(err)
	}
	got, err := LoadCuratedAliases(path)
	if err != nil || !reflect.DeepEqual(got, a) {
		t.Errorf("round trip = %v, %v", got, err)
	}
}
