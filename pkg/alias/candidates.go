package alias

import (
	"sort"

	"github.com/rubisco-sfa/rubiplot/pkg/authors"
	"github.com/rubisco-sfa/rubiplot/pkg/bib"
)

// Spelling is one distinct way a name was written, with the number of
// records it appeared in.
type Spelling struct {
	Name    string
	Records int
}

// Candidates holds, per roster last name, every spelling seen in the
// bibliography. It is a draft: some spellings may belong to other people
// who share the last name.
type Candidates map[string][]Spelling

// BuildAliasCandidates scans every entry with an author field and collects
// the distinct spellings whose last name is on the roster. Roster members
// that never appear get an empty list so the draft shows them.
func BuildAliasCandidates(entries []bib.Entry, roster authors.Roster) Candidates {
	counts := make(map[string]map[string]int, roster.Len())
	for _, last := range roster.LastNames() {
		counts[last] = make(map[string]int)
	}

	for _, e := range entries {
		raw, ok := e.Author()
		if !ok {
			continue
		}
		seen := make(map[string]bool)
		for _, name := range authors.Normalize(raw) {
			set, ok := counts[authors.LastName(name)]
			if !ok || seen[name] {
				continue
			}
			seen[name] = true
			set[name]++
		}
	}

	out := make(Candidates, len(counts))
	for last, set := range counts {
		spellings := make([]Spelling, 0, len(set))
		for name, n := range set {
			spellings = append(spellings, Spelling{Name: name, Records: n})
		}
		sort.Slice(spellings, func(i, j int) bool {
			return spellings[i].Name < spellings[j].Name
		})
		out[last] = spellings
	}
	return out
}

// Aliases accepts every candidate spelling.
func (c Candidates) Aliases() Aliases {
	out := make(Aliases, len(c))
	for last, spellings := range c {
		names := make([]string, len(spellings))
		for i, s := range spellings {
			names[i] = s.Name
		}
		out[last] = names
	}
	return out
}

// Keys returns the last names in sorted order.
func (c Candidates) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
