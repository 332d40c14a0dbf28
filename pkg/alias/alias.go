package alias

import (
	"slices"
	"sort"

	"github.com/rubisco-sfa/rubiplot/pkg/authors"
	"github.com/rubisco-sfa/rubiplot/pkg/errors"
)

// Aliases maps a roster last name to the spellings known to refer to that
// member. Spelling lists are kept sorted and free of duplicates.
type Aliases map[string][]string

// Add records spelling as an alias of last. It reports whether the set
// changed.
func (a Aliases) Add(last, spelling string) bool {
	set := a[last]
	i, found := slices.BinarySearch(set, spelling)
	if found {
		return false
	}
	a[last] = slices.Insert(set, i, spelling)
	return true
}

// Remove deletes spelling from the alias set of last.
func (a Aliases) Remove(last, spelling string) bool {
	set := a[last]
	i, found := slices.BinarySearch(set, spelling)
	if !found {
		return false
	}
	a[last] = slices.Delete(set, i, i+1)
	return true
}

// Contains reports whether spelling is an alias of last. It does not rely
// on the list being sorted.
func (a Aliases) Contains(last, spelling string) bool {
	return slices.Contains(a[last], spelling)
}

// Keys returns the last names in sorted order.
func (a Aliases) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the total number of spellings.
func (a Aliases) Len() int {
	n := 0
	for _, s := range a {
		n += len(s)
	}
	return n
}

// Clone returns a deep copy.
func (a Aliases) Clone() Aliases {
	out := make(Aliases, len(a))
	for k, v := range a {
		out[k] = slices.Clone(v)
	}
	return out
}

// normalize sorts and deduplicates every spelling list in place.
func (a Aliases) normalize() {
	for k, v := range a {
		slices.Sort(v)
		a[k] = slices.Compact(v)
	}
}

// Validate checks that every key is the last name of a roster member.
func (a Aliases) Validate(roster authors.Roster) error {
	known := make(map[string]bool, roster.Len())
	for _, last := range roster.LastNames() {
		known[last] = true
	}
	for _, k := range a.Keys() {
		if !known[k] {
			return errors.New(errors.ErrCodeInvalidAlias, "alias key %q is not a roster last name", k)
		}
	}
	return nil
}
