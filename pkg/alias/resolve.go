package alias

import (
	"github.com/rubisco-sfa/rubiplot/pkg/authors"
)

// Resolver maps names to roster positions.
type Resolver struct {
	index   map[string]int
	aliases Aliases
}

// NewResolver builds a resolver over roster. The aliases are read at
// lookup time, so spellings added later are honored. Spelling lists are
// sorted in place so that later calls to Add keep them ordered.
func NewResolver(roster authors.Roster, aliases Aliases) *Resolver {
	aliases.normalize()
	index := make(map[string]int, roster.Len())
	for i, last := range roster.LastNames() {
		index[last] = i
	}
	return &Resolver{index: index, aliases: aliases}
}

// Resolve returns the roster position of name. The last name must belong
// to the roster and the full spelling must be one of its aliases.
func (r *Resolver) Resolve(name string) (int, bool) {
	last := authors.LastName(name)
	i, ok := r.index[last]
	if !ok || !r.aliases.Contains(last, name) {
		return -1, false
	}
	return i, true
}

// ResolveAll resolves names in order, dropping the ones that do not
// resolve. Repeated names yield repeated indices.
func (r *Resolver) ResolveAll(names []string) []int {
	var out []int
	for _, n := range names {
		if i, ok := r.Resolve(n); ok {
			out = append(out, i)
		}
	}
	return out
}
