package network

import (
	"github.com/rubisco-sfa/rubiplot/pkg/authors"
	"github.com/rubisco-sfa/rubiplot/pkg/bib"
)

// Resolver maps author names to roster positions.
type Resolver interface {
	ResolveAll(names []string) []int
}

// Stats summarizes one build.
type Stats struct {
	Entries  int // records seen
	Skipped  int // records without an author field
	Resolved int // records with at least one resolved author
	Foreign  int // resolved indices outside the roster, ignored
}

// Network is the result of a build.
type Network struct {
	Roster authors.Roster
	Papers []int
	Matrix *Matrix
	Stats  Stats
}

// Build counts papers and co-occurrences over entries.
func Build(entries []bib.Entry, roster authors.Roster, r Resolver) *Network {
	n := roster.Len()
	net := &Network{
		Roster: roster,
		Papers: make([]int, n),
		Matrix: NewMatrix(n),
	}

	for _, e := range entries {
		net.Stats.Entries++
		raw, ok := e.Author()
		if !ok {
			net.Stats.Skipped++
			continue
		}
		net.add(r.ResolveAll(authors.Normalize(raw)))
	}
	return net
}

func (net *Network) add(resolved []int) {
	members := resolved[:0]
	for _, a := range resolved {
		if a < 0 || a >= len(net.Papers) {
			net.Stats.Foreign++
			continue
		}
		members = append(members, a)
	}
	if len(members) == 0 {
		return
	}
	net.Stats.Resolved++

	counted := make(map[int]bool, len(members))
	for _, a := range members {
		if !counted[a] {
			counted[a] = true
			net.Papers[a]++
		}
	}
	for _, a := range members {
		for _, b := range members {
			if a > b {
				// Both indices are in range and a > b, so Inc cannot fail.
				_ = net.Matrix.Inc(a, b)
			}
		}
	}
}

// Weight returns the co-occurrence count of members i and j.
func (net *Network) Weight(i, j int) int { return net.Matrix.Weight(i, j) }

// MaxWeight returns the largest co-occurrence count.
func (net *Network) MaxWeight() int { return net.Matrix.Max() }

// Edges returns every pair with a nonzero count.
func (net *Network) Edges() []Edge { return net.Matrix.Edges() }

// Size returns the number of roster members.
func (net *Network) Size() int { return net.Roster.Len() }
