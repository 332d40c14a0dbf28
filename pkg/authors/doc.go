// Package authors cleans raw author strings and describes the roster of
// people a co-authorship network is drawn for.
//
// Normalize strips a fixed list of markup tokens and splits on " and ".
// It is not a TeX parser: accents are removed by deleting the escape, so
// "G\"unter" becomes "Gunter", and anything it does not know about passes
// through unchanged.
//
// A [Roster] is an ordered list of full names with a parallel list of
// affiliations. Roster positions are the indices used by the network
// matrix, so the order matters and must stay fixed for one run.
package authors
