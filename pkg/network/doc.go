// Package network counts co-authorship between roster members.
//
// [Build] walks the parsed bibliography once. For each record with an
// author field it resolves the names against the roster, counts one paper
// for every distinct member found, and counts one co-occurrence for every
// pair of resolved names. Pair counts live in a [Matrix] that is only ever
// written below the diagonal, so a pair is stored exactly once and a
// member is never paired with itself.
//
// A name listed twice in the same record is counted once for papers, but
// each copy takes part in pairing, which inflates that record's pair
// counts.
package network
