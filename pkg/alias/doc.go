// Package alias maps raw author spellings onto roster members.
//
// Resolution is a two-step process. First, [BuildAliasCandidates] scans the
// bibliography and collects every spelling whose last name matches a roster
// member; [WriteDraft] writes these to a YAML file for a person to review.
// Spellings that belong to someone else with the same last name are deleted
// by hand. Second, [LoadCuratedAliases] reads the reviewed file back and a
// [Resolver] answers lookups from it. The curated file is never regenerated
// implicitly: rebuilding it requires an explicit force.
//
// A name resolves when its last name belongs to the roster and its full
// spelling appears in that member's alias set:
//
//	aliases := alias.Aliases{"Collier": {"Nathan Collier", "N. Collier"}}
//	r := alias.NewResolver(roster, aliases)
//	i, ok := r.Resolve("N. Collier")
package alias
