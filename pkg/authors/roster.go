package authors

import (
	"github.com/rubisco-sfa/rubiplot/pkg/errors"
)

// Roster is the ordered set of people a network is drawn for.
type Roster struct {
	Names        []string
	Affiliations []string
}

// NewRoster builds a roster and validates it.
func NewRoster(names, affiliations []string) (Roster, error) {
	r := Roster{Names: names, Affiliations: affiliations}
	if err := r.Validate(); err != nil {
		return Roster{}, err
	}
	return r, nil
}

// Len returns the number of members.
func (r Roster) Len() int { return len(r.Names) }

// LastNames derives the last name of every member, in roster order.
func (r Roster) LastNames() []string {
	out := make([]string, len(r.Names))
	for i, n := range r.Names {
		out[i] = LastName(n)
	}
	return out
}

// Index returns the roster position of the member with the given last name.
func (r Roster) Index(last string) (int, bool) {
	for i, n := range r.Names {
		if LastName(n) == last {
			return i, true
		}
	}
	return -1, false
}

// Validate checks that the roster is non-empty, that names and affiliations
// line up, and that no two members share a last name.
func (r Roster) Validate() error {
	if len(r.Names) == 0 {
		return errors.New(errors.ErrCodeInvalidRoster, "roster is empty")
	}
	if len(r.Names) != len(r.Affiliations) {
		return errors.New(errors.ErrCodeInvalidRoster,
			"roster has %d names but %d affiliations", len(r.Names), len(r.Affiliations))
	}

	seen := make(map[string]string, len(r.Names))
	for i, n := range r.Names {
		if n == "" {
			return errors.New(errors.ErrCodeInvalidRoster, "roster name %d is empty", i)
		}
		if r.Affiliations[i] == "" {
			return errors.New(errors.ErrCodeInvalidRoster, "affiliation for %q is empty", n)
		}
		last := LastName(n)
		if prev, ok := seen[last]; ok {
			return errors.New(errors.ErrCodeInvalidRoster,
				"%q and %q share the last name %q", prev, n, last)
		}
		seen[last] = n
	}
	return nil
}

// DefaultRoster returns the built-in roster.
func DefaultRoster() Roster {
	return Roster{
		Names: []string{
			"Kuang-Yu Chang",
			"Nathan Collier",
			"Weiwei Fu",
			"Forrest Hoffman",
			"Trevor Keenan",
			"Gretchen Keppel-Aleks",
			"Charles Koven",
			"Jitendra Kumar",
			"David Lawrence",
			"Yue Li",
			"Jiafu Mao",
			"Zelalem Mekonnen",
			"Umakant Mishra",
			"Keith Moore",
			"Mingquan Mu",
			"Robinson Negron-Juarez",
			"James Randerson",
			"William Riley",
			"Xiaoying Shi",
			"Jinyun Tang",
			"Yaoping Wang",
			"Min Xu",
			"Qing Zhu",
		},
		Affiliations: []string{
			"LBNL", "ORNL", "UCI", "ORNL", "LBNL", "UM", "LBNL", "ORNL",
			"NCAR", "UCI", "ORNL", "LBNL", "SNL", "UCI", "UCI", "LBNL",
			"UCI", "LBNL", "ORNL", "LBNL", "UTK", "ORNL", "LBNL",
		},
	}
}
