package rowstore

import "github.com/jkwiatkowski/cfm/internal/model"

// Unbounded marks an unset end of a numeric range.
const Unbounded int64 = -1

// Range is an inclusive numeric interval; either end may be left
// Unbounded.
type Range struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// NewRange returns a fully open range.
func NewRange() Range {
	return Range{Min: Unbounded, Max: Unbounded}
}

func (r Range) contains(v int64) bool {
	if r.Min != Unbounded && v < r.Min {
		return false
	}
	if r.Max != Unbounded && v > r.Max {
		return false
	}
	return true
}

// Filter is a structured per-column predicate set. Zero-valued fields
// are inactive: empty Name/Kind skip the equality test, an empty
// Participants slice skips the subset test, and absent ranges pass
// everything.
type Filter struct {
	Name         string           `json:"name"`
	Kind         model.ChatKind   `json:"type"`
	Participants []string         `json:"participants"`
	Ranges       map[string]Range `json:"ranges"`
}

// Matches reports whether the row satisfies every active predicate.
func (f Filter) Matches(r Row) bool {
	if f.Name != "" && r.Name != f.Name {
		return false
	}
	if f.Kind != "" && r.Kind != f.Kind {
		return false
	}
	if len(f.Participants) > 0 && !subset(f.Participants, r.Participants) {
		return false
	}
	for column, rng := range f.Ranges {
		if ColumnBiases[column] != Numberwise {
			return false
		}
		if !rng.contains(numericValue(r, column)) {
			return false
		}
	}
	return true
}

// Filter returns the rows matching the predicate set, in their current
// order.
func (s *Store) Filter(f Filter) []Row {
	out := make([]Row, 0)
	for _, r := range s.rows {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

func subset(want, have []string) bool {
	set := make(map[string]struct{}, len(have))
	for _, name := range have {
		set[name] = struct{}{}
	}
	for _, name := range want {
		if _, ok := set[name]; !ok {
			return false
		}
	}
	return true
}
