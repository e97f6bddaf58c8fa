package model

import "strings"

// SearchFilters describes one contact search invocation. Immutable once built.
type SearchFilters struct {
	JobTitle     string
	Company      string
	Location     string
	SchoolAlumni string
	MaxResults   int

	// ExcludeKeys holds identities the caller has already seen; matching
	// contacts are never returned again.
	ExcludeKeys map[ContactIdentity]struct{}

	// AllowUnscoped permits a search with an unresolved location. Only the
	// prompt-driven caller flow sets this; everyone else gets an error.
	AllowUnscoped bool
}

// Excluded reports whether the given identity is in the caller's exclusion set.
func (f SearchFilters) Excluded(id ContactIdentity) bool {
	if f.ExcludeKeys == nil {
		return false
	}
	_, ok := f.ExcludeKeys[id]
	return ok
}

// StrategyKind classifies how a free-text location should be queried.
type StrategyKind string

const (
	StrategyCountryOnly     StrategyKind = "country_only"
	StrategyMetroPrimary    StrategyKind = "metro_primary"
	StrategyLocalityPrimary StrategyKind = "locality_primary"
	StrategyUnresolved      StrategyKind = "unresolved"
)

// LocationStrategy is derived once per filter set and never mutated.
type LocationStrategy struct {
	Kind      StrategyKind
	City      string
	Region    string
	MetroName string
}

// AliasSet is the set of normalized name variants for one institution.
type AliasSet map[string]struct{}

// NewAliasSet builds an AliasSet from the given variants, normalizing each.
func NewAliasSet(variants ...string) AliasSet {
	s := make(AliasSet, len(variants))
	for _, v := range variants {
		v = NormalizeName(v)
		if v != "" {
			s[v] = struct{}{}
		}
	}
	return s
}

// Contains reports whether the normalized form of name is in the set.
func (a AliasSet) Contains(name string) bool {
	_, ok := a[NormalizeName(name)]
	return ok
}

// Values returns the aliases in no particular order.
func (a AliasSet) Values() []string {
	out := make([]string, 0, len(a))
	for v := range a {
		out = append(out, v)
	}
	return out
}

// NormalizeName lower-cases and collapses interior whitespace.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
