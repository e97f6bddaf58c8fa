// Package verify decides whether a person record counts as an alumnus of the
// requested school. Both checks are pure functions over the record's
// education history and an alias set; no network, no state.
package verify

import (
	"strings"

	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/model"
)

// StrictVerify reports whether the record has a degree-granting affiliation
// with the school: an education entry whose name matches an alias AND that
// carries degree evidence (a degree, a major, or bounded dates). Certificate
// programs and one-off courses fail this check.
func StrictVerify(rec model.RawPersonRecord, aliases model.AliasSet) bool {
	for _, edu := range rec.Education {
		if matchesAlias(edu.SchoolName, aliases) && edu.HasDegreeEvidence() {
			return true
		}
	}
	return false
}

// LenientVerify reports whether the record has any affiliation with the
// school: an education entry matching an alias regardless of degree
// evidence, or the index's precomputed primary-education summary matching.
// Every record that passes StrictVerify also passes LenientVerify.
func LenientVerify(rec model.RawPersonRecord, aliases model.AliasSet) bool {
	for _, edu := range rec.Education {
		if matchesAlias(edu.SchoolName, aliases) {
			return true
		}
	}
	return matchesAlias(rec.PrimaryEducation, aliases)
}

// matchesAlias reports whether a school name matches any alias. Long aliases
// match by substring so "usc marshall school of business" still matches
// "university of southern california" suffixed names; short aliases match
// only as whole tokens to keep "usc" from firing inside unrelated words.
func matchesAlias(schoolName string, aliases model.AliasSet) bool {
	name := model.NormalizeName(schoolName)
	if name == "" || len(aliases) == 0 {
		return false
	}
	if aliases.Contains(name) {
		return true
	}

	tokens := strings.Fields(name)
	for alias := range aliases {
		if len(alias) >= 4 && strings.Contains(name, alias) {
			return true
		}
		for _, tok := range tokens {
			if tok == alias {
				return true
			}
		}
	}
	return false
}
