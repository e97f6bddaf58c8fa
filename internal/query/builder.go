// Package query constructs the boolean search queries sent to the person
// search index. The builder produces a clause tree; the executor owns
// serialization, pagination and retries.
package query

import (
	"strings"

	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/model"
)

// Mode selects the title-clause shape.
type Mode string

const (
	// ModePrecise phrase-matches the primary title plus enrichment-provided
	// similar titles.
	ModePrecise Mode = "precise"
	// ModeRelaxed token-matches only the first significant word of the title.
	ModeRelaxed Mode = "relaxed"
	// ModeNoTitle only requires that a title exists. Used when no other
	// constraint is available; the index rejects empty queries.
	ModeNoTitle Mode = "no_title"
)

// maxSimilarTitles caps how many enrichment titles join the precise clause.
const maxSimilarTitles = 4

// countryUnitedStates is the mandatory country constraint on every location
// clause. Place names vary wildly in the index; the country field does not.
const countryUnitedStates = "united states"

// titleStopwords are seniority markers and filler skipped when picking the
// first significant word for relaxed matching.
var titleStopwords = map[string]struct{}{
	"senior": {}, "sr": {}, "sr.": {}, "junior": {}, "jr": {}, "jr.": {},
	"lead": {}, "staff": {}, "principal": {}, "head": {}, "chief": {},
	"the": {}, "of": {}, "a": {}, "an": {}, "and": {}, "&": {},
}

// Params carries everything the builder needs for one query shape.
type Params struct {
	Title         string
	SimilarTitles []string
	Company       string
	Strategy      model.LocationStrategy
	Aliases       model.AliasSet
	Mode          Mode

	// RelaxLocation widens the location clause to the country constraint
	// only, keeping the rest of the query intact.
	RelaxLocation bool
}

// Build assembles the boolean query tree. If every requested constraint
// turns out empty, a minimal existence clause is substituted: the index
// rejects truly unconstrained queries.
func Build(p Params) map[string]any {
	var must []map[string]any

	if clause := titleClause(p); clause != nil {
		must = append(must, clause)
	}
	if clause := locationClause(p.Strategy, p.RelaxLocation); clause != nil {
		must = append(must, clause)
	}
	if clause := companyClause(p.Company); clause != nil {
		must = append(must, clause)
	}
	if clause := aliasClause(p.Aliases); clause != nil {
		must = append(must, clause)
	}

	if len(must) == 0 {
		must = append(must, existsClause("job_title"))
	}

	return map[string]any{
		"bool": map[string]any{
			"must": must,
		},
	}
}

// titleClause builds the title constraint according to the mode.
func titleClause(p Params) map[string]any {
	title := strings.TrimSpace(strings.ToLower(p.Title))

	switch p.Mode {
	case ModeNoTitle:
		return existsClause("job_title")
	case ModeRelaxed:
		word := firstSignificantWord(title)
		if word == "" {
			return nil
		}
		return map[string]any{
			"match": map[string]any{"job_title": word},
		}
	default: // ModePrecise
		if title == "" {
			return nil
		}
		should := []map[string]any{
			{"match_phrase": map[string]any{"job_title": title}},
			{"match": map[string]any{"job_title": title}},
		}
		added := 0
		for _, sim := range p.SimilarTitles {
			sim = strings.TrimSpace(strings.ToLower(sim))
			if sim == "" || sim == title {
				continue
			}
			should = append(should, map[string]any{
				"match_phrase": map[string]any{"job_title": sim},
			})
			added++
			if added >= maxSimilarTitles {
				break
			}
		}
		return shouldClause(should)
	}
}

// locationClause OR-matches across the place fields plus the mandatory
// country constraint, never an exact phrase, because place names vary in
// the index. Unresolved strategies contribute nothing: the caller
// either rejected the search already or explicitly permitted unscoped search.
func locationClause(s model.LocationStrategy, relaxed bool) map[string]any {
	if s.Kind == model.StrategyUnresolved {
		return nil
	}

	country := map[string]any{
		"term": map[string]any{"location_country": countryUnitedStates},
	}
	if s.Kind == model.StrategyCountryOnly || relaxed {
		return country
	}

	var should []map[string]any
	if s.MetroName != "" {
		should = append(should, map[string]any{
			"match": map[string]any{"location_metro": s.MetroName},
		})
	}
	if s.City != "" {
		should = append(should, map[string]any{
			"match": map[string]any{"location_locality": s.City},
		})
	}
	if s.Region != "" {
		should = append(should, map[string]any{
			"match": map[string]any{"location_region": s.Region},
		})
	}
	if len(should) == 0 {
		return country
	}

	return map[string]any{
		"bool": map[string]any{
			"must":                 []map[string]any{country},
			"should":               should,
			"minimum_should_match": 1,
		},
	}
}

// companyClause ORs phrase and token matches so "Bain" still finds
// "Bain & Company". Never exact-only.
func companyClause(company string) map[string]any {
	company = strings.TrimSpace(strings.ToLower(company))
	if company == "" {
		return nil
	}
	return shouldClause([]map[string]any{
		{"match_phrase": map[string]any{"job_company_name": company}},
		{"match": map[string]any{"job_company_name": company}},
	})
}

// aliasClause ORs phrase matches for every school alias against the
// education school-name field.
func aliasClause(aliases model.AliasSet) map[string]any {
	if len(aliases) == 0 {
		return nil
	}
	should := make([]map[string]any, 0, len(aliases))
	for _, a := range aliases.Values() {
		should = append(should, map[string]any{
			"match_phrase": map[string]any{"education.school_name": a},
		})
	}
	return shouldClause(should)
}

func shouldClause(should []map[string]any) map[string]any {
	return map[string]any{
		"bool": map[string]any{
			"should":               should,
			"minimum_should_match": 1,
		},
	}
}

func existsClause(field string) map[string]any {
	return map[string]any{
		"exists": map[string]any{"field": field},
	}
}

// firstSignificantWord returns the first token of title that is not a
// seniority marker or filler word.
func firstSignificantWord(title string) string {
	for _, word := range strings.Fields(title) {
		word = strings.Trim(word, ",.-/")
		if word == "" {
			continue
		}
		if _, skip := titleStopwords[word]; skip {
			continue
		}
		return word
	}
	return ""
}
