// Package location classifies a caller's free-text location into one of the
// query strategies the search layer understands. Classification is table
// driven and runs once per filter set.
package location

import (
	"strings"

	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/model"
)

// countryAliases are the inputs treated as a country-level search.
var countryAliases = map[string]struct{}{
	"united states":            {},
	"united states of america": {},
	"usa":                      {},
	"us":                       {},
	"u.s":                      {},
	"u.s.a":                    {},
	"america":                  {},
}

// Selector classifies locations against the curated metro table.
type Selector struct {
	metros map[string]string // normalized city token -> canonical metro name
}

// NewSelector creates a selector seeded with the built-in metro table.
func NewSelector() *Selector {
	metros := make(map[string]string, len(builtinMetros))
	for k, v := range builtinMetros {
		metros[k] = v
	}
	return &Selector{metros: metros}
}

// Select derives the LocationStrategy for a free-text location.
// Decision order: country alias, metro-table match on the city token,
// locality fallback. Empty or unparseable input is unresolved; callers
// must reject the search unless the flow explicitly permits unscoped search.
func (s *Selector) Select(location string) model.LocationStrategy {
	norm := model.NormalizeName(location)
	if norm == "" {
		return model.LocationStrategy{Kind: model.StrategyUnresolved}
	}

	if _, ok := countryAliases[strings.TrimRight(norm, ".")]; ok {
		return model.LocationStrategy{Kind: model.StrategyCountryOnly}
	}

	city, region := splitCityRegion(norm)
	if city == "" {
		return model.LocationStrategy{Kind: model.StrategyUnresolved}
	}

	if metro, ok := s.lookupMetro(city); ok {
		return model.LocationStrategy{
			Kind:      model.StrategyMetroPrimary,
			City:      city,
			Region:    region,
			MetroName: metro,
		}
	}

	return model.LocationStrategy{
		Kind:   model.StrategyLocalityPrimary,
		City:   city,
		Region: region,
	}
}

// lookupMetro matches the city token against the metro table, exact first,
// then substring in both directions. Place names in the wild rarely match
// the canonical spelling exactly.
func (s *Selector) lookupMetro(city string) (string, bool) {
	if metro, ok := s.metros[city]; ok {
		return metro, true
	}
	for key, metro := range s.metros {
		// Substring matching only for longer keys; short aliases like "la"
		// would swallow unrelated cities ("orlando").
		if len(key) < 4 || len(city) < 4 {
			continue
		}
		if strings.Contains(city, key) || strings.Contains(key, city) {
			return metro, true
		}
	}
	return "", false
}

// splitCityRegion splits "city, region" input on the first comma. A missing
// region is fine; a missing city is not.
func splitCityRegion(norm string) (city, region string) {
	parts := strings.SplitN(norm, ",", 2)
	city = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		region = strings.TrimSpace(parts[1])
	}
	return city, region
}
