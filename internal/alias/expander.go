// Package alias expands a free-text institution name into the set of name
// variants treated as equivalent during alumni matching. Expansion is pure
// string work; no network calls.
package alias

import (
	"strings"

	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/model"
)

// institutionSuffixes are stripped (and re-appended in variant forms) to get
// at the core token of a school name.
var institutionSuffixes = []string{"university", "college", "institute", "school"}

// Expander generates alias sets. The zero value uses only the built-in peer
// table; LoadPeerTable can extend it.
type Expander struct {
	peers map[string][]string
}

// NewExpander creates an expander seeded with the built-in peer alias table.
func NewExpander() *Expander {
	peers := make(map[string][]string, len(builtinPeers))
	for k, v := range builtinPeers {
		peers[k] = v
	}
	return &Expander{peers: peers}
}

// Expand returns the deduplicated, lower-cased, whitespace-normalized set of
// variants for school. An empty or blank input yields an empty set, which
// callers must treat as "no alumni filter possible".
func (e *Expander) Expand(school string) model.AliasSet {
	norm := model.NormalizeName(school)
	if norm == "" {
		return model.AliasSet{}
	}

	set := model.NewAliasSet(norm)

	// "the" variants: both directions.
	if rest, ok := strings.CutPrefix(norm, "the "); ok {
		addAlias(set, rest)
	} else {
		addAlias(set, "the "+norm)
	}

	// Strip institutional suffixes to obtain the core token, then rebuild the
	// common alternative shapes around it.
	core := norm
	core = strings.TrimPrefix(core, "the ")
	core = strings.TrimPrefix(core, "university of ")
	for _, suffix := range institutionSuffixes {
		core = strings.TrimSuffix(core, " "+suffix)
	}
	core = strings.TrimSpace(core)

	if core != "" && core != norm {
		addAlias(set, core)
		addAlias(set, "university of "+core)
		addAlias(set, core+" university")
	} else if core != "" {
		addAlias(set, "university of "+core)
	}

	// Union with hand-curated peer aliases keyed by any variant found so far.
	for variant := range set {
		for _, peer := range e.peers[variant] {
			addAlias(set, peer)
		}
	}

	return set
}

// AddPeers registers extra peer aliases for a canonical name. Both directions
// are recorded so lookup works from any variant.
func (e *Expander) AddPeers(canonical string, peers ...string) {
	canon := model.NormalizeName(canonical)
	if canon == "" {
		return
	}
	for _, p := range peers {
		p = model.NormalizeName(p)
		if p == "" {
			continue
		}
		e.peers[canon] = append(e.peers[canon], p)
		e.peers[p] = append(e.peers[p], canon)
	}
}

func addAlias(set model.AliasSet, v string) {
	v = model.NormalizeName(v)
	if v != "" {
		set[v] = struct{}{}
	}
}
