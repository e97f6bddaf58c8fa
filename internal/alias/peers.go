package alias

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// builtinPeers is the hand-maintained table of well-known institution aliases.
// Keys and values are normalized (lower case, collapsed whitespace). The
// expander records both directions, so only one side needs listing here.
var builtinPeers = map[string][]string{
	"usc":        {"university of southern california", "usc viterbi", "usc marshall"},
	"university of southern california": {"usc", "usc viterbi", "usc marshall"},
	"ucla":       {"university of california, los angeles", "university of california los angeles"},
	"university of california los angeles": {"ucla"},
	"uc berkeley": {"university of california, berkeley", "berkeley", "cal"},
	"university of california berkeley": {"uc berkeley", "berkeley", "cal"},
	"mit":        {"massachusetts institute of technology"},
	"massachusetts institute of technology": {"mit"},
	"nyu":        {"new york university", "nyu stern"},
	"new york university": {"nyu", "nyu stern"},
	"upenn":      {"university of pennsylvania", "penn", "wharton"},
	"university of pennsylvania": {"upenn", "penn", "wharton"},
	"stanford":   {"stanford university", "stanford gsb"},
	"stanford university": {"stanford", "stanford gsb"},
	"harvard":    {"harvard university", "harvard business school", "hbs"},
	"harvard university": {"harvard", "harvard business school", "hbs"},
	"georgia tech": {"georgia institute of technology", "gt"},
	"georgia institute of technology": {"georgia tech", "gt"},
	"caltech":    {"california institute of technology"},
	"california institute of technology": {"caltech"},
	"cmu":        {"carnegie mellon", "carnegie mellon university"},
	"carnegie mellon university": {"cmu", "carnegie mellon"},
	"umich":      {"university of michigan", "michigan ross"},
	"university of michigan": {"umich", "michigan ross"},
	"ut austin":  {"university of texas at austin", "university of texas"},
	"university of texas at austin": {"ut austin", "university of texas"},
}

// peerFile is the YAML shape for externally maintained peer tables.
type peerFile struct {
	Peers map[string][]string `yaml:"peers"`
}

// LoadPeerTable merges peer aliases from a YAML file into the expander.
// Missing files are an error; the built-in table remains in place either way.
func (e *Expander) LoadPeerTable(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "alias: read peer table %s", path)
	}

	var pf peerFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return eris.Wrap(err, "alias: parse peer table")
	}

	for canonical, peers := range pf.Peers {
		e.AddPeers(canonical, peers...)
	}
	return nil
}
