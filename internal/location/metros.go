package location

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/model"
)

// builtinMetros maps normalized city tokens to the canonical metro-area name
// used by the search index. Curated by hand; extend via LoadMetroTable.
var builtinMetros = map[string]string{
	"san francisco":  "san francisco bay area",
	"sf":             "san francisco bay area",
	"oakland":        "san francisco bay area",
	"san jose":       "san francisco bay area",
	"palo alto":      "san francisco bay area",
	"mountain view":  "san francisco bay area",
	"new york":       "new york city metropolitan area",
	"nyc":            "new york city metropolitan area",
	"brooklyn":       "new york city metropolitan area",
	"manhattan":      "new york city metropolitan area",
	"los angeles":    "greater los angeles area",
	"la":             "greater los angeles area",
	"santa monica":   "greater los angeles area",
	"irvine":         "greater los angeles area",
	"chicago":        "greater chicago area",
	"boston":         "greater boston area",
	"cambridge":      "greater boston area",
	"seattle":        "greater seattle area",
	"bellevue":       "greater seattle area",
	"austin":         "austin metropolitan area",
	"dallas":         "dallas-fort worth metroplex",
	"fort worth":     "dallas-fort worth metroplex",
	"houston":        "greater houston area",
	"atlanta":        "atlanta metropolitan area",
	"denver":         "denver metropolitan area",
	"washington":     "washington dc-baltimore area",
	"washington dc":  "washington dc-baltimore area",
	"dc":             "washington dc-baltimore area",
	"baltimore":      "washington dc-baltimore area",
	"miami":          "miami-fort lauderdale area",
	"philadelphia":   "greater philadelphia area",
	"phoenix":        "phoenix metropolitan area",
	"san diego":      "san diego metropolitan area",
	"minneapolis":    "minneapolis-st. paul area",
	"charlotte":      "charlotte metropolitan area",
	"nashville":      "nashville metropolitan area",
	"portland":       "portland metropolitan area",
	"salt lake city": "salt lake city metropolitan area",
}

// metroFile is the YAML shape for externally maintained metro tables.
type metroFile struct {
	Metros map[string]string `yaml:"metros"`
}

// LoadMetroTable merges city-to-metro mappings from a YAML file.
func (s *Selector) LoadMetroTable(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "location: read metro table %s", path)
	}

	var mf metroFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return eris.Wrap(err, "location: parse metro table")
	}

	for city, metro := range mf.Metros {
		s.AddMetro(city, metro)
	}
	return nil
}

// AddMetro registers one city-to-metro mapping, normalizing both sides.
func (s *Selector) AddMetro(city, metro string) {
	city = model.NormalizeName(city)
	metro = model.NormalizeName(metro)
	if city != "" && metro != "" {
		s.metros[city] = metro
	}
}
