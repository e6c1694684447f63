package descriptor

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Sidecar is the optional side-by-side override record for one descriptor,
// keyed by the descriptor's stem. All fields are fallbacks: a sidecar value
// is consulted only when the descriptor text lacks the field, and a sidecar
// never removes a value present in the text. Depot, Token, and ManifestID
// form the legacy single-depot shape.
type Sidecar struct {
	AppID      *int64  `json:"appid" yaml:"appid"`
	Depot      *int64  `json:"depot" yaml:"depot"`
	Token      *string `json:"token" yaml:"token"`
	ManifestID *string `json:"manifest_id" yaml:"manifest_id"`
}

// LoadSidecar reads the override record next to the named descriptor:
// <stem>.json first, then <stem>.yaml. Missing, unreadable, or malformed
// sidecars yield the zero Sidecar; overrides are advisory and never fail an
// operation.
func LoadSidecar(descriptorPath string) Sidecar {
	dir := filepath.Dir(descriptorPath)
	stem := Stem(descriptorPath)

	if sc, ok := readSidecar(filepath.Join(dir, stem+".json"), json.Unmarshal); ok {
		return sc
	}
	if sc, ok := readSidecar(filepath.Join(dir, stem+".yaml"), yaml.Unmarshal); ok {
		return sc
	}
	return Sidecar{}
}

// Apply folds sidecar fallbacks into a parsed descriptor. The appid fills in
// only when the text had none, and the legacy single-depot fields materialize
// an entry only when the text declared no depots at all.
func (s Sidecar) Apply(d Descriptor) Descriptor {
	if d.AppID == 0 && s.AppID != nil {
		d.AppID = *s.AppID
	}
	if len(d.Depots) == 0 && s.Depot != nil {
		entry := DepotEntry{}
		if s.Token != nil {
			entry.Token = *s.Token
		}
		if s.ManifestID != nil {
			entry.ManifestID = *s.ManifestID
		}
		if entry != (DepotEntry{}) {
			if d.Depots == nil {
				d.Depots = make(map[int64]DepotEntry, 1)
			}
			d.Depots[*s.Depot] = entry
		}
	}
	return d
}

func readSidecar(path string, unmarshal func([]byte, any) error) (Sidecar, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Sidecar{}, false
	}
	var sc Sidecar
	if err := unmarshal(data, &sc); err != nil {
		return Sidecar{}, true
	}
	return sc, true
}
