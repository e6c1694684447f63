package descriptor

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// ErrNoAppID indicates that an app id could not be inferred from a filename.
var ErrNoAppID = errors.New("no app id digits in filename")

// DepotEntry holds the per-depot values a descriptor declares. Either field
// may be empty; an entry with both empty is never materialized in output.
type DepotEntry struct {
	Token      string
	ManifestID string
}

// Descriptor is the parsed form of one descriptor file. AppID is zero when
// the text carries no standalone addappid marker.
type Descriptor struct {
	AppID  int64
	Depots map[int64]DepotEntry
}

// DepotIDs returns the declared depot ids in ascending order.
func (d Descriptor) DepotIDs() []int64 {
	ids := make([]int64, 0, len(d.Depots))
	for id := range d.Depots {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Manifests returns the subset of depots that declare a manifest id, keyed by
// depot id.
func (d Descriptor) Manifests() map[int64]string {
	out := make(map[int64]string, len(d.Depots))
	for id, entry := range d.Depots {
		if entry.ManifestID != "" {
			out[id] = entry.ManifestID
		}
	}
	return out
}

// HasManifests reports whether any depot declares a manifest id.
func (d Descriptor) HasManifests() bool {
	for _, entry := range d.Depots {
		if entry.ManifestID != "" {
			return true
		}
	}
	return false
}

// Multi reports whether the descriptor spans more than one depot.
func (d Descriptor) Multi() bool {
	return len(d.Depots) > 1
}

// Stem returns the base name of path without its extension. Sidecar files and
// archive names are keyed by the stem.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

var digitRun = regexp.MustCompile(`\d+`)

// InferAppID derives an app id from the first run of digits in the file's
// stem. It is the fallback when neither the text nor the sidecar names one.
func InferAppID(path string) (int64, error) {
	match := digitRun.FindString(Stem(path))
	if match == "" {
		return 0, fmt.Errorf("%w: %s", ErrNoAppID, filepath.Base(path))
	}
	id, err := strconv.ParseInt(match, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrNoAppID, filepath.Base(path))
	}
	return id, nil
}
