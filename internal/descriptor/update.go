package descriptor

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrUpdateNotApplied indicates that no manifest marker for the requested
// depot exists in the text, so the rewrite made no change.
var ErrUpdateNotApplied = errors.New("manifest marker not found")

// UpdateManifest rewrites the manifest id for one depot, leaving every other
// byte of text intact and normalizing the flag argument to 0. It first
// rewrites all whole-line manifest markers for the depot; when none match it
// falls back to the first loose occurrence anywhere in the text. The rewrite
// is verified before the result is returned, so a returned text always
// carries the normalized marker.
func UpdateManifest(text string, depot int64, manifest string) (string, error) {
	anchored := regexp.MustCompile(fmt.Sprintf(`(?im)^(\s*setManifestid\(\s*%d\s*,\s*")(\d+)(".*\)\s*)$`, depot))

	var updated string
	if anchored.MatchString(text) {
		updated = anchored.ReplaceAllString(text, "${1}"+manifest+`",0)`)
	} else {
		loose := regexp.MustCompile(fmt.Sprintf(`(?i)(setManifestid\(\s*%d\s*,\s*")(\d+)(".*\))`, depot))
		loc := loose.FindStringSubmatchIndex(text)
		if loc == nil {
			return "", fmt.Errorf("%w: depot %d", ErrUpdateNotApplied, depot)
		}
		updated = text[:loc[0]] + text[loc[2]:loc[3]] + manifest + `",0)` + text[loc[1]:]
	}

	if !CarriesManifest(updated, depot, manifest) {
		return "", fmt.Errorf("%w: depot %d rewrite did not verify", ErrUpdateNotApplied, depot)
	}
	return updated, nil
}

// CarriesManifest reports whether text contains a normalized manifest marker
// binding the depot to the given manifest id. Callers that rewrite files use
// it to confirm the marker survived the write.
func CarriesManifest(text string, depot int64, manifest string) bool {
	marker := regexp.MustCompile(fmt.Sprintf(`(?i)setManifestid\(\s*%d\s*,\s*"%s"\s*,\s*0\s*\)`, depot, regexp.QuoteMeta(manifest)))
	return marker.MatchString(text)
}
