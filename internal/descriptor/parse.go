package descriptor

import (
	"regexp"
	"strconv"
	"strings"
)

// Marker patterns. The token form tolerates a 0 or 1 flag, the manifest form
// tolerates any trailing arguments, and all three ignore case and internal
// whitespace.
var (
	appIDMarker    = regexp.MustCompile(`(?i)addappid\(\s*(\d+)\s*\)`)
	tokenMarker    = regexp.MustCompile(`(?i)addappid\(\s*(\d+)\s*,\s*[01]\s*,\s*"([^"]+)"\s*\)`)
	manifestMarker = regexp.MustCompile(`(?i)setManifestid\(\s*(\d+)\s*,\s*"(\d+)"(?:\s*,\s*[^)]*)?\s*\)`)
)

// markerSpace is the character class the grammar skips between a closing
// paren and a following comma.
const markerSpace = " \t\n\r\f\v"

// Parse extracts the descriptor declared by text. Unrecognized lines are
// ignored, duplicate depot markers resolve to the last occurrence, and a
// missing appid marker leaves AppID zero. Parse never fails; an empty
// Descriptor is a valid result.
func Parse(text string) Descriptor {
	d := Descriptor{Depots: make(map[int64]DepotEntry)}

	if id, ok := findAppID(text); ok {
		d.AppID = id
	}

	for _, m := range tokenMarker.FindAllStringSubmatch(text, -1) {
		depot, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		entry := d.Depots[depot]
		entry.Token = m[2]
		d.Depots[depot] = entry
	}

	for _, m := range manifestMarker.FindAllStringSubmatch(text, -1) {
		depot, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		entry := d.Depots[depot]
		entry.ManifestID = m[2]
		d.Depots[depot] = entry
	}

	return d
}

// findAppID locates the first single-argument addappid marker. A match
// trailed by a comma sits inside a larger expression and does not declare
// the appid, so it is skipped; RE2 has no lookahead, hence the manual
// trailing check.
func findAppID(text string) (int64, bool) {
	for _, loc := range appIDMarker.FindAllStringSubmatchIndex(text, -1) {
		if followedByComma(text[loc[1]:]) {
			continue
		}
		id, err := strconv.ParseInt(text[loc[2]:loc[3]], 10, 64)
		if err != nil {
			continue
		}
		return id, true
	}
	return 0, false
}

func followedByComma(rest string) bool {
	return strings.HasPrefix(strings.TrimLeft(rest, markerSpace), ",")
}
