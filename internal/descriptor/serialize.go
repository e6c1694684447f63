package descriptor

import (
	"fmt"
	"strings"
)

// Serialize renders the canonical text form: the appid marker, token markers
// in ascending depot order, then manifest markers in ascending depot order,
// one per line with a trailing newline. Entries without a token or manifest
// contribute no line, and the write-side flag is always normalized to 0.
func (d Descriptor) Serialize() string {
	var b strings.Builder
	fmt.Fprintf(&b, "addappid(%d)\n", d.AppID)

	ids := d.DepotIDs()
	for _, id := range ids {
		if token := d.Depots[id].Token; token != "" {
			fmt.Fprintf(&b, "addappid(%d,1,\"%s\")\n", id, token)
		}
	}
	for _, id := range ids {
		if manifest := d.Depots[id].ManifestID; manifest != "" {
			fmt.Fprintf(&b, "setManifestid(%d,\"%s\",0)\n", id, manifest)
		}
	}
	return b.String()
}
