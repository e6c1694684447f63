package reconcile

// UpdateCandidate describes one depot whose remote manifest differs from
// the value in the deployed descriptor. The JSON tags are the check-worker
// wire contract; DestPath is the directory holding the descriptor while
// DescriptorPath is the full file path.
type UpdateCandidate struct {
	Filename        string `json:"filename"`
	AppID           int64  `json:"appid"`
	Multi           bool   `json:"multi"`
	Depot           int64  `json:"depot"`
	CurrentManifest string `json:"current_manifest"`
	LatestManifest  string `json:"latest_manifest"`
	DescriptorPath  string `json:"descriptor_path"`
	DestPath        string `json:"dest_path"`
}

// SkipReason classifies why a known file was not checked.
type SkipReason string

const (
	// SkipMissing marks a registry-known file absent from disk.
	SkipMissing SkipReason = "missing"
	// SkipReadError marks a file that exists but could not be read.
	SkipReadError SkipReason = "read_error"
	// SkipNoManifests marks a file whose text declares no manifest entries.
	// It is a legitimate copy-only state, reported separately from errors.
	SkipNoManifests SkipReason = "no_manifests"
)

// FileSkip records one known file that was not checked and why.
type FileSkip struct {
	Filename string     `json:"filename"`
	Path     string     `json:"path"`
	Reason   SkipReason `json:"reason"`
	Detail   string     `json:"detail,omitempty"`
}

// Report aggregates the outcome of one reconciliation run. Checked counts
// depot lookups attempted; Errors counts lookups that produced no usable
// answer. Candidates is never nil, so an empty run still serializes as an
// empty JSON array.
type Report struct {
	RunID      string
	Checked    int
	Errors     int
	Candidates []UpdateCandidate
	Skips      []FileSkip
}
