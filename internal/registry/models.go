package registry

import "time"

// Row represents one deployed depot recorded in SQLite. DestPath is the
// directory the descriptor was placed into, not the file itself; the full
// path is always DestPath joined with Filename.
type Row struct {
	ID         int64
	Filename   string
	AppID      int64
	Depot      int64
	ManifestID string
	DestPath   string
	MovedAt    time.Time
	Multi      bool
}

// DeployedFile identifies a descriptor file known to the registry by its
// filename and destination directory.
type DeployedFile struct {
	Filename string
	DestPath string
}

// Stats aggregates registry contents for diagnostic output.
type Stats struct {
	Rows        int
	Files       int
	Keys        int
	LastMovedAt time.Time
}
