package placement

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"steamer/internal/fileutil"
)

const archiveTimeFormat = "20060102_150405"

// Archive copies the placed descriptor into archiveDir under a timestamped
// name (<stem>.<YYYYMMDD_HHMMSS><ext>) and returns the archive path. The
// copy is write-once; nothing in this package ever modifies or removes an
// archive entry.
func Archive(finalPath, archiveDir string) (string, error) {
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return "", fmt.Errorf("ensure archive dir: %w", err)
	}
	target, err := archivePath(archiveDir, filepath.Base(finalPath), time.Now())
	if err != nil {
		return "", err
	}
	if err := fileutil.CopyFile(finalPath, target); err != nil {
		return "", fmt.Errorf("archive copy: %w", err)
	}
	return target, nil
}

// archivePath allocates the timestamped archive name, appending a numeric
// suffix when two archival events for the same stem land in the same second.
func archivePath(dir, base string, now time.Time) (string, error) {
	const maxAttempts = 10000
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	stamp := now.Format(archiveTimeFormat)

	for attempt := 0; attempt <= maxAttempts; attempt++ {
		name := fmt.Sprintf("%s.%s%s", stem, stamp, ext)
		if attempt > 0 {
			name = fmt.Sprintf("%s.%s.%d%s", stem, stamp, attempt, ext)
		}
		candidate := filepath.Join(dir, name)
		if _, err := os.Lstat(candidate); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return candidate, nil
			}
			return "", fmt.Errorf("probe archive name: %w", err)
		}
	}
	return "", fmt.Errorf("no free archive name for %s in %s", base, dir)
}
