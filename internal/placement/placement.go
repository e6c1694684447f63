package placement

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"steamer/internal/fileutil"
)

// Mode selects whether placement preserves or consumes the source file.
type Mode int

const (
	// Copy duplicates the source into the destination and leaves the
	// original untouched.
	Copy Mode = iota
	// Move renames the source into the destination, falling back to
	// copy+delete across filesystems.
	Move
)

func (m Mode) String() string {
	if m == Move {
		return "move"
	}
	return "copy"
}

// PlaceWithBackup puts src into destDir under its own base name and returns
// the final path. A source already inside destDir is returned unchanged with
// no backup churn. An existing destination entry is rotated to the first free
// backup name before the new content is written, so repeated placement of an
// unchanged source never stacks a second rotation on top of the first.
func PlaceWithBackup(src, destDir string, mode Mode) (string, error) {
	srcAbs, err := filepath.Abs(src)
	if err != nil {
		return "", fmt.Errorf("resolve source: %w", err)
	}
	destAbs, err := filepath.Abs(destDir)
	if err != nil {
		return "", fmt.Errorf("resolve destination: %w", err)
	}

	if filepath.Dir(srcAbs) == destAbs {
		return srcAbs, nil
	}

	if err := os.MkdirAll(destAbs, 0o755); err != nil {
		return "", fmt.Errorf("ensure destination: %w", err)
	}

	base := filepath.Base(srcAbs)
	target := filepath.Join(destAbs, base)
	if _, err := os.Lstat(target); err == nil {
		backup, err := nextBackupPath(destAbs, base)
		if err != nil {
			return "", err
		}
		if err := os.Rename(target, backup); err != nil {
			return "", fmt.Errorf("rotate existing target: %w", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("probe target: %w", err)
	}

	switch mode {
	case Move:
		if err := moveFile(srcAbs, target); err != nil {
			return "", err
		}
	default:
		if err := fileutil.CopyFileVerified(srcAbs, target); err != nil {
			return "", fmt.Errorf("copy into destination: %w", err)
		}
	}
	return target, nil
}

// nextBackupPath finds the first unused backup name for base inside dir:
// <stem>.backup<ext>, then <stem>.backup.1<ext>, <stem>.backup.2<ext>, and
// so on. Earlier backups are never displaced.
func nextBackupPath(dir, base string) (string, error) {
	const maxAttempts = 10000
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for attempt := 0; attempt <= maxAttempts; attempt++ {
		name := stem + ".backup" + ext
		if attempt > 0 {
			name = fmt.Sprintf("%s.backup.%d%s", stem, attempt, ext)
		}
		candidate := filepath.Join(dir, name)
		if _, err := os.Lstat(candidate); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return candidate, nil
			}
			return "", fmt.Errorf("probe backup name: %w", err)
		}
	}
	return "", fmt.Errorf("no free backup name for %s in %s", base, dir)
}

// moveFile renames source onto target, handling cross-device moves with a
// verified copy followed by source removal.
func moveFile(source, target string) error {
	renameErr := os.Rename(source, target)
	if renameErr == nil {
		return nil
	}

	var linkErr *os.LinkError
	if errors.As(renameErr, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
		if err := fileutil.CopyFileVerified(source, target); err != nil {
			return fmt.Errorf("copy across filesystems: %w", err)
		}
		if err := os.Remove(source); err != nil {
			return fmt.Errorf("remove source after copy: %w", err)
		}
		return nil
	}
	return fmt.Errorf("move into destination: %w", renameErr)
}
