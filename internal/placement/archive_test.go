package placement

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestArchiveCreatesTimestampedCopy(t *testing.T) {
	srcDir := t.TempDir()
	archiveDir := filepath.Join(t.TempDir(), "archive")
	src := filepath.Join(srcDir, "game100.lua")
	writeFile(t, src, "addappid(100)\n")

	path, err := Archive(src, archiveDir)
	if err != nil {
		t.Fatal(err)
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "game100.") || !strings.HasSuffix(base, ".lua") {
		t.Fatalf("archive name: got %s", base)
	}
	if readFile(t, path) != "addappid(100)\n" {
		t.Fatal("archive content mismatch")
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("archiving must not consume the source: %v", err)
	}
}

func TestArchivePathSameSecondCollision(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)

	first, err := archivePath(dir, "game100.lua", now)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(first) != "game100.20240301_123045.lua" {
		t.Fatalf("first archive name: got %s", filepath.Base(first))
	}
	writeFile(t, first, "x")

	second, err := archivePath(dir, "game100.lua", now)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(second) != "game100.20240301_123045.1.lua" {
		t.Fatalf("colliding archive name: got %s", filepath.Base(second))
	}
	writeFile(t, second, "x")

	third, err := archivePath(dir, "game100.lua", now)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(third) != "game100.20240301_123045.2.lua" {
		t.Fatalf("second colliding archive name: got %s", filepath.Base(third))
	}
}

func TestArchiveTwiceKeepsBothCopies(t *testing.T) {
	srcDir := t.TempDir()
	archiveDir := t.TempDir()
	src := filepath.Join(srcDir, "game100.lua")
	writeFile(t, src, "v1\n")

	first, err := Archive(src, archiveDir)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, src, "v2\n")
	second, err := Archive(src, archiveDir)
	if err != nil {
		t.Fatal(err)
	}

	if first == second {
		t.Fatal("archive paths must not collide")
	}
	if readFile(t, first) != "v1\n" {
		t.Fatal("earlier archive copy was modified")
	}
	if readFile(t, second) != "v2\n" {
		t.Fatal("later archive copy mismatch")
	}
}
