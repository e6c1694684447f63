package placement

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestPlaceWithBackupCopyPreservesSource(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()
	src := filepath.Join(srcDir, "game100.lua")
	writeFile(t, src, "addappid(100)\n")

	target, err := PlaceWithBackup(src, destDir, Copy)
	if err != nil {
		t.Fatal(err)
	}
	if target != filepath.Join(destDir, "game100.lua") {
		t.Fatalf("target: got %s", target)
	}
	if readFile(t, target) != "addappid(100)\n" {
		t.Fatal("target content mismatch")
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("copy must preserve source: %v", err)
	}
}

func TestPlaceWithBackupMoveConsumesSource(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()
	src := filepath.Join(srcDir, "game100.lua")
	writeFile(t, src, "addappid(100)\n")

	target, err := PlaceWithBackup(src, destDir, Move)
	if err != nil {
		t.Fatal(err)
	}
	if readFile(t, target) != "addappid(100)\n" {
		t.Fatal("target content mismatch")
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("move must consume source, stat err: %v", err)
	}
}

func TestPlaceWithBackupRotatesExisting(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()
	src := filepath.Join(srcDir, "game100.lua")
	writeFile(t, src, "new content\n")
	writeFile(t, filepath.Join(destDir, "game100.lua"), "old content\n")

	target, err := PlaceWithBackup(src, destDir, Copy)
	if err != nil {
		t.Fatal(err)
	}
	if readFile(t, target) != "new content\n" {
		t.Fatal("target should carry the new content")
	}
	backup := filepath.Join(destDir, "game100.backup.lua")
	if readFile(t, backup) != "old content\n" {
		t.Fatal("previous content should survive as backup")
	}
}

func TestPlaceWithBackupRotationChain(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()
	src := filepath.Join(srcDir, "game100.lua")

	for i, content := range []string{"v1\n", "v2\n", "v3\n"} {
		writeFile(t, src, content)
		if _, err := PlaceWithBackup(src, destDir, Copy); err != nil {
			t.Fatalf("placement %d: %v", i, err)
		}
	}

	if readFile(t, filepath.Join(destDir, "game100.lua")) != "v3\n" {
		t.Fatal("destination should carry the latest content")
	}
	if readFile(t, filepath.Join(destDir, "game100.backup.lua")) != "v1\n" {
		t.Fatal("first backup should carry the oldest content")
	}
	if readFile(t, filepath.Join(destDir, "game100.backup.1.lua")) != "v2\n" {
		t.Fatal("second backup should carry the middle content")
	}
}

func TestPlaceWithBackupSameDirNoOp(t *testing.T) {
	destDir := t.TempDir()
	src := filepath.Join(destDir, "game100.lua")
	writeFile(t, src, "content\n")

	target, err := PlaceWithBackup(src, destDir, Copy)
	if err != nil {
		t.Fatal(err)
	}
	if target != src {
		t.Fatalf("same-dir placement should return the source path, got %s", target)
	}

	entries, err := os.ReadDir(destDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("no backup or copy should appear, found %d entries", len(entries))
	}
}

func TestPlaceWithBackupCreatesDestDir(t *testing.T) {
	srcDir := t.TempDir()
	destDir := filepath.Join(t.TempDir(), "config", "stplug-in")
	src := filepath.Join(srcDir, "game100.lua")
	writeFile(t, src, "content\n")

	if _, err := PlaceWithBackup(src, destDir, Copy); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(destDir, "game100.lua")); err != nil {
		t.Fatal(err)
	}
}

func TestPlaceWithBackupMissingSource(t *testing.T) {
	if _, err := PlaceWithBackup(filepath.Join(t.TempDir(), "absent.lua"), t.TempDir(), Copy); err == nil {
		t.Fatal("expected error for missing source")
	}
}
