package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"steamer/internal/testsupport"
)

func TestInjectRecordsDepots(t *testing.T) {
	env := setupCLITestEnv(t)
	src := testsupport.WriteDescriptor(t, filepath.Join(env.baseDir, "incoming"), "2358720.lua",
		"addappid(2358720)\naddappid(2358721,1,\"tok\")\nsetManifestid(2358721,\"7411392049582710331\",0)\n")

	out, _, err := runCLI(t, []string{"inject", src}, env.configPath)
	if err != nil {
		t.Fatalf("inject: %v", err)
	}
	requireContains(t, out, "injected")
	requireContains(t, out, "Copied: 1  Archived: 1  Skipped: 0  Errors: 0")

	placed := filepath.Join(env.cfg.Paths.PluginDir, "2358720.lua")
	if _, err := os.Stat(placed); err != nil {
		t.Fatalf("expected placed descriptor: %v", err)
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("copy mode should keep the source: %v", err)
	}

	store := testsupport.MustOpenRegistry(t, env.cfg)
	rows, err := store.LatestByKey(context.Background())
	if err != nil {
		t.Fatalf("latest by key: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 registry row, got %d", len(rows))
	}
	if rows[0].Filename != "2358720.lua" || rows[0].Depot != 2358721 {
		t.Fatalf("unexpected row %+v", rows[0])
	}
	if rows[0].ManifestID != "7411392049582710331" {
		t.Fatalf("unexpected manifest %q", rows[0].ManifestID)
	}
}

func TestInjectMoveRemovesSource(t *testing.T) {
	env := setupCLITestEnv(t)
	src := testsupport.WriteDescriptor(t, filepath.Join(env.baseDir, "incoming"), "730.lua",
		"addappid(730)\nsetManifestid(731,\"1234567890123456789\",0)\n")

	if _, _, err := runCLI(t, []string{"inject", "--move", src}, env.configPath); err != nil {
		t.Fatalf("inject --move: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("expected source to be moved away, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.PluginDir, "730.lua")); err != nil {
		t.Fatalf("expected placed descriptor: %v", err)
	}
}

func TestInjectCopyOnlyDescriptorNotTracked(t *testing.T) {
	env := setupCLITestEnv(t)
	src := testsupport.WriteDescriptor(t, env.baseDir, "900.lua", "addappid(900)\n")

	out, _, err := runCLI(t, []string{"inject", src}, env.configPath)
	if err != nil {
		t.Fatalf("inject: %v", err)
	}
	requireContains(t, out, "copy-only")

	store := testsupport.MustOpenRegistry(t, env.cfg)
	rows, err := store.LatestByKey(context.Background())
	if err != nil {
		t.Fatalf("latest by key: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("copy-only file must not be tracked, got %d rows", len(rows))
	}
}

func TestInjectSkipsNonLua(t *testing.T) {
	env := setupCLITestEnv(t)
	src := testsupport.WriteDescriptor(t, env.baseDir, "notes.txt", "not a descriptor")

	out, _, err := runCLI(t, []string{"inject", src}, env.configPath)
	if err != nil {
		t.Fatalf("inject: %v", err)
	}
	requireContains(t, out, "skipped")
	requireContains(t, out, "Skipped: 1")
}

func TestInjectFailureSetsExitError(t *testing.T) {
	env := setupCLITestEnv(t)
	// A directory with a .lua name passes the extension gate and then fails
	// placement, which must surface as a command error.
	src := filepath.Join(env.baseDir, "broken.lua")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	out, _, err := runCLI(t, []string{"inject", src}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "1 of 1 files failed") {
		t.Fatalf("expected failure error, got %v", err)
	}
	requireContains(t, out, "failed")
	requireContains(t, out, "Errors: 1")
}
