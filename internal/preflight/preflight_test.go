package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"steamer/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckSteamRoot_ConfiguredRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := testsupport.NewConfig(t, testsupport.WithSteamRoot(root))

	result := CheckSteamRoot(cfg)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if result.Detail != root {
		t.Fatalf("expected detail %q, got %q", root, result.Detail)
	}
}

func TestCheckSteamRoot_NotFound(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("STEAM_ROOT", "")
	cfg := testsupport.NewConfig(t)

	result := CheckSteamRoot(cfg)
	if result.Passed {
		t.Fatal("expected failure without any Steam installation")
	}
}

func TestCheckPluginDir_Override(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := os.MkdirAll(cfg.Paths.PluginDir, 0o755); err != nil {
		t.Fatal(err)
	}

	result := CheckPluginDir(cfg)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, cfg.Paths.PluginDir) {
		t.Fatalf("expected detail to name %q, got %q", cfg.Paths.PluginDir, result.Detail)
	}
}

func TestCheckRegistry_OK(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	result := CheckRegistry(context.Background(), cfg)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "0 rows") {
		t.Fatalf("expected fresh registry row count in detail, got %q", result.Detail)
	}
}

func TestCheckSteamDB_OK(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	result := CheckSteamDB(cfg)
	if !result.Passed {
		t.Fatalf("expected pass for default base url, got: %s", result.Detail)
	}
}

func TestCheckSteamDB_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":      "",
		"relative":   "steamdb.info/depot",
		"bad scheme": "ftp://steamdb.info",
	}
	for name, base := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := testsupport.NewConfig(t)
			cfg.SteamDB.BaseURL = base
			if result := CheckSteamDB(cfg); result.Passed {
				t.Fatalf("expected failure for %q", base)
			}
		})
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	results := RunAll(context.Background(), nil)
	if results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_HealthyEnvironment(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := testsupport.NewConfig(t, testsupport.WithSteamRoot(root))
	for _, dir := range []string{cfg.Paths.PluginDir, cfg.Paths.ArchiveDir, cfg.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	results := RunAll(context.Background(), cfg)
	if len(results) != 6 {
		t.Fatalf("expected 6 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
}
