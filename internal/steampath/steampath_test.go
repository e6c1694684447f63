package steampath_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"steamer/internal/steampath"
	"steamer/internal/testsupport"
)

func makeRoot(t *testing.T, dir string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	return dir
}

func TestDiscoverPrefersConfiguredRoot(t *testing.T) {
	root := makeRoot(t, filepath.Join(t.TempDir(), "steam"))
	cfg := testsupport.NewConfig(t, testsupport.WithSteamRoot(root))
	t.Setenv(steampath.EnvRoot, filepath.Join(t.TempDir(), "ignored"))

	got, err := steampath.Discover(cfg)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if got != root {
		t.Fatalf("expected configured root %q, got %q", root, got)
	}
}

func TestDiscoverRejectsInvalidConfiguredRoot(t *testing.T) {
	bare := t.TempDir() // no config subdirectory
	cfg := testsupport.NewConfig(t, testsupport.WithSteamRoot(bare))

	if _, err := steampath.Discover(cfg); err == nil {
		t.Fatal("expected error for configured root without config dir")
	}
}

func TestDiscoverUsesEnvironment(t *testing.T) {
	root := makeRoot(t, filepath.Join(t.TempDir(), "steam"))
	cfg := testsupport.NewConfig(t)
	t.Setenv(steampath.EnvRoot, root)

	got, err := steampath.Discover(cfg)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if got != root {
		t.Fatalf("expected env root %q, got %q", root, got)
	}
}

func TestDiscoverProbesUserCandidates(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(steampath.EnvRoot, "")
	cfg := testsupport.NewConfig(t)

	root := makeRoot(t, filepath.Join(home, ".local", "share", "Steam"))

	got, err := steampath.Discover(cfg)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if got != root {
		t.Fatalf("expected candidate root %q, got %q", root, got)
	}
}

func TestDiscoverCandidateOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(steampath.EnvRoot, "")
	cfg := testsupport.NewConfig(t)

	first := makeRoot(t, filepath.Join(home, ".steam", "steam"))
	makeRoot(t, filepath.Join(home, ".local", "share", "Steam"))

	got, err := steampath.Discover(cfg)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if got != first {
		t.Fatalf("expected ~/.steam/steam to win, got %q", got)
	}
}

func TestDiscoverNotFound(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(steampath.EnvRoot, "")
	cfg := testsupport.NewConfig(t)

	if _, err := steampath.Discover(cfg); !errors.Is(err, steampath.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPluginDirOverrideWins(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	// testsupport configs pin plugin_dir to a temp directory.
	got, err := steampath.PluginDir(cfg)
	if err != nil {
		t.Fatalf("PluginDir failed: %v", err)
	}
	if got != cfg.Paths.PluginDir {
		t.Fatalf("expected override %q, got %q", cfg.Paths.PluginDir, got)
	}
}

func TestPluginDirFromDiscoveredRoot(t *testing.T) {
	root := makeRoot(t, filepath.Join(t.TempDir(), "steam"))
	cfg := testsupport.NewConfig(t, testsupport.WithSteamRoot(root))
	cfg.Paths.PluginDir = ""

	got, err := steampath.PluginDir(cfg)
	if err != nil {
		t.Fatalf("PluginDir failed: %v", err)
	}
	want := filepath.Join(root, "config", "stplug-in")
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
