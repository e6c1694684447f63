package main

import (
	"os"
	"path/filepath"
	"testing"

	"steamer/internal/testsupport"
)

func TestSteamPathShowsRootAndPluginDir(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "config"), 0o755); err != nil {
		t.Fatalf("mkdir steam config: %v", err)
	}
	env := setupCLITestEnv(t, testsupport.WithSteamRoot(root))

	out, _, err := runCLI(t, []string{"steam-path"}, env.configPath)
	if err != nil {
		t.Fatalf("steam-path: %v", err)
	}
	requireContains(t, out, "Steam root: "+root)
	requireContains(t, out, "Plugin directory: "+env.cfg.Paths.PluginDir)
}

func TestSteamPathOverrideSurvivesMissingRoot(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("STEAM_ROOT", "")
	t.Setenv("HOME", filepath.Join(env.baseDir, "empty-home"))

	out, _, err := runCLI(t, []string{"steam-path"}, env.configPath)
	if err != nil {
		t.Fatalf("steam-path: %v", err)
	}
	requireContains(t, out, "Steam root: not found")
	requireContains(t, out, "Plugin directory: "+env.cfg.Paths.PluginDir)
}
