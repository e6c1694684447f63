// Package steampath locates the Steam installation root and the plugin
// directory descriptors are deployed into.
//
// Discovery prefers explicit configuration over guessing: a configured root
// or STEAM_ROOT value is trusted and validated rather than silently skipped,
// while the well-known per-user locations are probed in order until one
// looks like a Steam installation. A directory qualifies as a root when it
// carries a config subdirectory.
package steampath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"steamer/internal/config"
)

// ErrNotFound reports that no candidate directory looked like a Steam root.
var ErrNotFound = errors.New("steam root not found")

// EnvRoot is the environment variable consulted between the configured
// override and the well-known candidates.
const EnvRoot = "STEAM_ROOT"

// Discover returns the Steam installation root. Order: the configured
// steam.root override, then STEAM_ROOT, then per-user candidate locations.
// An explicit override that fails validation is an error, not a fallthrough;
// the user named a specific directory and should hear that it is wrong.
func Discover(cfg *config.Config) (string, error) {
	if cfg != nil && cfg.Steam.Root != "" {
		if !isRoot(cfg.Steam.Root) {
			return "", fmt.Errorf("configured steam root %s has no config directory", cfg.Steam.Root)
		}
		return cfg.Steam.Root, nil
	}

	if env := strings.TrimSpace(os.Getenv(EnvRoot)); env != "" {
		if !isRoot(env) {
			return "", fmt.Errorf("%s=%s has no config directory", EnvRoot, env)
		}
		return env, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	for _, candidate := range candidateRoots(home) {
		if isRoot(candidate) {
			return candidate, nil
		}
	}
	return "", ErrNotFound
}

// PluginDir resolves the directory descriptors are deployed into. The
// configured paths.plugin_dir wins outright; otherwise it is
// config/stplug-in under the discovered Steam root.
func PluginDir(cfg *config.Config) (string, error) {
	if cfg != nil && cfg.Paths.PluginDir != "" {
		return cfg.Paths.PluginDir, nil
	}
	root, err := Discover(cfg)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "config", "stplug-in"), nil
}

func candidateRoots(home string) []string {
	return []string{
		filepath.Join(home, ".steam", "steam"),
		filepath.Join(home, ".local", "share", "Steam"),
		filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", "data", "Steam"),
	}
}

func isRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, "config"))
	return err == nil && info.IsDir()
}
