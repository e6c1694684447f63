package preflight

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"steamer/internal/config"
	"steamer/internal/registry"
	"steamer/internal/steampath"
)

// CheckSteamRoot resolves the Steam installation root the same way the
// injection workflow does.
func CheckSteamRoot(cfg *config.Config) Result {
	const name = "Steam root"
	root, err := steampath.Discover(cfg)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: root}
}

// CheckPluginDir resolves the plugin directory and verifies full access.
// Injection needs to list, create, and replace files there.
func CheckPluginDir(cfg *config.Config) Result {
	const name = "Plugin directory"
	dir, err := steampath.PluginDir(cfg)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return CheckDirectoryAccess(name, dir)
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckRegistry opens the registry database and runs its integrity probe.
func CheckRegistry(ctx context.Context, cfg *config.Config) Result {
	const name = "Registry"
	store, err := registry.Open(cfg)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	defer store.Close()

	if err := store.Check(ctx); err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	stats, err := store.Stats(ctx)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d rows)", store.Path(), stats.Rows)}
}

// CheckSteamDB validates the lookup base URL without touching the network.
// An actual fetch from a status probe would sit in the challenge flow and
// stall the command.
func CheckSteamDB(cfg *config.Config) Result {
	const name = "SteamDB"
	base := strings.TrimSpace(cfg.SteamDB.BaseURL)
	if base == "" {
		return Result{Name: name, Detail: "missing base url"}
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Host == "" {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not an absolute url)", base)}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: unsupported scheme %q)", base, parsed.Scheme)}
	}
	return Result{Name: name, Passed: true, Detail: base}
}
