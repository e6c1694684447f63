package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"steamer/internal/config"
	"steamer/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	// The plugin directory belongs to the Steam installation and is never
	// auto-created, so tests provision it like an installer would.
	if err := os.MkdirAll(cfg.Paths.PluginDir, 0o755); err != nil {
		t.Fatalf("mkdir plugin dir: %v", err)
	}

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	return runCLIWithInput(t, args, configPath, "")
}

// runCLIWithInput feeds the command a canned stdin. Commands that never read
// stdin see immediate EOF, which keeps confirmation prompts from blocking.
func runCLIWithInput(t *testing.T, args []string, configPath, input string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(input))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\nplugin_dir = %q\narchive_dir = %q\nlog_dir = %q\nregistry_path = %q\n\n[steam]\nroot = %q\n\n[steamdb]\nbase_url = %q\nchallenge_wait = %d\ntable_wait = %d\n\n[workflow]\ncheck_interval = %d\nauto_apply = %t\n",
		cfg.Paths.PluginDir,
		cfg.Paths.ArchiveDir,
		cfg.Paths.LogDir,
		cfg.Paths.RegistryPath,
		cfg.Steam.Root,
		cfg.SteamDB.BaseURL,
		cfg.SteamDB.ChallengeWait,
		cfg.SteamDB.TableWait,
		cfg.Workflow.CheckInterval,
		cfg.Workflow.AutoApply,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
