package main

import (
	"strings"
	"testing"
)

func TestRootHelpListsCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, nil, env.configPath)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	for _, name := range []string{"inject", "check", "apply", "sync", "registry", "show", "fmt", "steam-path", "status", "watch", "config"} {
		requireContains(t, out, name)
	}
}

func TestRootHidesWorkerCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"--help"}, env.configPath)
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	requireContains(t, out, "inject")
	if strings.Contains(out, "check-worker") {
		t.Fatalf("hidden command leaked into help:\n%s", out)
	}
}

func TestRootUnknownCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"definitely-not-a-command"}, env.configPath)
	if err == nil {
		t.Fatal("expected unknown command error")
	}
}
