package main

import (
	"fmt"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"steamer/internal/config"
	"steamer/internal/preflight"
	"steamer/internal/watcher"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show environment and workflow status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("Environment", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				fmt.Fprintln(out, renderStatusLine(result.Name, statusKindForResult(result), result.Detail, colorize))
			}

			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Workflow", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, watchStatusLine(cfg, colorize))
			fmt.Fprintln(out, renderStatusLine("Check interval", statusInfo,
				fmt.Sprintf("%d minute(s)", cfg.Workflow.CheckInterval), colorize))
			fmt.Fprintln(out, renderStatusLine("Auto apply", statusInfo,
				enabledDisabled(cfg.Workflow.AutoApply), colorize))
			return nil
		},
	}
}

func statusKindForResult(result preflight.Result) statusKind {
	if result.Passed {
		return statusOK
	}
	return statusError
}

// watchStatusLine probes the watch instance lock. Winning the lock proves
// no watcher holds it, so it is released straight away.
func watchStatusLine(cfg *config.Config, colorize bool) string {
	lock := flock.New(watcher.LockFile(cfg))
	locked, err := lock.TryLock()
	if err != nil {
		return renderStatusLine("Watch", statusInfo, fmt.Sprintf("Unknown (%v)", err), colorize)
	}
	if !locked {
		return renderStatusLine("Watch", statusOK, "Running", colorize)
	}
	if err := lock.Unlock(); err != nil {
		return renderStatusLine("Watch", statusWarn, fmt.Sprintf("Not running (lock release failed: %v)", err), colorize)
	}
	return renderStatusLine("Watch", statusInfo, "Not running", colorize)
}

func enabledDisabled(value bool) string {
	if value {
		return "Enabled"
	}
	return "Disabled"
}
