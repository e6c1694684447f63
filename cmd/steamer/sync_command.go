package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"steamer/internal/applier"
	"steamer/internal/config"
	"steamer/internal/registry"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Check for updates and apply them in one pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *registry.Store) error {
				logger := workflowLogger(cfg)
				report, err := runReconciliation(cmd, cfg, store, logger)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(report.Candidates) == 0 {
					fmt.Fprintf(out, "Everything up to date (%d depots checked, %d errors, %d files skipped)\n",
						report.Checked, report.Errors, len(report.Skips))
					return nil
				}

				table := renderTable(
					[]string{"File", "Depot", "Current", "Latest"},
					buildCandidateRows(report.Candidates),
					[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
				)
				fmt.Fprintln(out, table)

				if !assumeYes {
					ok, err := confirm(cmd, fmt.Sprintf("Apply %d update(s)?", len(report.Candidates)))
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(out, "Aborted")
						return nil
					}
				}

				app, err := applier.New(store, nil, logger)
				if err != nil {
					return err
				}
				result, err := app.Apply(cmd.Context(), report.Candidates)
				if err != nil {
					return err
				}
				printApplyResult(cmd, result)
				if result.Failed > 0 {
					return fmt.Errorf("%d of %d updates failed", result.Failed, len(result.Items))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Apply without confirmation")
	return cmd
}

// confirm prompts on stdout and reads one line from stdin. EOF counts as a
// refusal so piped invocations without --yes stay safe.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
