package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"steamer/internal/config"
	"steamer/internal/logging"
	"steamer/internal/reconcile"
	"steamer/internal/registry"
	"steamer/internal/resolver/steamdb"
	"steamer/internal/worker"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check deployed descriptors for manifest updates",
		Long: `Check re-parses every registry-known descriptor and asks SteamDB for the
latest manifest of each declared depot. Nothing is modified; candidates are
printed for "steamer apply" or "steamer sync" to install.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *registry.Store) error {
				report, err := runReconciliation(cmd, cfg, store, workflowLogger(cfg))
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, report.Candidates)
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
				fmt.Fprintf(out, "%d update(s) available. Run `steamer apply` or `steamer sync` to install.\n",
					len(report.Candidates))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit update candidates as a JSON array")
	return cmd
}

// newCheckWorkerCommand is the hidden child the watch loop spawns. Its
// stdout carries exactly one JSON array of update candidates; progress and
// errors go to stderr and the log file.
func newCheckWorkerCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:    worker.CheckCommand,
		Short:  "Run one update check and emit candidates as JSON on stdout",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := logging.NewWorker(cfg)
			if err != nil {
				return err
			}

			store, err := registry.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			report, err := runReconciliation(cmd, cfg, store, logger)
			if err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(report.Candidates)
		},
	}
}

// runReconciliation builds the SteamDB resolver and runs one pass over the
// registry.
func runReconciliation(cmd *cobra.Command, cfg *config.Config, store *registry.Store, logger *slog.Logger) (*reconcile.Report, error) {
	client, err := steamdb.New(cfg, steamdb.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	rec, err := reconcile.New(store, client, logger)
	if err != nil {
		return nil, err
	}
	return rec.Run(cmd.Context())
}

func buildCandidateRows(candidates []reconcile.UpdateCandidate) [][]string {
	rows := make([][]string, 0, len(candidates))
	for _, candidate := range candidates {
		rows = append(rows, []string{
			candidate.Filename,
			strconv.FormatInt(candidate.Depot, 10),
			candidate.CurrentManifest,
			candidate.LatestManifest,
		})
	}
	return rows
}
