package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"steamer/internal/config"
	"steamer/internal/injector"
	"steamer/internal/placement"
	"steamer/internal/registry"
)

func newInjectCommand(ctx *commandContext) *cobra.Command {
	var move bool

	cmd := &cobra.Command{
		Use:   "inject <file.lua>...",
		Short: "Place descriptors into the Steam plugin directory",
		Long: `Inject onboards descriptor files: each source is parsed, placed into the
plugin directory (rotating any existing file to a backup), archived with a
timestamp, and recorded in the registry once per depot so update checks can
track it. Files without manifest markers are placed but not tracked.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *registry.Store) error {
				mode := placement.Copy
				if move {
					mode = placement.Move
				}

				inj, err := injector.New(cfg, store, nil, workflowLogger(cfg))
				if err != nil {
					return err
				}
				summary, err := inj.Inject(cmd.Context(), args, mode)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				table := renderTable(
					[]string{"Source", "Status", "App ID", "Depots", "Detail"},
					buildInjectRows(summary.Files),
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
				)
				fmt.Fprintln(out, table)
				fmt.Fprintf(out, "Copied: %d  Archived: %d  Skipped: %d  Errors: %d\n",
					summary.Copied, summary.Archived, summary.Skipped, summary.Errors)

				if summary.Errors > 0 {
					return fmt.Errorf("%d of %d files failed", summary.Errors, len(summary.Files))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&move, "move", false, "Move sources instead of copying them")
	return cmd
}

func buildInjectRows(files []injector.FileResult) [][]string {
	rows := make([][]string, 0, len(files))
	for _, file := range files {
		rows = append(rows, []string{
			filepath.Base(file.Source),
			string(file.Status),
			formatAppID(file.AppID),
			formatDepots(file.Depots),
			file.Detail,
		})
	}
	return rows
}
