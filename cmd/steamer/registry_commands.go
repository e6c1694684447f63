package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"steamer/internal/config"
	"steamer/internal/registry"
)

func newRegistryCommand(ctx *commandContext) *cobra.Command {
	registryCmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect the deployment registry",
	}

	registryCmd.AddCommand(newRegistryListCommand(ctx))
	registryCmd.AddCommand(newRegistryFilesCommand(ctx))
	registryCmd.AddCommand(newRegistryStatsCommand(ctx))

	return registryCmd
}

func newRegistryListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tracked depots, newest row per file and depot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *registry.Store) error {
				rows, err := store.LatestByKey(cmd.Context())
				if err != nil {
					return err
				}
				if len(rows) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Registry is empty")
					return nil
				}
				table := renderTable(
					[]string{"File", "App ID", "Depot", "Manifest", "Multi", "Moved"},
					buildRegistryListRows(rows),
					[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft, alignLeft, alignLeft},
				)
				fmt.Fprint(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}
}

func newRegistryFilesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "List tracked descriptor files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *registry.Store) error {
				files, err := store.DistinctFiles(cmd.Context())
				if err != nil {
					return err
				}
				if len(files) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Registry is empty")
					return nil
				}
				rows := make([][]string, 0, len(files))
				for _, file := range files {
					rows = append(rows, []string{file.Filename, file.DestPath})
				}
				table := renderTable(
					[]string{"File", "Destination"},
					rows,
					[]columnAlignment{alignLeft, alignLeft},
				)
				fmt.Fprint(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}
}

func newRegistryStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show registry totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *registry.Store) error {
				stats, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Rows: %d\nFiles: %d\nDepot keys: %d\n", stats.Rows, stats.Files, stats.Keys)
				if !stats.LastMovedAt.IsZero() {
					fmt.Fprintf(out, "Last activity: %s (%s)\n",
						stats.LastMovedAt.Local().Format("2006-01-02 15:04:05"),
						humanize.Time(stats.LastMovedAt))
				}
				fmt.Fprintf(out, "Database: %s\n", store.Path())
				return nil
			})
		},
	}
}

func buildRegistryListRows(rows []registry.Row) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, []string{
			row.Filename,
			formatAppID(row.AppID),
			strconv.FormatInt(row.Depot, 10),
			row.ManifestID,
			yesNo(row.Multi),
			formatMovedAt(row.MovedAt),
		})
	}
	return out
}
