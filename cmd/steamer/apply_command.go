package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"steamer/internal/applier"
	"steamer/internal/config"
	"steamer/internal/reconcile"
	"steamer/internal/registry"
)

func newApplyCommand(ctx *commandContext) *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply update candidates to deployed descriptors",
		Long: `Apply reads a JSON array of update candidates (the output of
"steamer check --json") from stdin or --input and rewrites each descriptor's
manifest marker, then corrects the registry. Items are applied in order; a
failed item is reported and the rest continue.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			candidates, err := readCandidates(cmd, inputPath)
			if err != nil {
				return err
			}
			return ctx.withStore(func(cfg *config.Config, store *registry.Store) error {
				app, err := applier.New(store, nil, workflowLogger(cfg))
				if err != nil {
					return err
				}
				result, err := app.Apply(cmd.Context(), candidates)
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

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Read candidates from this file instead of stdin")
	return cmd
}

func readCandidates(cmd *cobra.Command, path string) ([]reconcile.UpdateCandidate, error) {
	var (
		raw []byte
		err error
	)
	path = strings.TrimSpace(path)
	if path == "" || path == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
	} else {
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read candidates: %w", err)
		}
	}

	var candidates []reconcile.UpdateCandidate
	if err := json.Unmarshal(raw, &candidates); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}
	return candidates, nil
}

func printApplyResult(cmd *cobra.Command, result *applier.Result) {
	out := cmd.OutOrStdout()
	if len(result.Items) == 0 {
		fmt.Fprintln(out, "No updates to apply")
		return
	}

	rows := make([][]string, 0, len(result.Items))
	for _, item := range result.Items {
		status := "updated"
		if !item.Updated {
			status = "failed"
		}
		rows = append(rows, []string{
			item.Candidate.Filename,
			strconv.FormatInt(item.Candidate.Depot, 10),
			item.Candidate.LatestManifest,
			status,
			item.Detail,
		})
	}
	table := renderTable(
		[]string{"File", "Depot", "Manifest", "Status", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignLeft},
	)
	fmt.Fprintln(out, table)
	fmt.Fprintf(out, "Updated: %d  Failed: %d\n", result.Succeeded, result.Failed)
}
