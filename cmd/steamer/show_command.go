package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"steamer/internal/config"
	"steamer/internal/descriptor"
)

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <file.lua>",
		Short: "Display the parsed view of a descriptor",
		Long: `Show parses a descriptor the way inject would record it: markers from the
text, app id overridden by a sidecar when one sits next to the file, and
the filename digits as a last resort.`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read descriptor: %w", err)
			}
			parsed := descriptor.LoadSidecar(path).Apply(descriptor.Parse(string(raw)))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File: %s\n", filepath.Base(path))
			fmt.Fprintf(out, "App ID: %s\n", formatAppID(resolveAppID(parsed, path)))
			fmt.Fprintf(out, "Multi-depot: %s\n", yesNo(parsed.Multi()))

			ids := parsed.DepotIDs()
			if len(ids) == 0 {
				fmt.Fprintln(out, "No depots declared (copy-only descriptor)")
				return nil
			}

			rows := make([][]string, 0, len(ids))
			for _, id := range ids {
				entry := parsed.Depots[id]
				manifest := entry.ManifestID
				if manifest == "" {
					manifest = "-"
				}
				token := entry.Token
				if token == "" {
					token = "-"
				}
				rows = append(rows, []string{strconv.FormatInt(id, 10), manifest, token})
			}
			table := renderTable(
				[]string{"Depot", "Manifest", "Token"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			)
			fmt.Fprint(out, table)
			return nil
		},
	}
}

// resolveAppID follows the descriptor's own app id, then the filename digits.
func resolveAppID(parsed descriptor.Descriptor, path string) int64 {
	if parsed.AppID > 0 {
		return parsed.AppID
	}
	if inferred, err := descriptor.InferAppID(path); err == nil {
		return inferred
	}
	return 0
}
