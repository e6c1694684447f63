package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"steamer/internal/config"
	"steamer/internal/descriptor"
)

func newFmtCommand() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <file.lua>",
		Short: "Rewrite a descriptor in canonical marker form",
		Long: `Fmt serializes the parsed descriptor back to the canonical layout: the
appid marker, token markers in depot order, then manifest markers in depot
order, with write-side flags normalized to 0. Comments and unrecognized
lines are dropped. The result prints to stdout unless --write replaces the
file in place.`,
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
			canonical := descriptor.Parse(string(raw)).Serialize()

			if !write {
				fmt.Fprint(cmd.OutOrStdout(), canonical)
				return nil
			}

			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("stat descriptor: %w", err)
			}
			if err := os.WriteFile(path, []byte(canonical), info.Mode().Perm()); err != nil {
				return fmt.Errorf("write descriptor: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rewrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Rewrite the file in place")
	return cmd
}
