package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"steamer/internal/steampath"
)

func newSteamPathCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "steam-path",
		Short: "Show the resolved Steam root and plugin directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			root, rootErr := steampath.Discover(cfg)
			if rootErr != nil {
				// A plugin_dir override keeps injection usable without a
				// discoverable root, so only that case is worth reporting
				// instead of failing.
				if cfg.Paths.PluginDir == "" {
					return rootErr
				}
				fmt.Fprintf(out, "Steam root: not found (%v)\n", rootErr)
			} else {
				fmt.Fprintf(out, "Steam root: %s\n", root)
			}

			pluginDir, err := steampath.PluginDir(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Plugin directory: %s\n", pluginDir)
			return nil
		},
	}
}
