package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"steamer/internal/applier"
	"steamer/internal/logging"
	"steamer/internal/registry"
	"steamer/internal/watcher"
	"steamer/internal/worker"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the periodic update check loop in the foreground",
		Long: `Watch checks for manifest updates at the configured interval until
interrupted. Each cycle spawns a check worker subprocess; with auto_apply
enabled the updates it finds are applied immediately, otherwise they are
logged for a later "steamer apply".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			store, err := registry.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			app, err := applier.New(store, nil, logger)
			if err != nil {
				return err
			}
			runner := worker.New(logger, worker.WithConfigPath(ctx.configPath()))

			w, err := watcher.New(cfg, runner, app, logger)
			if err != nil {
				return err
			}
			if err := w.Start(signalCtx); err != nil {
				return err
			}

			<-signalCtx.Done()
			w.Stop()
			return nil
		},
	}
}
