package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rsviz/budgetflow/internal/assembler"
	"github.com/rsviz/budgetflow/internal/config"
	"github.com/rsviz/budgetflow/internal/record"
	"github.com/rsviz/budgetflow/internal/server"
)

// NewServeCommand creates the serve command: load the dataset, start the
// HTTP API and run until interrupted.
func NewServeCommand(opts *RootOptions) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the flow graph HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "loading configuration", err)
			}

			level := cfg.LogLevel()
			if opts.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			store, err := record.Open(cfg.Dataset)
			if err != nil {
				return WrapExitError(ExitCommandError, "opening dataset", err)
			}
			defer store.Close()

			ds, err := store.Load(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "loading dataset", err)
			}

			svc := assembler.New(ds,
				assembler.WithCacheCapacity(cfg.Cache.Capacity),
				assembler.WithLogger(logger),
			)
			srv := server.New(cfg.Listen, svc, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := srv.Run(ctx); err != nil {
				return WrapExitError(ExitCommandError, "server", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "budgetflow.yaml", "path to configuration file")
	return cmd
}
