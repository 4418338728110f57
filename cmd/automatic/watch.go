package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/no111u3/automatic/internal/app"
	"github.com/no111u3/automatic/internal/domain"
	"github.com/no111u3/automatic/internal/watch"
)

func newWatchCmd(global *globalOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "watch -r SCRIPT",
		Short: "Run a script and re-run it whenever the file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildRunConfig(cmd, global, opts)
			if err != nil {
				return err
			}
			if err := domain.NewConfigValidator().Validate(cfg); err != nil {
				return err
			}
			if cfg.Format == domain.FormatTUI {
				slog.Debug("watch mode reports in raw format")
				cfg.Format = domain.FormatRaw
			}

			orchestrator := app.NewOrchestrator(cmd.OutOrStdout(), cmd.ErrOrStderr())
			w := watch.New(cfg.ScriptPath, func(ctx context.Context) error {
				return orchestrator.Execute(ctx, cfg)
			})
			return w.Run(cmd.Context())
		},
	}
	addRunFlags(cmd, opts)
	return cmd
}
