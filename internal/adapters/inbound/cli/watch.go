package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xeenaa/implaudit/internal/adapters/outbound/config"
	"github.com/xeenaa/implaudit/internal/adapters/outbound/watcher"
)

func newWatchCmd(global *globalOptions) *cobra.Command {
	run := runOptions{compact: true}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the audit whenever a new run log is written",
		Long:  "Audit once, then watch the configured log directory and audit again each time a matching log settles. Stops on interrupt.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := global.logger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			absPath, err := filepath.Abs(run.path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			run.path = absPath

			cfg, err := config.New().Load(absPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			cmd.SetContext(ctx)

			auditOnce := func(context.Context, string) {
				if err := runAudit(cmd, run, logger); err != nil && !errors.Is(err, errChecksFailed) {
					logger.Error("audit run failed", zap.Error(err))
				}
			}

			auditOnce(ctx, "")
			w := watcher.New(filepath.Join(absPath, cfg.LogDir), cfg.LogGlob, auditOnce, logger)
			return w.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&run.path, "path", ".", "Project root to audit")
	return cmd
}
