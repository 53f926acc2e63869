package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xeenaa/implaudit/internal/adapters/outbound/logging"
)

var (
	version = "dev"
	commit  = "none"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	logLevel  string
	logFormat string
}

func (o *globalOptions) logger() (*zap.Logger, error) {
	logger, err := logging.New(o.logLevel, o.logFormat)
	if err != nil {
		return nil, fmt.Errorf("configuring logging: %w", err)
	}
	return logger, nil
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	var run runOptions

	cmd := &cobra.Command{
		Use:   "implaudit",
		Short: "Audit a mod implementation against its expected evidence",
		Long: "implaudit checks source structure, translations, logic flows and runtime logs of a finished " +
			"implementation, writes a Markdown validation report and exits non-zero when any check fails.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := opts.logger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			return runAudit(cmd, run, logger)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "console", "Log format: console or json")
	cmd.Flags().StringVar(&run.path, "path", ".", "Project root to audit")
	cmd.Flags().BoolVar(&run.jsonOutput, "json", false, "Print the audit as JSON instead of the Markdown report")
	cmd.Flags().BoolVar(&run.compact, "compact", false, "Print a compact terminal summary instead of the Markdown report")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newPatternsCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newWatchCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return ExecuteCommand(newRootCmd())
}

// ExecuteCommand runs cmd and prints process errors to its stderr. Failed
// checks are already explained by the report, so they stay quiet.
func ExecuteCommand(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil && !errors.Is(err, errChecksFailed) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	}
	return err
}
