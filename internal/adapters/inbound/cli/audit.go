package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xeenaa/implaudit/internal/adapters/outbound/config"
	"github.com/xeenaa/implaudit/internal/adapters/outbound/evidence"
	"github.com/xeenaa/implaudit/internal/adapters/outbound/gitinfo"
	"github.com/xeenaa/implaudit/internal/adapters/outbound/history"
	"github.com/xeenaa/implaudit/internal/adapters/outbound/reportfile"
	"github.com/xeenaa/implaudit/internal/adapters/outbound/tui"
	"github.com/xeenaa/implaudit/internal/application"
	"github.com/xeenaa/implaudit/internal/domain"
	"github.com/xeenaa/implaudit/internal/domain/registry"
)

// errChecksFailed makes the process exit 1. The report already explains why.
var errChecksFailed = errors.New("validation checks failed")

type runOptions struct {
	path       string
	jsonOutput bool
	compact    bool
}

func newAuditService(logger *zap.Logger) *application.AuditService {
	return application.NewAuditService(
		registry.Default(),
		evidence.New(),
		config.New(),
		gitinfo.New(),
		logger,
	)
}

func runAudit(cmd *cobra.Command, opts runOptions, logger *zap.Logger) error {
	audit, err := newAuditService(logger).Run(cmd.Context(), opts.path)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	out := cmd.OutOrStdout()
	reports := application.NewReportService()
	reportPath, err := persist(audit, reports, reportfile.New(), history.New(), logger)
	if err != nil {
		return err
	}

	switch {
	case opts.jsonOutput:
		data, err := reports.RenderJSON(audit)
		if err != nil {
			return fmt.Errorf("encoding audit: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case opts.compact:
		fmt.Fprint(out, tui.RenderAudit(audit))
		printReportPath(out, reportPath)
	default:
		fmt.Fprint(out, tui.RenderBanner())
		fmt.Fprintln(out)
		fmt.Fprint(out, reports.RenderMarkdown(audit))
		fmt.Fprintln(out)
		printReportPath(out, reportPath)
	}

	if audit.Summary().ExitCode() != 0 {
		return errChecksFailed
	}
	return nil
}

// persist writes the Markdown report and appends the run to history. Only
// the report write can fail the run.
func persist(
	audit *domain.Audit,
	reports *application.ReportService,
	writer domain.ReportWriter,
	hist domain.RunHistory,
	logger *zap.Logger,
) (string, error) {
	reportPath := filepath.Join(audit.ProjectPath, audit.ReportPath)
	if err := writer.Write(reportPath, reports.RenderMarkdown(audit)); err != nil {
		return "", err
	}

	if err := hist.Save(audit.ProjectPath, reports.Entry(audit)); err != nil {
		logger.Warn("saving run history", zap.Error(err)) // best-effort
	}
	return reportPath, nil
}

func printReportPath(out io.Writer, path string) {
	fmt.Fprintf(out, "📄 Full report saved to: %s\n", path)
}
