package application_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xeenaa/implaudit/internal/adapters/outbound/config"
	"github.com/xeenaa/implaudit/internal/adapters/outbound/evidence"
	"github.com/xeenaa/implaudit/internal/application"
	"github.com/xeenaa/implaudit/internal/domain"
	"github.com/xeenaa/implaudit/internal/domain/registry"
	"github.com/xeenaa/implaudit/internal/testutil"
)

const (
	professionTab = testutil.ProfessionTab
	tabbedScreen  = testutil.TabbedScreen
	serverHandler = testutil.ServerHandler
	langFile      = testutil.LangFile
)

var (
	copyFixture = testutil.CopyFixture
	writeFile   = testutil.WriteFile
)

type stubGit struct {
	hash string
	err  error
}

func (g stubGit) CommitHash(string) (string, error) { return g.hash, g.err }

var errNoRepo = errors.New("not a git repository")

func newAuditService(reg *registry.Registry, logger *zap.Logger) *application.AuditService {
	return application.NewAuditService(reg, evidence.New(), config.New(), stubGit{err: errNoRepo}, logger)
}

func resultNamed(t *testing.T, audit *domain.Audit, name string) domain.Result {
	t.Helper()
	for _, r := range audit.Results {
		if r.TestName == name {
			return r
		}
	}
	require.Failf(t, "result not found", "no result named %q", name)
	return domain.Result{}
}

func resultNames(audit *domain.Audit) []string {
	names := make([]string, len(audit.Results))
	for i, r := range audit.Results {
		names[i] = r.TestName
	}
	return names
}
