package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"

	"github.com/xeenaa/implaudit/internal/domain"
	"github.com/xeenaa/implaudit/internal/domain/registry"
	"github.com/xeenaa/implaudit/internal/domain/rule"
)

// translationSchema accepts a flat object of string values, the shape of a
// Minecraft language file.
var translationSchema = jsonschema.MustCompileString(
	"https://implaudit.local/schemas/lang.schema.json",
	`{"type": "object", "additionalProperties": {"type": "string"}}`,
)

var errNotJSON = errors.New("invalid JSON")

// AuditService orchestrates the validation pipeline:
// load config → code structure → translations → logic flows → integration logs.
type AuditService struct {
	registry     *registry.Registry
	reader       domain.EvidenceReader
	configLoader domain.ConfigLoader
	git          domain.GitInfo
	logger       *zap.Logger
	now          func() time.Time
}

func NewAuditService(
	reg *registry.Registry,
	reader domain.EvidenceReader,
	configLoader domain.ConfigLoader,
	git domain.GitInfo,
	logger *zap.Logger,
) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		registry:     reg,
		reader:       reader,
		configLoader: configLoader,
		git:          git,
		logger:       logger,
		now:          time.Now,
	}
}

// Run audits the project at projectPath. Artifact problems become results;
// only an unusable config or a cancelled ctx returns an error.
func (s *AuditService) Run(ctx context.Context, projectPath string) (*domain.Audit, error) {
	root, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := s.configLoader.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	groups := []func() []domain.Result{
		func() []domain.Result { return s.checkArtifacts(root, domain.CategoryCodeStructure, s.registry.CodeStructure) },
		func() []domain.Result { return s.checkTranslations(root, cfg) },
		func() []domain.Result { return s.checkArtifacts(root, domain.CategoryLogicFlows, s.registry.LogicFlows) },
		func() []domain.Result { return s.checkIntegration(root, cfg) },
	}

	audit := &domain.Audit{
		ProjectPath: root,
		ReportPath:  cfg.ReportPath,
	}
	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		audit.Results = append(audit.Results, group()...)
	}

	if s.git != nil {
		if hash, err := s.git.CommitHash(root); err == nil {
			audit.CommitHash = hash
		}
	}
	audit.GeneratedAt = s.now()

	summary := audit.Summary()
	s.logger.Info("audit complete",
		zap.String("project", root),
		zap.Int("total", summary.Total),
		zap.Int("failed", summary.Failed),
	)
	return audit, nil
}

// checkArtifacts evaluates each artifact's checks. A missing artifact yields
// exactly one failure and its checks are skipped.
func (s *AuditService) checkArtifacts(root string, category domain.Category, artifacts []registry.SourceArtifact) []domain.Result {
	var results []domain.Result
	for _, a := range artifacts {
		src := s.reader.Read(filepath.Join(root, a.Path))
		if !src.Found {
			results = append(results, s.record(domain.Result{
				TestName: a.MissingCheck,
				Category: category,
				Message:  a.MissingMessage,
			}))
			continue
		}

		for _, c := range a.Checks {
			ev := rule.Evaluate(src, c.Rule)
			r := domain.Result{
				TestName: c.Name,
				Category: category,
				Passed:   ev.Passed,
				Message:  c.FailureMessage,
			}
			if ev.Passed {
				r.Message = c.SuccessMessage
				if ev.Evidence != "" {
					r.Logs = []string{fmt.Sprintf("%s: matched %q", a.Name, ev.Evidence)}
				}
			}
			results = append(results, s.record(r))
		}
	}
	return results
}

func (s *AuditService) checkTranslations(root string, cfg domain.AuditConfig) []domain.Result {
	tc := s.registry.Translation
	fail := func(name, msg string) []domain.Result {
		return []domain.Result{s.record(domain.Result{
			TestName: name,
			Category: domain.CategoryTranslation,
			Message:  msg,
		})}
	}

	src := s.reader.Read(filepath.Join(root, tc.Path))
	if !src.Found {
		return fail(tc.MissingCheck, "❌ Language file not found")
	}

	translations, err := decodeTranslations(src.Text)
	if errors.Is(err, errNotJSON) {
		return fail(tc.FormatCheck, "❌ Language file has invalid JSON format")
	}
	if err != nil {
		return fail(tc.FormatCheck, "❌ Language file is not a key to string mapping")
	}

	found := 0
	var logs []string
	for _, key := range tc.Keys {
		if _, ok := translations[key]; ok {
			found++
		} else {
			logs = append(logs, "missing key "+key)
		}
	}

	r := domain.Result{
		TestName: tc.Name,
		Category: domain.CategoryTranslation,
		Passed:   found >= cfg.MinTranslationKeys,
		Logs:     logs,
	}
	if r.Passed {
		r.Message = fmt.Sprintf("✅ Guard translations found (%d/%d)", found, len(tc.Keys))
	} else {
		r.Message = fmt.Sprintf("❌ Guard translations missing (%d/%d)", found, len(tc.Keys))
	}
	return []domain.Result{s.record(r)}
}

// decodeTranslations parses a language file. Syntax errors wrap errNotJSON;
// well-formed JSON of the wrong shape returns the schema error.
func decodeTranslations(text string) (map[string]string, error) {
	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", errNotJSON, err)
	}
	if err := translationSchema.Validate(doc); err != nil {
		return nil, err
	}

	obj := doc.(map[string]any)
	translations := make(map[string]string, len(obj))
	for k, v := range obj {
		translations[k] = v.(string)
	}
	return translations, nil
}

// checkIntegration is best-effort: without a readable log it records an
// informational result. Otherwise it passes when enough registered patterns
// match the newest log.
func (s *AuditService) checkIntegration(root string, cfg domain.AuditConfig) []domain.Result {
	ic := s.registry.Integration
	info := func(msg string) []domain.Result {
		return []domain.Result{s.record(domain.Result{
			TestName:      ic.MissingCheck,
			Category:      domain.CategoryIntegration,
			Informational: true,
			Message:       msg,
		})}
	}

	dir := filepath.Join(root, cfg.LogDir)
	latest, ok := s.reader.Latest(dir, cfg.LogGlob)
	if !ok {
		s.logger.Warn("no run logs for integration evidence", zap.String("dir", dir))
		return info("⚠️ No test logs found for integration validation")
	}

	src := s.reader.Read(latest)
	if !src.Found {
		s.logger.Warn("latest run log unreadable", zap.String("path", latest))
		return info(fmt.Sprintf("⚠️ Latest test log %s could not be read", filepath.Base(latest)))
	}

	found := 0
	var missing []string
	for _, p := range s.registry.LogPatterns {
		if rule.Evaluate(src, p.Rule).Passed {
			found++
		} else {
			missing = append(missing, p.Name)
		}
	}

	total := len(s.registry.LogPatterns)
	r := domain.Result{
		TestName: ic.Name,
		Category: domain.CategoryIntegration,
		Passed:   domain.MeetsThreshold(found, total, cfg.IntegrationThresholdPercent),
		Logs:     []string{"log: " + filepath.Base(latest)},
	}
	if len(missing) > 0 {
		r.Logs = append(r.Logs, "unmatched: "+strings.Join(missing, ", "))
	}
	if r.Passed {
		r.Message = fmt.Sprintf("✅ Integration test patterns found (%d/%d)", found, total)
	} else {
		r.Message = fmt.Sprintf("❌ Integration test patterns insufficient (%d/%d)", found, total)
	}
	return []domain.Result{s.record(r)}
}

func (s *AuditService) record(r domain.Result) domain.Result {
	s.logger.Debug("check evaluated",
		zap.String("check", r.TestName),
		zap.String("category", string(r.Category)),
		zap.Bool("passed", r.Passed),
		zap.Bool("informational", r.Informational),
	)
	return r
}
