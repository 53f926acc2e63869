package application

import (
	"bytes"
	"encoding/json"
	"text/template"
	"time"

	"github.com/xeenaa/implaudit/internal/domain"
)

const reportTemplate = `# Implementation Validation Report
Generated: {{ .Generated }}
{{- if .Commit }}
Commit: {{ .Commit }}
{{- end }}

## Summary
- **Total Tests**: {{ .Summary.Total }}
- **Passed**: {{ .Summary.Passed }} ✅
- **Failed**: {{ .Summary.Failed }} ❌
{{- if gt .Summary.Informational 0 }}
- **Informational**: {{ .Summary.Informational }} ⚠️
{{- end }}
- **Success Rate**: {{ printf "%.1f" .Summary.SuccessRate }}%

## Test Results

{{ range .Groups }}### {{ .Category.Label }}
{{ range .Results }}- **{{ .TestName }}**: {{ .Message }}
{{ end }}
{{ end -}}
{{ if gt .Summary.Failed 0 -}}
## ⚠️ Action Required
Some validation tests failed. Please review the failed items above.
{{- else -}}
## ✅ All Validations Passed
Implementation appears stable and feature-complete.
{{- end }}
`

var reportTmpl = template.Must(template.New("report").Parse(reportTemplate))

type reportView struct {
	Generated string
	Commit    string
	Summary   domain.Summary
	Groups    []domain.CategoryGroup
}

// ReportService renders audits. Rendering is pure: the same audit always
// yields byte-identical output.
type ReportService struct{}

func NewReportService() *ReportService { return &ReportService{} }

// RenderMarkdown renders the audit as the Markdown validation report.
func (s *ReportService) RenderMarkdown(audit *domain.Audit) string {
	view := reportView{
		Generated: audit.GeneratedAt.Format("2006-01-02 15:04:05"),
		Commit:    audit.CommitHash,
		Summary:   audit.Summary(),
		Groups:    audit.Groups(),
	}
	var buf bytes.Buffer
	_ = reportTmpl.Execute(&buf, view)
	return buf.String()
}

type auditJSON struct {
	*domain.Audit
	Summary domain.Summary `json:"summary"`
}

// RenderJSON renders the audit with its summary as indented JSON.
func (s *ReportService) RenderJSON(audit *domain.Audit) ([]byte, error) {
	return json.MarshalIndent(auditJSON{Audit: audit, Summary: audit.Summary()}, "", "  ")
}

// Entry converts an audit into a history record.
func (s *ReportService) Entry(audit *domain.Audit) domain.RunEntry {
	sum := audit.Summary()
	return domain.RunEntry{
		Timestamp:   audit.GeneratedAt.UTC().Format(time.RFC3339),
		CommitHash:  audit.CommitHash,
		Total:       sum.Total,
		Passed:      sum.Passed,
		Failed:      sum.Failed,
		SuccessRate: sum.SuccessRate,
	}
}
