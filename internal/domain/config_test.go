package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xeenaa/implaudit/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Equal(t, 70, cfg.IntegrationThresholdPercent)
	assert.Equal(t, 1, cfg.MinTranslationKeys)
	assert.Equal(t, ".claude/validation_report.md", cfg.ReportPath)
	assert.Equal(t, "test_logs", cfg.LogDir)
	assert.Equal(t, "*.log", cfg.LogGlob)
}

func TestValidate_ZeroValueIsValid(t *testing.T) {
	assert.NoError(t, domain.AuditConfig{}.Validate())
	assert.NoError(t, domain.DefaultConfig().Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  domain.AuditConfig
		want string
	}{
		{"threshold too high", domain.AuditConfig{IntegrationThresholdPercent: 101}, "integration_threshold_percent"},
		{"threshold negative", domain.AuditConfig{IntegrationThresholdPercent: -1}, "integration_threshold_percent"},
		{"negative keys", domain.AuditConfig{MinTranslationKeys: -2}, "min_translation_keys"},
		{"absolute report", domain.AuditConfig{ReportPath: "/tmp/report.md"}, "must be relative"},
		{"escaping log dir", domain.AuditConfig{LogDir: "../logs"}, "escapes the project root"},
		{"bad glob", domain.AuditConfig{LogGlob: "[*.log"}, "log_glob"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMerge_ExplicitValuesWin(t *testing.T) {
	override := domain.AuditConfig{IntegrationThresholdPercent: 50, LogDir: "run/logs"}
	cfg := override.Merge(domain.DefaultConfig())

	assert.Equal(t, 50, cfg.IntegrationThresholdPercent)
	assert.Equal(t, "run/logs", cfg.LogDir)
	assert.Equal(t, 1, cfg.MinTranslationKeys)
	assert.Equal(t, "*.log", cfg.LogGlob)
	assert.Equal(t, ".claude/validation_report.md", cfg.ReportPath)
}
