package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// DefaultIntegrationThresholdPercent is the share of registered log
	// patterns the newest log must match for the integration group to pass.
	DefaultIntegrationThresholdPercent = 70
	// DefaultMinTranslationKeys is how many expected guard keys must exist.
	DefaultMinTranslationKeys = 1

	DefaultReportPath  = ".claude/validation_report.md"
	DefaultHistoryPath = ".claude/validation_history.json"
	DefaultLogDir      = "test_logs"
	DefaultLogGlob     = "*.log"
)

// AuditConfig holds project-level configuration loaded from .implaudit.yaml.
// Zero values mean "use the default".
type AuditConfig struct {
	IntegrationThresholdPercent int    `yaml:"integration_threshold_percent" json:"integration_threshold_percent,omitempty"`
	MinTranslationKeys          int    `yaml:"min_translation_keys"          json:"min_translation_keys,omitempty"`
	ReportPath                  string `yaml:"report_path"                   json:"report_path,omitempty"`
	LogDir                      string `yaml:"log_dir"                       json:"log_dir,omitempty"`
	LogGlob                     string `yaml:"log_glob"                      json:"log_glob,omitempty"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() AuditConfig {
	return AuditConfig{
		IntegrationThresholdPercent: DefaultIntegrationThresholdPercent,
		MinTranslationKeys:          DefaultMinTranslationKeys,
		ReportPath:                  DefaultReportPath,
		LogDir:                      DefaultLogDir,
		LogGlob:                     DefaultLogGlob,
	}
}

// Validate checks user-supplied values. It runs before defaults are merged,
// so zero values are accepted.
func (c AuditConfig) Validate() error {
	if c.IntegrationThresholdPercent < 0 || c.IntegrationThresholdPercent > 100 {
		return fmt.Errorf("integration_threshold_percent = %d (must be between 1 and 100)", c.IntegrationThresholdPercent)
	}
	if c.MinTranslationKeys < 0 {
		return fmt.Errorf("min_translation_keys = %d (must be >= 1)", c.MinTranslationKeys)
	}
	for name, p := range map[string]string{"report_path": c.ReportPath, "log_dir": c.LogDir} {
		if p == "" {
			continue
		}
		if filepath.IsAbs(p) {
			return fmt.Errorf("%s %q must be relative to the project root", name, p)
		}
		if clean := filepath.Clean(p); clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
			return fmt.Errorf("%s %q escapes the project root", name, p)
		}
	}
	if c.LogGlob != "" {
		if _, err := filepath.Match(c.LogGlob, ""); err != nil {
			return fmt.Errorf("log_glob %q: %w", c.LogGlob, err)
		}
	}
	return nil
}

// Merge overlays explicit (non-zero) values on top of base.
func (c AuditConfig) Merge(base AuditConfig) AuditConfig {
	result := base
	if c.IntegrationThresholdPercent != 0 {
		result.IntegrationThresholdPercent = c.IntegrationThresholdPercent
	}
	if c.MinTranslationKeys != 0 {
		result.MinTranslationKeys = c.MinTranslationKeys
	}
	if c.ReportPath != "" {
		result.ReportPath = c.ReportPath
	}
	if c.LogDir != "" {
		result.LogDir = c.LogDir
	}
	if c.LogGlob != "" {
		result.LogGlob = c.LogGlob
	}
	return result
}
