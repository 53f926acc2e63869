package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/xeenaa/implaudit/internal/domain"
)

const fileName = ".implaudit.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .implaudit.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .implaudit.yaml from projectPath and merges it over the
// defaults. A missing file yields domain.DefaultConfig.
func (l *YAMLLoader) Load(projectPath string) (domain.AuditConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.AuditConfig{}, fmt.Errorf("reading %s: %w", fileName, err)
	}

	var cfg domain.AuditConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return domain.AuditConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	// Validate the raw input so typos surface before defaults hide them.
	if err := cfg.Validate(); err != nil {
		return domain.AuditConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return cfg.Merge(domain.DefaultConfig()), nil
}
