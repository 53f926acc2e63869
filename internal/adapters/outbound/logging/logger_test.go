package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/xeenaa/implaudit/internal/adapters/outbound/logging"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel zapcore.Level
		wantErr   string
	}{
		{"console debug", "debug", "console", zapcore.DebugLevel, ""},
		{"json warn", "warn", "json", zapcore.WarnLevel, ""},
		{"json error", "error", "json", zapcore.ErrorLevel, ""},
		{"invalid level", "loud", "json", 0, "parse log level"},
		{"invalid format", "info", "xml", 0, "unknown log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := logging.New(tt.level, tt.format)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.wantLevel))
			assert.False(t, logger.Core().Enabled(tt.wantLevel-1))
		})
	}
}
