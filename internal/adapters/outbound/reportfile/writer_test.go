package reportfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeenaa/implaudit/internal/adapters/outbound/reportfile"
)

func TestFileWriter_CreatesParentAndOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".claude", "validation_report.md")
	w := reportfile.New()

	require.NoError(t, w.Write(path, "first"))
	require.NoError(t, w.Write(path, "second"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestFileWriter_FailsWhenParentIsAFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, ".claude")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := reportfile.New().Write(filepath.Join(blocker, "validation_report.md"), "report")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating report dir")
}
