package history_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeenaa/implaudit/internal/adapters/outbound/history"
	"github.com/xeenaa/implaudit/internal/domain"
)

func TestHistory_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	entry := domain.RunEntry{
		Timestamp:   "2026-10-14T10:00:00Z",
		CommitHash:  "abc1234",
		Total:       7,
		Passed:      6,
		Failed:      1,
		SuccessRate: 85.7,
	}
	require.NoError(t, h.Save(dir, entry))

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry, entries[0])
	assert.FileExists(t, filepath.Join(dir, ".claude", "validation_history.json"))
}

func TestHistory_AppendMultiple(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	require.NoError(t, h.Save(dir, domain.RunEntry{Timestamp: "t1", Failed: 3}))
	require.NoError(t, h.Save(dir, domain.RunEntry{Timestamp: "t2", Failed: 1}))
	require.NoError(t, h.Save(dir, domain.RunEntry{Timestamp: "t3", Failed: 0}))

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "t1", entries[0].Timestamp)
	assert.Equal(t, "t3", entries[2].Timestamp)
}

func TestHistory_KeepsMostRecent(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	for i := 0; i < 205; i++ {
		require.NoError(t, h.Save(dir, domain.RunEntry{Timestamp: fmt.Sprintf("t%d", i)}))
	}

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 200)
	assert.Equal(t, "t5", entries[0].Timestamp)
	assert.Equal(t, "t204", entries[199].Timestamp)
}

func TestHistory_LoadEmpty(t *testing.T) {
	entries, err := history.New().Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistory_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, ".claude", "validation_history.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(fp), 0755))
	require.NoError(t, os.WriteFile(fp, []byte("not json"), 0644))

	_, err := history.New().Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing history")
}
