package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeenaa/implaudit/internal/adapters/outbound/watcher"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) handle(_ context.Context, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func startWatcher(t *testing.T, dir string, rec *recorder) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	w := watcher.New(dir, "*.log", rec.handle, nil).WithDebounce(50 * time.Millisecond)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})
	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
}

func TestLogWatcher_FiresForMatchingLog(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	startWatcher(t, dir, rec)

	logPath := filepath.Join(dir, "client.log")
	require.NoError(t, os.WriteFile(logPath, []byte("[INFO] started\n"), 0644))

	require.Eventually(t, func() bool { return len(rec.snapshot()) > 0 }, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, logPath, rec.snapshot()[0])
}

func TestLogWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	startWatcher(t, dir, rec)

	logPath := filepath.Join(dir, "client.log")
	f, err := os.Create(logPath)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err := f.WriteString("[INFO] line\n")
		require.NoError(t, err)
	}
	require.NoError(t, f.Close())

	require.Eventually(t, func() bool { return len(rec.snapshot()) > 0 }, 2*time.Second, 20*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	assert.Len(t, rec.snapshot(), 1)
}

func TestLogWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	startWatcher(t, dir, rec)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	time.Sleep(300 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestLogWatcher_MissingDirIsAnError(t *testing.T) {
	w := watcher.New(filepath.Join(t.TempDir(), "absent"), "*.log", func(context.Context, string) {}, nil)
	err := w.Run(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "watching")
}
