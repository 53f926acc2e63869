// Package testutil holds fixture helpers shared by the package tests.
package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// Project-relative paths of the audited artifacts.
const (
	ProfessionTab = "src/client/java/com/xeenaa/villagermanager/client/gui/ProfessionTab.java"
	TabbedScreen  = "src/client/java/com/xeenaa/villagermanager/client/gui/TabbedManagementScreen.java"
	ServerHandler = "src/main/java/com/xeenaa/villagermanager/network/ServerPacketHandler.java"
	LangFile      = "src/main/resources/assets/xeenaa_villager_manager/lang/en_us.json"
)

// FixtureDir is the absolute path of the passing villager-mod project.
func FixtureDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "testdata", "villager-mod", "complete")
}

// CopyFixture copies the passing project into a temp dir so runs can write
// reports without touching testdata.
func CopyFixture(t testing.TB) string {
	t.Helper()
	src := FixtureDir()
	dst := t.TempDir()
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0644)
	})
	require.NoError(t, err)
	return dst
}

// WriteFile writes content to rel under root, creating parent dirs.
func WriteFile(t testing.TB, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
