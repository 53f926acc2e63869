package evidence

import (
	"os"
	"path/filepath"

	"github.com/xeenaa/implaudit/internal/domain"
)

// FileReader implements domain.EvidenceReader on the local filesystem.
// Nothing is cached; every Read goes back to disk.
type FileReader struct{}

func New() *FileReader {
	return &FileReader{}
}

// Read returns the file's content, or an absent Source if path is missing,
// a directory, or unreadable.
func (r *FileReader) Read(path string) domain.Source {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return domain.MissingSource(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.MissingSource(path)
	}

	return domain.Source{Path: path, Text: string(data), Found: true}
}

// Latest returns the regular file (or link to one) in dir matching glob with the newest
// modification time. Ties go to the lexically greater name so the choice
// is stable.
func (r *FileReader) Latest(dir, glob string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	var (
		best     string
		bestInfo os.FileInfo
	)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ok, err := filepath.Match(glob, e.Name()); err != nil || !ok {
			continue
		}
		// Stat follows symlinks; DirEntry.Info does not.
		info, err := os.Stat(filepath.Join(dir, e.Name()))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if bestInfo == nil || info.ModTime().After(bestInfo.ModTime()) ||
			(info.ModTime().Equal(bestInfo.ModTime()) && e.Name() > bestInfo.Name()) {
			best, bestInfo = e.Name(), info
		}
	}

	if bestInfo == nil {
		return "", false
	}
	return filepath.Join(dir, best), true
}
