package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	osfs "savekeeper/internal/infra/fs"
)

var errInjected = errors.New("injected failure")

// faultyFS is the real disk with failures injected for paths ending in a given suffix.
type faultyFS struct {
	osfs.OSFS
	failCopy    string
	failRemove  string
	failReadDir string
	failMkdir   string

	mu      sync.Mutex
	removed []string
}

func (f *faultyFS) CopyFile(src, dst string) error {
	if f.failCopy != "" && strings.HasSuffix(src, f.failCopy) {
		return errInjected
	}
	return f.OSFS.CopyFile(src, dst)
}

func (f *faultyFS) Remove(path string) error {
	if f.failRemove != "" && strings.HasSuffix(path, f.failRemove) {
		return errInjected
	}
	f.mu.Lock()
	f.removed = append(f.removed, path)
	f.mu.Unlock()
	return f.OSFS.Remove(path)
}

func (f *faultyFS) ReadDir(dirname string) ([]os.FileInfo, error) {
	if f.failReadDir != "" && strings.HasSuffix(dirname, f.failReadDir) {
		return nil, errInjected
	}
	return f.OSFS.ReadDir(dirname)
}

func (f *faultyFS) MkdirAll(path string, perm fs.FileMode) error {
	if f.failMkdir != "" && strings.HasSuffix(path, f.failMkdir) {
		return errInjected
	}
	return f.OSFS.MkdirAll(path, perm)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func setModTime(t *testing.T, path string, at time.Time) {
	t.Helper()
	if err := os.Chtimes(path, at, at); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
}

// snapshot maps every relative path under root to its content ("<dir>" for directories).
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	tree := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		if d.IsDir() {
			tree[rel] = "<dir>"
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		tree[rel] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return tree
}
