package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
)

// OSFS is the local disk. ReadDir and Lstat report links as links.
type OSFS struct{}

func (OSFS) ReadDir(dirname string) ([]os.FileInfo, error) {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil, err
	}
	infos := make([]os.FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			// Removed between listing and stat.
			continue
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (OSFS) Lstat(name string) (os.FileInfo, error) {
	return os.Lstat(name)
}

func (OSFS) Join(elem ...string) string {
	return filepath.Join(elem...)
}

func (OSFS) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (OSFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

// CopyFile replaces dst with a copy of src. The old file is removed first so a
// read-only destination does not block the write. Mode and modification time
// follow the source.
func (OSFS) CopyFile(src, dst string) error {
	if err := removeExisting(dst); err != nil {
		return err
	}
	return copy.Copy(src, dst, copy.Options{
		PreserveTimes: true,
		OnSymlink: func(string) copy.SymlinkAction {
			return copy.Shallow
		},
	})
}

// CopySymlink recreates the link at src as dst, replacing whatever dst was.
func (OSFS) CopySymlink(src, dst string) error {
	if err := removeExisting(dst); err != nil {
		return err
	}
	return copy.Copy(src, dst, copy.Options{
		OnSymlink: func(string) copy.SymlinkAction {
			return copy.Shallow
		},
	})
}

// removeExisting clears a file or link at path. Directories are never removed.
func removeExisting(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return errors.New("destination is a directory")
	}
	return os.Remove(path)
}

func (OSFS) Remove(path string) error {
	return os.Remove(path)
}

func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
