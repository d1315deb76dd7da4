package app

import (
	"image"
	"io/fs"
	"os"
	"time"
)

// FileSystem is the filesystem surface the engine needs. ReadDir and Lstat must not
// follow symbolic links; together with Join they satisfy github.com/kr/fs.FileSystem.
type FileSystem interface {
	ReadDir(dirname string) ([]os.FileInfo, error)
	Lstat(name string) (os.FileInfo, error)
	Join(elem ...string) string
	Stat(name string) (os.FileInfo, error)
	MkdirAll(path string, perm fs.FileMode) error
	CopyFile(src, dst string) error
	CopySymlink(src, dst string) error
	Remove(path string) error
	ReadFile(path string) ([]byte, error)
}

type ImageDecoder interface {
	Decode(data []byte) (image.Image, string, error)
}

type MetadataReader interface {
	CapturedAt(data []byte) (time.Time, error)
}

// DispatchFunc runs fn on whatever goroutine the caller's presentation layer requires.
type DispatchFunc func(fn func())
