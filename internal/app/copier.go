package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	krfs "github.com/kr/fs"

	"savekeeper/internal/domain"
	appErrors "savekeeper/internal/errors"
	"savekeeper/internal/logging"
)

// ProgressFunc is called after each copied item with its path relative to the copy root.
type ProgressFunc func(relativePath string, copied int)

// Copier mirrors a source tree onto a destination tree. Existing destination files are
// replaced; items that cannot be written are reported and the walk carries on.
type Copier struct {
	FS         FileSystem
	Excludes   []string
	Logger     logging.Logger
	OnProgress ProgressFunc
}

func (c *Copier) Copy(ctx context.Context, req domain.CopyRequest) domain.Outcome {
	sourcePath := req.SourcePath()
	destPath := req.DestPath()
	fail := func(kind appErrors.Kind, op, path string, err error) domain.Outcome {
		return domain.FailedOutcome(domain.OperationCopy, destPath, appErrors.Wrap(kind, op, path, err))
	}

	if c.FS == nil {
		return fail(appErrors.Internal, "copy", destPath, errors.New("copier requires FS"))
	}

	stop := c.Logger.Measure(fmt.Sprintf("Copying %s to %s", sourcePath, destPath))
	defer stop()

	info, err := c.FS.Lstat(sourcePath)
	if err != nil {
		return fail(appErrors.Structural, "stat", sourcePath, err)
	}
	if !info.IsDir() {
		return fail(appErrors.Structural, "stat", sourcePath, errors.New("not a directory"))
	}
	if err := c.FS.MkdirAll(destPath, dirPerm); err != nil {
		return fail(appErrors.Structural, "mkdir", destPath, err)
	}

	var skipped []domain.Skip
	copied := 0
	walker := krfs.WalkFS(sourcePath, c.FS)
	for walker.Step() {
		if err := ctx.Err(); err != nil {
			return fail(appErrors.Internal, "copy", destPath, err)
		}

		path := walker.Path()
		if walkErr := walker.Err(); walkErr != nil {
			if path == sourcePath {
				return fail(appErrors.Structural, "readdir", sourcePath, walkErr)
			}
			skipped = append(skipped, c.skip(sourcePath, path, walkErr))
			continue
		}
		if path == sourcePath {
			continue
		}

		rel, err := filepath.Rel(sourcePath, path)
		if err != nil {
			skipped = append(skipped, domain.Skip{RelativePath: path, Err: err})
			continue
		}
		if c.excluded(rel) {
			c.Logger.Verbosef("Excluded %s", rel)
			if walker.Stat().IsDir() {
				walker.SkipDir()
			}
			continue
		}

		target := filepath.Join(destPath, rel)
		if err := c.copyItem(path, target, walker.Stat()); err != nil {
			skipped = append(skipped, c.skip(sourcePath, path, err))
			continue
		}
		copied++
		if c.OnProgress != nil {
			c.OnProgress(rel, copied)
		}
	}

	c.Logger.Verbosef("Copied %d items into %s (%d skipped)", copied, destPath, len(skipped))
	return domain.WithSkips(domain.OperationCopy, destPath, skipped)
}

func (c *Copier) copyItem(source, target string, info os.FileInfo) error {
	mode := info.Mode()
	if mode.IsDir() {
		return c.FS.MkdirAll(target, dirPerm)
	}
	if err := c.FS.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
		return err
	}
	switch {
	case mode&os.ModeSymlink != 0:
		return c.FS.CopySymlink(source, target)
	case mode.IsRegular():
		return c.FS.CopyFile(source, target)
	default:
		return fmt.Errorf("unsupported file type %s", mode.Type())
	}
}

func (c *Copier) skip(sourcePath, path string, err error) domain.Skip {
	rel, relErr := filepath.Rel(sourcePath, path)
	if relErr != nil {
		rel = path
	}
	c.Logger.Warnf("Skipped %s: %v", rel, err)
	return domain.Skip{
		RelativePath: rel,
		Err:          appErrors.Wrap(appErrors.PartialWrite, "copy", rel, err),
	}
}

// excluded matches rel case-insensitively against the exclude globs.
func (c *Copier) excluded(rel string) bool {
	if len(c.Excludes) == 0 {
		return false
	}
	normalized := strings.ToLower(filepath.ToSlash(rel))
	for _, pattern := range c.Excludes {
		matched, err := doublestar.Match(strings.ToLower(pattern), normalized)
		if err == nil && matched {
			return true
		}
	}
	return false
}
