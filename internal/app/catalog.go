package app

import (
	"context"
	"errors"
	"os"
	"sort"

	"savekeeper/internal/domain"
	appErrors "savekeeper/internal/errors"
	"savekeeper/internal/logging"
)

const dirPerm os.FileMode = 0o755

// Catalog lists the save directories directly under a root.
type Catalog struct {
	FS     FileSystem
	Logger logging.Logger
}

// Scan returns the immediate subdirectories of root, oldest first. A missing root is
// created and reported as empty. Children whose metadata cannot be read are left out.
func (c *Catalog) Scan(ctx context.Context, root string) ([]domain.SaveEntry, error) {
	if c.FS == nil {
		return nil, errors.New("catalog requires FS")
	}

	stop := c.Logger.Measure("Scanning " + root)
	defer stop()

	if err := c.FS.MkdirAll(root, dirPerm); err != nil {
		return nil, appErrors.Wrap(appErrors.Structural, "mkdir", root, err)
	}

	children, err := c.FS.ReadDir(root)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.Structural, "readdir", root, err)
	}

	entries := make([]domain.SaveEntry, 0, len(children))
	for _, child := range children {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := c.FS.Join(root, child.Name())
		info := child
		if child.Mode()&os.ModeSymlink != 0 {
			// Linked save folders are listed like the directories they point at.
			resolved, statErr := c.FS.Stat(path)
			if statErr != nil {
				c.Logger.Verbosef("Skipping %s: %v", path, statErr)
				continue
			}
			info = resolved
		}
		if !info.IsDir() {
			continue
		}
		entries = append(entries, domain.SaveEntry{
			Name:       child.Name(),
			Path:       path,
			ModifiedAt: info.ModTime(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ModifiedAt.Before(entries[j].ModifiedAt)
	})
	c.Logger.Verbosef("Found %d saves in %s", len(entries), root)

	return entries, nil
}

// EnsureRoots creates every root that does not exist yet.
func EnsureRoots(fs FileSystem, roots ...string) error {
	for _, root := range roots {
		if err := fs.MkdirAll(root, dirPerm); err != nil {
			return appErrors.Wrap(appErrors.Structural, "mkdir", root, err)
		}
	}
	return nil
}
