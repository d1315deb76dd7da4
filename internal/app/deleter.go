package app

import (
	"context"
	"errors"
	"os"

	"savekeeper/internal/domain"
	appErrors "savekeeper/internal/errors"
	"savekeeper/internal/logging"
)

// Deleter removes a directory tree bottom-up. Symbolic links are unlinked and never
// descended into, so a link cannot widen the delete beyond the target tree.
type Deleter struct {
	FS     FileSystem
	Logger logging.Logger
}

func (d *Deleter) Delete(ctx context.Context, req domain.DeleteRequest) domain.Outcome {
	target := req.Target()
	if d.FS == nil {
		return domain.FailedOutcome(domain.OperationDelete, target,
			appErrors.Wrap(appErrors.Internal, "delete", target, errors.New("deleter requires FS")))
	}

	stop := d.Logger.Measure("Deleting " + target)
	defer stop()

	info, err := d.FS.Lstat(target)
	if err != nil {
		kind := appErrors.DeleteFailure
		if os.IsNotExist(err) {
			kind = appErrors.NotFound
		}
		return domain.FailedOutcome(domain.OperationDelete, target, appErrors.Wrap(kind, "stat", target, err))
	}

	if isSymlink(info) || !info.IsDir() {
		err = d.remove(target)
	} else {
		err = d.removeTree(ctx, target)
	}
	if err != nil {
		return domain.FailedOutcome(domain.OperationDelete, target, err)
	}
	return domain.CompletedOutcome(domain.OperationDelete, target)
}

// removeTree empties dir depth-first and then removes dir itself.
func (d *Deleter) removeTree(ctx context.Context, dir string) error {
	children, err := d.FS.ReadDir(dir)
	if err != nil {
		return appErrors.Wrap(appErrors.DeleteFailure, "readdir", dir, err)
	}
	for _, child := range children {
		if err := ctx.Err(); err != nil {
			return appErrors.Wrap(appErrors.DeleteFailure, "delete", dir, err)
		}
		path := d.FS.Join(dir, child.Name())
		switch {
		case isSymlink(child):
			err = d.remove(path)
		case child.IsDir():
			err = d.removeTree(ctx, path)
		default:
			err = d.remove(path)
		}
		if err != nil {
			return err
		}
	}
	return d.remove(dir)
}

func (d *Deleter) remove(path string) error {
	if err := d.FS.Remove(path); err != nil {
		return appErrors.Wrap(appErrors.DeleteFailure, "remove", path, err)
	}
	d.Logger.Verbosef("Removed %s", path)
	return nil
}

func isSymlink(info os.FileInfo) bool {
	return info.Mode()&os.ModeSymlink != 0
}
