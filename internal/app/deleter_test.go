package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"

	"savekeeper/internal/domain"
	appErrors "savekeeper/internal/errors"
	osfs "savekeeper/internal/infra/fs"
)

func TestDeleteRemovesWholeTree(t *testing.T) {
	g := NewWithT(t)
	target := filepath.Join(t.TempDir(), "20240101_1200__MyRun1")
	writeFile(t, filepath.Join(target, "MyRun1.WebP"), "img")
	writeFile(t, filepath.Join(target, "nested", "deeper", "save.lsv"), "data")
	g.Expect(os.MkdirAll(filepath.Join(target, "empty"), 0o755)).To(Succeed())

	deleter := Deleter{FS: osfs.OSFS{}}
	outcome := deleter.Delete(context.Background(), domain.DeleteRequest{TargetPath: target})

	g.Expect(outcome.Status).To(Equal(domain.Completed))
	_, err := os.Stat(target)
	g.Expect(os.IsNotExist(err)).To(BeTrue())
}

func TestDeleteUnlinksSymlinksWithoutTraversing(t *testing.T) {
	g := NewWithT(t)
	external := t.TempDir()
	writeFile(t, filepath.Join(external, "precious.txt"), "keep me")
	target := filepath.Join(t.TempDir(), "S__Run")
	writeFile(t, filepath.Join(target, "save.lsv"), "data")
	g.Expect(os.Symlink(external, filepath.Join(target, "escape"))).To(Succeed())
	g.Expect(os.Symlink(target, filepath.Join(target, "loop"))).To(Succeed())

	deleter := Deleter{FS: osfs.OSFS{}}
	outcome := deleter.Delete(context.Background(), domain.DeleteRequest{TargetPath: target})

	g.Expect(outcome.Status).To(Equal(domain.Completed))
	g.Expect(target).NotTo(BeAnExistingFile())
	g.Expect(readFile(t, filepath.Join(external, "precious.txt"))).To(Equal("keep me"))
}

func TestDeleteUnlinksSymlinkTarget(t *testing.T) {
	g := NewWithT(t)
	external := t.TempDir()
	writeFile(t, filepath.Join(external, "precious.txt"), "keep me")
	link := filepath.Join(t.TempDir(), "S__Run")
	g.Expect(os.Symlink(external, link)).To(Succeed())

	deleter := Deleter{FS: osfs.OSFS{}}
	outcome := deleter.Delete(context.Background(), domain.DeleteRequest{TargetPath: link})

	g.Expect(outcome.Status).To(Equal(domain.Completed))
	_, err := os.Lstat(link)
	g.Expect(os.IsNotExist(err)).To(BeTrue())
	g.Expect(filepath.Join(external, "precious.txt")).To(BeARegularFile())
}

func TestDeleteMissingTargetIsNotFound(t *testing.T) {
	g := NewWithT(t)

	deleter := Deleter{FS: osfs.OSFS{}}
	outcome := deleter.Delete(context.Background(), domain.DeleteRequest{TargetPath: filepath.Join(t.TempDir(), "nope")})

	g.Expect(outcome.Status).To(Equal(domain.Failed))
	g.Expect(appErrors.KindOf(outcome.Err)).To(Equal(appErrors.NotFound))
}

func TestDeleteStopsAtFirstFailure(t *testing.T) {
	g := NewWithT(t)
	target := filepath.Join(t.TempDir(), "S__Run")
	writeFile(t, filepath.Join(target, "a.lsv"), "a")
	writeFile(t, filepath.Join(target, "b.lsv"), "b")
	writeFile(t, filepath.Join(target, "c.lsv"), "c")

	fs := &faultyFS{failRemove: "b.lsv"}
	deleter := Deleter{FS: fs}
	outcome := deleter.Delete(context.Background(), domain.DeleteRequest{TargetPath: target})

	g.Expect(outcome.Status).To(Equal(domain.Failed))
	g.Expect(appErrors.KindOf(outcome.Err)).To(Equal(appErrors.DeleteFailure))
	g.Expect(fs.removed).To(Equal([]string{filepath.Join(target, "a.lsv")}))
	g.Expect(filepath.Join(target, "c.lsv")).To(BeARegularFile())
	g.Expect(target).To(BeADirectory())
}

func TestDeleteRemovesChildrenBeforeParents(t *testing.T) {
	g := NewWithT(t)
	target := filepath.Join(t.TempDir(), "S__Run")
	writeFile(t, filepath.Join(target, "dir", "file.lsv"), "x")

	fs := &faultyFS{}
	deleter := Deleter{FS: fs}
	outcome := deleter.Delete(context.Background(), domain.DeleteRequest{TargetPath: target})

	g.Expect(outcome.Status).To(Equal(domain.Completed))
	g.Expect(fs.removed).To(Equal([]string{
		filepath.Join(target, "dir", "file.lsv"),
		filepath.Join(target, "dir"),
		target,
	}))
}
