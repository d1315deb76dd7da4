package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/pflag"
)

func parse(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	var cfg Config
	fs := pflag.NewFlagSet("savekeeper", pflag.ContinueOnError)
	RegisterFlags(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}
	return Finalize(cfg)
}

func TestFlagsTakePrecedenceOverEnv(t *testing.T) {
	live := t.TempDir()
	archive := t.TempDir()
	t.Setenv(EnvLiveDir, "/from/env")
	t.Setenv(EnvVerbose, "")

	cfg, err := parse(t, "--live", live, "-a", archive, "--preview-ext", ".png", "-x", "**/*.tmp", "--exclusive")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LiveDir != live || cfg.ArchiveDir != archive {
		t.Fatalf("unexpected dirs: %s %s", cfg.LiveDir, cfg.ArchiveDir)
	}
	if cfg.PreviewExt != "png" {
		t.Fatalf("expected extension without dot, got %q", cfg.PreviewExt)
	}
	if len(cfg.Excludes) != 1 || !cfg.Exclusive {
		t.Fatalf("unexpected options: %+v", cfg)
	}
}

func TestEnvFallbacks(t *testing.T) {
	live := t.TempDir()
	archive := t.TempDir()
	t.Setenv(EnvLiveDir, live)
	t.Setenv(EnvArchiveDir, archive)
	t.Setenv(EnvVerbose, "yes")
	t.Setenv(EnvExclude, "**/*.tmp, ,**/cache")

	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LiveDir != live || cfg.ArchiveDir != archive {
		t.Fatalf("unexpected dirs: %s %s", cfg.LiveDir, cfg.ArchiveDir)
	}
	if !cfg.Verbose {
		t.Fatalf("expected verbose from env")
	}
	if len(cfg.Excludes) != 2 {
		t.Fatalf("expected 2 excludes, got %v", cfg.Excludes)
	}
}

func TestArchiveDefaultsToWorkingDirectory(t *testing.T) {
	t.Setenv(EnvArchiveDir, "")
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := parse(t, "--live", filepath.Join(dir, "live"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	want := filepath.Join(wd, "saves")
	if cfg.ArchiveDir != want {
		t.Fatalf("expected %s, got %s", want, cfg.ArchiveDir)
	}
}

func TestLiveDirRequiredOffWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("live directory has a default on windows")
	}
	t.Setenv(EnvLiveDir, "")

	if _, err := parse(t, "--archive", t.TempDir()); err == nil {
		t.Fatalf("expected error without live directory")
	}
}

func TestRejectsSameLiveAndArchive(t *testing.T) {
	dir := t.TempDir()
	if _, err := parse(t, "--live", dir, "--archive", dir); err == nil {
		t.Fatalf("expected error for identical directories")
	}
}

func TestRejectsInvalidExclude(t *testing.T) {
	if _, err := parse(t, "--live", t.TempDir(), "--archive", t.TempDir(), "--exclude", "[unclosed"); err == nil {
		t.Fatalf("expected error for invalid pattern")
	}
}

func TestRejectsNestedRoots(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "saves")

	if _, err := parse(t, "--live", dir, "--archive", nested); err == nil {
		t.Fatalf("expected error for archive inside live directory")
	}
	if _, err := parse(t, "--live", nested, "--archive", dir); err == nil {
		t.Fatalf("expected error for live inside archive directory")
	}
}

func TestDefaultArchiveInsideLiveIsRejected(t *testing.T) {
	t.Setenv(EnvArchiveDir, "")
	dir := t.TempDir()
	t.Chdir(dir)

	if _, err := parse(t, "--live", "."); err == nil {
		t.Fatalf("expected error when running from the live directory")
	}
}

func TestSiblingRootsAreAccepted(t *testing.T) {
	dir := t.TempDir()
	if _, err := parse(t, "--live", filepath.Join(dir, "saves-live"), "--archive", filepath.Join(dir, "saves")); err != nil {
		t.Fatalf("unexpected error for sibling directories: %v", err)
	}
}
