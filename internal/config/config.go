package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/pflag"
)

const (
	EnvLiveDir    = "SAVEKEEPER_LIVE_DIR"
	EnvArchiveDir = "SAVEKEEPER_ARCHIVE_DIR"
	EnvVerbose    = "SAVEKEEPER_VERBOSE"
	EnvPreviewExt = "SAVEKEEPER_PREVIEW_EXT"
	EnvExclude    = "SAVEKEEPER_EXCLUDE"
)

// Larian profile directory under %LOCALAPPDATA% holding the story saves.
var defaultLiveSubdir = filepath.Join("Larian Studios", "Baldur's Gate 3", "PlayerProfiles", "Public", "Savegames", "Story")

type Config struct {
	LiveDir    string
	ArchiveDir string
	PreviewExt string
	Excludes   []string
	Exclusive  bool
	Verbose    bool
}

// RegisterFlags binds the shared flags onto fs.
func RegisterFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.LiveDir, "live", "l", "", "Live save directory the game reads from")
	fs.StringVarP(&cfg.ArchiveDir, "archive", "a", "", "Archive directory backups are written to")
	fs.StringVar(&cfg.PreviewExt, "preview-ext", "", "Extension of save preview images (default WebP)")
	fs.StringSliceVarP(&cfg.Excludes, "exclude", "x", nil, "Glob of relative paths to leave out of copies (repeatable)")
	fs.BoolVar(&cfg.Exclusive, "exclusive", false, "Reject operations on a subtree another operation is using")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
}

// Finalize fills unset fields from the environment and defaults, then validates.
func Finalize(cfg Config) (Config, error) {
	if cfg.LiveDir == "" {
		cfg.LiveDir = envOrEmpty(EnvLiveDir)
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = envOrEmpty(EnvArchiveDir)
	}
	if cfg.PreviewExt == "" {
		cfg.PreviewExt = envOrEmpty(EnvPreviewExt)
	}
	if len(cfg.Excludes) == 0 {
		cfg.Excludes = envList(EnvExclude)
	}
	if !cfg.Verbose {
		cfg.Verbose = envTruthy(EnvVerbose)
	}

	if cfg.LiveDir == "" {
		cfg.LiveDir = defaultLiveDir()
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = defaultArchiveDir()
	}
	if cfg.LiveDir == "" {
		return Config{}, fmt.Errorf("live directory is required (--live or %s)", EnvLiveDir)
	}
	if cfg.ArchiveDir == "" {
		return Config{}, fmt.Errorf("archive directory is required (--archive or %s)", EnvArchiveDir)
	}

	var err error
	if cfg.LiveDir, err = filepath.Abs(cfg.LiveDir); err != nil {
		return Config{}, err
	}
	if cfg.ArchiveDir, err = filepath.Abs(cfg.ArchiveDir); err != nil {
		return Config{}, err
	}
	if cfg.LiveDir == cfg.ArchiveDir {
		return Config{}, errors.New("live and archive directories must differ")
	}
	if within(cfg.LiveDir, cfg.ArchiveDir) || within(cfg.ArchiveDir, cfg.LiveDir) {
		return Config{}, fmt.Errorf("live directory %s and archive directory %s must not contain each other", cfg.LiveDir, cfg.ArchiveDir)
	}

	cfg.PreviewExt = strings.TrimPrefix(cfg.PreviewExt, ".")
	for _, pattern := range cfg.Excludes {
		if !doublestar.ValidatePattern(pattern) {
			return Config{}, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	return cfg, nil
}

// within reports whether path lies below root.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || filepath.IsAbs(rel) {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func defaultLiveDir() string {
	if runtime.GOOS != "windows" {
		return ""
	}
	base := envOrEmpty("LOCALAPPDATA")
	if base == "" {
		return ""
	}
	return filepath.Join(base, defaultLiveSubdir)
}

func defaultArchiveDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(wd, "saves")
}

func envOrEmpty(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envTruthy(key string) bool {
	val := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}

func envList(key string) []string {
	raw := envOrEmpty(key)
	if raw == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
