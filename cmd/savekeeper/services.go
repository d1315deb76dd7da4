package main

import (
	"io"
	"os"

	"savekeeper/internal/app"
	"savekeeper/internal/config"
	appErrors "savekeeper/internal/errors"
	"savekeeper/internal/infra/exif"
	"savekeeper/internal/infra/fs"
	"savekeeper/internal/infra/imaging"
	"savekeeper/internal/logging"
	"savekeeper/internal/presentation"
)

// services is everything a command needs, built once the flags are parsed.
type services struct {
	cfg        config.Config
	catalog    *app.Catalog
	runner     *app.Runner
	thumbnails app.Thumbnails
	printer    presentation.Printer
	logger     logging.Logger
}

func newServices(cfg config.Config, logWriter io.Writer) (*services, error) {
	filesystem := fs.OSFS{}
	if err := app.EnsureRoots(filesystem, cfg.LiveDir, cfg.ArchiveDir); err != nil {
		return nil, err
	}

	logger := logging.New(logWriter, cfg.Verbose)
	runner := &app.Runner{
		Copier: &app.Copier{
			FS:       filesystem,
			Excludes: cfg.Excludes,
			Logger:   logger.With("copy"),
		},
		Deleter: &app.Deleter{
			FS:     filesystem,
			Logger: logger.With("delete"),
		},
		Logger: logger,
	}
	if cfg.Exclusive {
		runner.Locks = app.NewSubtreeLocks()
	}

	return &services{
		cfg:     cfg,
		catalog: &app.Catalog{FS: filesystem, Logger: logger},
		runner:  runner,
		thumbnails: app.Thumbnails{
			FS:        filesystem,
			Decoder:   imaging.Decoder{},
			Metadata:  exif.Reader{},
			Extension: cfg.PreviewExt,
		},
		printer: presentation.Printer{Writer: os.Stdout, Verbose: cfg.Verbose},
		logger:  logger,
	}, nil
}

func (s *services) root(archive bool) string {
	if archive {
		return s.cfg.ArchiveDir
	}
	return s.cfg.LiveDir
}

func configError(err error) error {
	return appErrors.Wrap(appErrors.InvalidConfig, "config", "", err)
}
