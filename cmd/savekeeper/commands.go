package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"savekeeper/internal/config"
	"savekeeper/internal/domain"
	appErrors "savekeeper/internal/errors"
	"savekeeper/internal/schedule"
	"savekeeper/internal/tui"
)

var errOperationFailed = errors.New("operation failed")

func newRootCommand() *cobra.Command {
	var cfg config.Config
	var svc *services

	setup := func(logWriter io.Writer) error {
		finalized, err := config.Finalize(cfg)
		if err != nil {
			return configError(err)
		}
		svc, err = newServices(finalized, logWriter)
		return err
	}
	withServices := func(run func(cmd *cobra.Command, args []string, svc *services) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			if err := setup(os.Stderr); err != nil {
				return err
			}
			return run(cmd, args, svc)
		}
	}

	root := &cobra.Command{
		Use:           "savekeeper",
		Short:         "Back up and restore Baldur's Gate 3 save folders",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return cmd.Help()
			}
			if err := setup(io.Discard); err != nil {
				return err
			}
			return runTUI(svc)
		},
	}
	config.RegisterFlags(root.PersistentFlags(), &cfg)

	var listArchive bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List saves, oldest first",
		Args:  cobra.NoArgs,
		RunE: withServices(func(cmd *cobra.Command, _ []string, svc *services) error {
			entries, err := svc.catalog.Scan(cmd.Context(), svc.root(listArchive))
			if err != nil {
				return err
			}
			title := "Live saves"
			if listArchive {
				title = "Archived saves"
			}
			svc.printer.PrintCatalog(title, entries)
			return nil
		}),
	}
	list.Flags().BoolVar(&listArchive, "archived", false, "List the archive instead of the live directory")

	archive := &cobra.Command{
		Use:   "archive [NAME]",
		Short: "Copy a live save, or all of them, into the archive",
		Args:  cobra.MaximumNArgs(1),
		RunE: withServices(func(_ *cobra.Command, args []string, svc *services) error {
			return copyCommand(svc, "Archive", args, svc.cfg.LiveDir, svc.cfg.ArchiveDir)
		}),
	}

	restore := &cobra.Command{
		Use:   "restore [NAME]",
		Short: "Copy an archived save, or all of them, back into the live directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: withServices(func(_ *cobra.Command, args []string, svc *services) error {
			return copyCommand(svc, "Restore", args, svc.cfg.ArchiveDir, svc.cfg.LiveDir)
		}),
	}

	del := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete an archived save",
		Args:  cobra.ExactArgs(1),
		RunE: withServices(func(_ *cobra.Command, args []string, svc *services) error {
			name, err := saveName(args[0])
			if err != nil {
				return err
			}
			req := domain.DeleteRequest{TargetPath: filepath.Join(svc.cfg.ArchiveDir, name)}
			return report(svc, "Delete "+name, runAndWait(svc.runner, newDispatcher(), req))
		}),
	}

	var previewArchive bool
	preview := &cobra.Command{
		Use:   "preview NAME",
		Short: "Show the preview image stored in a save",
		Args:  cobra.ExactArgs(1),
		RunE: withServices(func(cmd *cobra.Command, args []string, svc *services) error {
			name, err := saveName(args[0])
			if err != nil {
				return err
			}
			entry := domain.SaveEntry{Name: name, Path: filepath.Join(svc.root(previewArchive), name)}
			result, err := svc.thumbnails.Load(cmd.Context(), entry)
			if err != nil {
				return err
			}
			svc.printer.PrintPreview(result)
			return nil
		}),
	}
	preview.Flags().BoolVar(&previewArchive, "archived", false, "Look in the archive instead of the live directory")

	var spec string
	watch := &cobra.Command{
		Use:   "watch",
		Short: "Archive all live saves on a cron schedule until interrupted",
		Args:  cobra.NoArgs,
		PreRunE: func(*cobra.Command, []string) error {
			if err := schedule.Validate(spec); err != nil {
				return configError(err)
			}
			return nil
		},
		RunE: withServices(func(cmd *cobra.Command, _ []string, svc *services) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watchCommand(ctx, svc, spec)
		}),
	}
	watch.Flags().StringVarP(&spec, "schedule", "s", "@every 15m", "Cron line or descriptor such as @hourly")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse and manage saves interactively",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := setup(io.Discard); err != nil {
				return err
			}
			return runTUI(svc)
		},
	}

	root.AddCommand(list, archive, restore, del, preview, watch, tuiCmd)
	return root
}

func copyCommand(svc *services, verb string, args []string, source, dest string) error {
	req := domain.CopyRequest{SourceRoot: source, DestRoot: dest}
	label := verb + " all"
	if len(args) == 1 {
		name, err := saveName(args[0])
		if err != nil {
			return err
		}
		req.Subfolder = name
		label = verb + " " + name
	}
	return report(svc, label, runAndWait(svc.runner, newDispatcher(), req))
}

func report(svc *services, label string, outcome domain.Outcome) error {
	svc.printer.PrintOutcome(label, outcome)
	if outcome.Status == domain.Failed {
		return errOperationFailed
	}
	return nil
}

func watchCommand(ctx context.Context, svc *services, spec string) error {
	d := newDispatcher()
	svc.runner.Dispatch = d.Dispatch
	req := domain.CopyRequest{SourceRoot: svc.cfg.LiveDir, DestRoot: svc.cfg.ArchiveDir}

	watchErr := make(chan error, 1)
	go func() {
		watchErr <- schedule.Watch(ctx, spec, svc.logger, func() {
			svc.runner.Run(req, func(outcome domain.Outcome) {
				svc.printer.PrintOutcome("Archive all", outcome)
			})
		})
	}()

	d.drain(ctx.Done())
	err := <-watchErr

	// Outcomes of runs still in flight are delivered before returning.
	idle := make(chan struct{})
	go func() {
		svc.runner.Wait()
		close(idle)
	}()
	d.drain(idle)
	return err
}

func runTUI(svc *services) error {
	model := tui.NewModel(tui.Config{
		LiveDir:    svc.cfg.LiveDir,
		ArchiveDir: svc.cfg.ArchiveDir,
		Catalog:    svc.catalog,
		Runner:     svc.runner,
		Thumbnails: svc.thumbnails,
	})
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// saveName accepts a bare directory name directly under a root.
func saveName(name string) (string, error) {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name || filepath.IsAbs(name) {
		return "", appErrors.Wrap(appErrors.InvalidConfig, "argument", name, fmt.Errorf("%q is not a save name", name))
	}
	return name, nil
}
