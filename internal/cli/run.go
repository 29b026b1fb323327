package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gopxl/beep/v2"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/zeedle/internal/app"
	"github.com/llehouerou/zeedle/internal/catalog"
	"github.com/llehouerou/zeedle/internal/errmsg"
	"github.com/llehouerou/zeedle/internal/logger"
	"github.com/llehouerou/zeedle/internal/mpris"
	"github.com/llehouerou/zeedle/internal/notify"
	"github.com/llehouerou/zeedle/internal/playback"
	"github.com/llehouerou/zeedle/internal/player"
	"github.com/llehouerou/zeedle/internal/singleton"
	"github.com/llehouerou/zeedle/internal/state"
	"github.com/llehouerou/zeedle/internal/stderr"
	"github.com/llehouerou/zeedle/internal/watch"
)

// seedHistorySize is how many stored plays seed the navigation history.
const seedHistorySize = 200

// runPlayer starts every service, runs the terminal UI until it quits, and
// saves the settings on the way out.
func runPlayer(ctx context.Context, opts *options) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, cfgErr := opts.loadConfig()
	if err := initLogger(cfg, false); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()
	if cfgErr != nil {
		logger.Warn(errmsg.Format(errmsg.OpConfigLoad, cfgErr))
	}

	lock, err := singleton.Acquire(singleton.DefaultPath())
	if errors.Is(err, singleton.ErrRunning) {
		return errors.New("zeedle is already running")
	}
	if err != nil {
		logger.Warn("single instance check failed", logger.Err(err))
	} else {
		defer func() { _ = lock.Release() }()
	}

	// Capture before the audio backend initializes; ALSA writes to fd 2.
	if err := stderr.Start(); err != nil {
		logger.Warn("stderr capture failed", logger.Err(err))
	} else {
		defer stderr.Stop()
	}

	store, err := state.Open()
	if err != nil {
		logger.Warn(errmsg.Format(errmsg.OpHistoryOpen, err))
	} else {
		defer store.Close()
	}

	res, err := (&catalog.Scanner{}).Scan(ctx, cfg.LibraryRoot, cfg.Sort(), cfg.SortAscending)
	if err != nil {
		logger.Warn(errmsg.FormatWith(errmsg.OpLibraryScan, cfg.LibraryRoot, err))
	}
	cat := catalog.New(res.Tracks)
	logger.Info("library scanned",
		logger.String("root", cfg.LibraryRoot),
		logger.Int("tracks", cat.Len()),
		logger.Int("skipped", len(res.Skipped)),
		logger.Duration("elapsed", res.Elapsed),
	)

	engine, err := player.Open(beep.SampleRate(cfg.SampleRate))
	if err != nil {
		return fmt.Errorf("open audio device: %w", err)
	}
	defer engine.Close()

	popts := playback.Options{
		Engine:      engine,
		Catalog:     cat,
		LibraryRoot: cfg.LibraryRoot,
		Mode:        cfg.Mode(),
		SortKey:     cfg.Sort(),
		Ascending:   cfg.SortAscending,
		Locale:      cfg.Locale,
		AvoidRepeat: cfg.RandomAvoidRepeat,
	}
	if store != nil {
		popts.Recorder = store
		seed, err := store.SeedHistory(ctx, cat, seedHistorySize)
		if err != nil {
			logger.Warn("seed history failed", logger.Err(err))
		}
		popts.History = seed
	}
	svc := playback.New(popts)
	defer svc.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return ignoreCancel(svc.Run(gctx)) })
	g.Go(func() error {
		stderr.Forward(gctx)
		return nil
	})

	if cfg.LastTrackPath != "" {
		_ = svc.Send(playback.RestoreCmd{Path: cfg.LastTrackPath, Position: cfg.Progress()})
	}

	if adapter, err := mpris.New(svc, engine.Position); err != nil {
		logger.Debug("mpris unavailable", logger.Err(err))
	} else {
		defer adapter.Close()
	}

	if n, err := notify.New(); err != nil {
		logger.Debug("desktop notices unavailable", logger.Err(err))
	} else {
		sub := svc.Subscribe()
		g.Go(func() error {
			notify.ReportErrors(gctx, n, sub.Error)
			return nil
		})
	}

	if cfg.WatchLibrary {
		w, err := watch.New(cfg.LibraryRoot, watch.DefaultDebounce, func() {
			_ = svc.Send(playback.RefreshCmd{})
		})
		if err != nil {
			logger.Warn(errmsg.FormatWith(errmsg.OpLibraryWatch, cfg.LibraryRoot, err))
		} else {
			defer w.Close()
			g.Go(func() error { return ignoreCancel(w.Run(gctx)) })
		}
	}

	prog := tea.NewProgram(app.New(svc, engine),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(gctx),
	)
	_, runErr := prog.Run()
	if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
		runErr = nil
	}

	cfg.Remember(svc.Latest(), engine.Position())
	if err := cfg.Save(opts.configPath); err != nil {
		logger.Warn(errmsg.Format(errmsg.OpConfigSave, err))
	}

	stop()
	_ = svc.Close()
	if err := g.Wait(); err != nil {
		logger.Warn("background task failed", logger.Err(err))
	}
	return runErr
}

func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
