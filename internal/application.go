package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/kxo-monitor/internal/config"
	"github.com/rocketscienceinc/kxo-monitor/internal/history"
	"github.com/rocketscienceinc/kxo-monitor/internal/kernel"
	"github.com/rocketscienceinc/kxo-monitor/internal/repository"
	"github.com/rocketscienceinc/kxo-monitor/internal/repository/storage"
	"github.com/rocketscienceinc/kxo-monitor/internal/session"
	"github.com/rocketscienceinc/kxo-monitor/internal/terminal"
)

// RunApp - runs one monitoring session against the kxo kernel module.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	if err := kernel.CheckStatus(conf.Kernel.StatusPath); err != nil {
		return fmt.Errorf("kxo module is not ready: %w", err)
	}

	queue := history.New()
	defer queue.Destroy()

	device, err := kernel.OpenDevice(conf.Kernel.DevicePath)
	if err != nil {
		return fmt.Errorf("could not open kxo device: %w", err)
	}
	defer func() {
		if err = device.Close(); err != nil {
			log.Error("could not close device", "error", err)
		}
	}()

	stdinFd := int(os.Stdin.Fd())

	termState, err := terminal.MakeRaw(stdinFd)
	if err != nil {
		return fmt.Errorf("could not prepare terminal: %w", err)
	}
	defer termState.Restore()

	// A signal must not leave the controlling terminal in raw mode. The loop
	// itself only exits via Ctrl-Q, so this path is the abnormal one.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		sig, ok := <-sigs
		if !ok {
			return
		}
		log.Info("received signal, restoring terminal", "signal", sig)
		termState.Restore()
		os.Exit(1)
	}()

	attr := kernel.NewAttrFile(conf.Kernel.AttrPath)
	sess := session.New(logger, stdinFd, device, attr, queue, os.Stdout)

	log.Info("session started", "device", conf.Kernel.DevicePath)
	if err = sess.Run(); err != nil {
		return fmt.Errorf("session failed: %w", err)
	}

	// Back to cooked mode before the report so line endings behave.
	termState.Restore()

	session.WriteReport(os.Stdout, queue)

	if conf.Archive.Backend != "" {
		archiveGames(log, conf, queue)
	}

	return nil
}

// archiveGames persists the session's completed games. The archive is a
// convenience: any failure here is logged and the report already printed, so
// the session still ends cleanly.
func archiveGames(log *slog.Logger, conf *config.Config, queue *history.Queue) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	archive, cleanup, err := newGameArchive(ctx, conf)
	if err != nil {
		log.Error("archive unavailable, games not persisted", "backend", conf.Archive.Backend, "error", err)
		return
	}
	defer cleanup()

	finishedAt := time.Now().UTC()

	var records []*history.GameRecord
	queue.ForEach(func(rec *history.GameRecord) bool {
		records = append(records, rec)
		return true
	})

	// The queue traverses newest first; save oldest first so the archive's
	// own newest-first listing matches play order.
	var archived int
	for i := len(records) - 1; i >= 0; i-- {
		game := &repository.ArchivedGame{
			Moves:      records[i].Moves(),
			Winner:     string(records[i].Winner()),
			FinishedAt: finishedAt,
		}
		if err = archive.Save(ctx, game); err != nil {
			log.Error("could not archive game", "error", err)
			break
		}
		archived++
	}

	log.Info("session games archived", "backend", conf.Archive.Backend, "games", archived)
}

func newGameArchive(ctx context.Context, conf *config.Config) (repository.GameArchive, func(), error) {
	switch conf.Archive.Backend {
	case config.ArchiveRedis:
		client, err := storage.NewRedis(ctx, conf.Archive.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, err
		}
		return repository.NewGameArchive(client), func() { _ = client.Close() }, nil

	case config.ArchiveSQLite:
		db, err := storage.NewSQLite(conf.Archive.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err = storage.InitSQLite(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return repository.NewSQLiteGameArchive(db), func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown archive backend %q", conf.Archive.Backend)
	}
}
