package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/avbelov/countbook/internal/backup"
	"github.com/avbelov/countbook/internal/bot"
	"github.com/avbelov/countbook/internal/charts"
	"github.com/avbelov/countbook/internal/config"
	"github.com/avbelov/countbook/internal/dialog"
	"github.com/avbelov/countbook/internal/repository"
	"github.com/avbelov/countbook/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	log := newLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := repository.NewSQLiteRepository(cfg.DBPath)
	if err != nil {
		log.Error("open repository", "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	tracker := service.NewTracker(repo)
	engine := dialog.NewEngine(tracker, dialog.NewStore(repo), charts.NewGenerator())

	b, err := bot.New(cfg.TelegramToken, engine, log)
	if err != nil {
		log.Error("create bot", "error", err)
		os.Exit(1)
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("starting long polling")
		return b.Start(ctx)
	})
	if cfg.EnableBackup {
		uploader, err := backup.NewUploader(ctx, cfg.GoogleCredentialsFile, cfg.DBPath,
			cfg.GoogleDriveFolderID, cfg.BackupInterval, log)
		if err != nil {
			log.Error("create backup uploader", "error", err)
			os.Exit(1)
		}
		group.Go(func() error {
			log.Info("starting backup task", "interval", cfg.BackupInterval)
			return uploader.Run(ctx)
		})
	}

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("stopped")
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}
