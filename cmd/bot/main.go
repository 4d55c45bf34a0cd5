package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"homework_bot/internal/config"
	"homework_bot/internal/notifier"
	"homework_bot/internal/poller"
	"homework_bot/internal/practicum"
	"homework_bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Error("create data directory", "path", dir, "error", err)
			os.Exit(1)
		}
	}

	store, err := storage.NewSQLite(cfg.DatabasePath)
	if err != nil {
		log.Error("open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	tg, err := notifier.New(cfg.TelegramToken, cfg.TelegramChatID, log)
	if err != nil {
		log.Error("create telegram notifier", "error", err)
		os.Exit(1)
	}

	api := practicum.New(http.DefaultClient, cfg.Endpoint, cfg.PracticumToken)
	p := poller.New(api, tg, store, log, cfg.RetryInterval)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := p.Restore(ctx); err != nil {
		log.Error("restore state", "error", err)
		os.Exit(1)
	}

	log.Info("starting bot", "endpoint", cfg.Endpoint, "chat", cfg.TelegramChatID)

	p.Run(ctx)

	log.Info("bot stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
