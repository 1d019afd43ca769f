package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/iliyamo/training-diary/internal/cache"
	"github.com/iliyamo/training-diary/internal/cli"
	"github.com/iliyamo/training-diary/internal/config"
	"github.com/iliyamo/training-diary/internal/database"
	"github.com/iliyamo/training-diary/internal/logger"
	"github.com/iliyamo/training-diary/internal/repository"
	"github.com/iliyamo/training-diary/internal/service"
	"github.com/iliyamo/training-diary/internal/watcher"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env wins
	logger.SetupDefault(nil)
	cfg := config.Load()

	client, err := database.Open(cfg.MongoURI)
	if err != nil {
		slog.Error("mongodb connect failed", "err", err)
		os.Exit(1)
	}
	defer database.Close(client)
	db := client.Database(cfg.MongoDB)

	rdb := config.NewRedisClient()
	if rdb == nil {
		slog.Warn("redis unavailable, derived features degraded")
	}

	users := repository.NewUserRepo(db)
	activities := repository.NewActivityRepo(db)
	friends := repository.NewFriendRepo(db)

	diary := service.NewDiary(service.Deps{
		Txn:        repository.NewTxn(client),
		Users:      users,
		Activities: activities,
		Friends:    friends,
		Streaks:    cache.NewStreakTracker(rdb),
		Board:      cache.NewLeaderboard(rdb),
		Reminders:  cache.NewReminders(rdb),
		BcryptCost: cfg.BcryptCost,
		Log:        slog.Default(),
	})

	// The change-feed watcher runs for the whole process lifetime and is
	// cancelled explicitly when the session ends or on SIGINT/SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	w := watcher.New(activities, cfg.ActivityLogPath, slog.Default())
	watcherDone := make(chan struct{})
	go func() {
		defer close(watcherDone)
		if err := w.Run(ctx); err != nil && ctx.Err() == nil {
			slog.Error("activity watcher stopped", "err", err)
		}
	}()

	session := cli.New(diary, os.Stdin, os.Stdout, rdb != nil)
	if err := session.Run(ctx); err != nil {
		slog.Error("session failed", "err", err)
	}

	cancel()
	<-watcherDone
}
