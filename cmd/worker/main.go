package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"staybook/internal/config"
	"staybook/internal/database"
	"staybook/internal/notify"
	"staybook/internal/pkg/obs"
	"staybook/internal/repository"
	"staybook/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := obs.NewLogger(cfg.AppEnv)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Error("database connect failed", "error", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
	queue := notify.NewRedisQueue(rdb, cfg.NotifyQueue)
	source := repository.NewBookingRepository(db)
	mailer := worker.NewSMTPMailer(cfg)

	w := worker.New(queue, source, mailer, log, cfg.WorkerMaxAttempts, cfg.WorkerRetryDelay)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("worker stopped", "error", err)
		os.Exit(1)
	}
}
