package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"tickets/internal/app"
	"tickets/internal/infrastructure/email"
	"tickets/internal/infrastructure/storage"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := app.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("loading config")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer redisClient.Close()

	db, err := sqlx.Connect("postgres", cfg.PostgresDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("connecting to postgres")
	}
	defer db.Close()

	files, err := storage.NewLocalStorage(cfg.ReceiptsDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("preparing receipts directory")
	}

	watermillLogger := watermill.NewStdLogger(false, false)

	a, err := app.NewApp(
		cfg,
		watermillLogger,
		redisClient,
		db,
		files,
		email.NewLogSender(logger),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("wiring application")
	}

	if err := a.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("application stopped with error")
	}
}
