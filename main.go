package main

import (
	"context"
	"log"
	"time"

	"planetarium-booking/cmd"
	"planetarium-booking/internal/data/repository"
	"planetarium-booking/internal/event"
	"planetarium-booking/internal/usecase"
	"planetarium-booking/internal/wire"
	"planetarium-booking/pkg/database"
	"planetarium-booking/pkg/redisx"
	"planetarium-booking/pkg/utils"

	"go.uber.org/zap"
)

const sessionCleanupInterval = time.Hour

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.AutoMigrate {
		if err := database.Migrate(context.Background(), db); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Info("Database schema applied")
	}

	rdb, err := redisx.NewClient(config.Redis)
	if err != nil {
		// cache and rate limiter are optional
		logger.Warn("Redis unavailable, running without cache", zap.Error(err), zap.String("addr", config.Redis.Addr))
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	var publisher event.Publisher = event.NopPublisher{}
	if config.AMQP.URL != "" {
		publisher, err = event.NewAMQPPublisher(config.AMQP.URL, config.AMQP.Queue, logger)
		if err != nil {
			logger.Warn("AMQP unavailable, reservation events disabled", zap.Error(err))
			publisher = event.NopPublisher{}
		}
	}
	defer publisher.Close()

	repos := repository.NewRepository(db, logger)
	app := wire.Wiring(repos, rdb, publisher, config, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cleanSessions(ctx, app.Service.Auth, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}

func cleanSessions(ctx context.Context, auth usecase.AuthService, logger *zap.Logger) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := auth.CleanExpiredSessions(ctx); err != nil {
				logger.Warn("Session cleanup failed", zap.Error(err))
			}
		}
	}
}
