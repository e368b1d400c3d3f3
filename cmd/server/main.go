// Command server runs the flight-school community API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skyward/flightschool-api/internal/api"
	"github.com/skyward/flightschool-api/internal/api/handler"
	"github.com/skyward/flightschool-api/internal/api/metrics"
	"github.com/skyward/flightschool-api/internal/core/service"
	mongodb "github.com/skyward/flightschool-api/internal/infrastructure/db/mongo"
	redisdb "github.com/skyward/flightschool-api/internal/infrastructure/db/redis"
	"github.com/skyward/flightschool-api/internal/infrastructure/media"
	"github.com/skyward/flightschool-api/internal/infrastructure/queue"
	"github.com/skyward/flightschool-api/internal/pkg/config"
	"github.com/skyward/flightschool-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Hosted store connections ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer rdb.Close()

	// --- Wiring ---
	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes failed")
	}

	dispatcher := queue.NewDispatcher(0, userRepo, log)
	dispatcher.Start(ctx)

	sessionStore := redisdb.NewSessionStore(rdb, cfg.ClientID)
	authService := service.NewAuthService(userRepo, sessionStore, dispatcher, cfg.TokenSecret, cfg.TokenTTL, log)

	if restored, err := authService.Restore(ctx); err != nil {
		log.Warn().Err(err).Msg("session restore failed")
	} else if restored != nil {
		metrics.SessionsRestoredTotal.Inc()
		log.Info().Str("user_id", restored.UserID).Msg("session restored")
	}

	var limiter handler.LoginLimiter = redisdb.NewLoginLimiter(rdb, 0)
	mediaStore := media.NewHTTPStore(cfg.Backend.URL, cfg.Backend.APIKey)

	e := api.NewRouter(api.Deps{
		AuthService: authService,
		MediaStore:  mediaStore,
		Limiter:     limiter,
		Mongo:       db,
		Redis:       rdb,
		TokenSecret: cfg.TokenSecret,
		Logger:      log,
	})

	// --- Serve ---
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
