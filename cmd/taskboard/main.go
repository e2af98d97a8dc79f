package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskboard/taskboard/internal/api"
	"github.com/taskboard/taskboard/internal/api/metrics"
	"github.com/taskboard/taskboard/internal/core/service"
	"github.com/taskboard/taskboard/internal/infrastructure/auth"
	mongodb "github.com/taskboard/taskboard/internal/infrastructure/db/mongo"
	redisstore "github.com/taskboard/taskboard/internal/infrastructure/db/redis"
	httpserver "github.com/taskboard/taskboard/internal/infrastructure/http"
	"github.com/taskboard/taskboard/internal/infrastructure/http/handlers"
	"github.com/taskboard/taskboard/internal/pkg/config"
	"github.com/taskboard/taskboard/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty || cfg.IsDevelopment(),
		Service: "taskboard",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:       cfg.Redis.Addr,
		Password:   cfg.Redis.Password,
		DB:         cfg.Redis.DB,
		ClientName: "taskboard-" + cfg.Session.DeviceID,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	taskRepo := mongodb.NewTaskRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	if err := mongodb.EnsureIndexes(ctx, taskRepo, userRepo); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	// --- Auth backend ---
	store := redisstore.NewSessionStore(rdb, cfg.Session.DeviceID, logger.Component("session-store"))
	backend := auth.NewPasswordBackend(
		userRepo,
		store,
		auth.NewTokenIssuer(cfg.Session.JWTSecret),
		cfg.Session.TTL,
		logger.Component("auth"),
	)

	// --- State modules ---
	sessions := service.NewSessionService(backend, logger.Component("session"))
	defer sessions.Close()
	if err := sessions.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start session module")
	}

	tasks := service.NewTaskService(metrics.InstrumentTaskRepository(taskRepo), "", logger.Component("tasks"))
	defer tasks.Close()
	unbind := service.BindSession(ctx, sessions, tasks)
	defer unbind()
	untrack := metrics.TrackState(sessions, tasks)
	defer untrack()

	// --- HTTP ---
	e := httpserver.NewRouter(map[string]handlers.Check{
		"mongodb": handlers.MongoCheck(db),
		"redis":   handlers.RedisCheck(rdb),
	}, logger.Component("http"))
	api.Register(e, sessions, tasks, logger.Component("api"))

	server := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		// Event streams end when ctx is cancelled.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting http server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("failed to listen and serve http")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shut down http server")
		return
	}
	log.Info().Msg("http server stopped")
}
