package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devboard/devboard-api/internal/api"
	"github.com/devboard/devboard-api/internal/infrastructure/config"
	mongodb "github.com/devboard/devboard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/devboard/devboard-api/internal/infrastructure/db/redis"
	"github.com/devboard/devboard-api/internal/infrastructure/storage"
	"github.com/devboard/devboard-api/pkg/logger"
)

// @title           devboard API
// @version         1.0
// @description     REST backend for the devboard content-management and job-board application.
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure mongodb indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	store, err := storage.NewLocalStore(cfg.Upload.Dir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Upload.Dir).Msg("failed to prepare upload directory")
	}

	e := api.NewRouter(cfg, db, rdb, store)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// ensureIndexes installs the unique and query indexes for every collection
// before the server starts accepting traffic.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for _, ensure := range []func(context.Context) error{
		mongodb.NewUserRepository(db).EnsureIndexes,
		mongodb.NewBlogRepository(db).EnsureIndexes,
		mongodb.NewJobRepository(db).EnsureIndexes,
		mongodb.NewAssetRepository(db).EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			return err
		}
	}
	return nil
}
