package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/civiworks/workboard/internal/api"
	"github.com/civiworks/workboard/internal/core/service"
	"github.com/civiworks/workboard/internal/geo"
	"github.com/civiworks/workboard/internal/infrastructure/blob"
	"github.com/civiworks/workboard/internal/infrastructure/config"
	mongodb "github.com/civiworks/workboard/internal/infrastructure/db/mongo"
	redisdb "github.com/civiworks/workboard/internal/infrastructure/db/redis"
	"github.com/civiworks/workboard/internal/infrastructure/identity"
	"github.com/civiworks/workboard/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	redisClient, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	blobStore, err := blob.NewS3Store(ctx, blob.Config{
		Endpoint:  cfg.S3.Endpoint,
		Region:    cfg.S3.Region,
		Bucket:    cfg.S3.Bucket,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise blob store")
	}

	// --- Infrastructure adapters ---
	revocations := redisdb.NewRevocationList(redisClient)
	provider := identity.NewProvider(db, revocations, cfg.JWTSecret, cfg.TokenTTL, logger.Component("identity"))
	users := mongodb.NewUserRepository(db)
	areas := mongodb.NewAreaRepository(db)
	reports := mongodb.NewReportRepository(db)
	provisionCache := redisdb.NewProvisionCache(redisClient)

	// --- Position source ---
	// A pinned kiosk location feeds report submissions that arrive without
	// coordinates. Without one, submissions must carry their own.
	var position service.PositionFallback
	if cfg.Location.Lat != 0 || cfg.Location.Lng != 0 {
		tracker := geo.NewTracker(
			geo.NewStaticSource(cfg.Location.Lat, cfg.Location.Lng),
			cfg.Location.FixTimeout,
			logger.Component("geo"),
		)
		tracker.Start(ctx)
		defer tracker.Stop()
		position = tracker
	}

	// --- Core services ---
	sessions := service.NewSessionStore()
	authService := service.NewAuthService(provider, users, sessions, logger.Component("auth"))
	provisionService := service.NewProvisionService(users, authService, provisionCache, logger.Component("provision"))
	userService := service.NewUserService(users, authService, logger.Component("users"))
	areaService := service.NewAreaService(areas, logger.Component("areas"))
	reportService := service.NewReportService(reports, blobStore, position, logger.Component("reports"))

	sequencer := service.NewSequencer(provider, users, provisionService, sessions, logger.Component("sequencer"))
	if err := sequencer.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start session sequencer")
	}

	e := api.NewRouter(api.Deps{
		Sessions:  sessions,
		Sequencer: sequencer,
		Auth:      authService,
		Provision: provisionService,
		Users:     userService,
		Areas:     areaService,
		Reports:   reportService,
		Mongo:     db,
		Redis:     redisClient,
		Log:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	sequencer.Wait()
	log.Info().Msg("server stopped")
}
