package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Tejax-v2/Mediversal-Appointment-API/internal/api"
	"github.com/Tejax-v2/Mediversal-Appointment-API/internal/appointment"
	"github.com/Tejax-v2/Mediversal-Appointment-API/internal/config"
	"github.com/Tejax-v2/Mediversal-Appointment-API/internal/db"
	redisclient "github.com/Tejax-v2/Mediversal-Appointment-API/internal/redis"
)

const version = "1.0.0"

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("api-server starting up")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load error", zap.Error(err))
	}

	logger.Info("configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("http_port", cfg.HTTPPort),
	)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect Postgres
	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		logger.Fatal("postgres connection error", zap.Error(err))
	}
	defer pgPool.Close()
	logger.Info("connected to Postgres")

	migrateCtx, cancelMigrate := context.WithTimeout(rootCtx, 10*time.Second)
	err = db.Migrate(migrateCtx, pgPool)
	cancelMigrate()
	if err != nil {
		logger.Fatal("schema migration error", zap.Error(err))
	}

	// Redis is optional. When absent the API runs without rate limiting.
	routerCfg := api.RouterConfig{
		Service: appointment.NewService(appointment.NewPgRepository(pgPool)),
		PgPool:  pgPool,
		Logger:  logger,
		Env:     cfg.Env,
		Version: version,
	}

	if cfg.RedisAddr != "" {
		rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			logger.Fatal("redis connection error", zap.Error(err))
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.Warn("error closing redis", zap.Error(err))
			}
		}()
		logger.Info("connected to Redis")

		routerCfg.Redis = rdb
		routerCfg.Limiter = redisclient.NewRedisFixedWindowLimiter(rdb, cfg.RateLimitPerMin, time.Minute)
	} else {
		logger.Info("redis not configured, rate limiting disabled")
	}

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: api.NewRouter(routerCfg),
	}

	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-rootCtx.Done()

	logger.Info("shutting down api-server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
