// @title        Order System API
// @version      1.0
// @description  Order management backend with JWT authentication and background order lifecycle processing.
// @BasePath     /
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/miniorder/order-system/internal/api"
	"github.com/miniorder/order-system/internal/api/handler"
	"github.com/miniorder/order-system/internal/core/service"
	"github.com/miniorder/order-system/internal/infrastructure/config"
	mongodb "github.com/miniorder/order-system/internal/infrastructure/db/mongo"
	redisdb "github.com/miniorder/order-system/internal/infrastructure/db/redis"
	"github.com/miniorder/order-system/internal/infrastructure/scheduler"
	"github.com/miniorder/order-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	authRepo := mongodb.NewAuthRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	if err := authRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := orderRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("order index creation failed")
	}

	// --- Services ---
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	orderService := service.NewOrderService(orderRepo, service.SweepThresholds{
		ProcessAfter:  cfg.Sweep.ProcessAfter,
		CompleteAfter: cfg.Sweep.CompleteAfter,
	}, log)

	// --- Background sweep ---
	scheduler.New(orderService, cfg.Sweep.Interval, log).Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(api.RouterConfig{
		AuthService:  authService,
		OrderService: orderService,
		Limiter:      redisdb.NewRateLimiter(rdb),
		JWTSecret:    cfg.JWTSecret,
		HealthChecks: map[string]handler.CheckFunc{
			"mongo": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		Log: log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}
