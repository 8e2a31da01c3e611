package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/identity-platform/auth-service/internal/api"
	"github.com/identity-platform/auth-service/internal/core/service"
	mongodb "github.com/identity-platform/auth-service/internal/infrastructure/db/mongo"
	redisdb "github.com/identity-platform/auth-service/internal/infrastructure/db/redis"
	"github.com/identity-platform/auth-service/internal/infrastructure/outbound"
	"github.com/identity-platform/auth-service/internal/pkg/config"
	"github.com/identity-platform/auth-service/internal/pkg/crypto"
	"github.com/identity-platform/auth-service/pkg/logger"
)

// @title        Auth Service API
// @version      1.0
// @description  Credential issuance and access control for the platform.
// @BasePath     /

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	cipher, err := crypto.NewFieldCipher(cfg.EncryptionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid encryption key")
	}

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	users := mongodb.NewUserRepository(db, cipher)
	accounts := mongodb.NewServiceAccountRepository(db, cipher)
	guard := redisdb.NewBootstrapGuard(rdb, cfg.Redis.GuardTTL)

	// --- Outbound side effects ---
	dispatcher := outbound.NewDispatcher(cfg.OutboundWorkers, outbound.NewLogSink(log), log)
	dispatcher.Start(ctx)

	// --- Core services ---
	tokens, err := service.NewTokenService(service.TokenConfig{
		AccessSecret:  cfg.AccessSecret,
		RefreshSecret: cfg.RefreshSecret,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("token service init failed")
	}

	authService := service.NewAuthService(users, tokens, dispatcher, log)
	accessService := service.NewAccessService(users, tokens, dispatcher, log)
	userService := service.NewUserService(users, accounts, tokens, dispatcher, log)
	accountService := service.NewServiceAccountService(accounts, tokens, log)
	bootstrapService := service.NewBootstrapService(users, guard, dispatcher, cfg.BootstrapSecret, log)

	if err := accountService.Seed(ctx, cfg.ServiceAccounts); err != nil {
		log.Fatal().Err(err).Msg("service account seeding failed")
	}

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Auth:            authService,
		Access:          accessService,
		User:            userService,
		ServiceAccounts: accountService,
		Bootstrap:       bootstrapService,
		Tokens:          tokens,
		Users:           users,
		Accounts:        accounts,
		DB:              db,
		Redis:           rdb,
		Log:             log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("auth service started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
