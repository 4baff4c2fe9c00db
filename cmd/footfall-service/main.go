package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"footfall-service/internal/auth"
	"footfall-service/internal/config"
	"footfall-service/internal/db"
	httphandler "footfall-service/internal/http"
	"footfall-service/internal/http/middleware"
	"footfall-service/internal/logger"
	"footfall-service/internal/repository"
	"footfall-service/internal/repository/memory"
	"footfall-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment, cfg.Log)

	store, err := openStore(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open record store")
	}

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	issuer := auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.AccessTTL)
	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	authService := service.NewAuthService(store, hasher, issuer)
	userService := service.NewUserService(store, hasher)
	branchService := service.NewBranchService(store)
	trackerService := service.NewTrackerService(store)
	billService := service.NewBillService(store)
	dashboardService := service.NewDashboardService(store)

	created, err := authService.EnsureAdmin(context.Background(), cfg.Auth.AdminUsername, cfg.Auth.AdminPassword)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to bootstrap admin user")
	}
	if created {
		appLogger.Info().Str("username", cfg.Auth.AdminUsername).Msg("bootstrap admin user created")
	}

	if err := httphandler.RegisterValidators(); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to register request validators")
	}

	handler := httphandler.NewHandler(authService, userService, branchService, trackerService, billService, dashboardService, appLogger)
	authMiddleware := middleware.Auth(tokenParser, authService)
	router := httphandler.NewRouter(handler, authMiddleware, appLogger, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Str("store", cfg.Store.Driver).Msg("starting footfall service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}

func openStore(cfg *config.Config, log zerolog.Logger) (repository.Store, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		mem, err := memory.New(cfg.Store.SnapshotPath, log)
		if err != nil {
			return repository.Store{}, err
		}
		if cfg.Store.SnapshotPath == "" {
			log.Warn().Msg("memory store without snapshot path, records are lost on restart")
		}
		return mem.Records(), nil
	}

	database, err := db.New(cfg, log)
	if err != nil {
		return repository.Store{}, err
	}
	return repository.NewPostgresStore(database), nil
}
