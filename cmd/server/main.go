package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	rediscache "github.com/ogurasousui/exit-formality/internal/adapters/cache/redis"
	"github.com/ogurasousui/exit-formality/internal/adapters/repository/postgres"
	"github.com/ogurasousui/exit-formality/internal/core/exit"
	"github.com/ogurasousui/exit-formality/internal/core/letter"
	"github.com/ogurasousui/exit-formality/internal/core/profile"
	"github.com/ogurasousui/exit-formality/internal/platform/auth"
	"github.com/ogurasousui/exit-formality/internal/platform/config"
	pg "github.com/ogurasousui/exit-formality/internal/platform/db/postgres"
	"github.com/ogurasousui/exit-formality/internal/platform/logger"
	"github.com/ogurasousui/exit-formality/internal/platform/server"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// .env は任意
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	dbPool, err := pg.NewPool(ctx, cfg.Database, zl)
	if err != nil {
		zl.Fatal("failed to initialize database pool", zap.Error(err))
	}
	defer dbPool.Close()

	txManager := pg.NewTransactionManager(dbPool, pg.WithLogger(zl))

	exitRepo := postgres.NewExitRepository(dbPool)
	exitSvc := exit.NewService(exitRepo, nil, txManager, cfg.Exit.ClearanceDepartments)

	var profileRepo profile.Repository = postgres.NewProfileRepository(dbPool)
	if cfg.Redis.Enabled() {
		client := rediscache.NewClient(ctx, cfg.Redis, zl)
		defer func() { _ = client.Close() }()
		profileRepo = rediscache.NewProfileCache(profileRepo, client, cfg.Redis.ProfileTTL, zl)
	}
	profileSvc := profile.NewService(profileRepo)

	letterBuilder := letter.NewBuilder(exitSvc, profileSvc, letter.Company{
		Name:           cfg.Company.Name,
		Address:        cfg.Company.Address,
		City:           cfg.Company.City,
		SignatoryName:  cfg.Company.SignatoryName,
		SignatoryTitle: cfg.Company.SignatoryTitle,
	}, nil)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	grpcServer := server.New(cfg.Server.ListenAddr, server.Deps{
		Exits:   exitSvc,
		Letters: letterBuilder,
		Tokens:  tokens,
		Logger:  zl,
	})

	zl.Info("gRPC server listening",
		zap.String("addr", cfg.Server.ListenAddr),
		zap.Strings("clearance_departments", exitSvc.Departments()),
		zap.Bool("profile_cache", cfg.Redis.Enabled()),
	)

	if err := grpcServer.Run(ctx); err != nil {
		zl.Fatal("server stopped with error", zap.Error(err))
	}
}
