package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"user-backend/internal/api"
	"user-backend/internal/auth"
	"user-backend/internal/biz"
	"user-backend/internal/conf"
	"user-backend/internal/data"
	"user-backend/internal/keycloak"
	"user-backend/internal/server"
	"user-backend/internal/service"
)

var flagconf string

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
}

func main() {
	flag.Parse()
	ctx := context.Background()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// load config
	cfg, err := conf.Load(flagconf)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// manual dependency injection
	// data layer
	db, err := data.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	userRepo := data.NewSQLiteUserRepo(db)
	domainRepo := data.NewSQLiteDomainRepo(db)

	// identity broker
	kcClient := keycloak.NewClient(&cfg.Keycloak, logger)

	// inbound auth middleware
	var authMiddleware func(http.Handler) http.Handler
	if cfg.Auth.Enabled {
		verifier, err := auth.NewVerifier(ctx, cfg.Keycloak.RealmURL())
		if err != nil {
			logger.Error("failed to init token verifier", "error", err)
			os.Exit(1)
		}
		authMiddleware = verifier.Middleware()
		logger.Info("bearer token verification enabled", "issuer", cfg.Keycloak.RealmURL())
	} else {
		logger.Info("bearer token verification disabled")
	}

	// biz layer
	authUsecase := biz.NewAuthUsecase(kcClient, userRepo, logger)
	userUsecase := biz.NewUserUsecase(userRepo, domainRepo, logger)
	domainUsecase := biz.NewDomainUsecase(domainRepo, logger)

	// service layer
	authService := service.NewAuthService(authUsecase)
	userService := service.NewUserService(userUsecase, authUsecase)
	domainService := service.NewDomainService(domainUsecase)

	// api layer
	authHandler := api.NewAuthHandler(authService, logger)
	userHandler := api.NewUserHandler(userService, logger)
	domainHandler := api.NewDomainHandler(domainService, logger)
	router := api.NewRouter(authHandler, userHandler, domainHandler, authMiddleware)

	srv := server.New(cfg.Server.Addr, router, logger)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	case <-quit:
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
