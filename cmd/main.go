package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/storyverse/story-service/config"
	"github.com/storyverse/story-service/db"
	authhandler "github.com/storyverse/story-service/internal/auth/handler"
	authrepo "github.com/storyverse/story-service/internal/auth/repository/postgres"
	authservice "github.com/storyverse/story-service/internal/auth/service"
	"github.com/storyverse/story-service/internal/logging"
	"github.com/storyverse/story-service/internal/middleware"
	storyhandler "github.com/storyverse/story-service/internal/story/handler"
	storyrepo "github.com/storyverse/story-service/internal/story/repository/postgres"
	storyservice "github.com/storyverse/story-service/internal/story/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		logger.Error("connect postgres", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	userRepo := authrepo.NewPostgresRepository(dbPool)
	storyRepo := storyrepo.NewPostgresRepository(dbPool)

	tokenService := authservice.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	userService := authservice.NewUserService(userRepo, tokenService)
	storyService := storyservice.NewStoryService(storyRepo)

	guard := middleware.NewGuard(tokenService, userRepo)
	authHandler := authhandler.NewAuthHandler(userService, logger)
	storyHandler := storyhandler.NewStoryHandler(storyService, logger)

	app := fiber.New()
	authhandler.RegisterRoutes(app, authHandler, guard)
	storyhandler.RegisterRoutes(app, storyHandler, guard)

	srvErrCh := make(chan error, 1)
	go func() {
		srvErrCh <- app.Listen(":" + cfg.Port)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-srvErrCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited cleanly")
}
