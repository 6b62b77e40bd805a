package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vendorrs/backend/internal/config"
	"github.com/vendorrs/backend/internal/handler"
	"github.com/vendorrs/backend/internal/logger"
	"github.com/vendorrs/backend/internal/middleware"
	"github.com/vendorrs/backend/internal/repository"
	"github.com/vendorrs/backend/internal/router"
	"github.com/vendorrs/backend/internal/server"
	"github.com/vendorrs/backend/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet; config failures go to stderr and exit.
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.Logging)

	srv, err := server.New(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := srv.DB.EnsureIndexes(ctx, &log); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("failed to ensure database indexes")
	}
	cancel()

	repos := repository.NewRepositories(srv)
	services := service.NewServices(srv, repos)
	middlewares := middleware.NewMiddlewares(srv)
	handlers := handler.NewHandlers(srv, services)

	e := router.New(srv, middlewares, handlers)
	srv.SetupHTTPServer(e)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
