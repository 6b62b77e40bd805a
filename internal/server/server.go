// Package server defines the core Server struct that composes the
// app's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger
//   - database client (MongoDB)
//   - redis client
//   - background job worker server (asynq)
//   - http.Server
//
// It provides constructors and start/shutdown logic to run the
// application cleanly.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/vendorrs/backend/internal/config"
	"github.com/vendorrs/backend/internal/database"
	"github.com/vendorrs/backend/internal/lib/job"
)

// Server is the application container that holds shared resources.
//
// It is not the HTTP server itself; it holds the config, the logger,
// database and redis connections, the background job service, and an
// internal *http.Server used to listen and serve requests.
type Server struct {
	Config *config.Config
	Logger *zerolog.Logger

	// DB holds the MongoDB client wrapper.
	DB *database.Database

	// Redis backs the job queue and is pinged by the health endpoint.
	Redis *redis.Client

	// Job runs background workers (asynq) and provides a client for
	// enqueueing.
	Job *job.JobService

	httpServer *http.Server
}

// New constructs a Server and initializes core dependencies.
//
// It does not start the HTTP server; that is done in SetupHTTPServer +
// Start.
//
// Notes:
//   - Database connection failure blocks startup.
//   - Redis connection failure does not block startup (logged and
//     continued); the job queue degrades until Redis returns.
func New(cfg *config.Config, logger *zerolog.Logger) (*Server, error) {
	db, err := database.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Redis connections are lazy; ping with a timeout so a down Redis
	// is visible in logs without hanging startup.
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("Failed to connect to Redis, continuing without Redis")
	}

	// Background job service (asynq) uses Redis as its backing store.
	jobService := job.NewJobService(logger, cfg)

	if err := jobService.Start(); err != nil {
		return nil, fmt.Errorf("failed to start job service: %w", err)
	}

	return &Server{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Redis:  redisClient,
		Job:    jobService,
	}, nil
}

// SetupHTTPServer configures the internal net/http server. The router
// is passed in as handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:    ":" + s.Config.Server.Port,
		Handler: handler,

		// Timeouts protect against slow clients and resource
		// exhaustion. Config stores seconds.
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It requires SetupHTTPServer to be called
// first and blocks until the server stops or errors.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server and its dependencies: stop
// the HTTP server (finishing inflight requests until ctx deadline),
// stop the job workers, close the database and redis clients.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	if err := s.Redis.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}

	return nil
}
