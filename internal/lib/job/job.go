// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue: tasks are enqueued with
// asynq.Client and executed by worker goroutines run by asynq.Server.
// The HTTP request path only enqueues; delivery work (email) happens
// out of band with retries.
package job

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/vendorrs/backend/internal/config"
	"github.com/vendorrs/backend/internal/lib/email"
)

// JobService holds the Asynq client (enqueue) and server (worker
// execution), plus the dependencies handlers need.
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	server *asynq.Server
	logger *zerolog.Logger

	// email delivers rendered messages; handlers use it directly.
	email *email.Client
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Concurrency 10 means up to 10 tasks processed in parallel, shared
// across queues by weight: critical gets the lion's share so
// password-reset mail is not starved by bulk work.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
		email:  email.NewClient(cfg, logger),
	}
}

// Start registers task handlers and starts the background worker
// server. asynq's Start returns immediately; workers run until Stop.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskPasswordReset, j.handlePasswordResetEmailTask)

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// Stop gracefully stops the job server and closes client resources.
// Shutdown waits for in-flight tasks to finish.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}
