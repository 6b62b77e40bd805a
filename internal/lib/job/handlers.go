package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handlePasswordResetEmailTask processes the password-reset email task:
// decode the payload, send the email, and report the outcome so Asynq
// can schedule a retry on failure.
func (j *JobService) handlePasswordResetEmailTask(ctx context.Context, t *asynq.Task) error {
	var p PasswordResetEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal password reset payload: %w", err)
	}

	j.logger.Info().
		Str("type", "password_reset").
		Str("to", p.To).
		Msg("Processing password reset email task")

	if err := j.email.SendPasswordResetEmail(p.To, p.Token); err != nil {
		j.logger.Error().
			Str("type", "password_reset").
			Str("to", p.To).
			Err(err).
			Msg("Failed to send password reset email")
		// Returning the error makes Asynq mark the task failed and retry.
		return err
	}

	j.logger.Info().
		Str("type", "password_reset").
		Str("to", p.To).
		Msg("Successfully sent password reset email")

	return nil
}
