package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskPasswordReset is the job type name stored in Redis. Asynq
	// routes task type strings to handlers.
	TaskPasswordReset = "email:password_reset"
)

// PasswordResetEmailPayload is the JSON payload for the password-reset
// email task. The token placed here is the single-use reset token the
// recipient presents back to the API.
type PasswordResetEmailPayload struct {
	To    string `json:"to"`
	Token string `json:"token"`
}

// NewPasswordResetEmailTask constructs the password-reset email task.
//
// Options:
//   - MaxRetry(3): transient provider failures retry up to 3 times
//   - Queue("critical"): reset mail must not wait behind bulk work
//   - Timeout(30s): kill the task if the provider call hangs
func NewPasswordResetEmailTask(to, token string) (*asynq.Task, error) {
	payload, err := json.Marshal(PasswordResetEmailPayload{
		To:    to,
		Token: token,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskPasswordReset,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("critical"),
		asynq.Timeout(30*time.Second),
	), nil
}
