package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/clinidesk/clinidesk-BE/internal/mailer"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

type PayloadEscalationEmail struct {
	NotificationID string `json:"notification_id"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	Link           string `json:"link,omitempty"`
}

// DistributeTaskEscalationEmail enqueues an escalation alert for the ops mailbox.
func (distributor *RedisTaskDistributor) DistributeTaskEscalationEmail(
	ctx context.Context,
	payload *PayloadEscalationEmail,
	opts ...asynq.Option,
) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	taskID := fmt.Sprintf("notification:escalation_email:%s", payload.NotificationID)
	task := asynq.NewTask(TaskEscalationEmail, jsonPayload, append(opts, asynq.TaskID(taskID))...)
	info, err := distributor.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.Info().
		Str("type", task.Type()).
		Str("task_id", taskID).
		Str("queue", info.Queue).
		Int("max_retry", info.MaxRetry).
		Msg("escalation email task enqueued")

	return nil
}

func (processor *RedisTaskProcessor) ProcessTaskEscalationEmail(
	ctx context.Context,
	task *asynq.Task,
) error {
	var payload PayloadEscalationEmail
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal escalation email payload: %w", asynq.SkipRetry)
	}

	err := processor.mailer.SendEscalationAlert(mailer.EscalationAlert{
		Title:   payload.Title,
		Message: payload.Message,
		Link:    payload.Link,
	})
	if err != nil {
		log.Error().Err(err).Str("notification_id", payload.NotificationID).Msg("failed to send escalation email")
		return err
	}

	log.Info().
		Str("type", task.Type()).
		Str("notification_id", payload.NotificationID).
		Msg("escalation email sent")

	return nil
}
