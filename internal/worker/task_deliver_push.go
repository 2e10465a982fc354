package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/clinidesk/clinidesk-BE/internal/push"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// PayloadDeliverPush contain all data of the task that we want to store in Redis.
type PayloadDeliverPush struct {
	NotificationID string `json:"notification_id"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	Type           string `json:"type"`
	Priority       string `json:"priority"`
	Link           string `json:"link,omitempty"`
}

func (distributor *RedisTaskDistributor) DistributeTaskDeliverPush(
	ctx context.Context,
	payload *PayloadDeliverPush,
	opts ...asynq.Option,
) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	// The notification ID doubles as the task ID so the queue drops duplicate
	// deliveries of the same notification.
	task := asynq.NewTask(TaskDeliverPush, jsonPayload, append(opts, asynq.TaskID(payload.NotificationID))...)
	info, err := distributor.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.Info().Str("type", task.Type()).Str("notification_id", payload.NotificationID).
		Str("queue", info.Queue).Int("max_retry", info.MaxRetry).Msg("task enqueued")

	return nil
}

func (processor *RedisTaskProcessor) ProcessTaskDeliverPush(
	ctx context.Context,
	task *asynq.Task,
) error {
	var payload PayloadDeliverPush
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	err := processor.pushSender.Send(ctx, push.Message{
		Title:    payload.Title,
		Body:     payload.Message,
		Tag:      payload.NotificationID,
		Link:     payload.Link,
		Priority: payload.Priority,
	})
	if err != nil {
		log.Error().Err(err).Str("notification_id", payload.NotificationID).Msg("failed to deliver push notification")
		return err
	}

	log.Info().Str("type", task.Type()).
		Str("notification_id", payload.NotificationID).Msg("task processed")

	return nil
}
