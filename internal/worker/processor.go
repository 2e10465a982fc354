package worker

import (
	"context"

	"github.com/clinidesk/clinidesk-BE/internal/mailer"
	"github.com/clinidesk/clinidesk-BE/internal/push"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

/*
 This file contains code that will pick up the tasks from the Redis queue and process them.
*/

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
)

// PushSender delivers a best-effort browser push message.
type PushSender interface {
	Send(ctx context.Context, msg push.Message) error
}

// EscalationMailer delivers escalation alerts to the ops mailbox.
type EscalationMailer interface {
	SendEscalationAlert(alert mailer.EscalationAlert) error
}

type RedisTaskProcessor struct {
	server     *asynq.Server
	pushSender PushSender
	mailer     EscalationMailer
}

func NewRedisTaskProcessor(redisOpt asynq.RedisClientOpt, pushSender PushSender, mailer EscalationMailer) *RedisTaskProcessor {
	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Queues: map[string]int{
				QueueCritical: 10,
				QueueDefault:  5,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("type", task.Type()).
					Bytes("payload", task.Payload()).Msg("process task failed")
			}),
			Logger: NewLogger(),
		},
	)

	return &RedisTaskProcessor{
		server:     server,
		pushSender: pushSender,
		mailer:     mailer,
	}
}

// Start registers the task handlers for the mux, attaches the mux to the asynq server, and starts the server.
func (processor *RedisTaskProcessor) Start() error {
	mux := asynq.NewServeMux()

	mux.HandleFunc(TaskDeliverPush, processor.ProcessTaskDeliverPush)
	mux.HandleFunc(TaskEscalationEmail, processor.ProcessTaskEscalationEmail)

	return processor.server.Start(mux)
}

// Shutdown stops the asynq server and waits for in-flight tasks to finish.
func (processor *RedisTaskProcessor) Shutdown() {
	processor.server.Shutdown()
}
