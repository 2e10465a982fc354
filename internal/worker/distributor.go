package worker

import (
	"context"

	"github.com/hibiken/asynq"
)

const (
	TaskDeliverPush     = "notification:deliver_push"
	TaskEscalationEmail = "notification:escalation_email"
)

/*
This file will contain the codes to create tasks and distributes them to the Redis queue.
*/

type TaskDistributor interface {
	DistributeTaskDeliverPush(ctx context.Context, payload *PayloadDeliverPush, opts ...asynq.Option) error
	DistributeTaskEscalationEmail(ctx context.Context, payload *PayloadEscalationEmail, opts ...asynq.Option) error
}

type RedisTaskDistributor struct {
	client *asynq.Client // client sends tasks to redis queue.
}

func NewTaskDistributor(redisOpt asynq.RedisClientOpt) TaskDistributor {
	client := asynq.NewClient(redisOpt)

	return &RedisTaskDistributor{
		client: client,
	}
}
