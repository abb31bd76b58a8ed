// Package queue carries outbox events over asynq and consumes them in the worker.
package queue

import (
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	"github.com/hibiken/asynq"
)

const (
	// QueueLedger is the queue every ledger event is published to.
	QueueLedger = "ledger"

	defaultMaxRetry = 10
)

// NewEventTask wraps an outbox event. The task type is the event type and the
// payload is passed through untouched.
func NewEventTask(event domain.OutboxEvent) *asynq.Task {
	return asynq.NewTask(event.EventType, event.Payload, asynq.Queue(QueueLedger), asynq.MaxRetry(defaultMaxRetry))
}
