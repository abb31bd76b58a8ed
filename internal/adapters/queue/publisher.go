package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	portssvc "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/services"
	"github.com/hibiken/asynq"
)

// Enqueuer is the part of *asynq.Client the publisher needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Publisher implements portssvc.EventPublisher on asynq.
type Publisher struct {
	client Enqueuer
}

// NewPublisher constructs a Publisher around an asynq client.
func NewPublisher(client Enqueuer) *Publisher {
	return &Publisher{client: client}
}

var _ portssvc.EventPublisher = (*Publisher)(nil)

// Publish enqueues the event with its id as the task id, so a second publish
// of the same event is dropped by asynq and reported as success.
func (p *Publisher) Publish(ctx context.Context, event domain.OutboxEvent) error {
	_, err := p.client.EnqueueContext(ctx, NewEventTask(event), asynq.TaskID(event.EventID))
	if err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
		return fmt.Errorf("enqueue %s %s: %w", event.EventType, event.EventID, err)
	}
	return nil
}
