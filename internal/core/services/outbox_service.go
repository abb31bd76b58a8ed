package services

import (
	"context"
	"log/slog"
	"time"

	portsrepo "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/repositories"
	portssvc "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/services"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/platform/metrics"
)

const defaultOutboxBatchSize = 100

type outboxDispatcher struct {
	BaseService
	uow       portsrepo.UnitOfWork
	outbox    portsrepo.OutboxReader
	publisher portssvc.EventPublisher
	batchSize int
}

// NewOutboxDispatcher creates the service that relays committed events to the publisher.
func NewOutboxDispatcher(uow portsrepo.UnitOfWork, outbox portsrepo.OutboxReader, publisher portssvc.EventPublisher, batchSize int, options ...ServiceOption) portssvc.OutboxDispatcherSvc {
	opts := applyOptions(options)
	if batchSize <= 0 {
		batchSize = defaultOutboxBatchSize
	}
	return &outboxDispatcher{
		BaseService: BaseService{clock: opts.clock},
		uow:         uow,
		outbox:      outbox,
		publisher:   publisher,
		batchSize:   batchSize,
	}
}

var _ portssvc.OutboxDispatcherSvc = (*outboxDispatcher)(nil)

// DispatchPending publishes events in creation order and stops at the first
// publish failure. Events already published in the batch are still marked.
func (d *outboxDispatcher) DispatchPending(ctx context.Context) (int, error) {
	var sent int
	err := d.uow.WithinTx(ctx, func(ctx context.Context) error {
		events, err := d.outbox.FetchPendingEvents(ctx, d.batchSize)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}

		dispatched := make([]string, 0, len(events))
		var publishErr error
		for _, event := range events {
			if publishErr = d.publisher.Publish(ctx, event); publishErr != nil {
				d.LogError(ctx, publishErr, "Failed to publish outbox event",
					slog.String("event_id", event.EventID),
					slog.String("event_type", event.EventType))
				break
			}
			dispatched = append(dispatched, event.EventID)
		}
		if len(dispatched) > 0 {
			if err := d.outbox.MarkDispatched(ctx, dispatched, d.Now()); err != nil {
				return err
			}
		}
		sent = len(dispatched)
		return nil
	})
	if err != nil {
		d.LogError(ctx, err, "Outbox dispatch failed")
		return 0, err
	}
	if sent > 0 {
		metrics.OutboxDispatched.Add(float64(sent))
		d.LogDebug(ctx, "Outbox events dispatched", slog.Int("count", sent))
	}
	return sent, nil
}

// RunOutboxDispatcher polls DispatchPending every interval until ctx is done.
// Each tick drains the outbox before waiting again.
func RunOutboxDispatcher(ctx context.Context, dispatcher portssvc.OutboxDispatcherSvc, interval time.Duration, logger *slog.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		for {
			sent, err := dispatcher.DispatchPending(ctx)
			if err != nil || sent == 0 {
				break
			}
		}
		select {
		case <-ctx.Done():
			logger.Info("Outbox dispatcher stopped")
			return nil
		case <-ticker.C:
		}
	}
}
