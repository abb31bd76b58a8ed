package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	portsrepo "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/repositories"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/models"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOutboxRepository struct {
	BaseRepository
}

func newPgxOutboxRepository(pool *pgxpool.Pool) portsrepo.OutboxRepositoryFacade {
	return &PgxOutboxRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OutboxRepositoryFacade = (*PgxOutboxRepository)(nil)

// SaveEvent appends an event to the outbox.
func (r *PgxOutboxRepository) SaveEvent(ctx context.Context, event domain.OutboxEvent) error {
	m := mapping.ToModelOutboxEvent(event)
	_, err := r.db(ctx).Exec(ctx, `
		INSERT INTO outbox_events (event_id, event_type, aggregate_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5);`,
		m.EventID, m.EventType, m.AggregateID, m.Payload, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save outbox event %s: %w", m.EventID, mapPgError(err, "outbox event", m.EventID))
	}
	return nil
}

// FetchPendingEvents claims the oldest undispatched events. Rows locked by
// another dispatcher are skipped, so the call must run inside a unit of work
// for the claim to last until MarkDispatched.
func (r *PgxOutboxRepository) FetchPendingEvents(ctx context.Context, limit int) ([]domain.OutboxEvent, error) {
	rows, err := r.db(ctx).Query(ctx, `
		SELECT event_id, event_type, aggregate_id, payload, created_at, dispatched_at
		FROM outbox_events
		WHERE dispatched_at IS NULL
		ORDER BY created_at
		LIMIT $1
		FOR UPDATE SKIP LOCKED;`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending outbox events: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.OutboxEvent])
	if err != nil {
		return nil, fmt.Errorf("failed to scan outbox events: %w", err)
	}

	events := make([]domain.OutboxEvent, len(ms))
	for i, m := range ms {
		events[i] = mapping.ToDomainOutboxEvent(m)
	}
	return events, nil
}

// MarkDispatched stamps dispatched_at on the given events.
func (r *PgxOutboxRepository) MarkDispatched(ctx context.Context, eventIDs []string, at time.Time) error {
	if len(eventIDs) == 0 {
		return nil
	}
	_, err := r.db(ctx).Exec(ctx, `
		UPDATE outbox_events
		SET dispatched_at = $2
		WHERE event_id::text = ANY($1) AND dispatched_at IS NULL;`, eventIDs, at)
	if err != nil {
		return fmt.Errorf("failed to mark %d outbox events dispatched: %w", len(eventIDs), err)
	}
	return nil
}
