package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	portssvc "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/services"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/platform/metrics"
	"github.com/hibiken/asynq"
)

// LogIndexer records committed transactions in the log and the metrics.
type LogIndexer struct {
	logger *slog.Logger
}

// NewLogIndexer constructs the default indexer.
func NewLogIndexer(logger *slog.Logger) *LogIndexer {
	return &LogIndexer{logger: logger}
}

var _ portssvc.TransactionIndexer = (*LogIndexer)(nil)

func (i *LogIndexer) IndexTransaction(ctx context.Context, event domain.TransactionCommitted) error {
	i.logger.InfoContext(ctx, "Transaction indexed",
		slog.String("transaction_id", event.TransactionID),
		slog.String("accounting_organization_id", event.AccountingOrganizationID),
		slog.Int("accounts", len(event.AccountIDs)),
		slog.Time("posted_at", event.PostedAt))
	metrics.TransactionsIndexed.Inc()
	return nil
}

// HandleTransactionCommitted decodes the event and hands it to indexer. A
// payload that cannot be decoded is not retried.
func HandleTransactionCommitted(indexer portssvc.TransactionIndexer) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var event domain.TransactionCommitted
		if err := json.Unmarshal(t.Payload(), &event); err != nil {
			return fmt.Errorf("decode %s: %v: %w", t.Type(), err, asynq.SkipRetry)
		}
		return indexer.IndexTransaction(ctx, event)
	}
}
