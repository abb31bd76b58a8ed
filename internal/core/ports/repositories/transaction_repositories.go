package repositories

import (
	"context"
	"time"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
)

// TransactionStore persists committed ledger transactions.
type TransactionStore interface {
	// SaveTransaction inserts the header and every record. Callers run it inside
	// a UnitOfWork so that nothing is visible until the unit commits. A second
	// reversal of the same transaction yields apperrors.ErrDuplicate.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// HasReversal reports whether a reversal of transactionID was committed.
	HasReversal(ctx context.Context, transactionID string) (bool, error)

	// FindTransactionByID returns the header with its records.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListRecordsByAccount returns records of one account, newest first, with a
	// token for the next page.
	ListRecordsByAccount(ctx context.Context, accountID string, filter domain.BalanceFilter, limit int, nextToken *string) ([]domain.AccountRecord, *string, error)
}

// BalanceReader aggregates transaction records.
type BalanceReader interface {
	// SumAccountRecords sums debits and credits of one account whose
	// transaction falls inside filter. No rows yields zero totals.
	SumAccountRecords(ctx context.Context, accountID string, filter domain.BalanceFilter) (domain.AccountTotals, error)

	// SumRecordsByOrganization sums debits and credits per account for
	// transactions posted in [from, to]. A nil from means all time.
	SumRecordsByOrganization(ctx context.Context, organizationID string, from *time.Time, to time.Time) ([]domain.AccountTotals, error)
}

// OutboxWriter appends events inside the caller's unit of work.
type OutboxWriter interface {
	SaveEvent(ctx context.Context, event domain.OutboxEvent) error
}

// OutboxReader drives dispatch of pending events.
type OutboxReader interface {
	// FetchPendingEvents claims up to limit undispatched events. Rows claimed by
	// another dispatcher are skipped.
	FetchPendingEvents(ctx context.Context, limit int) ([]domain.OutboxEvent, error)

	MarkDispatched(ctx context.Context, eventIDs []string, at time.Time) error
}

// OutboxRepositoryFacade combines all outbox repository interfaces.
type OutboxRepositoryFacade interface {
	OutboxWriter
	OutboxReader
}
