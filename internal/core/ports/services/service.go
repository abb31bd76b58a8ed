package services

import (
	"context"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Account      GLAccountSvcFacade
	Organization OrganizationSvcFacade
	Ledger       LedgerSvcFacade
	Balance      BalanceSvcFacade
	Document     DocumentSvcFacade
	Payment      PaymentSvcFacade
	Outbox       OutboxDispatcherSvc
}

// EventPublisher hands an outbox event to the transport. Publishing the same
// event twice must be harmless.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.OutboxEvent) error
}

// OutboxDispatcherSvc moves committed events from the outbox to the publisher.
type OutboxDispatcherSvc interface {
	// DispatchPending publishes one batch and returns how many events were sent.
	DispatchPending(ctx context.Context) (int, error)
}

// TransactionIndexer consumes committed-transaction events out of band.
type TransactionIndexer interface {
	IndexTransaction(ctx context.Context, event domain.TransactionCommitted) error
}
