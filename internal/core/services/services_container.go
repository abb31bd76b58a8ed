package services

import (
	portsrepo "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/repositories"
	portssvc "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/services"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// publisher may be nil when no queue is configured; the container then has no outbox dispatcher.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher portssvc.EventPublisher, options ...ServiceOption) *portssvc.ServiceContainer {
	options = append([]ServiceOption{WithFinancialYearStart(cfg.FinancialYearStartMonth)}, options...)

	container := &portssvc.ServiceContainer{}

	// The account registry is the polarity source for the ledger and the balance calculator
	accounts := NewGLAccountService(repos.AccountRepo, repos.OrganizationRepo, options...)
	container.Account = accounts
	container.Organization = NewOrganizationService(repos.OrganizationRepo, repos.AccountRepo, options...)

	periods := NewLockDayPeriodPolicy(repos.OrganizationRepo, options...)
	container.Ledger = NewLedgerService(
		repos.UnitOfWork,
		repos.AccountRepo,
		repos.TransactionRepo,
		repos.OutboxRepo,
		accounts,
		periods,
		options...,
	)
	container.Balance = NewBalanceService(repos.AccountRepo, repos.BalanceRepo, repos.TransactionRepo, accounts, options...)

	container.Document = NewDocumentService(
		repos.UnitOfWork,
		repos.DocumentRepo,
		repos.OrganizationRepo,
		repos.AccountRepo,
		container.Ledger,
		options...,
	)
	container.Payment = NewPaymentService(
		repos.UnitOfWork,
		repos.PaymentRepo,
		repos.DocumentRepo,
		repos.OrganizationRepo,
		repos.AccountRepo,
		container.Ledger,
		options...,
	)

	if publisher != nil {
		container.Outbox = NewOutboxDispatcher(repos.UnitOfWork, repos.OutboxRepo, publisher, cfg.OutboxBatchSize, options...)
	}

	return container
}
