package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UnitOfWork       UnitOfWork
	AccountRepo      GLAccountRepositoryFacade
	OrganizationRepo OrganizationRepositoryFacade
	TransactionRepo  TransactionStore
	BalanceRepo      BalanceReader
	DocumentRepo     DocumentRepositoryFacade
	PaymentRepo      PaymentRepositoryFacade
	OutboxRepo       OutboxRepositoryFacade
}
