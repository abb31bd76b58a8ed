package pgsql

import (
	portsrepo "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UnitOfWork:       newPgxUnitOfWork(dbPool),
		AccountRepo:      newPgxGLAccountRepository(dbPool),
		OrganizationRepo: newPgxOrganizationRepository(dbPool),
		TransactionRepo:  newPgxTransactionRepository(dbPool),
		BalanceRepo:      newBalanceRepository(dbPool),
		DocumentRepo:     newPgxDocumentRepository(dbPool),
		PaymentRepo:      newPgxPaymentRepository(dbPool),
		OutboxRepo:       newPgxOutboxRepository(dbPool),
	}
}
