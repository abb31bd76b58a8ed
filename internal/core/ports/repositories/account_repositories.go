package repositories

import (
	"context"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
)

// GLAccountLookup defines read operations for ledger accounts.
type GLAccountLookup interface {
	// FindAccountByID returns apperrors.ErrAccountNotFound when the account does not exist.
	FindAccountByID(ctx context.Context, accountID string) (*domain.GLAccount, error)

	// FindAccountsByIDs returns the accounts that exist, keyed by id.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.GLAccount, error)

	// FindAccountsByOrganizationAndGroup lists accounts of one account type group.
	FindAccountsByOrganizationAndGroup(ctx context.Context, organizationID string, group domain.AccountTypeGroupCode) ([]domain.GLAccount, error)

	// ListAccountsByOrganization lists the chart of accounts ordered by code.
	ListAccountsByOrganization(ctx context.Context, organizationID string) ([]domain.GLAccount, error)

	FindAccountTypeByID(ctx context.Context, accountTypeID string) (*domain.AccountType, error)
	FindTaxRateByID(ctx context.Context, taxRateID string) (*domain.TaxRate, error)
}

// GLAccountWriter defines write operations for ledger accounts.
type GLAccountWriter interface {
	// SaveAccount inserts an account. A duplicate (organization, code) yields apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.GLAccount) error

	// DeactivateAccount flips is_active to false. Accounts are never deleted.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// GLAccountRepositoryFacade combines all account repository interfaces.
type GLAccountRepositoryFacade interface {
	GLAccountLookup
	GLAccountWriter
}
