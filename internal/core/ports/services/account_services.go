package services

import (
	"context"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/dto"
)

// GLAccountReaderSvc defines read operations of the account registry.
type GLAccountReaderSvc interface {
	// GetAccount returns apperrors.ErrAccountNotFound for an unknown id.
	GetAccount(ctx context.Context, accountID string) (*domain.GLAccount, error)

	// FindByOrganizationAndType lists the organization's accounts in one type group.
	FindByOrganizationAndType(ctx context.Context, organizationID string, group domain.AccountTypeGroupCode) ([]domain.GLAccount, error)

	ListAccounts(ctx context.Context, organizationID string) ([]domain.GLAccount, error)
}

// PolarityResolver is the single place debit/credit polarity is decided.
type PolarityResolver interface {
	// IsDebitIncreasing reports whether a debit grows the account's balance.
	IsDebitIncreasing(account domain.GLAccount) bool

	// IncreasedBy reports whether a record on the given side grew the account.
	IncreasedBy(account domain.GLAccount, isDebit bool) bool
}

// GLAccountWriterSvc defines write operations of the account registry.
type GLAccountWriterSvc interface {
	CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.GLAccount, error)

	// DeactivateAccount marks the account inactive. Accounts are never deleted.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// GLAccountSvcFacade combines all account registry interfaces.
type GLAccountSvcFacade interface {
	GLAccountReaderSvc
	GLAccountWriterSvc
	PolarityResolver
}

// OrganizationSvcFacade manages accounting organizations.
type OrganizationSvcFacade interface {
	CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, userID string) (*domain.AccountingOrganization, error)
	GetOrganization(ctx context.Context, organizationID string) (*domain.AccountingOrganization, error)

	// UpdateOrganization changes designated accounts and the lock day. Every
	// designated account must belong to the organization.
	UpdateOrganization(ctx context.Context, organizationID string, req dto.UpdateOrganizationRequest, userID string) (*domain.AccountingOrganization, error)
}
