package repositories

import (
	"context"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
)

// OrganizationReader defines read operations for accounting organizations.
type OrganizationReader interface {
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.AccountingOrganization, error)
}

// OrganizationWriter defines write operations for accounting organizations.
type OrganizationWriter interface {
	// SaveOrganization inserts an organization. A second active organization
	// for the same location yields apperrors.ErrDuplicate.
	SaveOrganization(ctx context.Context, org domain.AccountingOrganization) error

	// UpdateOrganization persists designated accounts, lock day and active flag.
	UpdateOrganization(ctx context.Context, org domain.AccountingOrganization) error
}

// OrganizationRepositoryFacade combines all organization repository interfaces.
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
}
