package pgsql

import (
	"context"
	"fmt"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/apperrors"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	portsrepo "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/repositories"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/models"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOrganizationRepository struct {
	BaseRepository
}

func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

// SaveOrganization inserts a new accounting organization.
func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, org domain.AccountingOrganization) error {
	m := mapping.ToModelOrganization(org)
	query := `
		INSERT INTO accounting_organizations (
			accounting_organization_id, contact_id, location_id,
			accounts_receivable_account_id, accounts_payable_account_id,
			tax_payable_account_id, tax_receivable_account_id, payment_details_account_id,
			lock_day_of_month, is_active, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.AccountingOrganizationID,
		m.ContactID,
		m.LocationID,
		m.ReceivableAccountID,
		m.PayableAccountID,
		m.TaxPayableAccountID,
		m.TaxReceivableAccountID,
		m.PaymentDetailsAccountID,
		m.LockDayOfMonth,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save organization %s: %w", m.AccountingOrganizationID, mapPgError(err, "organization for location", m.LocationID))
	}
	return nil
}

// FindOrganizationByID retrieves an accounting organization.
func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.AccountingOrganization, error) {
	query := `
		SELECT accounting_organization_id, contact_id, location_id,
		       accounts_receivable_account_id, accounts_payable_account_id,
		       tax_payable_account_id, tax_receivable_account_id, payment_details_account_id,
		       lock_day_of_month, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM accounting_organizations
		WHERE accounting_organization_id = $1;
	`
	rows, err := r.db(ctx).Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query organization %s: %w", organizationID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.AccountingOrganization])
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrOrganizationNotFound, organizationID)
		}
		return nil, fmt.Errorf("failed to find organization %s: %w", organizationID, err)
	}
	org := mapping.ToDomainOrganization(m)
	return &org, nil
}

// UpdateOrganization persists the designated accounts, the lock day and the active flag.
func (r *PgxOrganizationRepository) UpdateOrganization(ctx context.Context, org domain.AccountingOrganization) error {
	m := mapping.ToModelOrganization(org)
	query := `
		UPDATE accounting_organizations
		SET accounts_receivable_account_id = $2,
		    accounts_payable_account_id = $3,
		    tax_payable_account_id = $4,
		    tax_receivable_account_id = $5,
		    payment_details_account_id = $6,
		    lock_day_of_month = $7,
		    is_active = $8,
		    last_updated_at = $9,
		    last_updated_by = $10
		WHERE accounting_organization_id = $1;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		m.AccountingOrganizationID,
		m.ReceivableAccountID,
		m.PayableAccountID,
		m.TaxPayableAccountID,
		m.TaxReceivableAccountID,
		m.PaymentDetailsAccountID,
		m.LockDayOfMonth,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update organization %s: %w", m.AccountingOrganizationID, mapPgError(err, "organization for location", m.LocationID))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrOrganizationNotFound, m.AccountingOrganizationID)
	}
	return nil
}
