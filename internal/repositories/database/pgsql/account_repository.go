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

// accountSelect joins every account with the group that decides its polarity.
const accountSelect = `
	SELECT a.gl_account_id, a.accounting_organization_id, a.account_type_id,
	       t.name AS account_type_name, g.group_code, g.name AS group_name, g.increase_action_is_debit,
	       a.tax_rate_id, a.code, a.name, a.is_active, a.is_bank_account, a.enable_payments,
	       a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
	FROM gl_accounts a
	JOIN account_types t ON t.account_type_id = a.account_type_id
	JOIN account_type_groups g ON g.group_code = t.group_code
`

type PgxGLAccountRepository struct {
	BaseRepository
}

// newPgxGLAccountRepository creates a new repository for ledger account data.
func newPgxGLAccountRepository(pool *pgxpool.Pool) portsrepo.GLAccountRepositoryFacade {
	return &PgxGLAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxGLAccountRepository implements portsrepo.GLAccountRepositoryFacade
var _ portsrepo.GLAccountRepositoryFacade = (*PgxGLAccountRepository)(nil)

// SaveAccount inserts a new account.
func (r *PgxGLAccountRepository) SaveAccount(ctx context.Context, account domain.GLAccount) error {
	m := mapping.ToModelGLAccount(account)
	query := `
		INSERT INTO gl_accounts (
			gl_account_id, accounting_organization_id, account_type_id, tax_rate_id, code, name,
			is_active, is_bank_account, enable_payments,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.AccountID,
		m.AccountingOrganizationID,
		m.AccountTypeID,
		m.TaxRateID,
		m.Code,
		m.Name,
		m.IsActive,
		m.IsBankAccount,
		m.EnablePayments,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, mapPgError(err, "account", m.AccountID))
	}
	return nil
}

// FindAccountByID retrieves an account with its type and group.
func (r *PgxGLAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.GLAccount, error) {
	rows, err := r.db(ctx).Query(ctx, accountSelect+` WHERE a.gl_account_id = $1`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query account %s: %w", accountID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.GLAccount])
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	account := mapping.ToDomainGLAccount(m)
	return &account, nil
}

// FindAccountsByIDs retrieves the accounts that exist among accountIDs.
func (r *PgxGLAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.GLAccount, error) {
	result := make(map[string]domain.GLAccount, len(accountIDs))
	if len(accountIDs) == 0 {
		return result, nil
	}

	rows, err := r.db(ctx).Query(ctx, accountSelect+` WHERE a.gl_account_id::text = ANY($1)`, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.GLAccount])
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}
	for _, m := range ms {
		result[m.AccountID] = mapping.ToDomainGLAccount(m)
	}
	return result, nil
}

// FindAccountsByOrganizationAndGroup lists accounts whose type belongs to group.
func (r *PgxGLAccountRepository) FindAccountsByOrganizationAndGroup(ctx context.Context, organizationID string, group domain.AccountTypeGroupCode) ([]domain.GLAccount, error) {
	return r.listAccounts(ctx, accountSelect+`
		WHERE a.accounting_organization_id = $1 AND g.group_code = $2
		ORDER BY a.code NULLS LAST, a.name`, organizationID, string(group))
}

// ListAccountsByOrganization lists the whole chart of accounts of an organization.
func (r *PgxGLAccountRepository) ListAccountsByOrganization(ctx context.Context, organizationID string) ([]domain.GLAccount, error) {
	return r.listAccounts(ctx, accountSelect+`
		WHERE a.accounting_organization_id = $1
		ORDER BY a.code NULLS LAST, a.name`, organizationID)
}

func (r *PgxGLAccountRepository) listAccounts(ctx context.Context, query string, args ...any) ([]domain.GLAccount, error) {
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		if isNoRows(err) {
			return []domain.GLAccount{}, nil
		}
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.GLAccount])
	if err != nil {
		if isNoRows(err) {
			return []domain.GLAccount{}, nil
		}
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}
	return mapping.ToDomainGLAccountSlice(ms), nil
}

// FindAccountTypeByID retrieves an account type with its group.
func (r *PgxGLAccountRepository) FindAccountTypeByID(ctx context.Context, accountTypeID string) (*domain.AccountType, error) {
	query := `
		SELECT t.account_type_id, t.name, g.group_code, g.name, g.increase_action_is_debit
		FROM account_types t
		JOIN account_type_groups g ON g.group_code = t.group_code
		WHERE t.account_type_id = $1;
	`
	var m models.AccountType
	err := r.db(ctx).QueryRow(ctx, query, accountTypeID).Scan(
		&m.AccountTypeID,
		&m.Name,
		&m.GroupCode,
		&m.GroupName,
		&m.IncreaseActionIsDebit,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewNotFoundError("account type", accountTypeID)
		}
		return nil, fmt.Errorf("failed to find account type %s: %w", accountTypeID, err)
	}
	accountType := mapping.ToDomainAccountType(m)
	return &accountType, nil
}

// FindTaxRateByID retrieves a tax rate.
func (r *PgxGLAccountRepository) FindTaxRateByID(ctx context.Context, taxRateID string) (*domain.TaxRate, error) {
	var m models.TaxRate
	err := r.db(ctx).QueryRow(ctx, `SELECT tax_rate_id, name, rate FROM tax_rates WHERE tax_rate_id = $1`, taxRateID).
		Scan(&m.TaxRateID, &m.Name, &m.Rate)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewNotFoundError("tax rate", taxRateID)
		}
		return nil, fmt.Errorf("failed to find tax rate %s: %w", taxRateID, err)
	}
	rate := mapping.ToDomainTaxRate(m)
	return &rate, nil
}

// DeactivateAccount marks an account inactive. Rows are never deleted.
func (r *PgxGLAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	query := `
		UPDATE gl_accounts
		SET is_active = FALSE, last_updated_at = NOW(), last_updated_by = $2
		WHERE gl_account_id = $1;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query, accountID, userID)
	if err != nil {
		if isNoRows(err) {
			return fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
		}
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
	}
	return nil
}
