package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	portsrepo "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/repositories"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/models"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// balanceRepository aggregates transaction records for balances and the trial balance.
type balanceRepository struct {
	BaseRepository
}

func newBalanceRepository(db *pgxpool.Pool) portsrepo.BalanceReader {
	return &balanceRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SumAccountRecords sums one account's debits and credits inside the filter window.
func (r *balanceRepository) SumAccountRecords(ctx context.Context, accountID string, filter domain.BalanceFilter) (domain.AccountTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN tr.is_debit THEN tr.amount ELSE 0 END), 0) AS debits,
			COALESCE(SUM(CASE WHEN NOT tr.is_debit THEN tr.amount ELSE 0 END), 0) AS credits
		FROM transaction_records tr
		JOIN transactions t ON t.transaction_id = tr.transaction_id
		WHERE tr.gl_account_id = $1
	`
	query, args := appendPostedWindow(query, []any{accountID}, "t.posted_at", filter)

	totals := domain.AccountTotals{AccountID: accountID, Debits: decimal.Zero, Credits: decimal.Zero}
	if err := r.db(ctx).QueryRow(ctx, query, args...).Scan(&totals.Debits, &totals.Credits); err != nil {
		if isNoRows(err) {
			return totals, nil
		}
		return domain.AccountTotals{}, fmt.Errorf("error summing records of account %s: %w", accountID, err)
	}
	return totals, nil
}

// SumRecordsByOrganization sums debits and credits per account of the
// organization for transactions posted in [from, to].
func (r *balanceRepository) SumRecordsByOrganization(ctx context.Context, organizationID string, from *time.Time, to time.Time) ([]domain.AccountTotals, error) {
	query := `
		SELECT
			tr.gl_account_id,
			SUM(CASE WHEN tr.is_debit THEN tr.amount ELSE 0 END) AS debits,
			SUM(CASE WHEN NOT tr.is_debit THEN tr.amount ELSE 0 END) AS credits
		FROM transaction_records tr
		JOIN transactions t ON t.transaction_id = tr.transaction_id
		WHERE t.accounting_organization_id = $1
			AND t.posted_at <= $2
	`
	args := []any{organizationID, to}
	if from != nil {
		args = append(args, *from)
		query += ` AND t.posted_at >= $` + strconv.Itoa(len(args))
	}
	query += ` GROUP BY tr.gl_account_id`

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		if isNoRows(err) {
			return []domain.AccountTotals{}, nil
		}
		return nil, fmt.Errorf("error querying account totals: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AccountTotals])
	if err != nil {
		return nil, fmt.Errorf("error scanning account totals: %w", err)
	}

	result := make([]domain.AccountTotals, len(ms))
	for i, m := range ms {
		result[i] = mapping.ToDomainAccountTotals(m)
	}
	return result, nil
}
