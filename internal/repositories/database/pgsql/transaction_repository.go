package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/apperrors"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	portsrepo "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/repositories"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/models"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/utils/mapping"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultStatementLimit = 20

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionStore = (*PgxTransactionRepository)(nil)

// SaveTransaction inserts the header and all records in one batch.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	header := mapping.ToModelTransaction(txn)

	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO transactions (
			transaction_id, accounting_organization_id, description, source, reverses_transaction_id,
			posted_at, created_at, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		header.TransactionID,
		header.AccountingOrganizationID,
		header.Description,
		header.Source,
		header.ReversesTransactionID,
		header.PostedAt,
		header.CreatedAt,
		header.CreatedBy,
	)

	recordQuery := `
		INSERT INTO transaction_records (transaction_record_id, transaction_id, gl_account_id, amount, is_debit)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, rec := range txn.Records {
		m := mapping.ToModelTransactionRecord(rec)
		batch.Queue(recordQuery, m.TransactionRecordID, header.TransactionID, m.GLAccountID, m.Amount, m.IsDebit)
	}

	// Close reports the first failed statement of the batch.
	if err := r.db(ctx).SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", header.TransactionID, mapPgError(err, "transaction", header.TransactionID))
	}
	return nil
}

// FindTransactionByID retrieves a transaction with its records.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	var header models.Transaction
	err := r.db(ctx).QueryRow(ctx, `
		SELECT transaction_id, accounting_organization_id, description, source, reverses_transaction_id,
		       posted_at, created_at, created_by
		FROM transactions
		WHERE transaction_id = $1;`, transactionID).Scan(
		&header.TransactionID,
		&header.AccountingOrganizationID,
		&header.Description,
		&header.Source,
		&header.ReversesTransactionID,
		&header.PostedAt,
		&header.CreatedAt,
		&header.CreatedBy,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrTransactionNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	rows, err := r.db(ctx).Query(ctx, `
		SELECT transaction_record_id, transaction_id, gl_account_id, amount, is_debit
		FROM transaction_records
		WHERE transaction_id = $1
		ORDER BY is_debit DESC, transaction_record_id;`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records of transaction %s: %w", transactionID, err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.TransactionRecord])
	if err != nil {
		return nil, fmt.Errorf("failed to scan records of transaction %s: %w", transactionID, err)
	}

	txn := mapping.ToDomainTransaction(header, records)
	return &txn, nil
}

// HasReversal reports whether a committed transaction reverses transactionID.
func (r *PgxTransactionRepository) HasReversal(ctx context.Context, transactionID string) (bool, error) {
	var exists bool
	err := r.db(ctx).QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM transactions WHERE reverses_transaction_id = $1);`, transactionID).Scan(&exists)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check reversal of transaction %s: %w", transactionID, err)
	}
	return exists, nil
}

// ListRecordsByAccount lists records of one account, newest posting first,
// using (posted_at, created_at) as the cursor.
func (r *PgxTransactionRepository) ListRecordsByAccount(ctx context.Context, accountID string, filter domain.BalanceFilter, limit int, nextToken *string) ([]domain.AccountRecord, *string, error) {
	if limit <= 0 {
		limit = defaultStatementLimit
	}
	// One extra row tells whether another page exists.
	fetchLimit := limit + 1

	query := `
		SELECT tr.transaction_record_id, tr.transaction_id, tr.gl_account_id, tr.amount, tr.is_debit,
		       t.posted_at, t.created_at, t.description
		FROM transaction_records tr
		JOIN transactions t ON t.transaction_id = tr.transaction_id
		WHERE tr.gl_account_id = $1
	`
	args := []any{accountID}
	query, args = appendPostedWindow(query, args, "t.posted_at", filter)

	if nextToken != nil && *nextToken != "" {
		lastPostedAt, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}
		query += ` AND (t.posted_at, t.created_at) < ($` + strconv.Itoa(len(args)+1) + `, $` + strconv.Itoa(len(args)+2) + `)`
		args = append(args, lastPostedAt, lastCreatedAt)
	}
	query += ` ORDER BY t.posted_at DESC, t.created_at DESC LIMIT $` + strconv.Itoa(len(args)+1)
	args = append(args, fetchLimit)

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		if isNoRows(err) {
			return []domain.AccountRecord{}, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to query records for account %s: %w", accountID, err)
	}
	defer rows.Close()

	results := make([]models.AccountRecord, 0, fetchLimit)
	for rows.Next() {
		var m models.AccountRecord
		if err := rows.Scan(
			&m.TransactionRecordID,
			&m.TransactionID,
			&m.GLAccountID,
			&m.Amount,
			&m.IsDebit,
			&m.PostedAt,
			&m.CreatedAt,
			&m.Description,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan record row for account %s: %w", accountID, err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating record rows for account %s: %w", accountID, err)
	}

	var nextTokenVal *string
	if len(results) > limit {
		last := results[limit-1]
		token := pagination.EncodeToken(last.PostedAt, last.CreatedAt)
		nextTokenVal = &token
		results = results[:limit]
	}
	return mapping.ToDomainAccountRecordSlice(results), nextTokenVal, nil
}

// appendPostedWindow adds inclusive bounds on column for the filter dates.
func appendPostedWindow(query string, args []any, column string, filter domain.BalanceFilter) (string, []any) {
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += ` AND ` + column + ` >= $` + strconv.Itoa(len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += ` AND ` + column + ` <= $` + strconv.Itoa(len(args))
	}
	return query, args
}
