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
	"github.com/shopspring/decimal"
)

type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

// SavePayment inserts the payment with its invoice payments and forwarded leg.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)

	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO payments (
			payment_id, accounting_organization_id, payment_type, transaction_id, user_id,
			amount, paid_at, external_reference, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		m.PaymentID,
		m.AccountingOrganizationID,
		m.PaymentType,
		m.TransactionID,
		m.UserID,
		m.Amount,
		m.PaidAt,
		m.ExternalReference,
		m.CreatedAt,
	)
	for _, ip := range payment.InvoicePayments {
		batch.Queue(`
			INSERT INTO invoice_payments (payment_id, invoice_id, amount, is_fp)
			VALUES ($1, $2, $3, $4);`,
			m.PaymentID, ip.InvoiceID, ip.Amount, ip.IsFP)
	}
	if fp := payment.ForwardedPayment; fp != nil {
		batch.Queue(`
			INSERT INTO forwarded_payments (forwarded_payment_id, payment_id, remittance_reference, transferred_at)
			VALUES ($1, $2, $3, $4);`,
			fp.ForwardedPaymentID, m.PaymentID, fp.RemittanceReference, fp.TransferredAt)
		for _, inv := range fp.Invoices {
			batch.Queue(`
				INSERT INTO forwarded_payment_invoices (forwarded_payment_id, invoice_id, amount)
				VALUES ($1, $2, $3);`,
				fp.ForwardedPaymentID, inv.InvoiceID, inv.Amount)
		}
	}

	if err := r.db(ctx).SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save payment %s: %w", m.PaymentID, mapPgError(err, "payment with external reference", payment.ExternalReference))
	}
	return nil
}

// FindPaymentByID loads a payment with its invoice payments and forwarded leg.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	rows, err := r.db(ctx).Query(ctx, `
		SELECT payment_id, accounting_organization_id, payment_type, transaction_id, user_id,
		       amount, paid_at, external_reference, created_at
		FROM payments
		WHERE payment_id = $1;`, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment %s: %w", paymentID, err)
	}
	header, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Payment])
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrPaymentNotFound, paymentID)
		}
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}

	rows, err = r.db(ctx).Query(ctx, `
		SELECT payment_id, invoice_id, amount, is_fp
		FROM invoice_payments
		WHERE payment_id = $1
		ORDER BY invoice_id;`, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice payments of %s: %w", paymentID, err)
	}
	invoices, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.InvoicePayment])
	if err != nil {
		return nil, fmt.Errorf("failed to scan invoice payments of %s: %w", paymentID, err)
	}

	var forwarded *models.ForwardedPayment
	var forwardedInvoices []models.ForwardedPaymentInvoice
	var fp models.ForwardedPayment
	err = r.db(ctx).QueryRow(ctx, `
		SELECT forwarded_payment_id, payment_id, remittance_reference, transferred_at
		FROM forwarded_payments
		WHERE payment_id = $1;`, paymentID).Scan(
		&fp.ForwardedPaymentID,
		&fp.PaymentID,
		&fp.RemittanceReference,
		&fp.TransferredAt,
	)
	switch {
	case err == nil:
		forwarded = &fp
		rows, err = r.db(ctx).Query(ctx, `
			SELECT forwarded_payment_id, invoice_id, amount
			FROM forwarded_payment_invoices
			WHERE forwarded_payment_id = $1
			ORDER BY invoice_id;`, fp.ForwardedPaymentID)
		if err != nil {
			return nil, fmt.Errorf("failed to query forwarded invoices of %s: %w", paymentID, err)
		}
		forwardedInvoices, err = pgx.CollectRows(rows, pgx.RowToStructByName[models.ForwardedPaymentInvoice])
		if err != nil {
			return nil, fmt.Errorf("failed to scan forwarded invoices of %s: %w", paymentID, err)
		}
	case !isNoRows(err):
		return nil, fmt.Errorf("failed to find forwarded payment of %s: %w", paymentID, err)
	}

	payment := mapping.ToDomainPayment(header, invoices, forwarded, forwardedInvoices)
	return &payment, nil
}

// SumPaidByInvoice totals what has been paid against an invoice.
func (r *PgxPaymentRepository) SumPaidByInvoice(ctx context.Context, invoiceID string) (decimal.Decimal, error) {
	return r.sum(ctx, `SELECT COALESCE(SUM(amount), 0) FROM invoice_payments WHERE invoice_id = $1`, invoiceID)
}

// SumForwardedByInvoice totals forwarded amounts recorded against an invoice.
func (r *PgxPaymentRepository) SumForwardedByInvoice(ctx context.Context, invoiceID string) (decimal.Decimal, error) {
	return r.sum(ctx, `SELECT COALESCE(SUM(amount), 0) FROM forwarded_payment_invoices WHERE invoice_id = $1`, invoiceID)
}

func (r *PgxPaymentRepository) sum(ctx context.Context, query, invoiceID string) (decimal.Decimal, error) {
	total := decimal.Zero
	if err := r.db(ctx).QueryRow(ctx, query, invoiceID).Scan(&total); err != nil {
		if isNoRows(err) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to sum payments of invoice %s: %w", invoiceID, err)
	}
	return total, nil
}
