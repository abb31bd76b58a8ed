package repositories

import (
	"context"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentReader defines read operations for payments.
type PaymentReader interface {
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// SumPaidByInvoice totals invoice_payments for the invoice. Zero when unpaid.
	SumPaidByInvoice(ctx context.Context, invoiceID string) (decimal.Decimal, error)

	// SumForwardedByInvoice totals forwarded_payment_invoices for the invoice.
	SumForwardedByInvoice(ctx context.Context, invoiceID string) (decimal.Decimal, error)
}

// PaymentWriter defines write operations for payments.
type PaymentWriter interface {
	// SavePayment inserts the payment, its invoice payments and the forwarded
	// payment when present. A reused external reference yields apperrors.ErrDuplicate.
	SavePayment(ctx context.Context, payment domain.Payment) error
}

// PaymentRepositoryFacade combines all payment repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
