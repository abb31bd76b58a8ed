package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a payments row.
type Payment struct {
	PaymentID                string          `db:"payment_id"`
	AccountingOrganizationID string          `db:"accounting_organization_id"`
	PaymentType              string          `db:"payment_type"`
	TransactionID            *string         `db:"transaction_id"`
	UserID                   string          `db:"user_id"`
	Amount                   decimal.Decimal `db:"amount"`
	PaidAt                   time.Time       `db:"paid_at"`
	ExternalReference        *string         `db:"external_reference"`
	CreatedAt                time.Time       `db:"created_at"`
}

// InvoicePayment is an invoice_payments row.
type InvoicePayment struct {
	PaymentID string          `db:"payment_id"`
	InvoiceID string          `db:"invoice_id"`
	Amount    decimal.Decimal `db:"amount"`
	IsFP      bool            `db:"is_fp"`
}

// ForwardedPayment is a forwarded_payments row.
type ForwardedPayment struct {
	ForwardedPaymentID  string    `db:"forwarded_payment_id"`
	PaymentID           string    `db:"payment_id"`
	RemittanceReference string    `db:"remittance_reference"`
	TransferredAt       time.Time `db:"transferred_at"`
}

// ForwardedPaymentInvoice is a forwarded_payment_invoices row.
type ForwardedPaymentInvoice struct {
	ForwardedPaymentID string          `db:"forwarded_payment_id"`
	InvoiceID          string          `db:"invoice_id"`
	Amount             decimal.Decimal `db:"amount"`
}
