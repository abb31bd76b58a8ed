package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType is how the money arrived.
type PaymentType string

const (
	PaymentDirectDeposit PaymentType = "DIRECT_DEPOSIT"
	PaymentCreditCard    PaymentType = "CREDIT_CARD"
	PaymentCash          PaymentType = "CASH"
	PaymentForwarded     PaymentType = "FORWARDED"
)

// Valid reports whether t is a known payment type.
func (t PaymentType) Valid() bool {
	switch t {
	case PaymentDirectDeposit, PaymentCreditCard, PaymentCash, PaymentForwarded:
		return true
	}
	return false
}

// Payment is money received and allocated across invoices.
type Payment struct {
	PaymentID                string            `json:"paymentID"`
	AccountingOrganizationID string            `json:"accountingOrganizationID"`
	Type                     PaymentType       `json:"type"`
	TransactionID            string            `json:"transactionID,omitempty"`
	UserID                   string            `json:"userID"`
	Amount                   decimal.Decimal   `json:"amount"`
	PaidAt                   time.Time         `json:"paidAt"`
	ExternalReference        string            `json:"externalReference,omitempty"`
	InvoicePayments          []InvoicePayment  `json:"invoicePayments"`
	ForwardedPayment         *ForwardedPayment `json:"forwardedPayment,omitempty"`
	CreatedAt                time.Time         `json:"createdAt"`
}

// InvoicePayment is the part of a payment applied to one invoice.
type InvoicePayment struct {
	PaymentID string          `json:"paymentID"`
	InvoiceID string          `json:"invoiceID"`
	Amount    decimal.Decimal `json:"amount"`
	IsFP      bool            `json:"isFP"`
}

// ForwardedPayment records money remitted onward to a third party.
type ForwardedPayment struct {
	ForwardedPaymentID  string                    `json:"forwardedPaymentID"`
	PaymentID           string                    `json:"paymentID"`
	RemittanceReference string                    `json:"remittanceReference"`
	TransferredAt       time.Time                 `json:"transferredAt"`
	Invoices            []ForwardedPaymentInvoice `json:"invoices"`
}

// ForwardedPaymentInvoice is the forwarded share of one invoice.
type ForwardedPaymentInvoice struct {
	ForwardedPaymentID string          `json:"forwardedPaymentID"`
	InvoiceID          string          `json:"invoiceID"`
	Amount             decimal.Decimal `json:"amount"`
}

// Allocation asks for amount of a payment to be applied to an invoice.
type Allocation struct {
	InvoiceID string
	Amount    decimal.Decimal
}

// ForwardedData describes the forwarded leg of a payment.
type ForwardedData struct {
	RemittanceReference string
	TransferredAt       time.Time
	Invoices            []Allocation
}

// PaymentData is the input of a payment application.
type PaymentData struct {
	AccountingOrganizationID string
	Type                     PaymentType
	Amount                   decimal.Decimal
	PaidAt                   time.Time
	ExternalReference        string
	Allocations              []Allocation
	// ReceivableAccountID and BankAccountID override the organization's designations when set.
	ReceivableAccountID string
	BankAccountID       string
	Forwarded           *ForwardedData
}

// IsForwarded reports whether the payment carries a forwarded leg.
func (p PaymentData) IsForwarded() bool {
	return p.Type == PaymentForwarded || p.Forwarded != nil
}

// AllocatedTotal sums the allocations.
func (p PaymentData) AllocatedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, a := range p.Allocations {
		total = total.Add(a.Amount)
	}
	return total
}

// InvoiceSettlement summarises what has been paid against an invoice.
type InvoiceSettlement struct {
	InvoiceID   string          `json:"invoiceID"`
	Total       decimal.Decimal `json:"total"`
	Paid        decimal.Decimal `json:"paid"`
	Forwarded   decimal.Decimal `json:"forwarded"`
	Recognized  decimal.Decimal `json:"recognized"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// NewInvoiceSettlement derives recognized (paid minus forwarded) and outstanding amounts.
func NewInvoiceSettlement(invoiceID string, total, paid, forwarded decimal.Decimal) InvoiceSettlement {
	return InvoiceSettlement{
		InvoiceID:   invoiceID,
		Total:       total,
		Paid:        paid,
		Forwarded:   forwarded,
		Recognized:  paid.Sub(forwarded),
		Outstanding: total.Sub(paid),
	}
}
