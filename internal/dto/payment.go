package dto

import (
	"time"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AllocationRequest applies part of a payment to one invoice.
type AllocationRequest struct {
	InvoiceID string          `json:"invoiceID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" binding:"dgt0"`
}

// ForwardedRequest describes the part of a payment remitted to a third party.
type ForwardedRequest struct {
	RemittanceReference string              `json:"remittanceReference" binding:"required,max=100"`
	TransferredAt       time.Time           `json:"transferredAt" binding:"required"`
	Invoices            []AllocationRequest `json:"invoices" binding:"required,min=1,dive"`
}

// ApplyPaymentRequest defines the data needed to apply a payment.
type ApplyPaymentRequest struct {
	Type                domain.PaymentType  `json:"type" binding:"required,oneof=DIRECT_DEPOSIT CREDIT_CARD CASH FORWARDED"`
	Amount              decimal.Decimal     `json:"amount" swaggertype:"string" binding:"dgt0"`
	PaidAt              time.Time           `json:"paidAt" binding:"required"`
	ExternalReference   string              `json:"externalReference" binding:"max=100"`
	Allocations         []AllocationRequest `json:"allocations" binding:"required,min=1,dive"`
	ReceivableAccountID string              `json:"receivableAccountID"`
	BankAccountID       string              `json:"bankAccountID"`
	Forwarded           *ForwardedRequest   `json:"forwarded"`
}

// ToPaymentData converts the request into the allocator input.
func (r ApplyPaymentRequest) ToPaymentData(organizationID string) domain.PaymentData {
	data := domain.PaymentData{
		AccountingOrganizationID: organizationID,
		Type:                     r.Type,
		Amount:                   r.Amount,
		PaidAt:                   r.PaidAt,
		ExternalReference:        r.ExternalReference,
		Allocations:              toAllocations(r.Allocations),
		ReceivableAccountID:      r.ReceivableAccountID,
		BankAccountID:            r.BankAccountID,
	}
	if r.Forwarded != nil {
		data.Forwarded = &domain.ForwardedData{
			RemittanceReference: r.Forwarded.RemittanceReference,
			TransferredAt:       r.Forwarded.TransferredAt,
			Invoices:            toAllocations(r.Forwarded.Invoices),
		}
	}
	return data
}

func toAllocations(in []AllocationRequest) []domain.Allocation {
	out := make([]domain.Allocation, len(in))
	for i, a := range in {
		out[i] = domain.Allocation{InvoiceID: a.InvoiceID, Amount: a.Amount}
	}
	return out
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID         string                   `json:"paymentID"`
	OrganizationID    string                   `json:"organizationID"`
	Type              domain.PaymentType       `json:"type"`
	TransactionID     string                   `json:"transactionID"`
	Amount            decimal.Decimal          `json:"amount" swaggertype:"string"`
	PaidAt            time.Time                `json:"paidAt"`
	ExternalReference string                   `json:"externalReference,omitempty"`
	InvoicePayments   []domain.InvoicePayment  `json:"invoicePayments"`
	ForwardedPayment  *domain.ForwardedPayment `json:"forwardedPayment,omitempty"`
	CreatedBy         string                   `json:"createdBy"`
	CreatedAt         time.Time                `json:"createdAt"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:         p.PaymentID,
		OrganizationID:    p.AccountingOrganizationID,
		Type:              p.Type,
		TransactionID:     p.TransactionID,
		Amount:            domain.RoundForPresentation(p.Amount),
		PaidAt:            p.PaidAt,
		ExternalReference: p.ExternalReference,
		InvoicePayments:   p.InvoicePayments,
		ForwardedPayment:  p.ForwardedPayment,
		CreatedBy:         p.UserID,
		CreatedAt:         p.CreatedAt,
	}
}

// SettlementResponse renders an invoice settlement rounded for presentation.
type SettlementResponse struct {
	InvoiceID   string          `json:"invoiceID"`
	Total       decimal.Decimal `json:"total" swaggertype:"string"`
	Paid        decimal.Decimal `json:"paid" swaggertype:"string"`
	Forwarded   decimal.Decimal `json:"forwarded" swaggertype:"string"`
	Recognized  decimal.Decimal `json:"recognized" swaggertype:"string"`
	Outstanding decimal.Decimal `json:"outstanding" swaggertype:"string"`
}

// ToSettlementResponse converts a domain.InvoiceSettlement.
func ToSettlementResponse(s domain.InvoiceSettlement) SettlementResponse {
	return SettlementResponse{
		InvoiceID:   s.InvoiceID,
		Total:       domain.RoundForPresentation(s.Total),
		Paid:        domain.RoundForPresentation(s.Paid),
		Forwarded:   domain.RoundForPresentation(s.Forwarded),
		Recognized:  domain.RoundForPresentation(s.Recognized),
		Outstanding: domain.RoundForPresentation(s.Outstanding),
	}
}
