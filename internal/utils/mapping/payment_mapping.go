package mapping

import (
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/models"
)

// ToModelPayment converts a domain Payment header to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:                d.PaymentID,
		AccountingOrganizationID: d.AccountingOrganizationID,
		PaymentType:              string(d.Type),
		TransactionID:            NullableString(d.TransactionID),
		UserID:                   d.UserID,
		Amount:                   d.Amount,
		PaidAt:                   d.PaidAt,
		ExternalReference:        NullableString(d.ExternalReference),
		CreatedAt:                d.CreatedAt,
	}
}

// ToDomainPayment converts a model Payment with its children to a domain Payment.
// forwarded is nil when the payment has no forwarded leg.
func ToDomainPayment(m models.Payment, invoices []models.InvoicePayment, forwarded *models.ForwardedPayment, forwardedInvoices []models.ForwardedPaymentInvoice) domain.Payment {
	p := domain.Payment{
		PaymentID:                m.PaymentID,
		AccountingOrganizationID: m.AccountingOrganizationID,
		Type:                     domain.PaymentType(m.PaymentType),
		TransactionID:            StringValue(m.TransactionID),
		UserID:                   m.UserID,
		Amount:                   m.Amount,
		PaidAt:                   m.PaidAt,
		ExternalReference:        StringValue(m.ExternalReference),
		CreatedAt:                m.CreatedAt,
		InvoicePayments:          make([]domain.InvoicePayment, len(invoices)),
	}
	for i, ip := range invoices {
		p.InvoicePayments[i] = domain.InvoicePayment(ip)
	}
	if forwarded != nil {
		fp := &domain.ForwardedPayment{
			ForwardedPaymentID:  forwarded.ForwardedPaymentID,
			PaymentID:           forwarded.PaymentID,
			RemittanceReference: forwarded.RemittanceReference,
			TransferredAt:       forwarded.TransferredAt,
			Invoices:            make([]domain.ForwardedPaymentInvoice, len(forwardedInvoices)),
		}
		for i, fi := range forwardedInvoices {
			fp.Invoices[i] = domain.ForwardedPaymentInvoice(fi)
		}
		p.ForwardedPayment = fp
	}
	return p
}
