package mapping

import (
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/models"
)

// ToModelDocument converts a domain FinancialDocument header to a model FinancialDocument
func ToModelDocument(d domain.FinancialDocument) models.FinancialDocument {
	m := models.FinancialDocument{
		DocumentID:               d.DocumentID,
		DocumentType:             string(d.Type),
		LocationID:               d.LocationID,
		AccountingOrganizationID: d.AccountingOrganizationID,
		RecipientContactID:       d.RecipientContactID,
		Reference:                d.Reference,
		DocumentDate:             d.Date,
		DueAt:                    d.DueAt,
		LockedAt:                 d.LockedAt,
		TransactionID:            NullableString(d.TransactionID),
		Version:                  d.Version,
		AuditFields:              ToModelAuditFields(d.AuditFields),
	}
	if d.ApproveRequest != nil {
		m.ApprovalRequesterID = NullableString(d.ApproveRequest.RequesterID)
		m.ApprovalApproverID = NullableString(d.ApproveRequest.ApproverID)
		m.ApprovedAt = d.ApproveRequest.ApprovedAt
	}
	return m
}

// ToDomainDocument converts a model FinancialDocument with items and statuses to a domain FinancialDocument
func ToDomainDocument(m models.FinancialDocument, items []models.DocumentItem, statuses []models.DocumentStatus) domain.FinancialDocument {
	d := domain.FinancialDocument{
		DocumentID:               m.DocumentID,
		Type:                     domain.DocumentType(m.DocumentType),
		LocationID:               m.LocationID,
		AccountingOrganizationID: m.AccountingOrganizationID,
		RecipientContactID:       m.RecipientContactID,
		Reference:                m.Reference,
		Date:                     m.DocumentDate,
		DueAt:                    m.DueAt,
		LockedAt:                 m.LockedAt,
		TransactionID:            StringValue(m.TransactionID),
		Version:                  m.Version,
		Items:                    make([]domain.DocumentItem, len(items)),
		Statuses:                 make([]domain.StatusEntry, len(statuses)),
		AuditFields:              ToDomainAuditFields(m.AuditFields),
	}
	if m.ApprovalRequesterID != nil || m.ApprovalApproverID != nil || m.ApprovedAt != nil {
		d.ApproveRequest = &domain.ApproveRequest{
			RequesterID: StringValue(m.ApprovalRequesterID),
			ApproverID:  StringValue(m.ApprovalApproverID),
			ApprovedAt:  m.ApprovedAt,
		}
	}
	for i, item := range items {
		d.Items[i] = ToDomainDocumentItem(item)
	}
	for i, s := range statuses {
		d.Statuses[i] = domain.StatusEntry{Status: domain.DocumentStatus(s.Status), UserID: s.UserID, CreatedAt: s.CreatedAt}
	}
	return d
}

// ToModelDocumentItem converts a domain DocumentItem to a model DocumentItem
func ToModelDocumentItem(documentID string, d domain.DocumentItem) models.DocumentItem {
	return models.DocumentItem{
		ItemID:          d.ItemID,
		DocumentID:      documentID,
		GSCode:          d.GSCode,
		Description:     d.Description,
		GLAccountID:     d.GLAccountID,
		TaxRateID:       d.TaxRateID,
		TaxRate:         d.TaxRate,
		UnitCost:        d.UnitCost,
		Quantity:        d.Quantity,
		DiscountPercent: d.DiscountPercent,
		MarkupPercent:   d.MarkupPercent,
		Position:        d.Position,
	}
}

// ToDomainDocumentItem converts a model DocumentItem to a domain DocumentItem
func ToDomainDocumentItem(m models.DocumentItem) domain.DocumentItem {
	return domain.DocumentItem{
		ItemID:          m.ItemID,
		GSCode:          m.GSCode,
		Description:     m.Description,
		GLAccountID:     m.GLAccountID,
		TaxRateID:       m.TaxRateID,
		TaxRate:         m.TaxRate,
		UnitCost:        m.UnitCost,
		Quantity:        m.Quantity,
		DiscountPercent: m.DiscountPercent,
		MarkupPercent:   m.MarkupPercent,
		Position:        m.Position,
	}
}
