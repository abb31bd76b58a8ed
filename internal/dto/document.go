package dto

import (
	"time"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DocumentItemRequest is one priced line of a financial document.
type DocumentItemRequest struct {
	GSCode          string          `json:"gsCode" binding:"max=64"`
	Description     string          `json:"description" binding:"max=500"`
	GLAccountID     string          `json:"glAccountID" binding:"required"`
	TaxRateID       string          `json:"taxRateID" binding:"required"`
	UnitCost        decimal.Decimal `json:"unitCost" swaggertype:"string" binding:"dgte0"`
	Quantity        decimal.Decimal `json:"quantity" swaggertype:"string" binding:"dgt0"`
	DiscountPercent decimal.Decimal `json:"discountPercent" swaggertype:"string" binding:"dpct"`
	MarkupPercent   decimal.Decimal `json:"markupPercent" swaggertype:"string" binding:"dgte0"`
}

// CreateDocumentRequest defines the data needed to create a draft document.
type CreateDocumentRequest struct {
	Type               domain.DocumentType   `json:"type" binding:"required,oneof=INVOICE CREDIT_NOTE PURCHASE_ORDER"`
	LocationID         string                `json:"locationID" binding:"required"`
	RecipientContactID string                `json:"recipientContactID" binding:"required"`
	Reference          string                `json:"reference" binding:"max=100"`
	Date               time.Time             `json:"date" binding:"required"`
	DueAt              *time.Time            `json:"dueAt"`
	Items              []DocumentItemRequest `json:"items" binding:"dive"`
}

// UpdateDocumentItemsRequest replaces the items of a draft document.
type UpdateDocumentItemsRequest struct {
	Version int64                 `json:"version" binding:"min=0"`
	Items   []DocumentItemRequest `json:"items" binding:"dive"`
}

// RequestApprovalRequest names the approver of a document.
type RequestApprovalRequest struct {
	ApproverID string `json:"approverID" binding:"required"`
}

// ListDocumentsParams defines query parameters for listing documents.
type ListDocumentsParams struct {
	Type   domain.DocumentType   `form:"type" binding:"omitempty,oneof=INVOICE CREDIT_NOTE PURCHASE_ORDER"`
	Status domain.DocumentStatus `form:"status" binding:"omitempty,oneof=DRAFT PENDING_APPROVAL APPROVED"`
	Limit  int                   `form:"limit,default=20" binding:"min=1,max=200"`
	Offset int                   `form:"offset,default=0" binding:"min=0"`
}

// DocumentItemResponse renders one item with its computed amounts.
type DocumentItemResponse struct {
	domain.DocumentItem
	SubTotal decimal.Decimal `json:"subTotal" swaggertype:"string"`
	Tax      decimal.Decimal `json:"tax" swaggertype:"string"`
}

// DocumentResponse renders a financial document with its totals.
type DocumentResponse struct {
	DocumentID         string                 `json:"documentID"`
	Type               domain.DocumentType    `json:"type"`
	OrganizationID     string                 `json:"organizationID"`
	LocationID         string                 `json:"locationID"`
	RecipientContactID string                 `json:"recipientContactID"`
	Reference          string                 `json:"reference"`
	Date               time.Time              `json:"date"`
	DueAt              *time.Time             `json:"dueAt,omitempty"`
	Status             domain.DocumentStatus  `json:"status"`
	Statuses           []domain.StatusEntry   `json:"statuses"`
	ApproveRequest     *domain.ApproveRequest `json:"approveRequest,omitempty"`
	LockedAt           *time.Time             `json:"lockedAt,omitempty"`
	TransactionID      string                 `json:"transactionID,omitempty"`
	Version            int64                  `json:"version"`
	Items              []DocumentItemResponse `json:"items"`
	SubTotal           decimal.Decimal        `json:"subTotal" swaggertype:"string"`
	TaxAmount          decimal.Decimal        `json:"taxAmount" swaggertype:"string"`
	TotalAmount        decimal.Decimal        `json:"totalAmount" swaggertype:"string"`
}

// ToDocumentResponse converts a domain.FinancialDocument to DocumentResponse DTO.
// Totals are the amounts posted at approval, so they add up to TotalAmount.
func ToDocumentResponse(doc *domain.FinancialDocument) DocumentResponse {
	posted := doc.PostedAmounts()
	items := make([]DocumentItemResponse, len(doc.Items))
	for i, item := range doc.Items {
		items[i] = DocumentItemResponse{
			DocumentItem: item,
			SubTotal:     posted.Items[i],
			Tax:          domain.RoundForPresentation(item.Tax(doc.Type)),
		}
	}
	return DocumentResponse{
		DocumentID:         doc.DocumentID,
		Type:               doc.Type,
		OrganizationID:     doc.AccountingOrganizationID,
		LocationID:         doc.LocationID,
		RecipientContactID: doc.RecipientContactID,
		Reference:          doc.Reference,
		Date:               doc.Date,
		DueAt:              doc.DueAt,
		Status:             doc.LatestStatus(),
		Statuses:           doc.Statuses,
		ApproveRequest:     doc.ApproveRequest,
		LockedAt:           doc.LockedAt,
		TransactionID:      doc.TransactionID,
		Version:            doc.Version,
		Items:              items,
		SubTotal:           posted.Control.Sub(posted.Tax),
		TaxAmount:          posted.Tax,
		TotalAmount:        posted.Control,
	}
}

// ToListDocumentResponse converts documents to DocumentResponse DTOs.
func ToListDocumentResponse(docs []domain.FinancialDocument) []DocumentResponse {
	res := make([]DocumentResponse, len(docs))
	for i := range docs {
		res[i] = ToDocumentResponse(&docs[i])
	}
	return res
}
