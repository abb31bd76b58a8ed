package services

import (
	"context"
	"time"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/dto"
)

// DocumentReaderSvc defines read operations for financial documents.
type DocumentReaderSvc interface {
	GetDocument(ctx context.Context, documentID string) (*domain.FinancialDocument, error)
	ListDocuments(ctx context.Context, organizationID string, params dto.ListDocumentsParams) ([]domain.FinancialDocument, error)
}

// DocumentWriterSvc drives the document lifecycle.
type DocumentWriterSvc interface {
	CreateDocument(ctx context.Context, organizationID string, req dto.CreateDocumentRequest, userID string) (*domain.FinancialDocument, error)

	// UpdateItems replaces the items of a DRAFT document.
	UpdateItems(ctx context.Context, documentID string, req dto.UpdateDocumentItemsRequest, userID string) (*domain.FinancialDocument, error)

	// RequestApproval moves DRAFT to PENDING_APPROVAL.
	RequestApproval(ctx context.Context, documentID string, approverID string, requesterID string) (*domain.FinancialDocument, error)

	// Approve moves PENDING_APPROVAL to APPROVED and posts the ledger
	// transaction, at most once per document.
	Approve(ctx context.Context, documentID string, approverID string) (*domain.FinancialDocument, error)

	// LockCreditNote sets locked_at on an approved credit note.
	LockCreditNote(ctx context.Context, documentID string, userID string) (*domain.FinancialDocument, error)
}

// DocumentSvcFacade combines all document service interfaces.
type DocumentSvcFacade interface {
	DocumentReaderSvc
	DocumentWriterSvc
}

// PaymentSvcFacade is the payment allocator.
type PaymentSvcFacade interface {
	ApplyPayment(ctx context.Context, data domain.PaymentData, userID string) (*domain.Payment, error)
	GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error)

	// GetInvoiceSettlement reports paid, forwarded and recognized amounts of an invoice.
	GetInvoiceSettlement(ctx context.Context, invoiceID string) (*domain.InvoiceSettlement, error)
}

// Locker serializes work on a key across processes. Acquire fails with
// apperrors.ErrConcurrentModification when the key is held elsewhere.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}
