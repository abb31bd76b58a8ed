package repositories

import (
	"context"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
)

// DocumentListFilter narrows a document listing. Zero values match everything.
type DocumentListFilter struct {
	Type   domain.DocumentType
	Status domain.DocumentStatus
	Limit  int
	Offset int
}

// DocumentReader defines read operations for financial documents.
type DocumentReader interface {
	// FindDocumentByID loads the document with items and status history.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.FinancialDocument, error)

	ListDocuments(ctx context.Context, organizationID string, filter DocumentListFilter) ([]domain.FinancialDocument, error)
}

// DocumentWriter defines write operations for financial documents. Every
// mutating call takes the version the caller read and fails with
// apperrors.ErrConcurrentModification when the stored version differs.
type DocumentWriter interface {
	SaveDocument(ctx context.Context, doc domain.FinancialDocument) error

	// FindDocumentForUpdate loads the document and holds a row lock on it until
	// the surrounding unit of work ends. A row already locked by another unit
	// yields apperrors.ErrConcurrentModification instead of waiting.
	FindDocumentForUpdate(ctx context.Context, documentID string) (*domain.FinancialDocument, error)

	// ReplaceItems swaps the item set and bumps the version.
	ReplaceItems(ctx context.Context, documentID string, items []domain.DocumentItem, expectedVersion int64, userID string) error

	// AppendStatus adds a status history row. Existing rows are never changed.
	AppendStatus(ctx context.Context, documentID string, entry domain.StatusEntry) error

	// UpdateDocumentState persists approve request, locked_at and transaction_id and bumps the version.
	UpdateDocumentState(ctx context.Context, doc domain.FinancialDocument, expectedVersion int64) error
}

// DocumentRepositoryFacade combines all document repository interfaces.
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
