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
)

const documentColumns = `
	document_id, document_type, location_id, accounting_organization_id, recipient_contact_id,
	reference, document_date, due_at, approval_requester_id, approval_approver_id, approved_at,
	locked_at, transaction_id, version, created_at, created_by, last_updated_at, last_updated_by
`

const insertItemQuery = `
	INSERT INTO document_items (
		document_item_id, document_id, gs_code, description, gl_account_id, tax_rate_id, tax_rate,
		unit_cost, quantity, discount_percent, markup_percent, position
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
`

const insertStatusQuery = `
	INSERT INTO document_statuses (document_id, status, user_id, created_at)
	VALUES ($1, $2, $3, $4);
`

type PgxDocumentRepository struct {
	BaseRepository
}

func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

// SaveDocument inserts the header, its items and its initial status history.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.FinancialDocument) error {
	m := mapping.ToModelDocument(doc)

	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO financial_documents (`+documentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);`,
		m.DocumentID,
		m.DocumentType,
		m.LocationID,
		m.AccountingOrganizationID,
		m.RecipientContactID,
		m.Reference,
		m.DocumentDate,
		m.DueAt,
		m.ApprovalRequesterID,
		m.ApprovalApproverID,
		m.ApprovedAt,
		m.LockedAt,
		m.TransactionID,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	queueItems(batch, doc.DocumentID, doc.Items)
	for _, s := range doc.Statuses {
		batch.Queue(insertStatusQuery, doc.DocumentID, string(s.Status), s.UserID, s.CreatedAt)
	}

	if err := r.db(ctx).SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save document %s: %w", m.DocumentID, mapPgError(err, "document", m.DocumentID))
	}
	return nil
}

func queueItems(batch *pgx.Batch, documentID string, items []domain.DocumentItem) {
	for _, item := range items {
		m := mapping.ToModelDocumentItem(documentID, item)
		batch.Queue(insertItemQuery,
			m.ItemID,
			m.DocumentID,
			m.GSCode,
			m.Description,
			m.GLAccountID,
			m.TaxRateID,
			m.TaxRate,
			m.UnitCost,
			m.Quantity,
			m.DiscountPercent,
			m.MarkupPercent,
			m.Position,
		)
	}
}

// FindDocumentByID loads a document with its items and status history.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.FinancialDocument, error) {
	return r.findDocument(ctx, `SELECT `+documentColumns+` FROM financial_documents WHERE document_id = $1`, documentID)
}

// FindDocumentForUpdate loads a document and row-locks it for the current
// unit of work. A row held by another unit fails fast with 55P03.
func (r *PgxDocumentRepository) FindDocumentForUpdate(ctx context.Context, documentID string) (*domain.FinancialDocument, error) {
	return r.findDocument(ctx, `SELECT `+documentColumns+` FROM financial_documents WHERE document_id = $1 FOR UPDATE NOWAIT`, documentID)
}

func (r *PgxDocumentRepository) findDocument(ctx context.Context, query, documentID string) (*domain.FinancialDocument, error) {
	rows, err := r.db(ctx).Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query document %s: %w", documentID, mapPgError(err, "document", documentID))
	}
	header, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.FinancialDocument])
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrDocumentNotFound, documentID)
		}
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, mapPgError(err, "document", documentID))
	}

	items, statuses, err := r.loadChildren(ctx, []string{documentID})
	if err != nil {
		return nil, err
	}
	doc := mapping.ToDomainDocument(header, items[documentID], statuses[documentID])
	return &doc, nil
}

// loadChildren fetches items and statuses of the given documents keyed by document id.
func (r *PgxDocumentRepository) loadChildren(ctx context.Context, documentIDs []string) (map[string][]models.DocumentItem, map[string][]models.DocumentStatus, error) {
	itemRows, err := r.db(ctx).Query(ctx, `
		SELECT document_item_id, document_id, gs_code, description, gl_account_id, tax_rate_id, tax_rate,
		       unit_cost, quantity, discount_percent, markup_percent, position
		FROM document_items
		WHERE document_id::text = ANY($1)
		ORDER BY document_id, position;`, documentIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query document items: %w", err)
	}
	items, err := pgx.CollectRows(itemRows, pgx.RowToStructByName[models.DocumentItem])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan document items: %w", err)
	}

	statusRows, err := r.db(ctx).Query(ctx, `
		SELECT document_id, status, user_id, created_at
		FROM document_statuses
		WHERE document_id::text = ANY($1)
		ORDER BY document_id, document_status_id;`, documentIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query document statuses: %w", err)
	}
	statuses, err := pgx.CollectRows(statusRows, pgx.RowToStructByName[models.DocumentStatus])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan document statuses: %w", err)
	}

	itemsByDoc := make(map[string][]models.DocumentItem, len(documentIDs))
	for _, item := range items {
		itemsByDoc[item.DocumentID] = append(itemsByDoc[item.DocumentID], item)
	}
	statusesByDoc := make(map[string][]models.DocumentStatus, len(documentIDs))
	for _, s := range statuses {
		statusesByDoc[s.DocumentID] = append(statusesByDoc[s.DocumentID], s)
	}
	return itemsByDoc, statusesByDoc, nil
}

// ListDocuments lists documents of an organization, newest first. The status
// filter matches the latest status history row.
func (r *PgxDocumentRepository) ListDocuments(ctx context.Context, organizationID string, filter portsrepo.DocumentListFilter) ([]domain.FinancialDocument, error) {
	var limit *int
	if filter.Limit > 0 {
		limit = &filter.Limit
	}
	query := `
		SELECT ` + documentColumns + `
		FROM financial_documents d
		WHERE d.accounting_organization_id = $1
			AND ($2 = '' OR d.document_type = $2)
			AND ($3 = '' OR (
				SELECT s.status FROM document_statuses s
				WHERE s.document_id = d.document_id
				ORDER BY s.document_status_id DESC
				LIMIT 1
			) = $3)
		ORDER BY d.document_date DESC, d.created_at DESC
		LIMIT $4 OFFSET $5;
	`
	rows, err := r.db(ctx).Query(ctx, query, organizationID, string(filter.Type), string(filter.Status), limit, filter.Offset)
	if err != nil {
		if isNoRows(err) {
			return []domain.FinancialDocument{}, nil
		}
		return nil, fmt.Errorf("failed to list documents of organization %s: %w", organizationID, err)
	}
	headers, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.FinancialDocument])
	if err != nil {
		return nil, fmt.Errorf("failed to scan documents: %w", err)
	}
	if len(headers) == 0 {
		return []domain.FinancialDocument{}, nil
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.DocumentID
	}
	items, statuses, err := r.loadChildren(ctx, ids)
	if err != nil {
		return nil, err
	}

	docs := make([]domain.FinancialDocument, len(headers))
	for i, h := range headers {
		docs[i] = mapping.ToDomainDocument(h, items[h.DocumentID], statuses[h.DocumentID])
	}
	return docs, nil
}

// ReplaceItems bumps the version and swaps the whole item set.
func (r *PgxDocumentRepository) ReplaceItems(ctx context.Context, documentID string, items []domain.DocumentItem, expectedVersion int64, userID string) error {
	if err := r.bumpVersion(ctx, documentID, expectedVersion, userID); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM document_items WHERE document_id = $1;`, documentID)
	queueItems(batch, documentID, items)
	if err := r.db(ctx).SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to replace items of document %s: %w", documentID, mapPgError(err, "document", documentID))
	}
	return nil
}

func (r *PgxDocumentRepository) bumpVersion(ctx context.Context, documentID string, expectedVersion int64, userID string) error {
	cmdTag, err := r.db(ctx).Exec(ctx, `
		UPDATE financial_documents
		SET version = version + 1, last_updated_at = NOW(), last_updated_by = $3
		WHERE document_id = $1 AND version = $2;`, documentID, expectedVersion, userID)
	if err != nil {
		return fmt.Errorf("failed to update document %s: %w", documentID, mapPgError(err, "document", documentID))
	}
	if cmdTag.RowsAffected() == 0 {
		return r.versionMiss(ctx, documentID)
	}
	return nil
}

// versionMiss tells a missing document apart from a stale version.
func (r *PgxDocumentRepository) versionMiss(ctx context.Context, documentID string) error {
	var exists bool
	err := r.db(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM financial_documents WHERE document_id = $1)`, documentID).Scan(&exists)
	if err != nil && !isNoRows(err) {
		return fmt.Errorf("failed to check document %s: %w", documentID, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", apperrors.ErrDocumentNotFound, documentID)
	}
	return &apperrors.ConcurrentModificationError{Resource: "document", ID: documentID}
}

// AppendStatus adds one status history row.
func (r *PgxDocumentRepository) AppendStatus(ctx context.Context, documentID string, entry domain.StatusEntry) error {
	_, err := r.db(ctx).Exec(ctx, insertStatusQuery, documentID, string(entry.Status), entry.UserID, entry.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return fmt.Errorf("%w: %s", apperrors.ErrDocumentNotFound, documentID)
		}
		return fmt.Errorf("failed to append status to document %s: %w", documentID, mapPgError(err, "document", documentID))
	}
	return nil
}

// UpdateDocumentState persists the approve request, locked_at and the
// posted transaction, guarded by the version the caller read.
func (r *PgxDocumentRepository) UpdateDocumentState(ctx context.Context, doc domain.FinancialDocument, expectedVersion int64) error {
	m := mapping.ToModelDocument(doc)
	cmdTag, err := r.db(ctx).Exec(ctx, `
		UPDATE financial_documents
		SET approval_requester_id = $3,
		    approval_approver_id = $4,
		    approved_at = $5,
		    locked_at = $6,
		    transaction_id = $7,
		    last_updated_at = $8,
		    last_updated_by = $9,
		    version = version + 1
		WHERE document_id = $1 AND version = $2;`,
		m.DocumentID,
		expectedVersion,
		m.ApprovalRequesterID,
		m.ApprovalApproverID,
		m.ApprovedAt,
		m.LockedAt,
		m.TransactionID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update document %s: %w", m.DocumentID, mapPgError(err, "document", m.DocumentID))
	}
	if cmdTag.RowsAffected() == 0 {
		return r.versionMiss(ctx, m.DocumentID)
	}
	return nil
}
