package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/apperrors"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	portsrepo "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/repositories"
	portssvc "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/services"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/dto"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/platform/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type documentService struct {
	BaseService
	uow         portsrepo.UnitOfWork
	docRepo     portsrepo.DocumentRepositoryFacade
	orgRepo     portsrepo.OrganizationReader
	accountRepo portsrepo.GLAccountLookup
	ledger      portssvc.LedgerSvcFacade
	locks       lockGuard
}

// NewDocumentService creates the financial document lifecycle service.
func NewDocumentService(
	uow portsrepo.UnitOfWork,
	docRepo portsrepo.DocumentRepositoryFacade,
	orgRepo portsrepo.OrganizationReader,
	accountRepo portsrepo.GLAccountLookup,
	ledger portssvc.LedgerSvcFacade,
	options ...ServiceOption,
) portssvc.DocumentSvcFacade {
	opts := applyOptions(options)
	return &documentService{
		BaseService: BaseService{clock: opts.clock},
		uow:         uow,
		docRepo:     docRepo,
		orgRepo:     orgRepo,
		accountRepo: accountRepo,
		ledger:      ledger,
		locks:       opts.guard(),
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

func (s *documentService) GetDocument(ctx context.Context, documentID string) (*domain.FinancialDocument, error) {
	doc, err := s.docRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find document", slog.String("document_id", documentID))
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) ListDocuments(ctx context.Context, organizationID string, params dto.ListDocumentsParams) ([]domain.FinancialDocument, error) {
	docs, err := s.docRepo.ListDocuments(ctx, organizationID, portsrepo.DocumentListFilter{
		Type:   params.Type,
		Status: params.Status,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list documents", slog.String("organization_id", organizationID))
		return nil, err
	}
	if docs == nil {
		return []domain.FinancialDocument{}, nil
	}
	return docs, nil
}

func (s *documentService) CreateDocument(ctx context.Context, organizationID string, req dto.CreateDocumentRequest, userID string) (*domain.FinancialDocument, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown document type %q", apperrors.ErrValidation, req.Type)
	}
	if _, err := s.orgRepo.FindOrganizationByID(ctx, organizationID); err != nil {
		return nil, err
	}
	items, err := s.buildItems(ctx, organizationID, req.Items)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	doc := domain.FinancialDocument{
		DocumentID:               uuid.NewString(),
		Type:                     req.Type,
		LocationID:               req.LocationID,
		AccountingOrganizationID: organizationID,
		RecipientContactID:       req.RecipientContactID,
		Reference:                strings.TrimSpace(req.Reference),
		Date:                     req.Date.UTC(),
		DueAt:                    req.DueAt,
		Items:                    items,
		Statuses:                 []domain.StatusEntry{{Status: domain.StatusDraft, UserID: userID, CreatedAt: now}},
		Version:                  1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.docRepo.SaveDocument(ctx, doc); err != nil {
		s.LogError(ctx, err, "Failed to save document",
			slog.String("document_id", doc.DocumentID),
			slog.String("organization_id", organizationID))
		return nil, err
	}
	s.LogInfo(ctx, "Document created",
		slog.String("document_id", doc.DocumentID),
		slog.String("type", string(doc.Type)))
	return &doc, nil
}

func (s *documentService) UpdateItems(ctx context.Context, documentID string, req dto.UpdateDocumentItemsRequest, userID string) (*domain.FinancialDocument, error) {
	var updated *domain.FinancialDocument
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		doc, err := s.docRepo.FindDocumentForUpdate(ctx, documentID)
		if err != nil {
			return err
		}
		if err := ensureEditable(doc); err != nil {
			return err
		}
		if doc.Version != req.Version {
			return &apperrors.ConcurrentModificationError{Resource: "document", ID: documentID}
		}
		items, err := s.buildItems(ctx, doc.AccountingOrganizationID, req.Items)
		if err != nil {
			return err
		}
		if err := s.docRepo.ReplaceItems(ctx, documentID, items, req.Version, userID); err != nil {
			return err
		}
		doc.Items = items
		doc.Version++
		doc.LastUpdatedAt = s.Now()
		doc.LastUpdatedBy = userID
		updated = doc
		return nil
	})
	if err != nil {
		s.logRejection(ctx, err, "Failed to update document items", documentID)
		return nil, err
	}
	return updated, nil
}

func (s *documentService) RequestApproval(ctx context.Context, documentID string, approverID string, requesterID string) (*domain.FinancialDocument, error) {
	var updated *domain.FinancialDocument
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		doc, err := s.docRepo.FindDocumentForUpdate(ctx, documentID)
		if err != nil {
			return err
		}
		if doc.IsApproved() {
			return fmt.Errorf("%w: %s", apperrors.ErrAlreadyApproved, documentID)
		}
		if !doc.LatestStatus().CanTransitionTo(domain.StatusPendingApproval) {
			return fmt.Errorf("%w: %s to %s", apperrors.ErrInvalidStatusChange, doc.LatestStatus(), domain.StatusPendingApproval)
		}
		if len(doc.Items) == 0 {
			return fmt.Errorf("%w: document has no items", apperrors.ErrValidation)
		}

		entry := domain.StatusEntry{Status: domain.StatusPendingApproval, UserID: requesterID, CreatedAt: s.Now()}
		if err := s.docRepo.AppendStatus(ctx, documentID, entry); err != nil {
			return err
		}
		expected := doc.Version
		doc.ApproveRequest = &domain.ApproveRequest{RequesterID: requesterID, ApproverID: approverID}
		doc.LastUpdatedAt = entry.CreatedAt
		doc.LastUpdatedBy = requesterID
		if err := s.docRepo.UpdateDocumentState(ctx, *doc, expected); err != nil {
			return err
		}
		doc.Statuses = append(doc.Statuses, entry)
		doc.Version++
		updated = doc
		return nil
	})
	if err != nil {
		s.logRejection(ctx, err, "Failed to request document approval", documentID)
		return nil, err
	}
	return updated, nil
}

func (s *documentService) Approve(ctx context.Context, documentID string, approverID string) (*domain.FinancialDocument, error) {
	release, err := s.locks.acquire(ctx, "document:"+documentID)
	if err != nil {
		return nil, err
	}
	defer release()

	var approved *domain.FinancialDocument
	err = s.uow.WithinTx(ctx, func(ctx context.Context) error {
		doc, err := s.docRepo.FindDocumentForUpdate(ctx, documentID)
		if err != nil {
			return err
		}
		if doc.IsApproved() || doc.TransactionID != "" {
			return fmt.Errorf("%w: %s", apperrors.ErrAlreadyApproved, documentID)
		}
		if !doc.LatestStatus().CanTransitionTo(domain.StatusApproved) {
			return fmt.Errorf("%w: %s to %s", apperrors.ErrInvalidStatusChange, doc.LatestStatus(), domain.StatusApproved)
		}
		if doc.ApproveRequest != nil && doc.ApproveRequest.ApproverID != "" && doc.ApproveRequest.ApproverID != approverID {
			return fmt.Errorf("%w: document %s awaits approval by another user", apperrors.ErrForbidden, documentID)
		}

		org, err := s.orgRepo.FindOrganizationByID(ctx, doc.AccountingOrganizationID)
		if err != nil {
			return err
		}
		txn, err := s.postDocument(ctx, org, doc, approverID)
		if err != nil {
			return err
		}

		now := s.Now()
		entry := domain.StatusEntry{Status: domain.StatusApproved, UserID: approverID, CreatedAt: now}
		if err := s.docRepo.AppendStatus(ctx, documentID, entry); err != nil {
			return err
		}
		expected := doc.Version
		if doc.ApproveRequest == nil {
			doc.ApproveRequest = &domain.ApproveRequest{ApproverID: approverID}
		}
		doc.ApproveRequest.ApprovedAt = &now
		doc.TransactionID = txn.TransactionID
		doc.LastUpdatedAt = now
		doc.LastUpdatedBy = approverID
		if err := s.docRepo.UpdateDocumentState(ctx, *doc, expected); err != nil {
			return err
		}
		doc.Statuses = append(doc.Statuses, entry)
		doc.Version++
		approved = doc
		return nil
	})
	if err != nil {
		s.logRejection(ctx, err, "Failed to approve document", documentID)
		return nil, err
	}

	metrics.DocumentsApproved.WithLabelValues(string(approved.Type)).Inc()
	s.LogInfo(ctx, "Document approved",
		slog.String("document_id", documentID),
		slog.String("transaction_id", approved.TransactionID))
	return approved, nil
}

func (s *documentService) LockCreditNote(ctx context.Context, documentID string, userID string) (*domain.FinancialDocument, error) {
	var locked *domain.FinancialDocument
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		doc, err := s.docRepo.FindDocumentForUpdate(ctx, documentID)
		if err != nil {
			return err
		}
		if doc.Type != domain.DocumentCreditNote {
			return fmt.Errorf("%w: only credit notes can be locked", apperrors.ErrValidation)
		}
		if doc.IsLocked() {
			return fmt.Errorf("%w: %s", apperrors.ErrDocumentLocked, documentID)
		}
		if !doc.IsApproved() {
			return fmt.Errorf("%w: %s", apperrors.ErrDocumentNotApproved, documentID)
		}
		now := s.Now()
		expected := doc.Version
		doc.LockedAt = &now
		doc.LastUpdatedAt = now
		doc.LastUpdatedBy = userID
		if err := s.docRepo.UpdateDocumentState(ctx, *doc, expected); err != nil {
			return err
		}
		doc.Version++
		locked = doc
		return nil
	})
	if err != nil {
		s.logRejection(ctx, err, "Failed to lock credit note", documentID)
		return nil, err
	}
	return locked, nil
}

// postDocument stages the document's financial effect and commits it.
// Credit notes post the invoice pattern with decreases.
func (s *documentService) postDocument(ctx context.Context, org *domain.AccountingOrganization, doc *domain.FinancialDocument, userID string) (*domain.Transaction, error) {
	controlID, err := designatedAccount(org, doc.Type.ControlDesignation())
	if err != nil {
		return nil, err
	}
	taxID, err := designatedAccount(org, doc.Type.TaxDesignation())
	if err != nil {
		return nil, err
	}

	ids := []string{controlID, taxID}
	for _, item := range doc.Items {
		ids = append(ids, item.GLAccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	account := func(id string) (domain.GLAccount, error) {
		a, ok := accounts[id]
		if !ok {
			return domain.GLAccount{}, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, id)
		}
		return a, nil
	}

	builder := s.ledger.BeginTransaction(org.AccountingOrganizationID, userID).
		WithDescription(fmt.Sprintf("%s %s approved", doc.Type, doc.DocumentID)).
		WithPostedAt(doc.Date).
		WithSource(domain.SourceDocument)
	post := builder.Increase
	if doc.Type.PostsAsDecrease() {
		post = builder.Decrease
	}

	// Every side is posted in cents, and the control amount is their sum.
	amounts := doc.PostedAmounts()
	control, err := account(controlID)
	if err != nil {
		return nil, err
	}
	if err := post(control, amounts.Control); err != nil {
		return nil, err
	}
	for i, item := range doc.Items {
		subTotal := amounts.Items[i]
		if subTotal.IsZero() {
			continue
		}
		itemAccount, err := account(item.GLAccountID)
		if err != nil {
			return nil, err
		}
		if err := post(itemAccount, subTotal); err != nil {
			return nil, err
		}
	}
	if !amounts.Tax.IsZero() {
		taxAccount, err := account(taxID)
		if err != nil {
			return nil, err
		}
		if err := post(taxAccount, amounts.Tax); err != nil {
			return nil, err
		}
	}
	return builder.Commit(ctx)
}

// buildItems resolves each requested item against the organization's accounts
// and snapshots the tax rate.
func (s *documentService) buildItems(ctx context.Context, organizationID string, reqs []dto.DocumentItemRequest) ([]domain.DocumentItem, error) {
	ids := make([]string, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.GLAccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	rates := make(map[string]decimal.Decimal)
	items := make([]domain.DocumentItem, 0, len(reqs))
	for i, r := range reqs {
		account, ok := accounts[r.GLAccountID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, r.GLAccountID)
		}
		if account.AccountingOrganizationID != organizationID {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrOrganizationMismatch, r.GLAccountID)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrInactiveAccount, r.GLAccountID)
		}
		rate, ok := rates[r.TaxRateID]
		if !ok {
			taxRate, err := s.accountRepo.FindTaxRateByID(ctx, r.TaxRateID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, fmt.Errorf("%w: tax rate %s does not exist", apperrors.ErrValidation, r.TaxRateID)
				}
				return nil, err
			}
			rate = taxRate.Rate
			rates[r.TaxRateID] = rate
		}
		items = append(items, domain.DocumentItem{
			ItemID:          uuid.NewString(),
			GSCode:          r.GSCode,
			Description:     r.Description,
			GLAccountID:     r.GLAccountID,
			TaxRateID:       r.TaxRateID,
			TaxRate:         rate,
			UnitCost:        r.UnitCost,
			Quantity:        r.Quantity,
			DiscountPercent: r.DiscountPercent,
			MarkupPercent:   r.MarkupPercent,
			Position:        i + 1,
		})
	}
	return items, nil
}

func (s *documentService) logRejection(ctx context.Context, err error, msg string, documentID string) {
	if isCallerError(err) {
		s.LogWarn(ctx, err, msg, slog.String("document_id", documentID))
		return
	}
	s.LogError(ctx, err, msg, slog.String("document_id", documentID))
}

func ensureEditable(doc *domain.FinancialDocument) error {
	switch {
	case doc.IsLocked():
		return fmt.Errorf("%w: %s", apperrors.ErrDocumentLocked, doc.DocumentID)
	case doc.IsApproved():
		return fmt.Errorf("%w: %s", apperrors.ErrAlreadyApproved, doc.DocumentID)
	case doc.LatestStatus() != domain.StatusDraft:
		return fmt.Errorf("%w: items can only change while %s", apperrors.ErrInvalidStatusChange, domain.StatusDraft)
	}
	return nil
}

func designatedAccount(org *domain.AccountingOrganization, d domain.AccountDesignation) (string, error) {
	id := org.DesignatedAccountID(d)
	if id == "" {
		return "", &apperrors.MissingLedgerAccountError{
			OrganizationID: org.AccountingOrganizationID,
			Designation:    string(d),
		}
	}
	return id, nil
}

// isCallerError reports whether err is a rejection rather than a failure.
func isCallerError(err error) bool {
	return errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrBusinessRule) ||
		errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrConflict) ||
		errors.Is(err, apperrors.ErrForbidden)
}
