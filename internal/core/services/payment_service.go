package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/apperrors"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	portsrepo "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/repositories"
	portssvc "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/services"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/platform/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type paymentService struct {
	BaseService
	uow         portsrepo.UnitOfWork
	paymentRepo portsrepo.PaymentRepositoryFacade
	docRepo     portsrepo.DocumentRepositoryFacade
	orgRepo     portsrepo.OrganizationReader
	accountRepo portsrepo.GLAccountLookup
	ledger      portssvc.LedgerSvcFacade
	locks       lockGuard
}

// NewPaymentService creates the payment allocator.
func NewPaymentService(
	uow portsrepo.UnitOfWork,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	docRepo portsrepo.DocumentRepositoryFacade,
	orgRepo portsrepo.OrganizationReader,
	accountRepo portsrepo.GLAccountLookup,
	ledger portssvc.LedgerSvcFacade,
	options ...ServiceOption,
) portssvc.PaymentSvcFacade {
	opts := applyOptions(options)
	return &paymentService{
		BaseService: BaseService{clock: opts.clock},
		uow:         uow,
		paymentRepo: paymentRepo,
		docRepo:     docRepo,
		orgRepo:     orgRepo,
		accountRepo: accountRepo,
		ledger:      ledger,
		locks:       opts.guard(),
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) ApplyPayment(ctx context.Context, data domain.PaymentData, userID string) (*domain.Payment, error) {
	if err := validatePaymentData(data); err != nil {
		s.LogWarn(ctx, err, "Payment rejected", slog.String("organization_id", data.AccountingOrganizationID))
		return nil, err
	}

	invoiceIDs := make([]string, 0, len(data.Allocations))
	for _, a := range data.Allocations {
		invoiceIDs = append(invoiceIDs, a.InvoiceID)
	}
	// Invoices are always locked in id order so two payments sharing invoices cannot deadlock.
	sort.Strings(invoiceIDs)

	for _, id := range invoiceIDs {
		release, err := s.locks.acquire(ctx, "invoice:"+id)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	var payment *domain.Payment
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		org, err := s.orgRepo.FindOrganizationByID(ctx, data.AccountingOrganizationID)
		if err != nil {
			return err
		}
		allocations := make(map[string]decimal.Decimal, len(data.Allocations))
		for _, a := range data.Allocations {
			allocations[a.InvoiceID] = a.Amount
		}
		for _, id := range invoiceIDs {
			if err := s.checkInvoice(ctx, org.AccountingOrganizationID, id, allocations[id]); err != nil {
				return err
			}
		}

		bank, receivable, err := s.resolveAccounts(ctx, org, data)
		if err != nil {
			return err
		}
		builder := s.ledger.BeginTransaction(org.AccountingOrganizationID, userID).
			WithDescription(fmt.Sprintf("%s payment", data.Type)).
			WithPostedAt(data.PaidAt).
			WithSource(domain.SourcePayment)
		for _, a := range data.Allocations {
			if err := builder.Increase(bank, a.Amount); err != nil {
				return err
			}
			if err := builder.Decrease(receivable, a.Amount); err != nil {
				return err
			}
		}
		txn, err := builder.Commit(ctx)
		if err != nil {
			return err
		}

		p := newPayment(data, txn.TransactionID, userID, s.Now())
		if err := s.paymentRepo.SavePayment(ctx, p); err != nil {
			return err
		}
		payment = &p
		return nil
	})
	if err != nil {
		if isCallerError(err) {
			s.LogWarn(ctx, err, "Payment rejected", slog.String("organization_id", data.AccountingOrganizationID))
		} else {
			s.LogError(ctx, err, "Failed to apply payment", slog.String("organization_id", data.AccountingOrganizationID))
		}
		return nil, err
	}

	metrics.PaymentsApplied.WithLabelValues(string(payment.Type)).Inc()
	s.LogInfo(ctx, "Payment applied",
		slog.String("payment_id", payment.PaymentID),
		slog.String("transaction_id", payment.TransactionID),
		slog.Int("invoices", len(payment.InvoicePayments)))
	return payment, nil
}

func (s *paymentService) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find payment", slog.String("payment_id", paymentID))
		}
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) GetInvoiceSettlement(ctx context.Context, invoiceID string) (*domain.InvoiceSettlement, error) {
	doc, err := s.docRepo.FindDocumentByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if doc.Type != domain.DocumentInvoice {
		return nil, fmt.Errorf("%w: document %s is not an invoice", apperrors.ErrValidation, invoiceID)
	}
	paid, err := s.paymentRepo.SumPaidByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	forwarded, err := s.paymentRepo.SumForwardedByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	settlement := domain.NewInvoiceSettlement(invoiceID, doc.PayableTotal(), paid, forwarded)
	return &settlement, nil
}

// checkInvoice holds the invoice row lock for the rest of the unit of work and
// rejects an allocation larger than what is still owed.
func (s *paymentService) checkInvoice(ctx context.Context, organizationID, invoiceID string, amount decimal.Decimal) error {
	doc, err := s.docRepo.FindDocumentForUpdate(ctx, invoiceID)
	if err != nil {
		return err
	}
	if doc.Type != domain.DocumentInvoice {
		return fmt.Errorf("%w: document %s is not an invoice", apperrors.ErrValidation, invoiceID)
	}
	if doc.AccountingOrganizationID != organizationID {
		return fmt.Errorf("%w: invoice %s", apperrors.ErrOrganizationMismatch, invoiceID)
	}
	if !doc.IsApproved() {
		return fmt.Errorf("%w: invoice %s", apperrors.ErrDocumentNotApproved, invoiceID)
	}
	paid, err := s.paymentRepo.SumPaidByInvoice(ctx, invoiceID)
	if err != nil {
		return err
	}
	outstanding := doc.PayableTotal().Sub(paid)
	if amount.GreaterThan(outstanding) {
		return &apperrors.OverpaymentError{InvoiceID: invoiceID, Requested: amount, Outstanding: outstanding}
	}
	return nil
}

func (s *paymentService) resolveAccounts(ctx context.Context, org *domain.AccountingOrganization, data domain.PaymentData) (bank, receivable domain.GLAccount, err error) {
	bankID := data.BankAccountID
	if bankID == "" {
		if bankID, err = designatedAccount(org, domain.DesignationPaymentDetails); err != nil {
			return bank, receivable, err
		}
	}
	receivableID := data.ReceivableAccountID
	if receivableID == "" {
		if receivableID, err = designatedAccount(org, domain.DesignationReceivable); err != nil {
			return bank, receivable, err
		}
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, []string{bankID, receivableID})
	if err != nil {
		return bank, receivable, err
	}
	var ok bool
	if bank, ok = accounts[bankID]; !ok {
		return bank, receivable, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, bankID)
	}
	if receivable, ok = accounts[receivableID]; !ok {
		return bank, receivable, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, receivableID)
	}
	return bank, receivable, nil
}

func validatePaymentData(data domain.PaymentData) error {
	if !data.Type.Valid() {
		return fmt.Errorf("%w: unknown payment type %q", apperrors.ErrValidation, data.Type)
	}
	if !data.Amount.IsPositive() {
		return fmt.Errorf("%w: payment amount %s", apperrors.ErrInvalidAmount, data.Amount)
	}
	if !isCurrencyAmount(data.Amount) {
		return fmt.Errorf("%w: payment amount %s has more than %d decimal places", apperrors.ErrValidation, data.Amount, domain.CurrencyScale)
	}
	if len(data.Allocations) == 0 {
		return fmt.Errorf("%w: payment has no allocations", apperrors.ErrValidation)
	}

	shares := make(map[string]decimal.Decimal, len(data.Allocations))
	for _, a := range data.Allocations {
		if !a.Amount.IsPositive() {
			return fmt.Errorf("%w: allocation to invoice %s is %s", apperrors.ErrInvalidAmount, a.InvoiceID, a.Amount)
		}
		if !isCurrencyAmount(a.Amount) {
			return fmt.Errorf("%w: allocation to invoice %s has more than %d decimal places", apperrors.ErrValidation, a.InvoiceID, domain.CurrencyScale)
		}
		if _, dup := shares[a.InvoiceID]; dup {
			return fmt.Errorf("%w: invoice %s is allocated more than once", apperrors.ErrValidation, a.InvoiceID)
		}
		shares[a.InvoiceID] = a.Amount
	}
	if allocated := data.AllocatedTotal(); !allocated.Equal(data.Amount) {
		return &apperrors.AllocationMismatchError{PaymentAmount: data.Amount, Allocated: allocated}
	}

	if data.Forwarded != nil {
		forwarded := make(map[string]struct{}, len(data.Forwarded.Invoices))
		for _, f := range data.Forwarded.Invoices {
			if !f.Amount.IsPositive() {
				return fmt.Errorf("%w: forwarded amount for invoice %s is %s", apperrors.ErrInvalidAmount, f.InvoiceID, f.Amount)
			}
			if !isCurrencyAmount(f.Amount) {
				return fmt.Errorf("%w: forwarded amount for invoice %s has more than %d decimal places", apperrors.ErrValidation, f.InvoiceID, domain.CurrencyScale)
			}
			if _, dup := forwarded[f.InvoiceID]; dup {
				return fmt.Errorf("%w: invoice %s is forwarded more than once", apperrors.ErrValidation, f.InvoiceID)
			}
			forwarded[f.InvoiceID] = struct{}{}
			share, ok := shares[f.InvoiceID]
			if !ok || f.Amount.GreaterThan(share) {
				return fmt.Errorf("%w: invoice %s", apperrors.ErrForwardedExceedsShare, f.InvoiceID)
			}
		}
	}
	return nil
}

func newPayment(data domain.PaymentData, transactionID, userID string, now time.Time) domain.Payment {
	p := domain.Payment{
		PaymentID:                uuid.NewString(),
		AccountingOrganizationID: data.AccountingOrganizationID,
		Type:                     data.Type,
		TransactionID:            transactionID,
		UserID:                   userID,
		Amount:                   data.Amount,
		PaidAt:                   data.PaidAt.UTC(),
		ExternalReference:        data.ExternalReference,
		CreatedAt:                now,
	}
	isFP := data.IsForwarded()
	for _, a := range data.Allocations {
		p.InvoicePayments = append(p.InvoicePayments, domain.InvoicePayment{
			PaymentID: p.PaymentID,
			InvoiceID: a.InvoiceID,
			Amount:    a.Amount,
			IsFP:      isFP,
		})
	}
	if data.Forwarded != nil {
		fp := &domain.ForwardedPayment{
			ForwardedPaymentID:  uuid.NewString(),
			PaymentID:           p.PaymentID,
			RemittanceReference: data.Forwarded.RemittanceReference,
			TransferredAt:       data.Forwarded.TransferredAt.UTC(),
		}
		for _, f := range data.Forwarded.Invoices {
			fp.Invoices = append(fp.Invoices, domain.ForwardedPaymentInvoice{
				ForwardedPaymentID: fp.ForwardedPaymentID,
				InvoiceID:          f.InvoiceID,
				Amount:             f.Amount,
			})
		}
		p.ForwardedPayment = fp
	}
	return p
}

// isCurrencyAmount reports whether d has no more than domain.CurrencyScale decimal places.
func isCurrencyAmount(d decimal.Decimal) bool {
	return d.Equal(d.Round(domain.CurrencyScale))
}
