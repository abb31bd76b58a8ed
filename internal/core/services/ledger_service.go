package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/apperrors"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	portsrepo "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/repositories"
	portssvc "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/services"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/dto"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/platform/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ledgerService struct {
	BaseService
	uow         portsrepo.UnitOfWork
	accountRepo portsrepo.GLAccountLookup
	txnRepo     portsrepo.TransactionStore
	outboxRepo  portsrepo.OutboxWriter
	polarity    portssvc.PolarityResolver
	periods     portssvc.PeriodLockChecker
}

// NewLedgerService creates the transaction ledger. periods may be nil, in
// which case no period is ever locked.
func NewLedgerService(
	uow portsrepo.UnitOfWork,
	accountRepo portsrepo.GLAccountLookup,
	txnRepo portsrepo.TransactionStore,
	outboxRepo portsrepo.OutboxWriter,
	polarity portssvc.PolarityResolver,
	periods portssvc.PeriodLockChecker,
	options ...ServiceOption,
) portssvc.LedgerSvcFacade {
	opts := applyOptions(options)
	return &ledgerService{
		BaseService: BaseService{clock: opts.clock},
		uow:         uow,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		outboxRepo:  outboxRepo,
		polarity:    polarity,
		periods:     periods,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) BeginTransaction(organizationID string, userID string) portssvc.FinancialTransactionBuilder {
	return &financialTransaction{
		ledger:         s,
		organizationID: organizationID,
		userID:         userID,
		source:         domain.SourceManual,
	}
}

func (s *ledgerService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

func (s *ledgerService) PostManualTransaction(ctx context.Context, organizationID string, req dto.PostTransactionRequest, userID string) (*domain.Transaction, error) {
	ids := make([]string, 0, len(req.Lines))
	for _, line := range req.Lines {
		ids = append(ids, line.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	builder := s.BeginTransaction(organizationID, userID).WithDescription(req.Description)
	if req.PostedAt != nil {
		builder = builder.WithPostedAt(*req.PostedAt)
	}
	for _, line := range req.Lines {
		account, ok := accounts[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, line.AccountID)
		}
		if line.Action == dto.ActionDecrease {
			err = builder.Decrease(account, line.Amount)
		} else {
			err = builder.Increase(account, line.Amount)
		}
		if err != nil {
			return nil, err
		}
	}
	return builder.Commit(ctx)
}

func (s *ledgerService) ReverseTransaction(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	original, err := s.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	// Document and payment postings are undone through their own workflow.
	if original.Source != domain.SourceManual {
		return nil, fmt.Errorf("%w: transaction %s has source %s", apperrors.ErrNotReversible, transactionID, original.Source)
	}
	reversed, err := s.txnRepo.HasReversal(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if reversed {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAlreadyReversed, transactionID)
	}

	ids := make([]string, 0, len(original.Records))
	for _, r := range original.Records {
		ids = append(ids, r.GLAccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	builder := &financialTransaction{
		ledger:         s,
		organizationID: original.AccountingOrganizationID,
		userID:         userID,
		description:    fmt.Sprintf("Reversal of transaction %s", original.TransactionID),
		source:         domain.SourceReversal,
		reverses:       &original.TransactionID,
	}
	for _, r := range original.Records {
		account, ok := accounts[r.GLAccountID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, r.GLAccountID)
		}
		if s.polarity.IncreasedBy(account, r.IsDebit) {
			err = builder.Decrease(account, r.Amount)
		} else {
			err = builder.Increase(account, r.Amount)
		}
		if err != nil {
			return nil, err
		}
	}

	reversal, err := builder.Commit(ctx)
	if err != nil {
		// Lost a race with a concurrent reversal of the same transaction.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAlreadyReversed, transactionID)
		}
		return nil, err
	}
	s.LogInfo(ctx, "Transaction reversed",
		slog.String("transaction_id", transactionID),
		slog.String("reversal_id", reversal.TransactionID))
	return reversal, nil
}

// financialTransaction stages records for one organization until Commit.
type financialTransaction struct {
	ledger         *ledgerService
	organizationID string
	userID         string
	description    string
	source         domain.TransactionSource
	reverses       *string
	postedAt       *time.Time
	records        []domain.TransactionRecord
	committed      bool
}

var _ portssvc.FinancialTransactionBuilder = (*financialTransaction)(nil)

func (f *financialTransaction) Increase(account domain.GLAccount, amount decimal.Decimal) error {
	return f.stage(account, amount, false)
}

func (f *financialTransaction) Decrease(account domain.GLAccount, amount decimal.Decimal) error {
	return f.stage(account, amount, true)
}

func (f *financialTransaction) WithDescription(description string) portssvc.FinancialTransactionBuilder {
	f.description = description
	return f
}

func (f *financialTransaction) WithPostedAt(postedAt time.Time) portssvc.FinancialTransactionBuilder {
	t := postedAt.UTC()
	f.postedAt = &t
	return f
}

func (f *financialTransaction) WithSource(source domain.TransactionSource) portssvc.FinancialTransactionBuilder {
	f.source = source
	return f
}

// stage rounds amount to the stored scale first, so the balance check in
// Commit sees exactly the values that are persisted.
func (f *financialTransaction) stage(account domain.GLAccount, amount decimal.Decimal, isDecrease bool) error {
	if f.committed {
		return apperrors.ErrTransactionCommitted
	}
	amount = domain.RoundToLedgerScale(amount)
	if !amount.IsPositive() {
		return fmt.Errorf("%w: got %s for account %s", apperrors.ErrInvalidAmount, amount, account.AccountID)
	}
	if account.AccountingOrganizationID != f.organizationID {
		return fmt.Errorf("%w: account %s", apperrors.ErrOrganizationMismatch, account.AccountID)
	}
	f.records = append(f.records, domain.TransactionRecord{
		GLAccountID: account.AccountID,
		Amount:      amount,
		IsDebit:     f.ledger.polarity.IsDebitIncreasing(account) != isDecrease,
	})
	return nil
}

func (f *financialTransaction) Commit(ctx context.Context) (*domain.Transaction, error) {
	s := f.ledger
	if f.committed {
		return nil, apperrors.ErrTransactionCommitted
	}
	if len(f.records) == 0 {
		return nil, f.reject(ctx, "empty", apperrors.ErrEmptyTransaction)
	}
	if err := f.verifyAccounts(ctx); err != nil {
		return nil, err
	}

	debits, credits := domain.SumRecords(f.records)
	if !debits.Equal(credits) {
		return nil, f.reject(ctx, "unbalanced", &apperrors.UnbalancedTransactionError{Debits: debits, Credits: credits})
	}

	now := s.Now()
	postedAt := now
	if f.postedAt != nil {
		postedAt = *f.postedAt
	}
	if s.periods != nil {
		locked, err := s.periods.IsPeriodLocked(ctx, f.organizationID, postedAt)
		if err != nil {
			return nil, err
		}
		if locked {
			return nil, f.reject(ctx, "period_locked",
				fmt.Errorf("%w: cannot post on %s", apperrors.ErrPeriodLocked, postedAt.Format(time.DateOnly)))
		}
	}

	txn := domain.Transaction{
		TransactionID:            uuid.NewString(),
		AccountingOrganizationID: f.organizationID,
		Description:              f.description,
		Source:                   f.source,
		ReversesTransactionID:    f.reverses,
		PostedAt:                 postedAt,
		CreatedAt:                now,
		CreatedBy:                f.userID,
		Records:                  make([]domain.TransactionRecord, len(f.records)),
	}
	for i, r := range f.records {
		r.TransactionRecordID = uuid.NewString()
		r.TransactionID = txn.TransactionID
		txn.Records[i] = r
	}

	event, err := committedEvent(txn)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
			return err
		}
		return s.outboxRepo.SaveEvent(ctx, event)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to persist transaction",
			slog.String("organization_id", f.organizationID),
			slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	f.committed = true
	metrics.TransactionsCommitted.Inc()
	s.LogInfo(ctx, "Transaction committed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("organization_id", f.organizationID),
		slog.String("amount", debits.String()),
		slog.Int("records", len(txn.Records)))
	return &txn, nil
}

// verifyAccounts re-reads every staged account so that a deactivation made
// after staging is still honoured.
func (f *financialTransaction) verifyAccounts(ctx context.Context) error {
	ids := make([]string, 0, len(f.records))
	for _, r := range f.records {
		ids = append(ids, r.GLAccountID)
	}
	accounts, err := f.ledger.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		account, ok := accounts[id]
		switch {
		case !ok:
			return f.reject(ctx, "account_not_found", fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, id))
		case account.AccountingOrganizationID != f.organizationID:
			return f.reject(ctx, "organization_mismatch", fmt.Errorf("%w: account %s", apperrors.ErrOrganizationMismatch, id))
		case !account.IsActive:
			return f.reject(ctx, "inactive_account", fmt.Errorf("%w: %s", apperrors.ErrInactiveAccount, id))
		}
	}
	return nil
}

func (f *financialTransaction) reject(ctx context.Context, reason string, err error) error {
	metrics.TransactionsRejected.WithLabelValues(reason).Inc()
	f.ledger.LogWarn(ctx, err, "Transaction rejected", slog.String("organization_id", f.organizationID))
	return err
}

func committedEvent(txn domain.Transaction) (domain.OutboxEvent, error) {
	seen := make(map[string]struct{}, len(txn.Records))
	accountIDs := make([]string, 0, len(txn.Records))
	for _, r := range txn.Records {
		if _, ok := seen[r.GLAccountID]; ok {
			continue
		}
		seen[r.GLAccountID] = struct{}{}
		accountIDs = append(accountIDs, r.GLAccountID)
	}
	sort.Strings(accountIDs)

	payload, err := json.Marshal(domain.TransactionCommitted{
		TransactionID:            txn.TransactionID,
		AccountingOrganizationID: txn.AccountingOrganizationID,
		AccountIDs:               accountIDs,
		PostedAt:                 txn.PostedAt,
	})
	if err != nil {
		return domain.OutboxEvent{}, fmt.Errorf("failed to encode committed transaction event: %w", err)
	}
	return domain.OutboxEvent{
		EventID:     uuid.NewString(),
		EventType:   domain.EventTransactionCommitted,
		AggregateID: txn.TransactionID,
		Payload:     payload,
		CreatedAt:   txn.CreatedAt,
	}, nil
}
