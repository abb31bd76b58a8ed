package services

import (
	"context"
	"time"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/dto"
	"github.com/shopspring/decimal"
)

// FinancialTransactionBuilder stages postings for one organization and
// commits them as a single balanced Transaction. It is owned by one caller
// and is not safe for concurrent use.
type FinancialTransactionBuilder interface {
	// Increase grows the account's balance by amount, rounded to
	// domain.LedgerScale. The rounded amount must be > 0.
	Increase(account domain.GLAccount, amount decimal.Decimal) error

	// Decrease shrinks the account's balance by amount, rounded to
	// domain.LedgerScale. The rounded amount must be > 0.
	Decrease(account domain.GLAccount, amount decimal.Decimal) error

	WithDescription(description string) FinancialTransactionBuilder
	WithPostedAt(postedAt time.Time) FinancialTransactionBuilder

	// WithSource tags the workflow that owns the transaction. Defaults to domain.SourceManual.
	WithSource(source domain.TransactionSource) FinancialTransactionBuilder

	// Commit verifies debits equal credits and persists everything or nothing.
	Commit(ctx context.Context) (*domain.Transaction, error)
}

// LedgerSvcFacade is the transaction ledger.
type LedgerSvcFacade interface {
	BeginTransaction(organizationID string, userID string) FinancialTransactionBuilder

	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// PostManualTransaction stages and commits the requested lines.
	PostManualTransaction(ctx context.Context, organizationID string, req dto.PostTransactionRequest, userID string) (*domain.Transaction, error)

	// ReverseTransaction commits a new transaction that offsets every record
	// of the original. The original is never modified. Only manual
	// transactions can be reversed, and each at most once.
	ReverseTransaction(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error)
}

// PeriodLockChecker decides whether postings dated date are frozen.
type PeriodLockChecker interface {
	IsPeriodLocked(ctx context.Context, organizationID string, date time.Time) (bool, error)
}

// BalanceSvcFacade computes balances on demand from transaction records.
type BalanceSvcFacade interface {
	// GetAccountBalance returns the signed balance; zero when nothing matches.
	GetAccountBalance(ctx context.Context, accountID string, filter domain.BalanceFilter) (decimal.Decimal, error)

	GetTrialBalance(ctx context.Context, organizationID string, asOf time.Time) (*domain.TrialBalanceReport, error)

	GetAccountStatement(ctx context.Context, accountID string, filter domain.BalanceFilter, limit int, nextToken *string) (*dto.AccountStatementResponse, error)
}
