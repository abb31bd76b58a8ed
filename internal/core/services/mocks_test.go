package services_test

import (
	"context"
	"time"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockGLAccountRepository is a mock type for the GLAccountRepositoryFacade interface
type MockGLAccountRepository struct {
	mock.Mock
}

func (m *MockGLAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.GLAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLAccount), args.Error(1)
}

func (m *MockGLAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.GLAccount, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.GLAccount), args.Error(1)
}

func (m *MockGLAccountRepository) FindAccountsByOrganizationAndGroup(ctx context.Context, organizationID string, group domain.AccountTypeGroupCode) ([]domain.GLAccount, error) {
	args := m.Called(ctx, organizationID, group)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GLAccount), args.Error(1)
}

func (m *MockGLAccountRepository) ListAccountsByOrganization(ctx context.Context, organizationID string) ([]domain.GLAccount, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GLAccount), args.Error(1)
}

func (m *MockGLAccountRepository) FindAccountTypeByID(ctx context.Context, accountTypeID string) (*domain.AccountType, error) {
	args := m.Called(ctx, accountTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountType), args.Error(1)
}

func (m *MockGLAccountRepository) FindTaxRateByID(ctx context.Context, taxRateID string) (*domain.TaxRate, error) {
	args := m.Called(ctx, taxRateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxRate), args.Error(1)
}

func (m *MockGLAccountRepository) SaveAccount(ctx context.Context, account domain.GLAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockGLAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

// MockOrganizationRepository is a mock type for the OrganizationRepositoryFacade interface
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.AccountingOrganization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingOrganization), args.Error(1)
}

func (m *MockOrganizationRepository) SaveOrganization(ctx context.Context, org domain.AccountingOrganization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) UpdateOrganization(ctx context.Context, org domain.AccountingOrganization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

// MockTransactionStore is a mock type for the TransactionStore interface
type MockTransactionStore struct {
	mock.Mock
}

func (m *MockTransactionStore) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionStore) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionStore) HasReversal(ctx context.Context, transactionID string) (bool, error) {
	args := m.Called(ctx, transactionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionStore) ListRecordsByAccount(ctx context.Context, accountID string, filter domain.BalanceFilter, limit int, nextToken *string) ([]domain.AccountRecord, *string, error) {
	args := m.Called(ctx, accountID, filter, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.AccountRecord), next, args.Error(2)
}

// MockBalanceReader is a mock type for the BalanceReader interface
type MockBalanceReader struct {
	mock.Mock
}

func (m *MockBalanceReader) SumAccountRecords(ctx context.Context, accountID string, filter domain.BalanceFilter) (domain.AccountTotals, error) {
	args := m.Called(ctx, accountID, filter)
	return args.Get(0).(domain.AccountTotals), args.Error(1)
}

func (m *MockBalanceReader) SumRecordsByOrganization(ctx context.Context, organizationID string, from *time.Time, to time.Time) ([]domain.AccountTotals, error) {
	args := m.Called(ctx, organizationID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountTotals), args.Error(1)
}

// MockOutboxRepository is a mock type for the OutboxRepositoryFacade interface
type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) SaveEvent(ctx context.Context, event domain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockOutboxRepository) FetchPendingEvents(ctx context.Context, limit int) ([]domain.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OutboxEvent), args.Error(1)
}

func (m *MockOutboxRepository) MarkDispatched(ctx context.Context, eventIDs []string, at time.Time) error {
	args := m.Called(ctx, eventIDs, at)
	return args.Error(0)
}

// MockEventPublisher is a mock type for the EventPublisher interface
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockPeriodLockChecker is a mock type for the PeriodLockChecker interface
type MockPeriodLockChecker struct {
	mock.Mock
}

func (m *MockPeriodLockChecker) IsPeriodLocked(ctx context.Context, organizationID string, date time.Time) (bool, error) {
	args := m.Called(ctx, organizationID, date)
	return args.Bool(0), args.Error(1)
}

// MockLocker is a mock type for the Locker interface
type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	args := m.Called(ctx, key, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

// passthroughUnitOfWork runs fn on the caller's context.
type passthroughUnitOfWork struct {
	calls int
}

func (u *passthroughUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	u.calls++
	return fn(ctx)
}
