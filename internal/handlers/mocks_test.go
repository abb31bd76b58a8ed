package handlers_test

import (
	"context"
	"time"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	portssvc "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/services"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock GLAccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccount(ctx context.Context, accountID string) (*domain.GLAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLAccount), args.Error(1)
}
func (m *MockAccountService) FindByOrganizationAndType(ctx context.Context, organizationID string, group domain.AccountTypeGroupCode) ([]domain.GLAccount, error) {
	args := m.Called(ctx, organizationID, group)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GLAccount), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, organizationID string) ([]domain.GLAccount, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GLAccount), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.GLAccount, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLAccount), args.Error(1)
}
func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}
func (m *MockAccountService) IsDebitIncreasing(account domain.GLAccount) bool {
	return account.AccountType.Group.IncreaseActionIsDebit
}

func (m *MockAccountService) IncreasedBy(account domain.GLAccount, isDebit bool) bool {
	return m.IsDebitIncreasing(account) == isDebit
}

var _ portssvc.GLAccountSvcFacade = (*MockAccountService)(nil)

// --- Mock OrganizationService ---
type MockOrganizationService struct {
	mock.Mock
}

func (m *MockOrganizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, userID string) (*domain.AccountingOrganization, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingOrganization), args.Error(1)
}
func (m *MockOrganizationService) GetOrganization(ctx context.Context, organizationID string) (*domain.AccountingOrganization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingOrganization), args.Error(1)
}
func (m *MockOrganizationService) UpdateOrganization(ctx context.Context, organizationID string, req dto.UpdateOrganizationRequest, userID string) (*domain.AccountingOrganization, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingOrganization), args.Error(1)
}

var _ portssvc.OrganizationSvcFacade = (*MockOrganizationService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) BeginTransaction(organizationID string, userID string) portssvc.FinancialTransactionBuilder {
	args := m.Called(organizationID, userID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(portssvc.FinancialTransactionBuilder)
}
func (m *MockLedgerService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) PostManualTransaction(ctx context.Context, organizationID string, req dto.PostTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) ReverseTransaction(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock BalanceService ---
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) GetAccountBalance(ctx context.Context, accountID string, filter domain.BalanceFilter) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, filter)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockBalanceService) GetTrialBalance(ctx context.Context, organizationID string, asOf time.Time) (*domain.TrialBalanceReport, error) {
	args := m.Called(ctx, organizationID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalanceReport), args.Error(1)
}
func (m *MockBalanceService) GetAccountStatement(ctx context.Context, accountID string, filter domain.BalanceFilter, limit int, nextToken *string) (*dto.AccountStatementResponse, error) {
	args := m.Called(ctx, accountID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AccountStatementResponse), args.Error(1)
}

var _ portssvc.BalanceSvcFacade = (*MockBalanceService)(nil)

// --- Mock DocumentService ---
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) GetDocument(ctx context.Context, documentID string) (*domain.FinancialDocument, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialDocument), args.Error(1)
}
func (m *MockDocumentService) ListDocuments(ctx context.Context, organizationID string, params dto.ListDocumentsParams) ([]domain.FinancialDocument, error) {
	args := m.Called(ctx, organizationID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialDocument), args.Error(1)
}
func (m *MockDocumentService) CreateDocument(ctx context.Context, organizationID string, req dto.CreateDocumentRequest, userID string) (*domain.FinancialDocument, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialDocument), args.Error(1)
}
func (m *MockDocumentService) UpdateItems(ctx context.Context, documentID string, req dto.UpdateDocumentItemsRequest, userID string) (*domain.FinancialDocument, error) {
	args := m.Called(ctx, documentID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialDocument), args.Error(1)
}
func (m *MockDocumentService) RequestApproval(ctx context.Context, documentID string, approverID string, requesterID string) (*domain.FinancialDocument, error) {
	args := m.Called(ctx, documentID, approverID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialDocument), args.Error(1)
}
func (m *MockDocumentService) Approve(ctx context.Context, documentID string, approverID string) (*domain.FinancialDocument, error) {
	args := m.Called(ctx, documentID, approverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialDocument), args.Error(1)
}
func (m *MockDocumentService) LockCreditNote(ctx context.Context, documentID string, userID string) (*domain.FinancialDocument, error) {
	args := m.Called(ctx, documentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialDocument), args.Error(1)
}

var _ portssvc.DocumentSvcFacade = (*MockDocumentService)(nil)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) ApplyPayment(ctx context.Context, data domain.PaymentData, userID string) (*domain.Payment, error) {
	args := m.Called(ctx, data, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentService) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentService) GetInvoiceSettlement(ctx context.Context, invoiceID string) (*domain.InvoiceSettlement, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceSettlement), args.Error(1)
}

var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)
