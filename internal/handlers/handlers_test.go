package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/apperrors"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	portssvc "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/services"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/dto"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/handlers"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/platform/auth"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type HandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	cfg          *config.Config
	accounts     *MockAccountService
	organization *MockOrganizationService
	ledger       *MockLedgerService
	balances     *MockBalanceService
	documents    *MockDocumentService
	payments     *MockPaymentService
	userID       string
}

func (suite *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())
}

func (suite *HandlerTestSuite) SetupTest() {
	suite.cfg = &config.Config{
		JWTSecret:    "test-secret-key-that-is-long-enough",
		JWTIssuer:    "ledger-test",
		IsProduction: true,
	}
	suite.accounts = new(MockAccountService)
	suite.organization = new(MockOrganizationService)
	suite.ledger = new(MockLedgerService)
	suite.balances = new(MockBalanceService)
	suite.documents = new(MockDocumentService)
	suite.payments = new(MockPaymentService)
	suite.userID = uuid.NewString()

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{
		Account:      suite.accounts,
		Organization: suite.organization,
		Ledger:       suite.ledger,
		Balance:      suite.balances,
		Document:     suite.documents,
		Payment:      suite.payments,
	})
}

// generateTestToken creates a signed JWT for userID.
func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	signed, err := auth.SignAccessToken(userID, suite.cfg.JWTSecret, suite.cfg.JWTIssuer, time.Hour, time.Now())
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) errorBody(w *httptest.ResponseRecorder) string {
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func sampleAccount(orgID string) *domain.GLAccount {
	return &domain.GLAccount{
		AccountID:                uuid.NewString(),
		AccountingOrganizationID: orgID,
		AccountType: domain.AccountType{
			AccountTypeID: uuid.NewString(),
			Name:          "Bank",
			Group:         domain.AccountTypeGroup{Code: domain.GroupAsset, Name: "Asset", IncreaseActionIsDebit: true},
		},
		Code:     "1000",
		Name:     "Operating account",
		IsActive: true,
	}
}

// --- Routing and auth ---

func (suite *HandlerTestSuite) TestHealthIsPublic() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestMetricsIsPublic() {
	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestAPIRequiresToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.accounts.AssertNotCalled(suite.T(), "GetAccount", mock.Anything, mock.Anything)
}

// --- Organizations ---

func (suite *HandlerTestSuite) TestCreateOrganization_Success() {
	req := dto.CreateOrganizationRequest{ContactID: uuid.NewString(), LocationID: uuid.NewString(), LockDayOfMonth: 10}
	org := &domain.AccountingOrganization{AccountingOrganizationID: uuid.NewString(), ContactID: req.ContactID, LocationID: req.LocationID, LockDayOfMonth: 10, IsActive: true}
	suite.organization.On("CreateOrganization", mock.Anything, req, suite.userID).Return(org, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/organizations", req)

	suite.Equal(http.StatusCreated, w.Code)
	var got domain.AccountingOrganization
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(org.AccountingOrganizationID, got.AccountingOrganizationID)
	suite.organization.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateOrganization_LockDayOutOfRange() {
	w := suite.do(http.MethodPost, "/api/v1/organizations", dto.CreateOrganizationRequest{
		ContactID: uuid.NewString(), LocationID: uuid.NewString(), LockDayOfMonth: 31,
	})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.organization.AssertNotCalled(suite.T(), "CreateOrganization", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateOrganization_DuplicateLocation() {
	req := dto.CreateOrganizationRequest{ContactID: uuid.NewString(), LocationID: uuid.NewString()}
	suite.organization.On("CreateOrganization", mock.Anything, req, suite.userID).
		Return(nil, fmt.Errorf("%w: organization for location %s", apperrors.ErrDuplicate, req.LocationID)).Once()

	w := suite.do(http.MethodPost, "/api/v1/organizations", req)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateOrganization_ForeignAccount() {
	orgID := uuid.NewString()
	accountID := uuid.NewString()
	req := dto.UpdateOrganizationRequest{ReceivableAccountID: &accountID}
	suite.organization.On("UpdateOrganization", mock.Anything, orgID, req, suite.userID).
		Return(nil, apperrors.ErrOrganizationMismatch).Once()

	w := suite.do(http.MethodPatch, "/api/v1/organizations/"+orgID, req)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.errorBody(w), "different accounting organization")
}

// --- Accounts ---

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	orgID := uuid.NewString()
	account := sampleAccount(orgID)
	req := dto.CreateAccountRequest{AccountTypeID: account.AccountType.AccountTypeID, Code: "1000", Name: "Operating account", IsBankAccount: true}
	suite.accounts.On("CreateAccount", mock.Anything, orgID, req, suite.userID).Return(account, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/organizations/"+orgID+"/accounts", req)

	suite.Equal(http.StatusCreated, w.Code)
	var got dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(account.AccountID, got.AccountID)
	suite.Equal(domain.GroupAsset, got.Group)
	suite.True(got.IncreaseActionIsDebit)
	suite.accounts.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateAccount_MissingName() {
	w := suite.do(http.MethodPost, "/api/v1/organizations/"+uuid.NewString()+"/accounts", dto.CreateAccountRequest{AccountTypeID: uuid.NewString()})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.accounts.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()
	suite.accounts.On("GetAccount", mock.Anything, accountID).
		Return(nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/"+accountID, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListAccounts_ByGroup() {
	orgID := uuid.NewString()
	suite.accounts.On("FindByOrganizationAndType", mock.Anything, orgID, domain.GroupAsset).
		Return([]domain.GLAccount{*sampleAccount(orgID)}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/organizations/"+orgID+"/accounts?group=ASSET", nil)

	suite.Equal(http.StatusOK, w.Code)
	var got []dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Len(got, 1)
	suite.accounts.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestListAccounts_UnknownGroup() {
	w := suite.do(http.MethodGet, "/api/v1/organizations/"+uuid.NewString()+"/accounts?group=EXOTIC", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestDeactivateAccount() {
	accountID := uuid.NewString()
	suite.accounts.On("DeactivateAccount", mock.Anything, accountID, suite.userID).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/accounts/"+accountID, nil)
	suite.Equal(http.StatusNoContent, w.Code)
	suite.accounts.AssertExpectations(suite.T())
}

// --- Balances ---

func (suite *HandlerTestSuite) TestGetAccountBalance_DateWindow() {
	accountID := uuid.NewString()
	suite.balances.On("GetAccountBalance", mock.Anything, accountID, mock.MatchedBy(func(f domain.BalanceFilter) bool {
		return f.DateFrom != nil && f.DateFrom.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) &&
			f.DateTo != nil && f.DateTo.Day() == 31 && f.DateTo.Hour() == 23
	})).Return(decimal.RequireFromString("150.25"), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/"+accountID+"/balance?dateFrom=2024-01-01&dateTo=2024-01-31", nil)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.AccountBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.True(got.Balance.Equal(decimal.RequireFromString("150.25")))
	suite.balances.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetAccountBalance_BadDate() {
	w := suite.do(http.MethodGet, "/api/v1/accounts/"+uuid.NewString()+"/balance?dateFrom=01/01/2024", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetAccountStatement_PassesToken() {
	accountID := uuid.NewString()
	token := "opaque"
	resp := &dto.AccountStatementResponse{AccountID: accountID, Lines: []dto.StatementLineResponse{}}
	suite.balances.On("GetAccountStatement", mock.Anything, accountID, domain.BalanceFilter{}, 5,
		mock.MatchedBy(func(t *string) bool { return t != nil && *t == token })).Return(resp, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/"+accountID+"/statement?limit=5&nextToken="+token, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.balances.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetTrialBalance_AsOfEndOfDay() {
	orgID := uuid.NewString()
	report := &domain.TrialBalanceReport{AccountingOrganizationID: orgID, TotalDebit: decimal.NewFromInt(10), TotalCredit: decimal.NewFromInt(10)}
	suite.balances.On("GetTrialBalance", mock.Anything, orgID, mock.MatchedBy(func(asOf time.Time) bool {
		return asOf.Year() == 2024 && asOf.Month() == time.June && asOf.Day() == 30 && asOf.Hour() == 23
	})).Return(report, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/organizations/"+orgID+"/trial-balance?asOf=2024-06-30", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.balances.AssertExpectations(suite.T())
}

// --- Transactions ---

func (suite *HandlerTestSuite) postingRequest(amount string) map[string]any {
	return map[string]any{
		"description": "Owner contribution",
		"lines": []map[string]any{
			{"accountID": uuid.NewString(), "amount": amount, "action": "increase"},
			{"accountID": uuid.NewString(), "amount": amount, "action": "increase"},
		},
	}
}

func (suite *HandlerTestSuite) TestPostTransaction_Success() {
	orgID := uuid.NewString()
	txn := &domain.Transaction{TransactionID: uuid.NewString(), AccountingOrganizationID: orgID}
	suite.ledger.On("PostManualTransaction", mock.Anything, orgID, mock.MatchedBy(func(r dto.PostTransactionRequest) bool {
		return len(r.Lines) == 2 && r.Lines[0].Amount.Equal(decimal.NewFromInt(100))
	}), suite.userID).Return(txn, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/organizations/"+orgID+"/transactions", suite.postingRequest("100"))

	suite.Equal(http.StatusCreated, w.Code)
	var got dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(txn.TransactionID, got.TransactionID)
}

func (suite *HandlerTestSuite) TestPostTransaction_ZeroAmountRejectedAtBinding() {
	w := suite.do(http.MethodPost, "/api/v1/organizations/"+uuid.NewString()+"/transactions", suite.postingRequest("0"))
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.ledger.AssertNotCalled(suite.T(), "PostManualTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestPostTransaction_Unbalanced() {
	orgID := uuid.NewString()
	unbalanced := &apperrors.UnbalancedTransactionError{Debits: decimal.NewFromInt(100), Credits: decimal.NewFromInt(90)}
	suite.ledger.On("PostManualTransaction", mock.Anything, orgID, mock.Anything, suite.userID).Return(nil, unbalanced).Once()

	w := suite.do(http.MethodPost, "/api/v1/organizations/"+orgID+"/transactions", suite.postingRequest("100"))
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlerTestSuite) TestPostTransaction_PeriodLocked() {
	orgID := uuid.NewString()
	suite.ledger.On("PostManualTransaction", mock.Anything, orgID, mock.Anything, suite.userID).
		Return(nil, apperrors.ErrPeriodLocked).Once()

	w := suite.do(http.MethodPost, "/api/v1/organizations/"+orgID+"/transactions", suite.postingRequest("100"))
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlerTestSuite) TestReverseTransaction() {
	originalID := uuid.NewString()
	reversal := &domain.Transaction{TransactionID: uuid.NewString()}
	suite.ledger.On("ReverseTransaction", mock.Anything, originalID, suite.userID).Return(reversal, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions/"+originalID+"/reverse", nil)
	suite.Equal(http.StatusCreated, w.Code)
	suite.ledger.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestReverseTransaction_AlreadyReversed() {
	originalID := uuid.NewString()
	suite.ledger.On("ReverseTransaction", mock.Anything, originalID, suite.userID).
		Return(nil, apperrors.ErrAlreadyReversed).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions/"+originalID+"/reverse", nil)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.ledger.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetTransaction_InternalErrorIsNotLeaked() {
	txnID := uuid.NewString()
	suite.ledger.On("GetTransaction", mock.Anything, txnID).
		Return(nil, errors.New("pq: relation transactions does not exist")).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions/"+txnID, nil)
	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to retrieve transaction", suite.errorBody(w))
}

// --- Documents ---

func (suite *HandlerTestSuite) TestCreateDocument_DiscountOutOfRange() {
	body := map[string]any{
		"type":               "INVOICE",
		"locationID":         uuid.NewString(),
		"recipientContactID": uuid.NewString(),
		"date":               time.Now().UTC().Format(time.RFC3339),
		"items": []map[string]any{{
			"glAccountID":     uuid.NewString(),
			"taxRateID":       uuid.NewString(),
			"unitCost":        "10",
			"quantity":        "1",
			"discountPercent": "150",
		}},
	}
	w := suite.do(http.MethodPost, "/api/v1/organizations/"+uuid.NewString()+"/documents", body)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.documents.AssertNotCalled(suite.T(), "CreateDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateDocument_Success() {
	orgID := uuid.NewString()
	doc := &domain.FinancialDocument{
		DocumentID:               uuid.NewString(),
		Type:                     domain.DocumentInvoice,
		AccountingOrganizationID: orgID,
		Items: []domain.DocumentItem{{
			UnitCost: decimal.NewFromInt(100), Quantity: decimal.NewFromInt(2),
			DiscountPercent: decimal.NewFromInt(10), TaxRate: decimal.RequireFromString("0.1"),
		}},
	}
	suite.documents.On("CreateDocument", mock.Anything, orgID, mock.MatchedBy(func(r dto.CreateDocumentRequest) bool {
		return r.Type == domain.DocumentInvoice && len(r.Items) == 1
	}), suite.userID).Return(doc, nil).Once()

	body := map[string]any{
		"type":               "INVOICE",
		"locationID":         uuid.NewString(),
		"recipientContactID": uuid.NewString(),
		"date":               time.Now().UTC().Format(time.RFC3339),
		"items": []map[string]any{{
			"glAccountID": uuid.NewString(), "taxRateID": uuid.NewString(),
			"unitCost": "100", "quantity": "2", "discountPercent": "10",
		}},
	}
	w := suite.do(http.MethodPost, "/api/v1/organizations/"+orgID+"/documents", body)

	suite.Equal(http.StatusCreated, w.Code)
	var got dto.DocumentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(domain.StatusDraft, got.Status)
	suite.True(got.SubTotal.Equal(decimal.NewFromInt(180)), got.SubTotal.String())
	suite.True(got.TotalAmount.Equal(decimal.NewFromInt(198)), got.TotalAmount.String())
}

func (suite *HandlerTestSuite) TestListDocuments_Filters() {
	orgID := uuid.NewString()
	suite.documents.On("ListDocuments", mock.Anything, orgID, dto.ListDocumentsParams{
		Type: domain.DocumentInvoice, Status: domain.StatusApproved, Limit: 20, Offset: 0,
	}).Return([]domain.FinancialDocument{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/organizations/"+orgID+"/documents?type=INVOICE&status=APPROVED", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.documents.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestRequestApproval_MissingApprover() {
	w := suite.do(http.MethodPost, "/api/v1/documents/"+uuid.NewString()+"/request-approval", map[string]string{})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestRequestApproval_UsesCallerAsRequester() {
	docID := uuid.NewString()
	approverID := uuid.NewString()
	doc := &domain.FinancialDocument{DocumentID: docID, Type: domain.DocumentInvoice}
	suite.documents.On("RequestApproval", mock.Anything, docID, approverID, suite.userID).Return(doc, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/documents/"+docID+"/request-approval", dto.RequestApprovalRequest{ApproverID: approverID})
	suite.Equal(http.StatusOK, w.Code)
	suite.documents.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestApprove_ErrorStatuses() {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"wrong approver", fmt.Errorf("%w: approver mismatch", apperrors.ErrForbidden), http.StatusForbidden},
		{"already approved", apperrors.ErrAlreadyApproved, http.StatusUnprocessableEntity},
		{"concurrent approval", &apperrors.ConcurrentModificationError{Resource: "document", ID: "x"}, http.StatusConflict},
		{"missing ledger account", &apperrors.MissingLedgerAccountError{Designation: "tax payable"}, http.StatusUnprocessableEntity},
		{"invalid transition", apperrors.ErrInvalidStatusChange, http.StatusBadRequest},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			docID := uuid.NewString()
			suite.documents.On("Approve", mock.Anything, docID, suite.userID).Return(nil, tc.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/documents/"+docID+"/approve", nil)
			suite.Equal(tc.status, w.Code)
		})
	}
}

func (suite *HandlerTestSuite) TestUpdateItems_StaleVersion() {
	docID := uuid.NewString()
	suite.documents.On("UpdateItems", mock.Anything, docID, mock.Anything, suite.userID).
		Return(nil, &apperrors.ConcurrentModificationError{Resource: "document", ID: docID}).Once()

	w := suite.do(http.MethodPut, "/api/v1/documents/"+docID+"/items", map[string]any{"version": 3, "items": []any{}})
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestLockCreditNote() {
	docID := uuid.NewString()
	now := time.Now().UTC()
	doc := &domain.FinancialDocument{DocumentID: docID, Type: domain.DocumentCreditNote, LockedAt: &now}
	suite.documents.On("LockCreditNote", mock.Anything, docID, suite.userID).Return(doc, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/documents/"+docID+"/lock", nil)
	suite.Equal(http.StatusOK, w.Code)
	var got dto.DocumentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.NotNil(got.LockedAt)
}

// --- Payments ---

func (suite *HandlerTestSuite) TestApplyPayment_Success() {
	orgID := uuid.NewString()
	invoiceID := uuid.NewString()
	payment := &domain.Payment{PaymentID: uuid.NewString(), AccountingOrganizationID: orgID, Type: domain.PaymentCash, Amount: decimal.NewFromInt(50)}
	suite.payments.On("ApplyPayment", mock.Anything, mock.MatchedBy(func(d domain.PaymentData) bool {
		return d.AccountingOrganizationID == orgID && d.Type == domain.PaymentCash &&
			len(d.Allocations) == 1 && d.Allocations[0].InvoiceID == invoiceID &&
			d.Amount.Equal(decimal.NewFromInt(50)) && d.Forwarded == nil
	}), suite.userID).Return(payment, nil).Once()

	body := map[string]any{
		"type":        "CASH",
		"amount":      "50",
		"paidAt":      time.Now().UTC().Format(time.RFC3339),
		"allocations": []map[string]any{{"invoiceID": invoiceID, "amount": "50"}},
	}
	w := suite.do(http.MethodPost, "/api/v1/organizations/"+orgID+"/payments", body)

	suite.Equal(http.StatusCreated, w.Code)
	suite.payments.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestApplyPayment_Overpayment() {
	orgID := uuid.NewString()
	invoiceID := uuid.NewString()
	overpaid := &apperrors.OverpaymentError{InvoiceID: invoiceID, Requested: decimal.NewFromInt(120), Outstanding: decimal.NewFromInt(100)}
	suite.payments.On("ApplyPayment", mock.Anything, mock.Anything, suite.userID).Return(nil, overpaid).Once()

	body := map[string]any{
		"type":        "DIRECT_DEPOSIT",
		"amount":      "120",
		"paidAt":      time.Now().UTC().Format(time.RFC3339),
		"allocations": []map[string]any{{"invoiceID": invoiceID, "amount": "120"}},
	}
	w := suite.do(http.MethodPost, "/api/v1/organizations/"+orgID+"/payments", body)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlerTestSuite) TestApplyPayment_UnknownType() {
	body := map[string]any{
		"type":        "CHEQUE",
		"amount":      "10",
		"paidAt":      time.Now().UTC().Format(time.RFC3339),
		"allocations": []map[string]any{{"invoiceID": uuid.NewString(), "amount": "10"}},
	}
	w := suite.do(http.MethodPost, "/api/v1/organizations/"+uuid.NewString()+"/payments", body)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetInvoiceSettlement() {
	invoiceID := uuid.NewString()
	settlement := domain.NewInvoiceSettlement(invoiceID, decimal.NewFromInt(110), decimal.NewFromInt(60), decimal.NewFromInt(20))
	suite.payments.On("GetInvoiceSettlement", mock.Anything, invoiceID).Return(&settlement, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/invoices/"+invoiceID+"/settlement", nil)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.SettlementResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.True(got.Recognized.Equal(decimal.NewFromInt(40)))
	suite.True(got.Outstanding.Equal(decimal.NewFromInt(50)))
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
