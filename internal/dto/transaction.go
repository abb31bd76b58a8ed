package dto

import (
	"time"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostingAction says whether a line grows or shrinks its account.
type PostingAction string

const (
	ActionIncrease PostingAction = "increase"
	ActionDecrease PostingAction = "decrease"
)

// PostingLineRequest is one line of a manually posted transaction.
type PostingLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" binding:"dgt0"`
	Action    PostingAction   `json:"action" binding:"required,oneof=increase decrease"`
}

// PostTransactionRequest posts a manual journal against the ledger.
type PostTransactionRequest struct {
	Description string               `json:"description" binding:"max=500"`
	PostedAt    *time.Time           `json:"postedAt"`
	Lines       []PostingLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// TransactionRecordResponse defines the data returned for one transaction record.
type TransactionRecordResponse struct {
	TransactionRecordID string          `json:"transactionRecordID"`
	AccountID           string          `json:"accountID"`
	Amount              decimal.Decimal `json:"amount" swaggertype:"string"`
	IsDebit             bool            `json:"isDebit"`
}

// TransactionResponse defines the data returned for a committed transaction.
type TransactionResponse struct {
	TransactionID  string                      `json:"transactionID"`
	OrganizationID string                      `json:"organizationID"`
	Description    string                      `json:"description"`
	Source         domain.TransactionSource    `json:"source"`
	Reverses       *string                     `json:"reversesTransactionID,omitempty"`
	PostedAt       time.Time                   `json:"postedAt"`
	CreatedAt      time.Time                   `json:"createdAt"`
	CreatedBy      string                      `json:"createdBy"`
	Records        []TransactionRecordResponse `json:"records"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	records := make([]TransactionRecordResponse, len(txn.Records))
	for i, r := range txn.Records {
		records[i] = TransactionRecordResponse{
			TransactionRecordID: r.TransactionRecordID,
			AccountID:           r.GLAccountID,
			Amount:              domain.RoundForPresentation(r.Amount),
			IsDebit:             r.IsDebit,
		}
	}
	return TransactionResponse{
		TransactionID:  txn.TransactionID,
		OrganizationID: txn.AccountingOrganizationID,
		Description:    txn.Description,
		Source:         txn.Source,
		Reverses:       txn.ReversesTransactionID,
		PostedAt:       txn.PostedAt,
		CreatedAt:      txn.CreatedAt,
		CreatedBy:      txn.CreatedBy,
		Records:        records,
	}
}
