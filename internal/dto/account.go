package dto

import (
	"time"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new ledger account.
type CreateAccountRequest struct {
	AccountTypeID  string `json:"accountTypeID" binding:"required"`
	Code           string `json:"code" binding:"omitempty,max=32"`
	Name           string `json:"name" binding:"required,max=255"`
	TaxRateID      string `json:"taxRateID"`
	IsBankAccount  bool   `json:"isBankAccount"`
	EnablePayments bool   `json:"enablePayments"`
}

// AccountResponse defines the data returned for a ledger account.
type AccountResponse struct {
	AccountID             string                      `json:"accountID"`
	OrganizationID        string                      `json:"organizationID"`
	Code                  string                      `json:"code"`
	Name                  string                      `json:"name"`
	AccountTypeID         string                      `json:"accountTypeID"`
	AccountTypeName       string                      `json:"accountTypeName"`
	Group                 domain.AccountTypeGroupCode `json:"group"`
	IncreaseActionIsDebit bool                        `json:"increaseActionIsDebit"`
	TaxRateID             string                      `json:"taxRateID,omitempty"`
	IsActive              bool                        `json:"isActive"`
	IsBankAccount         bool                        `json:"isBankAccount"`
	EnablePayments        bool                        `json:"enablePayments"`
	CreatedAt             time.Time                   `json:"createdAt"`
	CreatedBy             string                      `json:"createdBy"`
}

// ToAccountResponse converts a domain.GLAccount to AccountResponse DTO
func ToAccountResponse(acc *domain.GLAccount) AccountResponse {
	return AccountResponse{
		AccountID:             acc.AccountID,
		OrganizationID:        acc.AccountingOrganizationID,
		Code:                  acc.Code,
		Name:                  acc.Name,
		AccountTypeID:         acc.AccountType.AccountTypeID,
		AccountTypeName:       acc.AccountType.Name,
		Group:                 acc.AccountType.Group.Code,
		IncreaseActionIsDebit: acc.AccountType.Group.IncreaseActionIsDebit,
		TaxRateID:             acc.TaxRateID,
		IsActive:              acc.IsActive,
		IsBankAccount:         acc.IsBankAccount,
		EnablePayments:        acc.EnablePayments,
		CreatedAt:             acc.CreatedAt,
		CreatedBy:             acc.CreatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.GLAccount to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.GLAccount) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Group domain.AccountTypeGroupCode `form:"group" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
}
