package domain

import (
	"github.com/shopspring/decimal"
)

// AccountTypeGroupCode is the closed set of account type groups.
type AccountTypeGroupCode string

const (
	GroupAsset     AccountTypeGroupCode = "ASSET"
	GroupLiability AccountTypeGroupCode = "LIABILITY"
	GroupEquity    AccountTypeGroupCode = "EQUITY"
	GroupRevenue   AccountTypeGroupCode = "REVENUE"
	GroupExpense   AccountTypeGroupCode = "EXPENSE"
)

// AccountTypeGroups lists the groups in trial balance order.
var AccountTypeGroups = []AccountTypeGroupCode{GroupAsset, GroupLiability, GroupEquity, GroupRevenue, GroupExpense}

// AccountTypeGroup carries the polarity shared by every account type in it.
type AccountTypeGroup struct {
	Code                  AccountTypeGroupCode `json:"code"`
	Name                  string               `json:"name"`
	IncreaseActionIsDebit bool                 `json:"increaseActionIsDebit"`
}

// AccountType is a chart-of-accounts classification (e.g. "Current Asset", "Sales").
type AccountType struct {
	AccountTypeID string           `json:"accountTypeID"`
	Name          string           `json:"name"`
	Group         AccountTypeGroup `json:"group"`
}

// GLAccount is a general-ledger account scoped to one accounting organization.
// Polarity is never stored on the account; it comes from AccountType.Group.
type GLAccount struct {
	AccountID                string      `json:"accountID"`
	AccountingOrganizationID string      `json:"accountingOrganizationID"`
	AccountType              AccountType `json:"accountType"`
	TaxRateID                string      `json:"taxRateID"`
	Code                     string      `json:"code"`
	Name                     string      `json:"name"`
	IsActive                 bool        `json:"isActive"`
	IsBankAccount            bool        `json:"isBankAccount"`
	EnablePayments           bool        `json:"enablePayments"`
	AuditFields
}

// TaxRate is a named rate expressed as a fraction (0.1 for 10%).
type TaxRate struct {
	TaxRateID string          `json:"taxRateID"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
}
