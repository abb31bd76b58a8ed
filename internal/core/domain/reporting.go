package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceFilter bounds a balance query. Nil bounds are open.
type BalanceFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
}

// AccountTotals are the raw debit and credit sums of one account.
type AccountTotals struct {
	AccountID string
	Debits    decimal.Decimal
	Credits   decimal.Decimal
}

// SignedBalance normalizes totals so growth in the account's increasing
// direction is positive.
func SignedBalance(debitIncreasing bool, debits, credits decimal.Decimal) decimal.Decimal {
	if debitIncreasing {
		return debits.Sub(credits)
	}
	return credits.Sub(debits)
}

// TrialBalanceColumn holds debit/credit totals and the signed balance for one window.
type TrialBalanceColumn struct {
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
	Balance decimal.Decimal `json:"balance"`
}

// TrialBalanceRow represents a single account in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string             `json:"accountID"`
	AccountCode string             `json:"accountCode"`
	AccountName string             `json:"accountName"`
	AsOf        TrialBalanceColumn `json:"asOf"`
	YearToDate  TrialBalanceColumn `json:"yearToDate"`
}

// TrialBalanceGroup collects the rows of one account type group.
type TrialBalanceGroup struct {
	Group AccountTypeGroupCode `json:"group"`
	Rows  []TrialBalanceRow    `json:"rows"`
}

// TrialBalanceReport is grouped by account type group with as-of and YTD columns.
type TrialBalanceReport struct {
	AccountingOrganizationID string              `json:"accountingOrganizationID"`
	AsOf                     time.Time           `json:"asOf"`
	YearStart                time.Time           `json:"yearStart"`
	Groups                   []TrialBalanceGroup `json:"groups"`
	TotalDebit               decimal.Decimal     `json:"totalDebit"`
	TotalCredit              decimal.Decimal     `json:"totalCredit"`
}

// FinancialYearStart returns the start of the financial year containing date,
// given the month the year starts in.
func FinancialYearStart(date time.Time, startMonth time.Month) time.Time {
	year := date.Year()
	if date.Month() < startMonth {
		year--
	}
	return time.Date(year, startMonth, 1, 0, 0, 0, 0, date.Location())
}
