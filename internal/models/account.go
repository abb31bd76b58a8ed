package models

import (
	"github.com/shopspring/decimal"
)

// GLAccount is a gl_accounts row joined with its account type and group.
// Nullable columns are pointers.
type GLAccount struct {
	AccountID                string  `db:"gl_account_id"`
	AccountingOrganizationID string  `db:"accounting_organization_id"`
	AccountTypeID            string  `db:"account_type_id"`
	AccountTypeName          string  `db:"account_type_name"`
	GroupCode                string  `db:"group_code"`
	GroupName                string  `db:"group_name"`
	IncreaseActionIsDebit    bool    `db:"increase_action_is_debit"`
	TaxRateID                *string `db:"tax_rate_id"`
	Code                     *string `db:"code"`
	Name                     string  `db:"name"`
	IsActive                 bool    `db:"is_active"`
	IsBankAccount            bool    `db:"is_bank_account"`
	EnablePayments           bool    `db:"enable_payments"`
	AuditFields
}

// AccountType is an account_types row joined with its group.
type AccountType struct {
	AccountTypeID         string `db:"account_type_id"`
	Name                  string `db:"name"`
	GroupCode             string `db:"group_code"`
	GroupName             string `db:"group_name"`
	IncreaseActionIsDebit bool   `db:"increase_action_is_debit"`
}

// TaxRate is a tax_rates row.
type TaxRate struct {
	TaxRateID string          `db:"tax_rate_id"`
	Name      string          `db:"name"`
	Rate      decimal.Decimal `db:"rate"`
}

// AccountingOrganization is an accounting_organizations row.
type AccountingOrganization struct {
	AccountingOrganizationID string  `db:"accounting_organization_id"`
	ContactID                string  `db:"contact_id"`
	LocationID               string  `db:"location_id"`
	ReceivableAccountID      *string `db:"accounts_receivable_account_id"`
	PayableAccountID         *string `db:"accounts_payable_account_id"`
	TaxPayableAccountID      *string `db:"tax_payable_account_id"`
	TaxReceivableAccountID   *string `db:"tax_receivable_account_id"`
	PaymentDetailsAccountID  *string `db:"payment_details_account_id"`
	LockDayOfMonth           int     `db:"lock_day_of_month"`
	IsActive                 bool    `db:"is_active"`
	AuditFields
}
