package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialDocument is a financial_documents row. The approve request columns
// are inlined and nullable.
type FinancialDocument struct {
	DocumentID               string     `db:"document_id"`
	DocumentType             string     `db:"document_type"`
	LocationID               string     `db:"location_id"`
	AccountingOrganizationID string     `db:"accounting_organization_id"`
	RecipientContactID       string     `db:"recipient_contact_id"`
	Reference                string     `db:"reference"`
	DocumentDate             time.Time  `db:"document_date"`
	DueAt                    *time.Time `db:"due_at"`
	ApprovalRequesterID      *string    `db:"approval_requester_id"`
	ApprovalApproverID       *string    `db:"approval_approver_id"`
	ApprovedAt               *time.Time `db:"approved_at"`
	LockedAt                 *time.Time `db:"locked_at"`
	TransactionID            *string    `db:"transaction_id"`
	Version                  int64      `db:"version"`
	AuditFields
}

// DocumentItem is a document_items row.
type DocumentItem struct {
	ItemID          string          `db:"document_item_id"`
	DocumentID      string          `db:"document_id"`
	GSCode          string          `db:"gs_code"`
	Description     string          `db:"description"`
	GLAccountID     string          `db:"gl_account_id"`
	TaxRateID       string          `db:"tax_rate_id"`
	TaxRate         decimal.Decimal `db:"tax_rate"`
	UnitCost        decimal.Decimal `db:"unit_cost"`
	Quantity        decimal.Decimal `db:"quantity"`
	DiscountPercent decimal.Decimal `db:"discount_percent"`
	MarkupPercent   decimal.Decimal `db:"markup_percent"`
	Position        int             `db:"position"`
}

// DocumentStatus is an append-only document_statuses row.
type DocumentStatus struct {
	DocumentID string    `db:"document_id"`
	Status     string    `db:"status"`
	UserID     string    `db:"user_id"`
	CreatedAt  time.Time `db:"created_at"`
}
