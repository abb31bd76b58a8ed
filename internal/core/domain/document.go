package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType distinguishes the financial documents sharing the lifecycle.
type DocumentType string

const (
	DocumentInvoice       DocumentType = "INVOICE"
	DocumentCreditNote    DocumentType = "CREDIT_NOTE"
	DocumentPurchaseOrder DocumentType = "PURCHASE_ORDER"
)

// Valid reports whether t is a known document type.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentInvoice, DocumentCreditNote, DocumentPurchaseOrder:
		return true
	}
	return false
}

// ControlDesignation is the receivable or payable account the document total is posted to.
func (t DocumentType) ControlDesignation() AccountDesignation {
	if t == DocumentPurchaseOrder {
		return DesignationPayable
	}
	return DesignationReceivable
}

// TaxDesignation is the account that collects the document tax.
func (t DocumentType) TaxDesignation() AccountDesignation {
	if t == DocumentPurchaseOrder {
		return DesignationTaxReceivable
	}
	return DesignationTaxPayable
}

// PostsAsDecrease is true for documents that unwind a receivable.
func (t DocumentType) PostsAsDecrease() bool {
	return t == DocumentCreditNote
}

// DocumentStatus is a lifecycle state.
type DocumentStatus string

const (
	StatusDraft           DocumentStatus = "DRAFT"
	StatusPendingApproval DocumentStatus = "PENDING_APPROVAL"
	StatusApproved        DocumentStatus = "APPROVED"
)

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s DocumentStatus) CanTransitionTo(next DocumentStatus) bool {
	switch s {
	case StatusDraft:
		return next == StatusPendingApproval
	case StatusPendingApproval:
		return next == StatusApproved || next == StatusDraft
	}
	return false
}

// StatusEntry is one append-only row of a document's status history.
type StatusEntry struct {
	Status    DocumentStatus `json:"status"`
	UserID    string         `json:"userID"`
	CreatedAt time.Time      `json:"createdAt"`
}

// ApproveRequest records who asked for approval and who must give it.
type ApproveRequest struct {
	RequesterID string     `json:"requesterID"`
	ApproverID  string     `json:"approverID"`
	ApprovedAt  *time.Time `json:"approvedAt,omitempty"`
}

// DocumentItem is a priced line. Percentages are whole numbers (10 means 10%),
// TaxRate is a fraction snapshot of the item's tax rate.
type DocumentItem struct {
	ItemID          string          `json:"itemID"`
	GSCode          string          `json:"gsCode"`
	Description     string          `json:"description"`
	GLAccountID     string          `json:"glAccountID"`
	TaxRateID       string          `json:"taxRateID"`
	TaxRate         decimal.Decimal `json:"taxRate"`
	UnitCost        decimal.Decimal `json:"unitCost"`
	Quantity        decimal.Decimal `json:"quantity"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	MarkupPercent   decimal.Decimal `json:"markupPercent"`
	Position        int             `json:"position"`
}

// SubTotal is the pre-tax amount of the item for a document of type t.
// Credit notes carry no discount term.
func (i DocumentItem) SubTotal(t DocumentType) decimal.Decimal {
	base := i.UnitCost.Mul(i.Quantity)
	switch t {
	case DocumentInvoice:
		return base.Mul(decimal.NewFromInt(1).Sub(i.DiscountPercent.Div(hundred)))
	case DocumentPurchaseOrder:
		return base.Mul(decimal.NewFromInt(1).Add(i.MarkupPercent.Div(hundred)))
	}
	return base
}

// Tax is SubTotal times the item's tax rate.
func (i DocumentItem) Tax(t DocumentType) decimal.Decimal {
	return i.SubTotal(t).Mul(i.TaxRate)
}

// FinancialDocument is an Invoice, CreditNote or PurchaseOrder.
type FinancialDocument struct {
	DocumentID               string          `json:"documentID"`
	Type                     DocumentType    `json:"type"`
	LocationID               string          `json:"locationID"`
	AccountingOrganizationID string          `json:"accountingOrganizationID"`
	RecipientContactID       string          `json:"recipientContactID"`
	Reference                string          `json:"reference"`
	Date                     time.Time       `json:"date"`
	DueAt                    *time.Time      `json:"dueAt,omitempty"`
	Items                    []DocumentItem  `json:"items"`
	Statuses                 []StatusEntry   `json:"statuses"`
	ApproveRequest           *ApproveRequest `json:"approveRequest,omitempty"`
	LockedAt                 *time.Time      `json:"lockedAt,omitempty"`
	TransactionID            string          `json:"transactionID,omitempty"`
	Version                  int64           `json:"version"`
	AuditFields
}

// LatestStatus returns the most recent status, DRAFT when there is no history.
func (d FinancialDocument) LatestStatus() DocumentStatus {
	if len(d.Statuses) == 0 {
		return StatusDraft
	}
	return d.Statuses[len(d.Statuses)-1].Status
}

// IsApproved reports whether the document reached APPROVED.
func (d FinancialDocument) IsApproved() bool {
	return d.LatestStatus() == StatusApproved
}

// IsLocked reports whether locked_at has been set.
func (d FinancialDocument) IsLocked() bool {
	return d.LockedAt != nil
}

// SubTotal sums item subtotals.
func (d FinancialDocument) SubTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range d.Items {
		total = total.Add(item.SubTotal(d.Type))
	}
	return total
}

// TaxAmount sums item taxes.
func (d FinancialDocument) TaxAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range d.Items {
		total = total.Add(item.Tax(d.Type))
	}
	return total
}

// TotalAmount is SubTotal plus TaxAmount.
func (d FinancialDocument) TotalAmount() decimal.Decimal {
	return d.SubTotal().Add(d.TaxAmount())
}

// PostedAmounts is what approval posts, in cents: one amount per item, the
// tax, and the control amount. Control is the sum of the others so the
// posting balances after rounding.
type PostedAmounts struct {
	Items   []decimal.Decimal
	Tax     decimal.Decimal
	Control decimal.Decimal
}

// PostedAmounts rounds each item subtotal and the tax total to cents.
func (d FinancialDocument) PostedAmounts() PostedAmounts {
	p := PostedAmounts{
		Items: make([]decimal.Decimal, len(d.Items)),
		Tax:   d.TaxAmount().Round(CurrencyScale),
	}
	p.Control = p.Tax
	for i, item := range d.Items {
		p.Items[i] = item.SubTotal(d.Type).Round(CurrencyScale)
		p.Control = p.Control.Add(p.Items[i])
	}
	return p
}

// PayableTotal is the control amount posted at approval. Payments are
// measured against it.
func (d FinancialDocument) PayableTotal() decimal.Decimal {
	return d.PostedAmounts().Control
}
