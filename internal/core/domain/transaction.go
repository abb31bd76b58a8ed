package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionSource names the workflow that produced a transaction.
type TransactionSource string

const (
	SourceManual   TransactionSource = "MANUAL"
	SourceDocument TransactionSource = "DOCUMENT"
	SourcePayment  TransactionSource = "PAYMENT"
	SourceReversal TransactionSource = "REVERSAL"
)

// Transaction is a committed, immutable double-entry posting.
type Transaction struct {
	TransactionID            string              `json:"transactionID"`
	AccountingOrganizationID string              `json:"accountingOrganizationID"`
	Description              string              `json:"description"`
	Source                   TransactionSource   `json:"source"`
	ReversesTransactionID    *string             `json:"reversesTransactionID,omitempty"`
	PostedAt                 time.Time           `json:"postedAt"`
	CreatedAt                time.Time           `json:"createdAt"`
	CreatedBy                string              `json:"createdBy"`
	Records                  []TransactionRecord `json:"records"`
}

// TransactionRecord is one line of a Transaction. Amount is never negative;
// the side is carried by IsDebit.
type TransactionRecord struct {
	TransactionRecordID string          `json:"transactionRecordID"`
	TransactionID       string          `json:"transactionID"`
	GLAccountID         string          `json:"glAccountID"`
	Amount              decimal.Decimal `json:"amount"`
	IsDebit             bool            `json:"isDebit"`
}

// Totals sums both sides of the transaction.
func (t Transaction) Totals() (debits, credits decimal.Decimal) {
	return SumRecords(t.Records)
}

// IsBalanced reports whether debits equal credits exactly.
func (t Transaction) IsBalanced() bool {
	debits, credits := t.Totals()
	return debits.Equal(credits)
}

// SumRecords returns the debit and credit totals of the given records.
func SumRecords(records []TransactionRecord) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, r := range records {
		if r.IsDebit {
			debits = debits.Add(r.Amount)
		} else {
			credits = credits.Add(r.Amount)
		}
	}
	return debits, credits
}

// AccountRecord is a TransactionRecord joined with its transaction header,
// used for statements.
type AccountRecord struct {
	TransactionRecord
	PostedAt    time.Time `json:"postedAt"`
	Description string    `json:"description"`
}
