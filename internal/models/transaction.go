package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a transactions header row.
type Transaction struct {
	TransactionID            string    `db:"transaction_id"`
	AccountingOrganizationID string    `db:"accounting_organization_id"`
	Description              string    `db:"description"`
	Source                   string    `db:"source"`
	ReversesTransactionID    *string   `db:"reverses_transaction_id"`
	PostedAt                 time.Time `db:"posted_at"`
	CreatedAt                time.Time `db:"created_at"`
	CreatedBy                string    `db:"created_by"`
}

// TransactionRecord is a transaction_records row. Amount is never negative.
type TransactionRecord struct {
	TransactionRecordID string          `db:"transaction_record_id"`
	TransactionID       string          `db:"transaction_id"`
	GLAccountID         string          `db:"gl_account_id"`
	Amount              decimal.Decimal `db:"amount"`
	IsDebit             bool            `db:"is_debit"`
}

// AccountRecord is a record joined with its header for statements.
type AccountRecord struct {
	TransactionRecord
	PostedAt    time.Time `db:"posted_at"`
	CreatedAt   time.Time `db:"created_at"`
	Description string    `db:"description"`
}

// AccountTotals is one row of a debit/credit aggregation.
type AccountTotals struct {
	GLAccountID string          `db:"gl_account_id"`
	Debits      decimal.Decimal `db:"debits"`
	Credits     decimal.Decimal `db:"credits"`
}

// OutboxEvent is an outbox_events row.
type OutboxEvent struct {
	EventID      string     `db:"event_id"`
	EventType    string     `db:"event_type"`
	AggregateID  string     `db:"aggregate_id"`
	Payload      []byte     `db:"payload"`
	CreatedAt    time.Time  `db:"created_at"`
	DispatchedAt *time.Time `db:"dispatched_at"`
}
