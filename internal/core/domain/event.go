package domain

import (
	"time"
)

// EventTransactionCommitted is published once per committed Transaction.
const EventTransactionCommitted = "ledger.transaction.committed"

// OutboxEvent is written in the same unit of work as the change it announces.
type OutboxEvent struct {
	EventID      string     `json:"eventID"`
	EventType    string     `json:"eventType"`
	AggregateID  string     `json:"aggregateID"`
	Payload      []byte     `json:"payload"`
	CreatedAt    time.Time  `json:"createdAt"`
	DispatchedAt *time.Time `json:"dispatchedAt,omitempty"`
}

// TransactionCommitted is the payload of EventTransactionCommitted.
type TransactionCommitted struct {
	TransactionID            string    `json:"transactionID"`
	AccountingOrganizationID string    `json:"accountingOrganizationID"`
	AccountIDs               []string  `json:"accountIDs"`
	PostedAt                 time.Time `json:"postedAt"`
}
