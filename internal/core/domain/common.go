package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

var hundred = decimal.NewFromInt(100)

// Decimal places of stored amounts. Ledger records are NUMERIC(19, 6);
// documents and payments settle in cents.
const (
	LedgerScale   int32 = 6
	CurrencyScale int32 = 2
)

// RoundToLedgerScale rounds d the way a transaction record amount is stored.
func RoundToLedgerScale(d decimal.Decimal) decimal.Decimal {
	return d.Round(LedgerScale)
}

// RoundForPresentation rounds a monetary amount to cents. Only call this when
// rendering; accumulation always works on the exact values.
func RoundForPresentation(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyScale)
}
