package apperrors

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ledgerError is a sentinel that also matches its category with errors.Is.
type ledgerError struct {
	msg string
	cat error
}

func (e *ledgerError) Error() string { return e.msg }
func (e *ledgerError) Unwrap() error { return e.cat }

func newSentinel(msg string, cat error) error {
	return &ledgerError{msg: msg, cat: cat}
}

// Validation failures. The caller must fix the request.
var (
	ErrInvalidAmount         = newSentinel("amount must be greater than zero", ErrValidation)
	ErrOrganizationMismatch  = newSentinel("account belongs to a different accounting organization", ErrValidation)
	ErrInactiveAccount       = newSentinel("account is inactive", ErrValidation)
	ErrEmptyTransaction      = newSentinel("transaction has no records", ErrValidation)
	ErrTransactionCommitted  = newSentinel("transaction has already been committed", ErrValidation)
	ErrInvalidStatusChange   = newSentinel("invalid document status transition", ErrValidation)
	ErrForwardedExceedsShare = newSentinel("forwarded amount exceeds the amount allocated to the invoice", ErrValidation)
)

// Business rule failures. Nothing is persisted when one of these is returned.
var (
	ErrUnbalancedTransaction = newSentinel("transaction debits do not equal credits", ErrBusinessRule)
	ErrAllocationMismatch    = newSentinel("allocations do not sum to the payment amount", ErrBusinessRule)
	ErrOverpayment           = newSentinel("allocation exceeds the invoice outstanding amount", ErrBusinessRule)
	ErrMissingLedgerAccount  = newSentinel("organization has no designated ledger account", ErrBusinessRule)
	ErrAlreadyApproved       = newSentinel("document is already approved", ErrBusinessRule)
	ErrDocumentLocked        = newSentinel("document is locked", ErrBusinessRule)
	ErrDocumentNotApproved   = newSentinel("document is not approved", ErrBusinessRule)
	ErrPeriodLocked          = newSentinel("accounting period is locked", ErrBusinessRule)
	ErrAlreadyReversed       = newSentinel("transaction has already been reversed", ErrBusinessRule)
	ErrNotReversible         = newSentinel("transaction is owned by a document or payment and cannot be reversed directly", ErrBusinessRule)
)

// ErrConcurrentModification is returned to the losing writer of a race. Re-read and retry.
var ErrConcurrentModification = newSentinel("concurrent modification detected", ErrConflict)

// Not found variants.
var (
	ErrAccountNotFound      = newSentinel("ledger account not found", ErrNotFound)
	ErrOrganizationNotFound = newSentinel("accounting organization not found", ErrNotFound)
	ErrTransactionNotFound  = newSentinel("transaction not found", ErrNotFound)
	ErrDocumentNotFound     = newSentinel("financial document not found", ErrNotFound)
	ErrPaymentNotFound      = newSentinel("payment not found", ErrNotFound)
)

// UnbalancedTransactionError reports the two sides of a rejected transaction.
type UnbalancedTransactionError struct {
	Debits  decimal.Decimal
	Credits decimal.Decimal
}

func (e *UnbalancedTransactionError) Error() string {
	return fmt.Sprintf("%s: debits sum is %s and credits sum is %s", ErrUnbalancedTransaction, e.Debits, e.Credits)
}

func (e *UnbalancedTransactionError) Unwrap() error { return ErrUnbalancedTransaction }

// AllocationMismatchError reports a payment whose allocations do not add up.
type AllocationMismatchError struct {
	PaymentAmount decimal.Decimal
	Allocated     decimal.Decimal
}

func (e *AllocationMismatchError) Error() string {
	return fmt.Sprintf("%s: payment is %s but allocations total %s", ErrAllocationMismatch, e.PaymentAmount, e.Allocated)
}

func (e *AllocationMismatchError) Unwrap() error { return ErrAllocationMismatch }

// OverpaymentError reports an allocation larger than what is still owed.
type OverpaymentError struct {
	InvoiceID   string
	Requested   decimal.Decimal
	Outstanding decimal.Decimal
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("%s: invoice %s has %s outstanding, %s requested", ErrOverpayment, e.InvoiceID, e.Outstanding, e.Requested)
}

func (e *OverpaymentError) Unwrap() error { return ErrOverpayment }

// MissingLedgerAccountError names the designated account an organization lacks.
type MissingLedgerAccountError struct {
	OrganizationID string
	Designation    string
}

func (e *MissingLedgerAccountError) Error() string {
	return fmt.Sprintf("%s: organization %s has no %s account configured", ErrMissingLedgerAccount, e.OrganizationID, e.Designation)
}

func (e *MissingLedgerAccountError) Unwrap() error { return ErrMissingLedgerAccount }

// ConcurrentModificationError names the contended resource.
type ConcurrentModificationError struct {
	Resource string
	ID       string
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("%s: %s %s is being modified by another request", ErrConcurrentModification, e.Resource, e.ID)
}

func (e *ConcurrentModificationError) Unwrap() error { return ErrConcurrentModification }
