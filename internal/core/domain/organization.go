package domain

// AccountDesignation names a role an organization assigns to one of its accounts.
type AccountDesignation string

const (
	DesignationReceivable     AccountDesignation = "accounts_receivable"
	DesignationPayable        AccountDesignation = "accounts_payable"
	DesignationTaxPayable     AccountDesignation = "tax_payable"
	DesignationTaxReceivable  AccountDesignation = "tax_receivable"
	DesignationPaymentDetails AccountDesignation = "payment_details"
)

// AccountingOrganization owns a chart of accounts and the designated accounts
// document postings are routed to. Empty designation ids mean "not configured".
type AccountingOrganization struct {
	AccountingOrganizationID string `json:"accountingOrganizationID"`
	ContactID                string `json:"contactID"`
	LocationID               string `json:"locationID"`
	ReceivableAccountID      string `json:"receivableAccountID"`
	PayableAccountID         string `json:"payableAccountID"`
	TaxPayableAccountID      string `json:"taxPayableAccountID"`
	TaxReceivableAccountID   string `json:"taxReceivableAccountID"`
	PaymentDetailsAccountID  string `json:"paymentDetailsAccountID"`
	// LockDayOfMonth is 0 when no lock applies, otherwise 1..28.
	LockDayOfMonth int  `json:"lockDayOfMonth"`
	IsActive       bool `json:"isActive"`
	AuditFields
}

// DesignatedAccountID returns the account id configured for the designation.
func (o AccountingOrganization) DesignatedAccountID(d AccountDesignation) string {
	switch d {
	case DesignationReceivable:
		return o.ReceivableAccountID
	case DesignationPayable:
		return o.PayableAccountID
	case DesignationTaxPayable:
		return o.TaxPayableAccountID
	case DesignationTaxReceivable:
		return o.TaxReceivableAccountID
	case DesignationPaymentDetails:
		return o.PaymentDetailsAccountID
	}
	return ""
}
