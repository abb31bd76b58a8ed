package dto

import (
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
)

// CreateOrganizationRequest defines the data needed to create an accounting organization.
type CreateOrganizationRequest struct {
	ContactID      string `json:"contactID" binding:"required"`
	LocationID     string `json:"locationID" binding:"required"`
	LockDayOfMonth int    `json:"lockDayOfMonth" binding:"min=0,max=28"`
}

// UpdateOrganizationRequest updates designated accounts and the lock day.
// Nil fields are left unchanged.
type UpdateOrganizationRequest struct {
	ReceivableAccountID     *string `json:"receivableAccountID"`
	PayableAccountID        *string `json:"payableAccountID"`
	TaxPayableAccountID     *string `json:"taxPayableAccountID"`
	TaxReceivableAccountID  *string `json:"taxReceivableAccountID"`
	PaymentDetailsAccountID *string `json:"paymentDetailsAccountID"`
	LockDayOfMonth          *int    `json:"lockDayOfMonth" binding:"omitempty,min=0,max=28"`
	IsActive                *bool   `json:"isActive"`
}

// Designations returns the requested designation changes keyed by designation.
func (r UpdateOrganizationRequest) Designations() map[domain.AccountDesignation]*string {
	return map[domain.AccountDesignation]*string{
		domain.DesignationReceivable:     r.ReceivableAccountID,
		domain.DesignationPayable:        r.PayableAccountID,
		domain.DesignationTaxPayable:     r.TaxPayableAccountID,
		domain.DesignationTaxReceivable:  r.TaxReceivableAccountID,
		domain.DesignationPaymentDetails: r.PaymentDetailsAccountID,
	}
}
