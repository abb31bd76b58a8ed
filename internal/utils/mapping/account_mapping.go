package mapping

import (
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/models"
)

// ToModelGLAccount converts a domain GLAccount to a model GLAccount
func ToModelGLAccount(d domain.GLAccount) models.GLAccount {
	return models.GLAccount{
		AccountID:                d.AccountID,
		AccountingOrganizationID: d.AccountingOrganizationID,
		AccountTypeID:            d.AccountType.AccountTypeID,
		AccountTypeName:          d.AccountType.Name,
		GroupCode:                string(d.AccountType.Group.Code),
		GroupName:                d.AccountType.Group.Name,
		IncreaseActionIsDebit:    d.AccountType.Group.IncreaseActionIsDebit,
		TaxRateID:                NullableString(d.TaxRateID),
		Code:                     NullableString(d.Code),
		Name:                     d.Name,
		IsActive:                 d.IsActive,
		IsBankAccount:            d.IsBankAccount,
		EnablePayments:           d.EnablePayments,
		AuditFields:              ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainGLAccount converts a model GLAccount to a domain GLAccount
func ToDomainGLAccount(m models.GLAccount) domain.GLAccount {
	return domain.GLAccount{
		AccountID:                m.AccountID,
		AccountingOrganizationID: m.AccountingOrganizationID,
		AccountType: ToDomainAccountType(models.AccountType{
			AccountTypeID:         m.AccountTypeID,
			Name:                  m.AccountTypeName,
			GroupCode:             m.GroupCode,
			GroupName:             m.GroupName,
			IncreaseActionIsDebit: m.IncreaseActionIsDebit,
		}),
		TaxRateID:      StringValue(m.TaxRateID),
		Code:           StringValue(m.Code),
		Name:           m.Name,
		IsActive:       m.IsActive,
		IsBankAccount:  m.IsBankAccount,
		EnablePayments: m.EnablePayments,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainGLAccountSlice converts a slice of model GLAccounts to domain GLAccounts
func ToDomainGLAccountSlice(ms []models.GLAccount) []domain.GLAccount {
	ds := make([]domain.GLAccount, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainGLAccount(m)
	}
	return ds
}

// ToDomainAccountType converts a model AccountType to a domain AccountType
func ToDomainAccountType(m models.AccountType) domain.AccountType {
	return domain.AccountType{
		AccountTypeID: m.AccountTypeID,
		Name:          m.Name,
		Group: domain.AccountTypeGroup{
			Code:                  domain.AccountTypeGroupCode(m.GroupCode),
			Name:                  m.GroupName,
			IncreaseActionIsDebit: m.IncreaseActionIsDebit,
		},
	}
}

// ToDomainTaxRate converts a model TaxRate to a domain TaxRate
func ToDomainTaxRate(m models.TaxRate) domain.TaxRate {
	return domain.TaxRate{TaxRateID: m.TaxRateID, Name: m.Name, Rate: m.Rate}
}

// ToModelOrganization converts a domain AccountingOrganization to a model AccountingOrganization
func ToModelOrganization(d domain.AccountingOrganization) models.AccountingOrganization {
	return models.AccountingOrganization{
		AccountingOrganizationID: d.AccountingOrganizationID,
		ContactID:                d.ContactID,
		LocationID:               d.LocationID,
		ReceivableAccountID:      NullableString(d.ReceivableAccountID),
		PayableAccountID:         NullableString(d.PayableAccountID),
		TaxPayableAccountID:      NullableString(d.TaxPayableAccountID),
		TaxReceivableAccountID:   NullableString(d.TaxReceivableAccountID),
		PaymentDetailsAccountID:  NullableString(d.PaymentDetailsAccountID),
		LockDayOfMonth:           d.LockDayOfMonth,
		IsActive:                 d.IsActive,
		AuditFields:              ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrganization converts a model AccountingOrganization to a domain AccountingOrganization
func ToDomainOrganization(m models.AccountingOrganization) domain.AccountingOrganization {
	return domain.AccountingOrganization{
		AccountingOrganizationID: m.AccountingOrganizationID,
		ContactID:                m.ContactID,
		LocationID:               m.LocationID,
		ReceivableAccountID:      StringValue(m.ReceivableAccountID),
		PayableAccountID:         StringValue(m.PayableAccountID),
		TaxPayableAccountID:      StringValue(m.TaxPayableAccountID),
		TaxReceivableAccountID:   StringValue(m.TaxReceivableAccountID),
		PaymentDetailsAccountID:  StringValue(m.PaymentDetailsAccountID),
		LockDayOfMonth:           m.LockDayOfMonth,
		IsActive:                 m.IsActive,
		AuditFields:              ToDomainAuditFields(m.AuditFields),
	}
}
