package mapping

import (
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/models"
)

// ToModelTransaction converts a domain Transaction header to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:            d.TransactionID,
		AccountingOrganizationID: d.AccountingOrganizationID,
		Description:              d.Description,
		Source:                   string(d.Source),
		ReversesTransactionID:    d.ReversesTransactionID,
		PostedAt:                 d.PostedAt,
		CreatedAt:                d.CreatedAt,
		CreatedBy:                d.CreatedBy,
	}
}

// ToDomainTransaction converts a model Transaction and its records to a domain Transaction
func ToDomainTransaction(m models.Transaction, records []models.TransactionRecord) domain.Transaction {
	t := domain.Transaction{
		TransactionID:            m.TransactionID,
		AccountingOrganizationID: m.AccountingOrganizationID,
		Description:              m.Description,
		Source:                   domain.TransactionSource(m.Source),
		ReversesTransactionID:    m.ReversesTransactionID,
		PostedAt:                 m.PostedAt,
		CreatedAt:                m.CreatedAt,
		CreatedBy:                m.CreatedBy,
		Records:                  make([]domain.TransactionRecord, len(records)),
	}
	for i, r := range records {
		t.Records[i] = ToDomainTransactionRecord(r)
	}
	return t
}

// ToModelTransactionRecord converts a domain TransactionRecord to a model TransactionRecord
func ToModelTransactionRecord(d domain.TransactionRecord) models.TransactionRecord {
	return models.TransactionRecord{
		TransactionRecordID: d.TransactionRecordID,
		TransactionID:       d.TransactionID,
		GLAccountID:         d.GLAccountID,
		Amount:              d.Amount,
		IsDebit:             d.IsDebit,
	}
}

// ToDomainTransactionRecord converts a model TransactionRecord to a domain TransactionRecord
func ToDomainTransactionRecord(m models.TransactionRecord) domain.TransactionRecord {
	return domain.TransactionRecord{
		TransactionRecordID: m.TransactionRecordID,
		TransactionID:       m.TransactionID,
		GLAccountID:         m.GLAccountID,
		Amount:              m.Amount,
		IsDebit:             m.IsDebit,
	}
}

// ToDomainAccountRecordSlice converts statement rows to domain AccountRecords
func ToDomainAccountRecordSlice(ms []models.AccountRecord) []domain.AccountRecord {
	ds := make([]domain.AccountRecord, len(ms))
	for i, m := range ms {
		ds[i] = domain.AccountRecord{
			TransactionRecord: ToDomainTransactionRecord(m.TransactionRecord),
			PostedAt:          m.PostedAt,
			Description:       m.Description,
		}
	}
	return ds
}

// ToDomainAccountTotals converts an aggregation row to domain AccountTotals
func ToDomainAccountTotals(m models.AccountTotals) domain.AccountTotals {
	return domain.AccountTotals{AccountID: m.GLAccountID, Debits: m.Debits, Credits: m.Credits}
}

// ToModelOutboxEvent converts a domain OutboxEvent to a model OutboxEvent
func ToModelOutboxEvent(d domain.OutboxEvent) models.OutboxEvent {
	return models.OutboxEvent(d)
}

// ToDomainOutboxEvent converts a model OutboxEvent to a domain OutboxEvent
func ToDomainOutboxEvent(m models.OutboxEvent) domain.OutboxEvent {
	return domain.OutboxEvent(m)
}
