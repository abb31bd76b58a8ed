package domain_test

import (
	"testing"
	"time"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDocumentItem_Math(t *testing.T) {
	item := domain.DocumentItem{
		UnitCost:        dec("100"),
		Quantity:        dec("1"),
		DiscountPercent: dec("10"),
		MarkupPercent:   dec("20"),
		TaxRate:         dec("0.1"),
	}

	tests := []struct {
		name         string
		docType      domain.DocumentType
		wantSubTotal string
		wantTax      string
	}{
		{"invoice applies discount", domain.DocumentInvoice, "90", "9"},
		{"purchase order applies markup", domain.DocumentPurchaseOrder, "120", "12"},
		{"credit note ignores discount", domain.DocumentCreditNote, "100", "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, dec(tt.wantSubTotal).Equal(item.SubTotal(tt.docType)), "subtotal %s", item.SubTotal(tt.docType))
			assert.True(t, dec(tt.wantTax).Equal(item.Tax(tt.docType)), "tax %s", item.Tax(tt.docType))
		})
	}
}

func TestFinancialDocument_Totals(t *testing.T) {
	doc := domain.FinancialDocument{
		Type: domain.DocumentInvoice,
		Items: []domain.DocumentItem{
			{UnitCost: dec("100"), Quantity: dec("1"), DiscountPercent: dec("10"), TaxRate: dec("0.1")},
			{UnitCost: dec("12.50"), Quantity: dec("4"), DiscountPercent: decimal.Zero, TaxRate: decimal.Zero},
		},
	}

	assert.True(t, dec("140").Equal(doc.SubTotal()))
	assert.True(t, dec("9").Equal(doc.TaxAmount()))
	assert.True(t, dec("149").Equal(doc.TotalAmount()))
}

func TestFinancialDocument_PostedAmounts(t *testing.T) {
	doc := domain.FinancialDocument{
		Type: domain.DocumentInvoice,
		Items: []domain.DocumentItem{
			{UnitCost: dec("12.345"), Quantity: dec("1.5"), DiscountPercent: dec("12.5"), TaxRate: dec("0.1")},
			{UnitCost: dec("12.345"), Quantity: dec("1.5"), DiscountPercent: dec("12.5"), TaxRate: dec("0.1")},
		},
	}

	posted := doc.PostedAmounts()
	assert.Len(t, posted.Items, 2)
	for _, item := range posted.Items {
		assert.True(t, dec("16.20").Equal(item), item.String())
	}
	// 3.2405625 of tax rounds to 3.24.
	assert.True(t, dec("3.24").Equal(posted.Tax), posted.Tax.String())
	assert.True(t, dec("35.64").Equal(posted.Control), posted.Control.String())
	assert.True(t, posted.Control.Equal(doc.PayableTotal()))
	// The unrounded total would post 35.65 against 35.64 of parts.
	assert.True(t, dec("35.65").Equal(doc.TotalAmount().Round(2)))
}

func TestFinancialDocument_Status(t *testing.T) {
	doc := domain.FinancialDocument{}
	assert.Equal(t, domain.StatusDraft, doc.LatestStatus())
	assert.False(t, doc.IsApproved())

	doc.Statuses = []domain.StatusEntry{
		{Status: domain.StatusDraft, CreatedAt: time.Now()},
		{Status: domain.StatusPendingApproval, CreatedAt: time.Now()},
		{Status: domain.StatusApproved, CreatedAt: time.Now()},
	}
	assert.True(t, doc.IsApproved())
	assert.False(t, doc.IsLocked())

	now := time.Now()
	doc.LockedAt = &now
	assert.True(t, doc.IsLocked())
}

func TestDocumentStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, domain.StatusDraft.CanTransitionTo(domain.StatusPendingApproval))
	assert.False(t, domain.StatusDraft.CanTransitionTo(domain.StatusApproved))
	assert.True(t, domain.StatusPendingApproval.CanTransitionTo(domain.StatusApproved))
	assert.False(t, domain.StatusApproved.CanTransitionTo(domain.StatusApproved))
	assert.False(t, domain.StatusApproved.CanTransitionTo(domain.StatusDraft))
}

func TestDocumentType_Designations(t *testing.T) {
	assert.Equal(t, domain.DesignationReceivable, domain.DocumentInvoice.ControlDesignation())
	assert.Equal(t, domain.DesignationTaxPayable, domain.DocumentCreditNote.TaxDesignation())
	assert.Equal(t, domain.DesignationPayable, domain.DocumentPurchaseOrder.ControlDesignation())
	assert.Equal(t, domain.DesignationTaxReceivable, domain.DocumentPurchaseOrder.TaxDesignation())
	assert.True(t, domain.DocumentCreditNote.PostsAsDecrease())
	assert.False(t, domain.DocumentInvoice.PostsAsDecrease())
}

func TestInvoiceSettlement_RecognizedSubtractsForwarded(t *testing.T) {
	s := domain.NewInvoiceSettlement("inv-1", dec("200"), dec("150"), dec("40"))
	assert.True(t, dec("110").Equal(s.Recognized))
	assert.True(t, dec("50").Equal(s.Outstanding))
}
