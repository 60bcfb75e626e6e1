package response

import (
	"testing"

	"github.com/sangkips/quote-engine/internal/domain/entity"
	"github.com/sangkips/quote-engine/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocumentResponse_DerivesAndFormatsTotals(t *testing.T) {
	doc := &entity.Document{
		Reference: "QT-000001",
		Currency:  "$",
		Status:    enum.DocumentStatusDraft,
		PricingConfig: entity.PricingConfig{
			TaxRate:       decimal.NewFromInt(12),
			DiscountType:  enum.DiscountTypePercentage,
			DiscountValue: decimal.NewFromInt(10),
		},
		LineItems: []entity.LineItem{
			{Name: "Consulting", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(100)},
		},
	}

	resp := NewDocumentResponse(doc)

	assert.True(t, resp.Editable)
	require.Len(t, resp.LineItems, 1)
	assert.Equal(t, "$100.00", resp.LineItems[0].FormattedUnitPrice)
	assert.Equal(t, "$1,000.00", resp.Totals.Formatted.Subtotal)
	assert.Equal(t, "$100.00", resp.Totals.Formatted.DiscountAmount)
	assert.Equal(t, "$900.00", resp.Totals.Formatted.SubtotalAfterDiscount)
	assert.Equal(t, "$108.00", resp.Totals.Formatted.TaxAmount)
	assert.Equal(t, "$1,008.00", resp.Totals.Formatted.TotalAmount)
}

func TestNewDocumentResponse_LockedDocumentIsNotEditable(t *testing.T) {
	resp := NewDocumentResponse(&entity.Document{Status: enum.DocumentStatusPaid})
	assert.False(t, resp.Editable)
	assert.Empty(t, resp.LineItems)
	assert.Equal(t, "0.00", resp.Totals.Formatted.TotalAmount)
}

func TestNewDocumentSummaries(t *testing.T) {
	rows := NewDocumentSummaries([]entity.Document{
		{Reference: "SOA-000001", Currency: "KES ", TotalAmount: decimal.RequireFromString("-55")},
	})
	require.Len(t, rows, 1)
	assert.Equal(t, "-KES 55.00", rows[0].FormattedTotalAmount)
}
