package pricing

import (
	"github.com/sangkips/quote-engine/internal/domain/entity"
	"github.com/sangkips/quote-engine/internal/domain/enum"
	"github.com/sangkips/quote-engine/pkg/money"
	"github.com/shopspring/decimal"
)

// Totals is the document-level snapshot derived from a line set and config
type Totals struct {
	Subtotal              decimal.Decimal `json:"subtotal"`
	DiscountAmount        decimal.Decimal `json:"discount_amount"`
	SubtotalAfterDiscount decimal.Decimal `json:"subtotal_after_discount"`
	TaxAmount             decimal.Decimal `json:"tax_amount"`
	TotalAmount           decimal.Decimal `json:"total_amount"`
}

// Equal reports whether both snapshots carry the same amounts
func (t Totals) Equal(o Totals) bool {
	return t.Subtotal.Equal(o.Subtotal) &&
		t.DiscountAmount.Equal(o.DiscountAmount) &&
		t.SubtotalAfterDiscount.Equal(o.SubtotalAfterDiscount) &&
		t.TaxAmount.Equal(o.TaxAmount) &&
		t.TotalAmount.Equal(o.TotalAmount)
}

// ComputeTotals derives the document totals. Line totals are recomputed
// from quantity, price and discount rather than trusted from the items.
//
// Order is fixed: lines, subtotal, document discount, tax, grand total.
// Tax is charged on the discounted subtotal. A fixed discount is not
// capped at the subtotal, so totals may go negative.
func ComputeTotals(items []entity.LineItem, cfg entity.PricingConfig) Totals {
	subtotal := decimal.Zero
	for i := range items {
		line := ComputeLine(items[i].Quantity, items[i].UnitPrice, items[i].DiscountPercent)
		subtotal = subtotal.Add(line.LineTotal)
	}

	discount := DocumentDiscount(subtotal, cfg)
	afterDiscount := subtotal.Sub(discount)
	tax := money.Percent(afterDiscount, cfg.TaxRate)

	return Totals{
		Subtotal:              subtotal,
		DiscountAmount:        discount,
		SubtotalAfterDiscount: afterDiscount,
		TaxAmount:             tax,
		TotalAmount:           afterDiscount.Add(tax),
	}
}

// DocumentDiscount returns the document-level discount for subtotal
func DocumentDiscount(subtotal decimal.Decimal, cfg entity.PricingConfig) decimal.Decimal {
	if cfg.DiscountValue.IsZero() {
		return decimal.Zero
	}
	switch cfg.DiscountType {
	case enum.DiscountTypePercentage:
		return money.Percent(subtotal, cfg.DiscountValue)
	case enum.DiscountTypeFixed:
		return cfg.DiscountValue
	default:
		return decimal.Zero
	}
}
