// Package pricing computes line and document totals and manages the ordered
// line-item collection of a document being edited.
package pricing

import (
	"github.com/sangkips/quote-engine/internal/domain/entity"
	"github.com/sangkips/quote-engine/pkg/money"
	"github.com/shopspring/decimal"
)

// LineAmounts holds the derived amounts of a single line item
type LineAmounts struct {
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

// ComputeLine derives the discount and total of one line. It does not clamp
// or round; out-of-range percentages produce whatever the arithmetic gives.
func ComputeLine(quantity, unitPrice, discountPercent decimal.Decimal) LineAmounts {
	gross := quantity.Mul(unitPrice)
	discount := money.Percent(gross, discountPercent)
	return LineAmounts{
		DiscountAmount: discount,
		LineTotal:      gross.Sub(discount),
	}
}

// Recompute overwrites the derived fields of item from its inputs
func Recompute(item *entity.LineItem) {
	amounts := ComputeLine(item.Quantity, item.UnitPrice, item.DiscountPercent)
	item.DiscountAmount = amounts.DiscountAmount
	item.LineTotal = amounts.LineTotal
}
