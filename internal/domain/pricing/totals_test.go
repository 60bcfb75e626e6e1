package pricing

import (
	"testing"

	"github.com/sangkips/quote-engine/internal/domain/entity"
	"github.com/sangkips/quote-engine/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func line(qty, price, percent string) entity.LineItem {
	return entity.LineItem{Name: "row", Quantity: d(qty), UnitPrice: d(price), DiscountPercent: d(percent)}
}

func assertTotals(t *testing.T, got Totals, subtotal, discount, after, tax, total string) {
	t.Helper()
	assert.True(t, got.Subtotal.Equal(d(subtotal)), "subtotal = %s, want %s", got.Subtotal, subtotal)
	assert.True(t, got.DiscountAmount.Equal(d(discount)), "discount = %s, want %s", got.DiscountAmount, discount)
	assert.True(t, got.SubtotalAfterDiscount.Equal(d(after)), "after discount = %s, want %s", got.SubtotalAfterDiscount, after)
	assert.True(t, got.TaxAmount.Equal(d(tax)), "tax = %s, want %s", got.TaxAmount, tax)
	assert.True(t, got.TotalAmount.Equal(d(total)), "total = %s, want %s", got.TotalAmount, total)
}

func TestComputeTotals_EmptyCollection(t *testing.T) {
	got := ComputeTotals(nil, entity.PricingConfig{TaxRate: d("12")})
	assertTotals(t, got, "0", "0", "0", "0", "0")
}

func TestComputeTotals_PercentageDiscountBeforeTax(t *testing.T) {
	items := []entity.LineItem{line("10", "100", "0")}
	cfg := entity.PricingConfig{
		TaxRate:       d("12"),
		DiscountType:  enum.DiscountTypePercentage,
		DiscountValue: d("10"),
	}

	got := ComputeTotals(items, cfg)

	assertTotals(t, got, "1000", "100", "900", "108", "1008")
}

func TestComputeTotals_FixedDiscount(t *testing.T) {
	items := []entity.LineItem{line("2", "150", "0"), line("1", "200", "0")}
	cfg := entity.PricingConfig{
		DiscountType:  enum.DiscountTypeFixed,
		DiscountValue: d("50"),
	}

	got := ComputeTotals(items, cfg)

	assertTotals(t, got, "500", "50", "450", "0", "450")
}

func TestComputeTotals_FixedDiscountAboveSubtotalGoesNegative(t *testing.T) {
	items := []entity.LineItem{line("1", "100", "0")}
	cfg := entity.PricingConfig{
		TaxRate:       d("10"),
		DiscountType:  enum.DiscountTypeFixed,
		DiscountValue: d("150"),
	}

	got := ComputeTotals(items, cfg)

	assertTotals(t, got, "100", "150", "-50", "-5", "-55")
}

func TestComputeTotals_NoDiscountVariants(t *testing.T) {
	items := []entity.LineItem{line("4", "25", "0")}
	configs := map[string]entity.PricingConfig{
		"none with a value":    {DiscountType: enum.DiscountTypeNone, DiscountValue: d("30")},
		"percentage with zero": {DiscountType: enum.DiscountTypePercentage},
		"fixed with zero":      {DiscountType: enum.DiscountTypeFixed, DiscountValue: decimal.Zero},
	}

	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			assertTotals(t, ComputeTotals(items, cfg), "100", "0", "100", "0", "100")
		})
	}
}

func TestComputeTotals_IgnoresStaleDerivedFields(t *testing.T) {
	item := line("10", "100", "10")
	item.LineTotal = d("1")

	got := ComputeTotals([]entity.LineItem{item}, entity.PricingConfig{})

	assert.True(t, got.Subtotal.Equal(d("900")))
}

func TestComputeTotals_Idempotent(t *testing.T) {
	items := []entity.LineItem{line("3", "33.33", "5"), line("1", "0.1", "0")}
	cfg := entity.PricingConfig{TaxRate: d("7.5"), DiscountType: enum.DiscountTypePercentage, DiscountValue: d("2.5")}

	first := ComputeTotals(items, cfg)
	second := ComputeTotals(items, cfg)

	assert.True(t, first.Equal(second))
}

func TestComputeTotals_NoIntermediateRounding(t *testing.T) {
	// three lines of 0.333 each must not drift from 0.999
	items := []entity.LineItem{line("1", "0.333", "0"), line("1", "0.333", "0"), line("1", "0.333", "0")}

	got := ComputeTotals(items, entity.PricingConfig{})

	assert.Equal(t, "0.999", got.Subtotal.String())
}
