package request

import (
	"encoding/json"
	"testing"

	"github.com/sangkips/quote-engine/internal/domain/enum"
	"github.com/sangkips/quote-engine/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericString_AcceptsNumbersAndStrings(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"number", `{"quantity": 2.5}`, "2.5"},
		{"string", `{"quantity": "1,200.50"}`, "1200.5"},
		{"garbage string", `{"quantity": "abc"}`, "0"},
		{"null", `{"quantity": null}`, "0"},
		{"missing", `{}`, "0"},
		{"negative keeps sign", `{"quantity": "-3"}`, "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var row LineItemRequest
			require.NoError(t, json.Unmarshal([]byte(tt.json), &row))
			assert.True(t, row.Quantity.Decimal().Equal(decimal.RequireFromString(tt.want)), "got %s", row.Quantity.Decimal())
		})
	}
}

func TestLineItemRequest_ToInput(t *testing.T) {
	var row LineItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"item_type": "service",
		"name": "Consulting",
		"quantity": "10",
		"unit_price": 100,
		"discount_percent": "10"
	}`), &row))

	in, err := row.ToInput()
	require.NoError(t, err)
	assert.Equal(t, enum.ItemTypeService, in.ItemType)
	assert.True(t, in.Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, in.UnitPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, in.DiscountPercent.Equal(decimal.NewFromInt(10)))

	row.ID = "not-a-uuid"
	_, err = row.ToInput()
	assert.True(t, apperror.IsValidation(err))
}

func TestToInputs_QualifiesRowPosition(t *testing.T) {
	_, err := ToInputs([]LineItemRequest{{Name: "ok"}, {ID: "bad"}})
	require.Error(t, err)
	assert.Equal(t, "items[1].id", apperror.GetAppError(err).Errors[0].Field)
}

func TestPricingRequest_ToConfig(t *testing.T) {
	var req PricingRequest
	require.NoError(t, json.Unmarshal([]byte(`{"tax_rate": "12", "discount_type": "none", "discount_value": 5}`), &req))

	cfg := req.ToConfig()
	assert.True(t, cfg.TaxRate.Equal(decimal.NewFromInt(12)))
	assert.Equal(t, enum.DiscountTypeNone, cfg.DiscountType)
	assert.True(t, cfg.DiscountValue.Equal(decimal.NewFromInt(5)))
}
