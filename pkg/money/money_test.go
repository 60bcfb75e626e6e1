package money

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"integer", "42", "42", nil},
		{"decimal with spaces", "  12.50 ", "12.5", nil},
		{"grouped thousands", "1,234,567.89", "1234567.89", nil},
		{"underscore grouping", "10_000", "10000", nil},
		{"empty", "", "0", ErrInvalidAmount},
		{"letters", "abc", "0", ErrInvalidAmount},
		{"nan", "NaN", "0", ErrInvalidAmount},
		{"infinity", "Inf", "0", ErrInvalidAmount},
		{"negative", "-3", "0", ErrNegativeAmount},
		{"tiny exponent", "1e-20000000", "0", ErrInvalidAmount},
		{"huge exponent", "1e20000000", "0", ErrInvalidAmount},
		{"overlong input", "1" + strings.Repeat("0", 80), "0", ErrInvalidAmount},
		{"scientific within bounds", "1.5e3", "1500", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestCoerce(t *testing.T) {
	assert.True(t, Coerce("7.25").Equal(decimal.RequireFromString("7.25")))
	assert.True(t, Coerce("").IsZero())
	assert.True(t, Coerce("twelve").IsZero())
	assert.True(t, Coerce("-5").Equal(decimal.NewFromInt(-5)), "sign is preserved")
	assert.True(t, Coerce("1e-20000000").IsZero())
}

func TestCheckStorable(t *testing.T) {
	tests := []struct {
		input   string
		wantErr error
	}{
		{"0.000001", nil},
		{"99999999999999.999999", nil},
		{"1.500000000", nil},
		{"0.0000004", ErrTooPrecise},
		{"100000000000000", ErrTooLarge},
		{"-100000000000000", ErrTooLarge},
		{"1e15", ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := CheckStorable(decimal.RequireFromString(tt.input))
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPercent(t *testing.T) {
	got := Percent(decimal.NewFromInt(1000), decimal.NewFromInt(12))
	assert.True(t, got.Equal(decimal.NewFromInt(120)))

	// a third of a percent stays exact until formatting
	got = Percent(decimal.RequireFromString("0.01"), decimal.RequireFromString("33.3"))
	assert.Equal(t, "0.00333", got.String())
}

func TestFormat(t *testing.T) {
	tests := []struct {
		amount string
		symbol string
		want   string
	}{
		{"0", "$", "$0.00"},
		{"5", "$", "$5.00"},
		{"999.9", "$", "$999.90"},
		{"1000", "$", "$1,000.00"},
		{"1234567.891", "₱", "₱1,234,567.89"},
		{"100000", "", "100,000.00"},
		{"-1500.5", "$", "-$1,500.50"},
		{"2.345", "$", "$2.34"},
		{"2.355", "$", "$2.36"},
		{"-0.001", "$", "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			assert.Equal(t, tt.want, Format(amount, tt.symbol))
			assert.Equal(t, tt.amount, amount.String(), "formatting must not alter the value")
		})
	}
}
