// Package money parses user-entered amounts and formats them for display.
//
// Amounts are carried as exact decimals everywhere; rounding to cents
// happens in Format only.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount is returned when the input is not a finite number.
	ErrInvalidAmount = errors.New("money: invalid amount")
	// ErrNegativeAmount is returned by Parse for values below zero.
	ErrNegativeAmount = errors.New("money: negative amount")
	// ErrTooPrecise is returned by CheckStorable for more than StoredScale fraction digits.
	ErrTooPrecise = errors.New("money: too many decimal places")
	// ErrTooLarge is returned by CheckStorable for more than StoredIntegerDigits integer digits.
	ErrTooLarge = errors.New("money: amount too large")
)

const (
	// StoredScale and StoredIntegerDigits match the decimal(20,6) columns.
	StoredScale         = 6
	StoredIntegerDigits = 14

	maxInputLength = 64
	maxExponent    = 32
)

var maxStored = decimal.New(1, StoredIntegerDigits)

// Parse converts a user-entered string into a finite, non-negative decimal.
// Surrounding whitespace and the grouping characters ',' and '_' are ignored.
func Parse(s string) (decimal.Decimal, error) {
	d, err := parse(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	return d, nil
}

// Coerce converts s leniently: anything that is not a finite number
// becomes zero. The sign is kept so callers can reject negatives.
func Coerce(s string) decimal.Decimal {
	d, err := parse(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(",", "", "_", "").Replace(s)
	if s == "" || len(s) > maxInputLength {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	// Arithmetic rescales to the smallest exponent in play, so extreme
	// exponents are refused before they reach any Add or Format.
	if exp := d.Exponent(); exp < -maxExponent || exp > maxExponent {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// CheckStorable reports whether d fits a decimal(20,6) column without
// rounding or overflow.
func CheckStorable(d decimal.Decimal) error {
	if !d.Equal(d.Truncate(StoredScale)) {
		return ErrTooPrecise
	}
	if !FitsStorage(d) {
		return ErrTooLarge
	}
	return nil
}

// FitsStorage reports whether the integer part of d fits a decimal(20,6)
// column. Extra fraction digits are ignored.
func FitsStorage(d decimal.Decimal) bool {
	return d.Abs().LessThan(maxStored)
}

// Percent returns amount * rate / 100 without intermediate rounding.
func Percent(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Shift(-2)
}

// Format renders amount as {symbol}{amount} with exactly two fraction
// digits and comma thousands grouping, e.g. "$1,234.50" or "-$12.00".
// Half-way values round to even.
func Format(amount decimal.Decimal, symbol string) string {
	rounded := amount.RoundBank(2)
	neg := rounded.IsNegative()
	if neg {
		rounded = rounded.Neg()
	}

	fixed := rounded.StringFixedBank(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.Grow(len(fixed) + len(intPart)/3 + len(symbol) + 1)
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(symbol)

	rem := len(intPart) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(intPart[:rem])
	for i := rem; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteByte('.')
	b.WriteString(frac)

	return b.String()
}
