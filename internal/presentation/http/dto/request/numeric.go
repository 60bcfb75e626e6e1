package request

import (
	"bytes"
	"encoding/json"

	"github.com/sangkips/quote-engine/pkg/money"
	"github.com/shopspring/decimal"
)

// NumericString holds a form amount that may arrive as a JSON number or
// a JSON string. Anything that is not a finite number reads as zero.
type NumericString string

func (n *NumericString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericString(s)
		return nil
	}
	*n = NumericString(data)
	return nil
}

// Decimal returns the coerced value
func (n NumericString) Decimal() decimal.Decimal {
	return money.Coerce(string(n))
}
