package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DiscountType describes how a document-level discount value is applied.
// The zero value behaves as no discount.
type DiscountType string

const (
	DiscountTypeNone       DiscountType = ""
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// IsValid reports whether t is a known discount type
func (t DiscountType) IsValid() bool {
	switch t {
	case DiscountTypeNone, DiscountTypePercentage, DiscountTypeFixed:
		return true
	}
	return false
}

func (t DiscountType) MarshalJSON() ([]byte, error) {
	if t == DiscountTypeNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(t))
}

// UnmarshalJSON accepts null, "", "none", "percentage" and "fixed"
func (t *DiscountType) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = DiscountTypeNone
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == "none" {
		str = ""
	}
	if !DiscountType(str).IsValid() {
		return fmt.Errorf("unknown discount type %q", str)
	}
	*t = DiscountType(str)
	return nil
}

func (t DiscountType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *DiscountType) Scan(value interface{}) error {
	if value == nil {
		*t = DiscountTypeNone
		return nil
	}
	str, err := scanText("DiscountType", value)
	if err != nil {
		return err
	}
	if !DiscountType(str).IsValid() {
		return fmt.Errorf("unknown discount type %q", str)
	}
	*t = DiscountType(str)
	return nil
}
