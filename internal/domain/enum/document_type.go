package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DocumentType distinguishes quotes from statements of account
type DocumentType string

const (
	DocumentTypeQuote     DocumentType = "quote"
	DocumentTypeStatement DocumentType = "statement"
)

// IsValid reports whether t is a known document type
func (t DocumentType) IsValid() bool {
	return t == DocumentTypeQuote || t == DocumentTypeStatement
}

// ReferencePrefix returns the prefix used for generated reference numbers
func (t DocumentType) ReferencePrefix() string {
	if t == DocumentTypeStatement {
		return "SOA"
	}
	return "QT"
}

func (t *DocumentType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == "" {
		*t = DocumentTypeQuote
		return nil
	}
	if !DocumentType(str).IsValid() {
		return fmt.Errorf("unknown document type %q", str)
	}
	*t = DocumentType(str)
	return nil
}

func (t DocumentType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *DocumentType) Scan(value interface{}) error {
	if value == nil {
		*t = DocumentTypeQuote
		return nil
	}
	str, err := scanText("DocumentType", value)
	if err != nil {
		return err
	}
	if !DocumentType(str).IsValid() {
		return fmt.Errorf("unknown document type %q", str)
	}
	*t = DocumentType(str)
	return nil
}
