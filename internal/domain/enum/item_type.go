package enum

import (
	"database/sql/driver"
	"fmt"
)

// ItemType is the kind of purchasable row on a document
type ItemType string

const (
	ItemTypeProduct ItemType = "product"
	ItemTypeService ItemType = "service"
)

// IsValid reports whether t is a known item type
func (t ItemType) IsValid() bool {
	return t == ItemTypeProduct || t == ItemTypeService
}

func (t ItemType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *ItemType) Scan(value interface{}) error {
	if value == nil {
		*t = ItemTypeProduct
		return nil
	}
	str, err := scanText("ItemType", value)
	if err != nil {
		return err
	}
	if !ItemType(str).IsValid() {
		return fmt.Errorf("unknown item type %q", str)
	}
	*t = ItemType(str)
	return nil
}

// MoveDirection is the direction a line item is shifted when reordering
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// IsValid reports whether d is up or down
func (d MoveDirection) IsValid() bool {
	return d == MoveUp || d == MoveDown
}
