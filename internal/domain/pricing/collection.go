package pricing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/quote-engine/internal/domain/entity"
	"github.com/sangkips/quote-engine/internal/domain/enum"
	"github.com/sangkips/quote-engine/pkg/apperror"
	"github.com/sangkips/quote-engine/pkg/money"
	"github.com/shopspring/decimal"
)

var maxDiscountPercent = decimal.NewFromInt(100)

// LineItemInput is a candidate line item submitted by the editing form
type LineItemInput struct {
	ID              uuid.UUID
	ItemType        enum.ItemType
	Name            string
	Description     string
	SKU             string
	Variant         string
	Unit            string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
}

// Validate checks the candidate and returns a validation error listing
// every failing field, or nil.
func (in LineItemInput) Validate() error {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(in.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if in.ItemType != "" && !in.ItemType.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "item_type", Message: "must be product or service"})
	}
	if !in.Quantity.IsPositive() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "quantity", Message: "must be greater than 0"})
	} else if fe := StorableFieldError("quantity", in.Quantity); fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	}
	if !in.UnitPrice.IsPositive() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "unit_price", Message: "must be greater than 0"})
	} else if fe := StorableFieldError("unit_price", in.UnitPrice); fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	}
	if in.DiscountPercent.IsNegative() || in.DiscountPercent.GreaterThan(maxDiscountPercent) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "discount_percent", Message: "must be between 0 and 100"})
	} else if fe := StorableFieldError("discount_percent", in.DiscountPercent); fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}

	line := ComputeLine(in.Quantity, in.UnitPrice, in.DiscountPercent)
	if !money.FitsStorage(line.LineTotal) {
		return apperror.NewFieldError("line_total", "exceeds the largest storable amount")
	}
	return nil
}

// StorableFieldError returns a field error when d would be rounded or
// overflow on save, or nil.
func StorableFieldError(field string, d decimal.Decimal) *apperror.FieldError {
	switch money.CheckStorable(d) {
	case money.ErrTooPrecise:
		return &apperror.FieldError{Field: field, Message: fmt.Sprintf("must have at most %d decimal places", money.StoredScale)}
	case money.ErrTooLarge:
		return &apperror.FieldError{Field: field, Message: fmt.Sprintf("must have at most %d integer digits", money.StoredIntegerDigits)}
	}
	return nil
}

// apply copies the authored fields of the candidate onto item and
// recomputes its derived amounts. ID, DocumentID and SortOrder are untouched.
func (in LineItemInput) apply(item *entity.LineItem) {
	item.ItemType = in.ItemType
	if item.ItemType == "" {
		item.ItemType = enum.ItemTypeProduct
	}
	item.Name = strings.TrimSpace(in.Name)
	item.Description = in.Description
	item.SKU = in.SKU
	item.Variant = in.Variant
	item.Unit = in.Unit
	item.Quantity = in.Quantity
	item.UnitPrice = in.UnitPrice
	item.DiscountPercent = in.DiscountPercent
	Recompute(item)
}

// Collection owns the ordered line items of one document. After every
// successful mutation SortOrder runs 0..n-1 in slice order; a failed
// mutation leaves the collection as it was.
type Collection struct {
	items []entity.LineItem
}

// NewCollection seeds a collection from a loaded snapshot. Items are
// ordered by their stored SortOrder, derived amounts are recomputed and
// the order is renumbered densely.
func NewCollection(items []entity.LineItem) (*Collection, error) {
	seeded := make([]entity.LineItem, len(items))
	copy(seeded, items)
	sort.SliceStable(seeded, func(i, j int) bool {
		return seeded[i].SortOrder < seeded[j].SortOrder
	})

	seen := make(map[uuid.UUID]struct{}, len(seeded))
	for i := range seeded {
		if id := seeded[i].ID; id != uuid.Nil {
			if _, dup := seen[id]; dup {
				return nil, apperror.NewFieldError("id", "duplicates an existing line item")
			}
			seen[id] = struct{}{}
		}
		Recompute(&seeded[i])
	}

	c := &Collection{items: seeded}
	c.renumber()
	return c, nil
}

// Len returns the number of line items
func (c *Collection) Len() int {
	return len(c.items)
}

// Items returns a copy of the line items in display order
func (c *Collection) Items() []entity.LineItem {
	out := make([]entity.LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// At returns a copy of the item at index
func (c *Collection) At(index int) (entity.LineItem, error) {
	if err := c.checkIndex(index); err != nil {
		return entity.LineItem{}, err
	}
	return c.items[index], nil
}

// IndexOf returns the position of the item with the given id
func (c *Collection) IndexOf(id uuid.UUID) (int, bool) {
	if id == uuid.Nil {
		return -1, false
	}
	for i := range c.items {
		if c.items[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// Add validates the candidate and appends it at the end
func (c *Collection) Add(input LineItemInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	if _, exists := c.IndexOf(input.ID); exists {
		return apperror.NewFieldError("id", "duplicates an existing line item")
	}

	item := entity.LineItem{ID: input.ID}
	input.apply(&item)
	item.SortOrder = len(c.items)
	c.items = append(c.items, item)
	return nil
}

// Update validates the candidate and replaces the item at index in place,
// keeping its identity and position.
func (c *Collection) Update(index int, input LineItemInput) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	if err := input.Validate(); err != nil {
		return err
	}

	item := c.items[index]
	input.apply(&item)
	c.items[index] = item
	return nil
}

// Remove deletes the item at index and renumbers the rest
func (c *Collection) Remove(index int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}

	c.items = append(c.items[:index:index], c.items[index+1:]...)
	c.renumber()
	return nil
}

// Move swaps the item at index with its neighbour in the given direction.
// Moving the first item up or the last item down is a no-op.
func (c *Collection) Move(index int, direction enum.MoveDirection) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	if !direction.IsValid() {
		return apperror.NewFieldError("direction", "must be up or down")
	}

	target := index - 1
	if direction == enum.MoveDown {
		target = index + 1
	}
	if target < 0 || target >= len(c.items) {
		return nil
	}

	c.items[index], c.items[target] = c.items[target], c.items[index]
	c.renumber()
	return nil
}

func (c *Collection) checkIndex(index int) error {
	if index < 0 || index >= len(c.items) {
		return apperror.NewNotFoundError("Line item")
	}
	return nil
}

func (c *Collection) renumber() {
	for i := range c.items {
		c.items[i].SortOrder = i
	}
}
