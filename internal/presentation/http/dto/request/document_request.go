package request

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/quote-engine/internal/domain/entity"
	"github.com/sangkips/quote-engine/internal/domain/enum"
	"github.com/sangkips/quote-engine/internal/domain/pricing"
	"github.com/sangkips/quote-engine/pkg/apperror"
)

// LineItemRequest represents one row of the editing form
type LineItemRequest struct {
	ID              string        `json:"id"`
	ItemType        enum.ItemType `json:"item_type"`
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	SKU             string        `json:"sku" binding:"max=100"`
	Variant         string        `json:"variant" binding:"max=100"`
	Unit            string        `json:"unit" binding:"max=50"`
	Quantity        NumericString `json:"quantity"`
	UnitPrice       NumericString `json:"unit_price"`
	DiscountPercent NumericString `json:"discount_percent"`
}

// ToInput converts the row into an engine candidate
func (r LineItemRequest) ToInput() (pricing.LineItemInput, error) {
	var id uuid.UUID
	if raw := strings.TrimSpace(r.ID); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return pricing.LineItemInput{}, apperror.NewFieldError("id", "must be a valid UUID")
		}
		id = parsed
	}

	return pricing.LineItemInput{
		ID:              id,
		ItemType:        r.ItemType,
		Name:            r.Name,
		Description:     r.Description,
		SKU:             r.SKU,
		Variant:         r.Variant,
		Unit:            r.Unit,
		Quantity:        r.Quantity.Decimal(),
		UnitPrice:       r.UnitPrice.Decimal(),
		DiscountPercent: r.DiscountPercent.Decimal(),
	}, nil
}

// PricingRequest represents the document-level pricing controls
type PricingRequest struct {
	TaxRate       NumericString     `json:"tax_rate"`
	DiscountType  enum.DiscountType `json:"discount_type"`
	DiscountValue NumericString     `json:"discount_value"`
}

// ToConfig converts the controls into a pricing config
func (r PricingRequest) ToConfig() entity.PricingConfig {
	return entity.PricingConfig{
		TaxRate:       r.TaxRate.Decimal(),
		DiscountType:  r.DiscountType,
		DiscountValue: r.DiscountValue.Decimal(),
	}
}

// CreateDocumentRequest represents a document creation request
type CreateDocumentRequest struct {
	Type         enum.DocumentType `json:"type"`
	CustomerName string            `json:"customer_name" binding:"max=255"`
	Currency     string            `json:"currency" binding:"max=10"`
	Note         *string           `json:"note"`
	Pricing      *PricingRequest   `json:"pricing"`
	Items        []LineItemRequest `json:"items" binding:"dive"`
}

// UpdateDetailsRequest represents a change to the customer or note of a draft
type UpdateDetailsRequest struct {
	CustomerName *string `json:"customer_name" binding:"omitempty,max=255"`
	Note         *string `json:"note"`
}

// ChangeStatusRequest represents a status-only change
type ChangeStatusRequest struct {
	Status *enum.DocumentStatus `json:"status" binding:"required"`
}

// MoveLineItemRequest represents a reorder of one line item
type MoveLineItemRequest struct {
	Direction enum.MoveDirection `json:"direction" binding:"required"`
}

// PreviewRequest represents an unsaved form submitted for totals
type PreviewRequest struct {
	Pricing PricingRequest    `json:"pricing"`
	Items   []LineItemRequest `json:"items" binding:"dive"`
}

// DocumentFilterRequest represents document list query parameters
type DocumentFilterRequest struct {
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
	Search    string `form:"search"`
	Status    string `form:"status"`
	Type      string `form:"type"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}

// ToInputs converts every row, qualifying id errors with the row position
func ToInputs(rows []LineItemRequest) ([]pricing.LineItemInput, error) {
	inputs := make([]pricing.LineItemInput, len(rows))
	for i, row := range rows {
		in, err := row.ToInput()
		if err != nil {
			return nil, apperror.NewFieldError("items["+strconv.Itoa(i)+"].id", "must be a valid UUID")
		}
		inputs[i] = in
	}
	return inputs, nil
}
