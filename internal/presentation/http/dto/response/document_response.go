package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/quote-engine/internal/domain/entity"
	"github.com/sangkips/quote-engine/internal/domain/enum"
	"github.com/sangkips/quote-engine/internal/domain/lifecycle"
	"github.com/sangkips/quote-engine/internal/domain/pricing"
	"github.com/sangkips/quote-engine/pkg/money"
	"github.com/shopspring/decimal"
)

// FormattedTotals carries the display strings for a totals snapshot
type FormattedTotals struct {
	Subtotal              string `json:"subtotal"`
	DiscountAmount        string `json:"discount_amount"`
	SubtotalAfterDiscount string `json:"subtotal_after_discount"`
	TaxAmount             string `json:"tax_amount"`
	TotalAmount           string `json:"total_amount"`
}

// TotalsResponse is a totals snapshot with its formatted rendering
type TotalsResponse struct {
	pricing.Totals
	Formatted FormattedTotals `json:"formatted"`
}

// NewTotalsResponse formats a snapshot with the given currency symbol
func NewTotalsResponse(t pricing.Totals, symbol string) TotalsResponse {
	return TotalsResponse{
		Totals: t,
		Formatted: FormattedTotals{
			Subtotal:              money.Format(t.Subtotal, symbol),
			DiscountAmount:        money.Format(t.DiscountAmount, symbol),
			SubtotalAfterDiscount: money.Format(t.SubtotalAfterDiscount, symbol),
			TaxAmount:             money.Format(t.TaxAmount, symbol),
			TotalAmount:           money.Format(t.TotalAmount, symbol),
		},
	}
}

// LineItemResponse is a line item with display strings for its amounts
type LineItemResponse struct {
	entity.LineItem
	FormattedUnitPrice      string `json:"formatted_unit_price"`
	FormattedDiscountAmount string `json:"formatted_discount_amount"`
	FormattedLineTotal      string `json:"formatted_line_total"`
}

// NewLineItemResponses formats a line set in display order
func NewLineItemResponses(items []entity.LineItem, symbol string) []LineItemResponse {
	out := make([]LineItemResponse, len(items))
	for i, item := range items {
		out[i] = LineItemResponse{
			LineItem:                item,
			FormattedUnitPrice:      money.Format(item.UnitPrice, symbol),
			FormattedDiscountAmount: money.Format(item.DiscountAmount, symbol),
			FormattedLineTotal:      money.Format(item.LineTotal, symbol),
		}
	}
	return out
}

// DocumentResponse is the full editing view of a document
type DocumentResponse struct {
	ID           uuid.UUID            `json:"id"`
	Type         enum.DocumentType    `json:"type"`
	Reference    string               `json:"reference"`
	CustomerName string               `json:"customer_name"`
	Currency     string               `json:"currency"`
	Status       enum.DocumentStatus  `json:"status"`
	Editable     bool                 `json:"editable"`
	Pricing      entity.PricingConfig `json:"pricing"`
	Note         *string              `json:"note,omitempty"`
	LineItems    []LineItemResponse   `json:"line_items"`
	Totals       TotalsResponse       `json:"totals"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// NewDocumentResponse builds the editing view. Totals are derived from the
// line items and config rather than read back from the stored columns.
func NewDocumentResponse(doc *entity.Document) DocumentResponse {
	return DocumentResponse{
		ID:           doc.ID,
		Type:         doc.Type,
		Reference:    doc.Reference,
		CustomerName: doc.CustomerName,
		Currency:     doc.Currency,
		Status:       doc.Status,
		Editable:     lifecycle.CanEdit(doc.Status),
		Pricing:      doc.Config(),
		Note:         doc.Note,
		LineItems:    NewLineItemResponses(doc.LineItems, doc.Currency),
		Totals:       NewTotalsResponse(pricing.ComputeTotals(doc.LineItems, doc.Config()), doc.Currency),
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}

// DocumentSummary is the list view of a document
type DocumentSummary struct {
	ID                   uuid.UUID           `json:"id"`
	Type                 enum.DocumentType   `json:"type"`
	Reference            string              `json:"reference"`
	CustomerName         string              `json:"customer_name"`
	Status               enum.DocumentStatus `json:"status"`
	TotalAmount          decimal.Decimal     `json:"total_amount"`
	FormattedTotalAmount string              `json:"formatted_total_amount"`
	CreatedAt            time.Time           `json:"created_at"`
}

// NewDocumentSummaries builds list rows from stored documents
func NewDocumentSummaries(docs []entity.Document) []DocumentSummary {
	out := make([]DocumentSummary, len(docs))
	for i, doc := range docs {
		out[i] = DocumentSummary{
			ID:                   doc.ID,
			Type:                 doc.Type,
			Reference:            doc.Reference,
			CustomerName:         doc.CustomerName,
			Status:               doc.Status,
			TotalAmount:          doc.TotalAmount,
			FormattedTotalAmount: money.Format(doc.TotalAmount, doc.Currency),
			CreatedAt:            doc.CreatedAt,
		}
	}
	return out
}

// PreviewResponse is the computed state of an unsaved form
type PreviewResponse struct {
	LineItems []LineItemResponse `json:"line_items"`
	Totals    TotalsResponse     `json:"totals"`
}
