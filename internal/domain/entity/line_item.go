package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/quote-engine/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LineItem represents one purchasable row within a document.
// DiscountAmount and LineTotal are derived and recomputed on every change.
type LineItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	DocumentID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"document_id"`
	ItemType        enum.ItemType   `gorm:"size:20;not null" json:"item_type"`
	Name            string          `gorm:"size:255;not null" json:"name"`
	Description     string          `gorm:"type:text" json:"description,omitempty"`
	SKU             string          `gorm:"size:100" json:"sku,omitempty"`
	Variant         string          `gorm:"size:100" json:"variant,omitempty"`
	Unit            string          `gorm:"size:50" json:"unit,omitempty"`
	Quantity        decimal.Decimal `gorm:"type:decimal(20,6);not null" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(20,6);not null" json:"unit_price"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(20,6);default:0" json:"discount_percent"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(20,6);default:0" json:"discount_amount"`
	LineTotal       decimal.Decimal `gorm:"type:decimal(20,6);default:0" json:"line_total"`
	SortOrder       int             `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new line item
func (li *LineItem) BeforeCreate(tx *gorm.DB) error {
	if li.ID == uuid.Nil {
		li.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LineItem model
func (LineItem) TableName() string {
	return "line_items"
}

// IsPersisted reports whether the item has been assigned an identifier
func (li *LineItem) IsPersisted() bool {
	return li.ID != uuid.Nil
}
