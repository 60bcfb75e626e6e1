package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/quote-engine/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PricingConfig holds the document-level pricing parameters
type PricingConfig struct {
	TaxRate       decimal.Decimal   `gorm:"type:decimal(20,6);default:0" json:"tax_rate"`
	DiscountType  enum.DiscountType `gorm:"size:20;default:''" json:"discount_type"`
	DiscountValue decimal.Decimal   `gorm:"type:decimal(20,6);default:0" json:"discount_value"`
}

// Document represents a quote or statement of account together with its line items
type Document struct {
	ID             uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	Type           enum.DocumentType   `gorm:"size:20;not null;index" json:"type"`
	Reference      string              `gorm:"size:100;unique;not null" json:"reference"`
	CustomerName   string              `gorm:"size:255" json:"customer_name"`
	Currency       string              `gorm:"size:10" json:"currency"`
	Status         enum.DocumentStatus `gorm:"default:0;index" json:"status"`
	PricingConfig  `gorm:"embedded"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(20,6);default:0" json:"subtotal"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(20,6);default:0" json:"discount_amount"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(20,6);default:0" json:"tax_amount"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(20,6);default:0" json:"total_amount"`
	Note           *string         `gorm:"type:text" json:"note,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	LineItems []LineItem `gorm:"foreignKey:DocumentID" json:"line_items"`
}

// BeforeCreate generates a UUID before creating a new document
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Document model
func (Document) TableName() string {
	return "documents"
}

// Config returns a copy of the document pricing parameters
func (d *Document) Config() PricingConfig {
	return d.PricingConfig
}
