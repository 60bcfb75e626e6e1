package service

import (
	"github.com/sangkips/quote-engine/internal/domain/entity"
	"github.com/sangkips/quote-engine/internal/domain/enum"
	"github.com/sangkips/quote-engine/internal/domain/lifecycle"
	"github.com/sangkips/quote-engine/internal/domain/pricing"
	"github.com/sangkips/quote-engine/pkg/apperror"
	"github.com/sangkips/quote-engine/pkg/money"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var maxPercentage = decimal.NewFromInt(100)

// Editor is a single editing session over one document. It owns the line
// items and pricing config while the document is open, refuses changes
// outside Draft, and reports fresh totals after every successful change.
// An Editor is not safe for concurrent use.
type Editor struct {
	header   entity.Document
	status   enum.DocumentStatus
	config   entity.PricingConfig
	items    *pricing.Collection
	notifier *pricing.Notifier
	totals   pricing.Totals
	logger   *zap.Logger
}

// NewEditor seeds an editing session from a loaded document snapshot
func NewEditor(doc *entity.Document, logger *zap.Logger) (*Editor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	items, err := pricing.NewCollection(doc.LineItems)
	if err != nil {
		return nil, err
	}

	header := *doc
	header.LineItems = nil

	e := &Editor{
		header:   header,
		status:   doc.Status,
		config:   doc.Config(),
		items:    items,
		notifier: pricing.NewNotifier(nil),
		logger:   logger.With(zap.String("document_id", doc.ID.String()), zap.String("reference", doc.Reference)),
	}
	e.totals = pricing.ComputeTotals(e.items.Items(), e.config)
	return e, nil
}

// OnTotals registers the observer that receives each recalculated snapshot
func (e *Editor) OnTotals(observer pricing.Observer) {
	e.notifier.Subscribe(observer)
}

// Status returns the current document status
func (e *Editor) Status() enum.DocumentStatus {
	return e.status
}

// Config returns the current pricing config
func (e *Editor) Config() entity.PricingConfig {
	return e.config
}

// LineItems returns a copy of the line items in display order
func (e *Editor) LineItems() []entity.LineItem {
	return e.items.Items()
}

// Totals returns the snapshot for the current lines and config
func (e *Editor) Totals() pricing.Totals {
	return e.totals
}

// AddLineItem validates and appends a line item
func (e *Editor) AddLineItem(input pricing.LineItemInput) error {
	return e.mutate("add_line_item", func() error {
		return e.items.Add(input)
	})
}

// UpdateLineItem validates and replaces the line item at index
func (e *Editor) UpdateLineItem(index int, input pricing.LineItemInput) error {
	return e.mutate("update_line_item", func() error {
		return e.items.Update(index, input)
	})
}

// RemoveLineItem deletes the line item at index
func (e *Editor) RemoveLineItem(index int) error {
	return e.mutate("remove_line_item", func() error {
		return e.items.Remove(index)
	})
}

// MoveLineItem shifts the line item at index one position up or down
func (e *Editor) MoveLineItem(index int, direction enum.MoveDirection) error {
	return e.mutate("move_line_item", func() error {
		return e.items.Move(index, direction)
	})
}

// SetPricingConfig replaces the document tax rate and discount
func (e *Editor) SetPricingConfig(cfg entity.PricingConfig) error {
	return e.mutate("set_pricing_config", func() error {
		if err := ValidatePricingConfig(cfg); err != nil {
			return err
		}
		e.config = cfg
		return nil
	})
}

// ChangeStatus performs a status-only transition. It is the one change
// permitted once a document has left Draft.
func (e *Editor) ChangeStatus(to enum.DocumentStatus) error {
	if err := lifecycle.Transition(e.status, to); err != nil {
		e.logger.Debug("status change rejected",
			zap.Stringer("from", e.status),
			zap.Stringer("to", to),
			zap.Error(err),
		)
		return err
	}
	e.logger.Debug("status changed", zap.Stringer("from", e.status), zap.Stringer("to", to))
	e.status = to
	return nil
}

// Snapshot merges the session state into a new document ready to persist
func (e *Editor) Snapshot() *entity.Document {
	doc := e.header
	doc.Status = e.status
	doc.PricingConfig = e.config
	doc.Subtotal = e.totals.Subtotal
	doc.DiscountAmount = e.totals.DiscountAmount
	doc.TaxAmount = e.totals.TaxAmount
	doc.TotalAmount = e.totals.TotalAmount

	doc.LineItems = e.items.Items()
	for i := range doc.LineItems {
		doc.LineItems[i].DocumentID = doc.ID
	}
	return &doc
}

func (e *Editor) mutate(op string, fn func() error) error {
	if err := lifecycle.EnsureEditable(e.status); err != nil {
		e.logger.Debug("edit rejected on locked document", zap.String("op", op), zap.Stringer("status", e.status))
		return err
	}
	prevItems, prevConfig := e.items.Items(), e.config
	if err := fn(); err != nil {
		e.logger.Debug("edit rejected", zap.String("op", op), zap.Error(err))
		return err
	}
	if err := checkTotalsStorable(pricing.ComputeTotals(e.items.Items(), e.config)); err != nil {
		e.items, _ = pricing.NewCollection(prevItems)
		e.config = prevConfig
		e.logger.Debug("edit rejected", zap.String("op", op), zap.Error(err))
		return err
	}

	e.totals = e.notifier.Recalculate(e.items.Items(), e.config)
	e.logger.Debug("totals recalculated",
		zap.String("op", op),
		zap.Int("line_items", e.items.Len()),
		zap.Stringer("subtotal", e.totals.Subtotal),
		zap.Stringer("total_amount", e.totals.TotalAmount),
	)
	return nil
}

// checkTotalsStorable rejects a change whose totals would overflow the
// stored amount columns
func checkTotalsStorable(t pricing.Totals) error {
	amounts := []struct {
		field  string
		amount decimal.Decimal
	}{
		{"subtotal", t.Subtotal},
		{"discount_amount", t.DiscountAmount},
		{"tax_amount", t.TaxAmount},
		{"total_amount", t.TotalAmount},
	}
	for _, a := range amounts {
		if !money.FitsStorage(a.amount) {
			return apperror.NewFieldError(a.field, "exceeds the largest storable amount")
		}
	}
	return nil
}

// ValidatePricingConfig checks tax rate and discount settings
func ValidatePricingConfig(cfg entity.PricingConfig) error {
	var fieldErrors []apperror.FieldError
	if cfg.TaxRate.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "tax_rate", Message: "must be 0 or greater"})
	} else if fe := pricing.StorableFieldError("tax_rate", cfg.TaxRate); fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	}
	if !cfg.DiscountType.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "discount_type", Message: "must be percentage, fixed or empty"})
	}
	if cfg.DiscountValue.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "discount_value", Message: "must be 0 or greater"})
	} else if cfg.DiscountType == enum.DiscountTypePercentage && cfg.DiscountValue.GreaterThan(maxPercentage) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "discount_value", Message: "must be between 0 and 100"})
	} else if fe := pricing.StorableFieldError("discount_value", cfg.DiscountValue); fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
