package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/quote-engine/internal/domain/entity"
	"github.com/sangkips/quote-engine/internal/domain/enum"
	"github.com/sangkips/quote-engine/internal/domain/lifecycle"
	"github.com/sangkips/quote-engine/internal/domain/pricing"
	"github.com/sangkips/quote-engine/internal/domain/repository"
	"github.com/sangkips/quote-engine/pkg/apperror"
	"github.com/sangkips/quote-engine/pkg/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const maxReferenceAttempts = 5

// DocumentDefaults are applied to documents created without explicit settings
type DocumentDefaults struct {
	Currency string
	TaxRate  decimal.Decimal
}

// DocumentService handles quote and statement operations. Every edit
// opens an Editor over the stored document, applies one change and
// persists the resulting snapshot.
type DocumentService struct {
	documentRepo repository.DocumentRepository
	defaults     DocumentDefaults
	logger       *zap.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(documentRepo repository.DocumentRepository, defaults DocumentDefaults, logger *zap.Logger) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{
		documentRepo: documentRepo,
		defaults:     defaults,
		logger:       logger,
	}
}

// CreateDocumentInput represents the input for creating a document
type CreateDocumentInput struct {
	Type         enum.DocumentType
	CustomerName string
	Currency     string
	Note         *string
	Pricing      *entity.PricingConfig
	Items        []pricing.LineItemInput
}

// CreateDocument creates a new draft with a fresh reference number
func (s *DocumentService) CreateDocument(ctx context.Context, input *CreateDocumentInput) (*entity.Document, error) {
	docType := input.Type
	if docType == "" {
		docType = enum.DocumentTypeQuote
	}
	if !docType.IsValid() {
		return nil, apperror.NewFieldError("type", "must be quote or statement")
	}

	currency := input.Currency
	if currency == "" {
		currency = s.defaults.Currency
	}

	cfg := entity.PricingConfig{TaxRate: s.defaults.TaxRate}
	if input.Pricing != nil {
		cfg = *input.Pricing
	}

	draft := &entity.Document{
		Type:         docType,
		CustomerName: strings.TrimSpace(input.CustomerName),
		Currency:     currency,
		Status:       enum.DocumentStatusDraft,
		Note:         input.Note,
	}

	editor, err := NewEditor(draft, s.logger)
	if err != nil {
		return nil, err
	}
	if err := editor.SetPricingConfig(cfg); err != nil {
		return nil, err
	}
	for i, item := range input.Items {
		if err := editor.AddLineItem(item); err != nil {
			return nil, prefixFieldErrors(err, fmt.Sprintf("items[%d]", i))
		}
	}

	doc := editor.Snapshot()
	if err := s.createWithReference(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		zap.String("document_id", doc.ID.String()),
		zap.String("reference", doc.Reference),
		zap.Int("line_items", len(doc.LineItems)),
	)
	return s.GetDocument(ctx, doc.ID)
}

// createWithReference assigns the next reference number and inserts doc,
// retrying when a concurrent create claimed the same number
func (s *DocumentService) createWithReference(ctx context.Context, doc *entity.Document) error {
	for attempt := 1; ; attempt++ {
		nextNum, err := s.documentRepo.GetNextReferenceNumber(ctx, doc.Type)
		if err != nil {
			return err
		}
		doc.Reference = fmt.Sprintf("%s-%06d", doc.Type.ReferencePrefix(), nextNum)

		err = s.documentRepo.Create(ctx, doc)
		if !errors.Is(err, repository.ErrDuplicateReference) {
			return err
		}
		if attempt == maxReferenceAttempts {
			return apperror.NewConflictError("Could not allocate a reference number, please retry")
		}
		s.logger.Warn("reference number taken, retrying",
			zap.String("reference", doc.Reference),
			zap.Int("attempt", attempt),
		)
	}
}

// GetDocument retrieves a document with its line items
func (s *DocumentService) GetDocument(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NewNotFoundError("Document")
	}
	return doc, nil
}

// ListDocumentsInput represents the input for listing documents
type ListDocumentsInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.DocumentStatus
	Type       *enum.DocumentType
	SortBy     string
	SortOrder  string
}

// ListDocuments lists documents with filtering
func (s *DocumentService) ListDocuments(ctx context.Context, input *ListDocumentsInput) (*pagination.PaginatedResult[entity.Document], error) {
	if input.Pagination == nil {
		input.Pagination = pagination.DefaultPagination()
	}
	input.Pagination.Validate()

	params := &repository.DocumentFilterParams{
		Pagination: input.Pagination,
		Search:     strings.TrimSpace(input.Search),
		Status:     input.Status,
		Type:       input.Type,
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
	}

	docs, total, err := s.documentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(docs, pag), nil
}

// Open loads a document and starts an editing session over it
func (s *DocumentService) Open(ctx context.Context, id uuid.UUID) (*Editor, error) {
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewEditor(doc, s.logger)
}

// AddLineItem appends a line item to a draft document
func (s *DocumentService) AddLineItem(ctx context.Context, id uuid.UUID, input pricing.LineItemInput) (*entity.Document, error) {
	return s.edit(ctx, id, func(e *Editor) error {
		return e.AddLineItem(input)
	})
}

// UpdateLineItem replaces the line item at index
func (s *DocumentService) UpdateLineItem(ctx context.Context, id uuid.UUID, index int, input pricing.LineItemInput) (*entity.Document, error) {
	return s.edit(ctx, id, func(e *Editor) error {
		return e.UpdateLineItem(index, input)
	})
}

// RemoveLineItem deletes the line item at index
func (s *DocumentService) RemoveLineItem(ctx context.Context, id uuid.UUID, index int) (*entity.Document, error) {
	return s.edit(ctx, id, func(e *Editor) error {
		return e.RemoveLineItem(index)
	})
}

// MoveLineItem shifts the line item at index up or down
func (s *DocumentService) MoveLineItem(ctx context.Context, id uuid.UUID, index int, direction enum.MoveDirection) (*entity.Document, error) {
	return s.edit(ctx, id, func(e *Editor) error {
		return e.MoveLineItem(index, direction)
	})
}

// UpdatePricing replaces the tax rate and document discount
func (s *DocumentService) UpdatePricing(ctx context.Context, id uuid.UUID, cfg entity.PricingConfig) (*entity.Document, error) {
	return s.edit(ctx, id, func(e *Editor) error {
		return e.SetPricingConfig(cfg)
	})
}

// UpdateDetailsInput carries the editable header fields of a draft
type UpdateDetailsInput struct {
	CustomerName *string
	Note         *string
}

// UpdateDetails changes the customer name or note of a draft document
func (s *DocumentService) UpdateDetails(ctx context.Context, id uuid.UUID, input *UpdateDetailsInput) (*entity.Document, error) {
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.EnsureEditable(doc.Status); err != nil {
		return nil, err
	}

	if input.CustomerName != nil {
		doc.CustomerName = strings.TrimSpace(*input.CustomerName)
	}
	if input.Note != nil {
		doc.Note = input.Note
	}

	if err := s.documentRepo.Save(ctx, doc); err != nil {
		return nil, err
	}
	return s.GetDocument(ctx, id)
}

// ChangeStatus moves a document along its lifecycle. Only the status
// column is written.
func (s *DocumentService) ChangeStatus(ctx context.Context, id uuid.UUID, status enum.DocumentStatus) (*entity.Document, error) {
	editor, err := s.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	from := editor.Status()
	if err := editor.ChangeStatus(status); err != nil {
		return nil, err
	}
	if from == status {
		return s.GetDocument(ctx, id)
	}

	if err := s.documentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	s.logger.Info("document status changed",
		zap.String("document_id", id.String()),
		zap.Stringer("from", from),
		zap.Stringer("to", status),
	)
	return s.GetDocument(ctx, id)
}

// DeleteDocument removes a draft document and its line items
func (s *DocumentService) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return err
	}
	if err := lifecycle.EnsureEditable(doc.Status); err != nil {
		return err
	}
	return s.documentRepo.Delete(ctx, id)
}

// PreviewResult is the computed state of an unsaved form
type PreviewResult struct {
	LineItems []entity.LineItem
	Totals    pricing.Totals
}

// Preview runs the pricing engine over unsaved lines without persisting anything
func (s *DocumentService) Preview(items []pricing.LineItemInput, cfg entity.PricingConfig) (*PreviewResult, error) {
	if err := ValidatePricingConfig(cfg); err != nil {
		return nil, err
	}

	collection, err := pricing.NewCollection(nil)
	if err != nil {
		return nil, err
	}
	for i, item := range items {
		if err := collection.Add(item); err != nil {
			return nil, prefixFieldErrors(err, fmt.Sprintf("items[%d]", i))
		}
	}

	lines := collection.Items()
	return &PreviewResult{
		LineItems: lines,
		Totals:    pricing.ComputeTotals(lines, cfg),
	}, nil
}

func (s *DocumentService) edit(ctx context.Context, id uuid.UUID, fn func(e *Editor) error) (*entity.Document, error) {
	editor, err := s.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(editor); err != nil {
		return nil, err
	}

	if err := s.documentRepo.Save(ctx, editor.Snapshot()); err != nil {
		return nil, err
	}
	return s.GetDocument(ctx, id)
}

// prefixFieldErrors qualifies validation field names with the position
// of the offending item in a batch.
func prefixFieldErrors(err error, prefix string) error {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || len(appErr.Errors) == 0 {
		return err
	}
	fieldErrors := make([]apperror.FieldError, len(appErr.Errors))
	for i, fe := range appErr.Errors {
		fieldErrors[i] = apperror.FieldError{Field: prefix + "." + fe.Field, Message: fe.Message}
	}
	return apperror.NewValidationError(fieldErrors)
}
