package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/quote-engine/internal/domain/entity"
	"github.com/sangkips/quote-engine/internal/domain/enum"
	domainRepo "github.com/sangkips/quote-engine/internal/domain/repository"
	"gorm.io/gorm"
)

var sortableColumns = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"reference":    true,
	"total_amount": true,
	"status":       true,
}

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) domainRepo.DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *entity.Document) error {
	err := r.db.WithContext(ctx).Create(doc).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainRepo.ErrDuplicateReference
	}
	return err
}

func (r *documentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	var doc entity.Document
	err := r.db.WithContext(ctx).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&doc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &doc, err
}

// Save writes the document header and replaces its line items in one transaction
func (r *documentRepository) Save(ctx context.Context, doc *entity.Document) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("LineItems").Save(doc).Error; err != nil {
			return err
		}
		if err := tx.Where("document_id = ?", doc.ID).Delete(&entity.LineItem{}).Error; err != nil {
			return err
		}
		if len(doc.LineItems) == 0 {
			return nil
		}
		for i := range doc.LineItems {
			doc.LineItems[i].DocumentID = doc.ID
		}
		return tx.Create(&doc.LineItems).Error
	})
}

func (r *documentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DocumentStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Document{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *documentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", id).Delete(&entity.LineItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Document{}, "id = ?", id).Error
	})
}

func (r *documentRepository) List(ctx context.Context, params *domainRepo.DocumentFilterParams) ([]entity.Document, int64, error) {
	var docs []entity.Document
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Document{}).
		Scopes(SearchColumns(params.Search, "reference", "customer_name"))

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Scopes(OrderBy(params.SortBy, params.SortOrder, sortableColumns, "created_at"), Paginate(params.Pagination)).
		Find(&docs).Error

	return docs, total, err
}

func (r *documentRepository) GetNextReferenceNumber(ctx context.Context, docType enum.DocumentType) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.Document{}).
		Where("type = ?", docType).
		Count(&count).Error
	return int(count) + 1, err
}
