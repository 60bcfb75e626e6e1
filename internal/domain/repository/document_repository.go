package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/quote-engine/internal/domain/entity"
	"github.com/sangkips/quote-engine/internal/domain/enum"
	"github.com/sangkips/quote-engine/pkg/pagination"
)

// ErrDuplicateReference is returned by Create when the reference number is taken
var ErrDuplicateReference = errors.New("document reference already exists")

// DocumentRepository defines the interface for quote and statement persistence
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	Save(ctx context.Context, doc *entity.Document) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DocumentStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *DocumentFilterParams) ([]entity.Document, int64, error)
	GetNextReferenceNumber(ctx context.Context, docType enum.DocumentType) (int, error)
}

// DocumentFilterParams contains filtering parameters for document queries
type DocumentFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.DocumentStatus
	Type       *enum.DocumentType
	SortBy     string
	SortOrder  string
}
