package repository

import (
	"context"

	"github.com/sangkips/quote-engine/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves a stored key for one endpoint, or nil if none exists
	GetByKey(ctx context.Context, key, endpoint string) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes expired keys and reports how many were dropped
	DeleteExpired(ctx context.Context) (int64, error)
}
