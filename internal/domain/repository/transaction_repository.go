package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/skbavi/supermarket-pos-api/internal/domain/entity"
	"github.com/skbavi/supermarket-pos-api/pkg/pagination"
)

// TransactionFilterParams contains filtering parameters for transaction queries
type TransactionFilterParams struct {
	Pagination *pagination.PaginationParams
	UserID     *uuid.UUID
	SortOrder  string // applied to sequence_no; defaults to ASC
}

// TransactionRepository defines the interface for the transaction ledger.
//
// Create must assign the transaction's human-facing SequenceNo atomically
// with the insert: two concurrent creations must never observe the same
// number. Deriving the number from a collection count at read time is
// explicitly not acceptable.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *entity.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
	Count(ctx context.Context) (int64, error)
}

// IdempotencyRepository defines the interface for idempotency key storage
type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, key *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) error
}
