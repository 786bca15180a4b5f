package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/skbavi/supermarket-pos-api/internal/domain/entity"
	"github.com/skbavi/supermarket-pos-api/internal/domain/ledger"
	"github.com/skbavi/supermarket-pos-api/internal/domain/repository"
	"github.com/skbavi/supermarket-pos-api/pkg/apperror"
	"github.com/skbavi/supermarket-pos-api/pkg/pagination"
)

// TransactionService handles the transaction ledger: creating finalized
// sales from drafts, listing and voiding them.
type TransactionService struct {
	transactionRepo repository.TransactionRepository
	catalogService  *CatalogService
	logger          *zap.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactionRepo repository.TransactionRepository,
	catalogService *CatalogService,
	logger *zap.Logger,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		catalogService:  catalogService,
		logger:          logger,
	}
}

// CreateTransactionInput represents a submitted transaction draft
type CreateTransactionInput struct {
	Lines           []ledger.DraftLine
	DiscountPercent float64
	UserID          *uuid.UUID
}

// Create finalizes a draft into an immutable ledger entry. Item names and
// unit prices are snapshotted from the current catalog, the total is computed
// once and stored, and the human-facing transaction number is assigned
// atomically by the repository.
func (s *TransactionService) Create(ctx context.Context, input *CreateTransactionInput) (*entity.Transaction, error) {
	if len(input.Lines) == 0 {
		return nil, apperror.NewBadRequestError("Transaction must have at least one item")
	}
	if input.DiscountPercent < 0 || input.DiscountPercent > 100 {
		return nil, apperror.NewBadRequestError("Discount must be between 0 and 100")
	}
	for _, line := range input.Lines {
		if line.Quantity < 1 {
			return nil, apperror.NewBadRequestError("Item quantity must be at least 1")
		}
	}

	catalog, err := s.catalogService.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	transaction := &entity.Transaction{
		UserID:          input.UserID,
		DiscountPercent: input.DiscountPercent,
		TotalAmount:     ledger.ComputeTotal(input.Lines, catalog, input.DiscountPercent),
		Items:           ledger.SnapshotItems(input.Lines, catalog),
	}

	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		s.logger.Error("failed to record transaction", zap.Error(err))
		return nil, apperror.NewPersistenceError("record transaction")
	}

	s.logger.Info("transaction recorded",
		zap.Int64("transaction_id", transaction.SequenceNo),
		zap.Int("items", len(transaction.Items)),
		zap.Int64("total_cents", transaction.TotalAmount))
	return transaction, nil
}

// PreviewOutput represents a computed draft total before submission
type PreviewOutput struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// Preview computes the running total for a draft without persisting anything.
// Unresolved lines contribute zero, matching what Create would store.
func (s *TransactionService) Preview(ctx context.Context, lines []ledger.DraftLine, discountPercent float64) (*PreviewOutput, error) {
	if discountPercent < 0 || discountPercent > 100 {
		return nil, apperror.NewBadRequestError("Discount must be between 0 and 100")
	}

	catalog, err := s.catalogService.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	subtotal := ledger.ComputeTotal(lines, catalog, 0)
	total := ledger.ComputeTotal(lines, catalog, discountPercent)
	return &PreviewOutput{
		Subtotal: float64(subtotal) / 100,
		Discount: discountPercent,
		Total:    float64(total) / 100,
	}, nil
}

// GetByID returns a single transaction with its item snapshot
func (s *TransactionService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("load transaction")
	}
	if transaction == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return transaction, nil
}

// List returns a paginated ledger listing. Sequence numbers of deleted
// transactions are never reused, so gaps in the listing are expected.
func (s *TransactionService) List(ctx context.Context, params *repository.TransactionFilterParams) (*pagination.PaginatedResult[entity.Transaction], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	transactions, total, err := s.transactionRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.NewPersistenceError("list transactions")
	}
	meta := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(transactions, meta), nil
}

// Delete voids a transaction. Deleting a missing transaction is an error the
// caller sees, not a silent no-op.
func (s *TransactionService) Delete(ctx context.Context, id uuid.UUID) error {
	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NewPersistenceError("delete transaction")
	}
	if transaction == nil {
		return apperror.NewNotFoundError("Transaction")
	}
	if err := s.transactionRepo.Delete(ctx, id); err != nil {
		return apperror.NewPersistenceError("delete transaction")
	}
	s.logger.Info("transaction deleted",
		zap.Int64("transaction_id", transaction.SequenceNo))
	return nil
}
