package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/skbavi/supermarket-pos-api/internal/domain/entity"
	domainRepo "github.com/skbavi/supermarket-pos-api/internal/domain/repository"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create inserts the transaction and its items in a single database
// transaction. The sequence counter row is locked FOR UPDATE for the
// duration of the insert, so concurrent creations serialize on it and
// each receives a distinct, strictly increasing number.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq entity.TransactionSequence
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&seq).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			seq = entity.TransactionSequence{NextValue: 1}
			if err := tx.Create(&seq).Error; err != nil {
				return err
			}
		}

		transaction.SequenceNo = seq.NextValue
		seq.NextValue++

		if err := tx.Model(&entity.TransactionSequence{}).
			Where("id = ?", seq.ID).
			Update("next_value", seq.NextValue).Error; err != nil {
			return err
		}

		return tx.Create(transaction).Error
	})
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transaction entity.Transaction
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&transaction, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transaction, err
}

func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.TransactionItem{}, "transaction_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Transaction{}, "id = ?", id).Error
	})
}

func (r *transactionRepository) List(ctx context.Context, params *domainRepo.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	var transactions []entity.Transaction
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Transaction{})
	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "sequence_no ASC"
	if params.SortOrder == "desc" {
		order = "sequence_no DESC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(order).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Find(&transactions).Error

	return transactions, total, err
}

func (r *transactionRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Transaction{}).Count(&total).Error
	return total, err
}

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a new idempotency key repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	var record entity.IdempotencyKey
	err := r.db.WithContext(ctx).
		First(&record, "key = ? AND user_id = ?", key, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *idempotencyRepository) Create(ctx context.Context, key *entity.IdempotencyKey) error {
	return r.db.WithContext(ctx).Create(key).Error
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&entity.IdempotencyKey{}).Error
}
