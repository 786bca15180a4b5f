package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skbavi/supermarket-pos-api/internal/domain/entity"
	domainRepo "github.com/skbavi/supermarket-pos-api/internal/domain/repository"
	"github.com/skbavi/supermarket-pos-api/pkg/pagination"
)

// In-memory repository implementations backing the service tests. They
// honor the same contracts as the Postgres implementations, including
// atomic sequence number assignment on transaction creation.

type MemoryProductRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]entity.Product
}

// NewMemoryProductRepository creates an empty in-memory product store
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{products: make(map[uuid.UUID]entity.Product)}
}

func (r *MemoryProductRepository) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products[product.ID] = *product
	return nil
}

func (r *MemoryProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

func (r *MemoryProductRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.Product
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			out = append(out, product)
		}
	}
	return out, nil
}

func (r *MemoryProductRepository) Update(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product.UpdatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

func (r *MemoryProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *MemoryProductRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []entity.Product
	for _, product := range r.products {
		if params.Search != "" && !strings.Contains(strings.ToLower(product.Name), strings.ToLower(params.Search)) {
			continue
		}
		if params.Category != "" && product.Category != params.Category {
			continue
		}
		if params.Supplier != "" && product.Supplier != params.Supplier {
			continue
		}
		matched = append(matched, product)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	total := int64(len(matched))

	params.Pagination.Validate()
	start := params.Pagination.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.Pagination.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *MemoryProductRepository) ListAll(ctx context.Context) ([]entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Product, 0, len(r.products))
	for _, product := range r.products {
		out = append(out, product)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryProductRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}

type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]entity.User
}

// NewMemoryUserRepository creates an empty in-memory user store
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[uuid.UUID]entity.User)}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = entity.RoleUser
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepository) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		user.Role = role
		user.UpdatedAt = time.Now()
		r.users[id] = user
	}
	return nil
}

func (r *MemoryUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *MemoryUserRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.User, int64, error) {
	all, _ := r.ListAll(ctx)

	var matched []entity.User
	for _, user := range all {
		if search != "" &&
			!strings.Contains(strings.ToLower(user.Name), strings.ToLower(search)) &&
			!strings.Contains(strings.ToLower(user.Email), strings.ToLower(search)) {
			continue
		}
		matched = append(matched, user)
	}
	total := int64(len(matched))

	params.Validate()
	start := params.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *MemoryUserRepository) ListAll(ctx context.Context) ([]entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryUserRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

type MemoryTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[uuid.UUID]entity.Transaction
	nextSequence int64
}

// NewMemoryTransactionRepository creates an empty in-memory ledger
func NewMemoryTransactionRepository() *MemoryTransactionRepository {
	return &MemoryTransactionRepository{
		transactions: make(map[uuid.UUID]entity.Transaction),
		nextSequence: 1,
	}
}

func (r *MemoryTransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	transaction.SequenceNo = r.nextSequence
	r.nextSequence++
	now := time.Now()
	transaction.CreatedAt = now
	transaction.UpdatedAt = now
	for i := range transaction.Items {
		if transaction.Items[i].ID == uuid.Nil {
			transaction.Items[i].ID = uuid.New()
		}
		transaction.Items[i].TransactionID = transaction.ID
	}
	r.transactions[transaction.ID] = *transaction
	return nil
}

func (r *MemoryTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	transaction, ok := r.transactions[id]
	if !ok {
		return nil, nil
	}
	return &transaction, nil
}

func (r *MemoryTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.transactions, id)
	return nil
}

func (r *MemoryTransactionRepository) List(ctx context.Context, params *domainRepo.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []entity.Transaction
	for _, transaction := range r.transactions {
		if params.UserID != nil {
			if transaction.UserID == nil || *transaction.UserID != *params.UserID {
				continue
			}
		}
		matched = append(matched, transaction)
	}

	desc := params.SortOrder == "desc"
	sort.Slice(matched, func(i, j int) bool {
		if desc {
			return matched[i].SequenceNo > matched[j].SequenceNo
		}
		return matched[i].SequenceNo < matched[j].SequenceNo
	})
	total := int64(len(matched))

	params.Pagination.Validate()
	start := params.Pagination.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.Pagination.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *MemoryTransactionRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.transactions)), nil
}
