package service

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/skbavi/supermarket-pos-api/internal/domain/entity"
	"github.com/skbavi/supermarket-pos-api/internal/domain/ledger"
	domainRepo "github.com/skbavi/supermarket-pos-api/internal/domain/repository"
	"github.com/skbavi/supermarket-pos-api/internal/infrastructure/repository"
	"github.com/skbavi/supermarket-pos-api/pkg/apperror"
)

type ledgerFixture struct {
	transactionService *TransactionService
	productRepo        *repository.MemoryProductRepository
	userRepo           *repository.MemoryUserRepository
	transactionRepo    *repository.MemoryTransactionRepository
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	logger := zaptest.NewLogger(t)
	productRepo := repository.NewMemoryProductRepository()
	userRepo := repository.NewMemoryUserRepository()
	transactionRepo := repository.NewMemoryTransactionRepository()
	catalogService := NewCatalogService(productRepo, userRepo)

	return &ledgerFixture{
		transactionService: NewTransactionService(transactionRepo, catalogService, logger),
		productRepo:        productRepo,
		userRepo:           userRepo,
		transactionRepo:    transactionRepo,
	}
}

func (f *ledgerFixture) addProduct(t *testing.T, name string, priceCents int64) entity.Product {
	product := entity.Product{Name: name, Price: priceCents}
	require.NoError(t, f.productRepo.Create(context.Background(), &product))
	return product
}

func TestCreateTransactionComputesAndStoresTotal(t *testing.T) {
	f := newLedgerFixture(t)
	bread := f.addProduct(t, "Bread", 15000)
	milk := f.addProduct(t, "Milk", 10000)

	transaction, err := f.transactionService.Create(context.Background(), &CreateTransactionInput{
		Lines: []ledger.DraftLine{
			{ProductID: bread.ID, Quantity: 2},
			{ProductID: milk.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	// 2*150.00 + 100.00 = 400.00, no discount
	assert.Equal(t, int64(40000), transaction.TotalAmount)
	assert.Equal(t, int64(1), transaction.SequenceNo)
	require.Len(t, transaction.Items, 2)
	assert.Equal(t, "Bread", transaction.Items[0].ProductName)
	assert.Equal(t, int64(15000), transaction.Items[0].UnitPrice)
}

func TestCreateTransactionAppliesDiscount(t *testing.T) {
	f := newLedgerFixture(t)
	soap := f.addProduct(t, "Soap", 10000)

	transaction, err := f.transactionService.Create(context.Background(), &CreateTransactionInput{
		Lines:           []ledger.DraftLine{{ProductID: soap.ID, Quantity: 2}},
		DiscountPercent: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(18000), transaction.TotalAmount)
	assert.Equal(t, float64(10), transaction.DiscountPercent)
}

func TestCreateTransactionRejectsBadInput(t *testing.T) {
	f := newLedgerFixture(t)
	soap := f.addProduct(t, "Soap", 10000)

	_, err := f.transactionService.Create(context.Background(), &CreateTransactionInput{
		Lines: nil,
	})
	require.Error(t, err)

	_, err = f.transactionService.Create(context.Background(), &CreateTransactionInput{
		Lines:           []ledger.DraftLine{{ProductID: soap.ID, Quantity: 1}},
		DiscountPercent: 150,
	})
	require.Error(t, err)

	_, err = f.transactionService.Create(context.Background(), &CreateTransactionInput{
		Lines: []ledger.DraftLine{{ProductID: soap.ID, Quantity: 0}},
	})
	require.Error(t, err)
}

func TestCreateTransactionSnapshotSurvivesCatalogEdits(t *testing.T) {
	f := newLedgerFixture(t)
	rice := f.addProduct(t, "Rice", 25000)

	transaction, err := f.transactionService.Create(context.Background(), &CreateTransactionInput{
		Lines: []ledger.DraftLine{{ProductID: rice.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// Change the price and delete the product after the sale.
	rice.Price = 99900
	require.NoError(t, f.productRepo.Update(context.Background(), &rice))
	require.NoError(t, f.productRepo.Delete(context.Background(), rice.ID))

	stored, err := f.transactionService.GetByID(context.Background(), transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25000), stored.TotalAmount)
	assert.Equal(t, "Rice", stored.Items[0].ProductName)
	assert.Equal(t, int64(25000), stored.Items[0].UnitPrice)
}

func TestConcurrentCreatesAssignUniqueSequenceNumbers(t *testing.T) {
	f := newLedgerFixture(t)
	tea := f.addProduct(t, "Tea", 5000)

	const workers = 50
	results := make([]int64, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			transaction, err := f.transactionService.Create(context.Background(), &CreateTransactionInput{
				Lines: []ledger.DraftLine{{ProductID: tea.ID, Quantity: 1}},
			})
			if err != nil {
				t.Error(err)
				return
			}
			results[i] = transaction.SequenceNo
		}(i)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i] < results[j] })
	for i, seq := range results {
		assert.Equal(t, int64(i+1), seq, "sequence numbers must be unique and gap-free under concurrency")
	}
}

func TestDeleteDoesNotReuseSequenceNumbers(t *testing.T) {
	f := newLedgerFixture(t)
	tea := f.addProduct(t, "Tea", 5000)

	first, err := f.transactionService.Create(context.Background(), &CreateTransactionInput{
		Lines: []ledger.DraftLine{{ProductID: tea.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, f.transactionService.Delete(context.Background(), first.ID))

	second, err := f.transactionService.Create(context.Background(), &CreateTransactionInput{
		Lines: []ledger.DraftLine{{ProductID: tea.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.SequenceNo)
}

func TestDeleteMissingTransactionReturnsNotFound(t *testing.T) {
	f := newLedgerFixture(t)

	err := f.transactionService.Delete(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeletedTransactionDisappearsFromListing(t *testing.T) {
	f := newLedgerFixture(t)
	tea := f.addProduct(t, "Tea", 5000)

	first, err := f.transactionService.Create(context.Background(), &CreateTransactionInput{
		Lines: []ledger.DraftLine{{ProductID: tea.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	second, err := f.transactionService.Create(context.Background(), &CreateTransactionInput{
		Lines: []ledger.DraftLine{{ProductID: tea.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	require.NoError(t, f.transactionService.Delete(context.Background(), first.ID))

	result, err := f.transactionService.List(context.Background(), &domainRepo.TransactionFilterParams{})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, second.ID, result.Items[0].ID)
	assert.Equal(t, int64(1), result.Pagination.Total)
}

func TestPreviewDoesNotPersist(t *testing.T) {
	f := newLedgerFixture(t)
	soap := f.addProduct(t, "Soap", 10000)

	preview, err := f.transactionService.Preview(context.Background(),
		[]ledger.DraftLine{{ProductID: soap.ID, Quantity: 2}}, 10)
	require.NoError(t, err)

	assert.Equal(t, 200.0, preview.Subtotal)
	assert.Equal(t, 180.0, preview.Total)

	count, err := f.transactionRepo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestCreateWithUnresolvedLinesStoresZeroPricedItems(t *testing.T) {
	f := newLedgerFixture(t)
	soap := f.addProduct(t, "Soap", 10000)

	transaction, err := f.transactionService.Create(context.Background(), &CreateTransactionInput{
		Lines: []ledger.DraftLine{
			{ProductID: soap.ID, Quantity: 1},
			{ProductID: uuid.New(), Quantity: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10000), transaction.TotalAmount)
	require.Len(t, transaction.Items, 2)
	assert.Equal(t, "", transaction.Items[1].ProductName)
	assert.Equal(t, int64(0), transaction.Items[1].UnitPrice)
}
