package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/skbavi/supermarket-pos-api/internal/config"
	"github.com/skbavi/supermarket-pos-api/internal/domain/entity"
	"github.com/skbavi/supermarket-pos-api/internal/domain/ledger"
	"github.com/skbavi/supermarket-pos-api/internal/infrastructure/repository"
)

type receiptFixture struct {
	*ledgerFixture
	receiptService *ReceiptService
}

func newReceiptFixture(t *testing.T) *receiptFixture {
	logger := zaptest.NewLogger(t)
	productRepo := repository.NewMemoryProductRepository()
	userRepo := repository.NewMemoryUserRepository()
	transactionRepo := repository.NewMemoryTransactionRepository()
	catalogService := NewCatalogService(productRepo, userRepo)
	transactionService := NewTransactionService(transactionRepo, catalogService, logger)

	cfg := config.ReceiptConfig{StoreName: "Supermarket POS", Currency: "LKR"}
	return &receiptFixture{
		ledgerFixture: &ledgerFixture{
			transactionService: transactionService,
			productRepo:        productRepo,
			userRepo:           userRepo,
			transactionRepo:    transactionRepo,
		},
		receiptService: NewReceiptService(transactionService, catalogService, cfg, logger),
	}
}

func TestReceiptFilenameEncoding(t *testing.T) {
	createdAt := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "receipt_2024-03-15_10-30-00.pdf", ReceiptFilename(createdAt))
}

func TestComposeReceiptUsesSnapshotValues(t *testing.T) {
	f := newReceiptFixture(t)
	bread := f.addProduct(t, "Bread", 15000)

	cashier := entity.User{Name: "Kasun", Email: "kasun@example.com"}
	require.NoError(t, f.userRepo.Create(context.Background(), &cashier))

	transaction, err := f.transactionService.Create(context.Background(), &CreateTransactionInput{
		Lines:           []ledger.DraftLine{{ProductID: bread.ID, Quantity: 2}},
		DiscountPercent: 10,
		UserID:          &cashier.ID,
	})
	require.NoError(t, err)

	receipt, err := f.receiptService.Compose(context.Background(), transaction.ID)
	require.NoError(t, err)

	assert.Equal(t, "Supermarket POS", receipt.StoreName)
	assert.Equal(t, "LKR", receipt.Currency)
	assert.Equal(t, "Kasun", receipt.Cashier)
	require.Len(t, receipt.Items, 1)
	assert.Equal(t, "Bread", receipt.Items[0].Name)
	assert.Equal(t, 150.0, receipt.Items[0].UnitPrice)
	assert.Equal(t, 300.0, receipt.Items[0].Total)
	assert.Equal(t, 270.0, receipt.TotalAmount)
}

func TestComposeReceiptRendersUnknownForMissingSnapshot(t *testing.T) {
	f := newReceiptFixture(t)

	transaction, err := f.transactionService.Create(context.Background(), &CreateTransactionInput{
		Lines: []ledger.DraftLine{{ProductID: uuid.New(), Quantity: 1}},
	})
	require.NoError(t, err)

	receipt, err := f.receiptService.Compose(context.Background(), transaction.ID)
	require.NoError(t, err)

	require.Len(t, receipt.Items, 1)
	assert.Equal(t, "Unknown", receipt.Items[0].Name)
	assert.Equal(t, 0.0, receipt.Items[0].Total)
}

func TestComposeReceiptUnknownUserAfterDeletion(t *testing.T) {
	f := newReceiptFixture(t)
	bread := f.addProduct(t, "Bread", 15000)

	cashier := entity.User{Name: "Nimal", Email: "nimal@example.com"}
	require.NoError(t, f.userRepo.Create(context.Background(), &cashier))

	transaction, err := f.transactionService.Create(context.Background(), &CreateTransactionInput{
		Lines:  []ledger.DraftLine{{ProductID: bread.ID, Quantity: 1}},
		UserID: &cashier.ID,
	})
	require.NoError(t, err)

	require.NoError(t, f.userRepo.Delete(context.Background(), cashier.ID))

	receipt, err := f.receiptService.Compose(context.Background(), transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, "Unknown User", receipt.Cashier)
}

func TestRenderReceiptPDFIsDeterministic(t *testing.T) {
	receipt := &entity.Receipt{
		StoreName:       "Supermarket POS",
		Date:            "2024-03-15 10:30:00",
		Cashier:         "Kasun",
		Items:           []entity.ReceiptItem{{Name: "Bread", Quantity: 2, UnitPrice: 150, Total: 300}},
		DiscountPercent: 10,
		TotalAmount:     270,
		Currency:        "LKR",
	}
	createdAt := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	first, err := RenderReceiptPDF(receipt, createdAt)
	require.NoError(t, err)
	second, err := RenderReceiptPDF(receipt, createdAt)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second), "rendering the same transaction twice must be byte-identical")
	assert.True(t, bytes.HasPrefix(first, []byte("%PDF")))
}

func TestRenderReceiptPDFOverflowsToSecondPage(t *testing.T) {
	items := make([]entity.ReceiptItem, 30)
	for i := range items {
		items[i] = entity.ReceiptItem{Name: "Item", Quantity: 1, UnitPrice: 1, Total: 1}
	}
	receipt := &entity.Receipt{
		StoreName:   "Supermarket POS",
		Date:        "2024-03-15 10:30:00",
		Items:       items,
		TotalAmount: 30,
		Currency:    "LKR",
	}
	createdAt := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	short, err := RenderReceiptPDF(&entity.Receipt{
		StoreName:   "Supermarket POS",
		Date:        "2024-03-15 10:30:00",
		Items:       items[:1],
		TotalAmount: 1,
		Currency:    "LKR",
	}, createdAt)
	require.NoError(t, err)

	long, err := RenderReceiptPDF(receipt, createdAt)
	require.NoError(t, err)

	// 30 items at 8 per box must spill across pages
	assert.Greater(t, bytes.Count(long, []byte("/Page")), bytes.Count(short, []byte("/Page")))
}

func TestBuildThermalReceiptLayout(t *testing.T) {
	receipt := &entity.Receipt{
		StoreName:       "Supermarket POS",
		Date:            "2024-03-15 10:30:00",
		Cashier:         "Kasun",
		Items:           []entity.ReceiptItem{{Name: "Bread", Quantity: 2, UnitPrice: 150, Total: 300}},
		DiscountPercent: 10,
		TotalAmount:     270,
		Currency:        "LKR",
	}

	data := BuildThermalReceipt(receipt, 32)

	assert.Contains(t, string(data), "Supermarket POS")
	assert.Contains(t, string(data), "Bread (x2)")
	assert.Contains(t, string(data), "LKR 270.00")
	assert.Contains(t, string(data), "Thank you for shopping with us!")
	// ESC @ initialize must lead the stream
	assert.Equal(t, byte(0x1B), data[0])
	assert.Equal(t, byte('@'), data[1])
}

// fetchCountingTransactionRepo records how often the ledger is read so tests
// can pin down the number of round trips a code path makes.
type fetchCountingTransactionRepo struct {
	*repository.MemoryTransactionRepository
	getByIDCalls int
}

func (r *fetchCountingTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	r.getByIDCalls++
	return r.MemoryTransactionRepository.GetByID(ctx, id)
}

func TestRenderLoadsTransactionOnce(t *testing.T) {
	logger := zaptest.NewLogger(t)
	productRepo := repository.NewMemoryProductRepository()
	userRepo := repository.NewMemoryUserRepository()
	transactionRepo := &fetchCountingTransactionRepo{
		MemoryTransactionRepository: repository.NewMemoryTransactionRepository(),
	}
	catalogService := NewCatalogService(productRepo, userRepo)
	transactionService := NewTransactionService(transactionRepo, catalogService, logger)
	receiptService := NewReceiptService(transactionService, catalogService,
		config.ReceiptConfig{StoreName: "Supermarket POS", Currency: "LKR"}, logger)

	bread := entity.Product{Name: "Bread", Price: 15000}
	require.NoError(t, productRepo.Create(context.Background(), &bread))

	transaction, err := transactionService.Create(context.Background(), &CreateTransactionInput{
		Lines: []ledger.DraftLine{{ProductID: bread.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	transactionRepo.getByIDCalls = 0
	out, err := receiptService.Render(context.Background(), transaction.ID)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out.Content, []byte("%PDF")))
	assert.Equal(t, 1, transactionRepo.getByIDCalls)
}
