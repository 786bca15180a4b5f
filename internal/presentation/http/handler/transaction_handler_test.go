package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/skbavi/supermarket-pos-api/internal/application/service"
	"github.com/skbavi/supermarket-pos-api/internal/config"
	"github.com/skbavi/supermarket-pos-api/internal/domain/entity"
	"github.com/skbavi/supermarket-pos-api/internal/infrastructure/repository"
	"github.com/skbavi/supermarket-pos-api/internal/presentation/http/dto/response"
	"github.com/skbavi/supermarket-pos-api/pkg/printer"
)

func newTestRouter(t *testing.T) (*gin.Engine, *repository.MemoryProductRepository) {
	gin.SetMode(gin.TestMode)
	logger := zaptest.NewLogger(t)

	productRepo := repository.NewMemoryProductRepository()
	userRepo := repository.NewMemoryUserRepository()
	transactionRepo := repository.NewMemoryTransactionRepository()

	catalogService := service.NewCatalogService(productRepo, userRepo)
	transactionService := service.NewTransactionService(transactionRepo, catalogService, logger)
	receiptService := service.NewReceiptService(transactionService, catalogService,
		config.ReceiptConfig{StoreName: "Supermarket POS", Currency: "LKR"}, logger)
	printerService := service.NewPrinterService(receiptService, printer.NewNullPrinter(),
		config.PrinterConfig{Width: 32}, logger)

	h := NewTransactionHandler(transactionService, receiptService, printerService)

	router := gin.New()
	router.POST("/transactions", h.Create)
	router.GET("/transactions", h.List)
	router.GET("/transactions/:id", h.Get)
	router.POST("/transactions/preview", h.Preview)
	router.DELETE("/transactions/:id", h.Delete)
	router.GET("/transactions/:id/receipt", h.Receipt)
	return router, productRepo
}

func TestTransactionEndpointRoundTrip(t *testing.T) {
	router, productRepo := newTestRouter(t)

	product := entity.Product{Name: "Bread", Price: 15000}
	require.NoError(t, productRepo.Create(context.Background(), &product))

	body := fmt.Sprintf(`{"items":[{"product_id":%q,"quantity":2}],"discount":10}`, product.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(1), data["transaction_id"])
	assert.Equal(t, 270.0, data["total_amount"])
	assert.Equal(t, 10.0, data["discount"])

	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "Bread", item["product_name"])
	assert.Equal(t, 150.0, item["unit_price"])
	assert.Equal(t, 300.0, item["line_total"])
}

func TestTransactionEndpointRejectsBadDiscount(t *testing.T) {
	router, productRepo := newTestRouter(t)

	product := entity.Product{Name: "Bread", Price: 15000}
	require.NoError(t, productRepo.Create(context.Background(), &product))

	body := fmt.Sprintf(`{"items":[{"product_id":%q,"quantity":1}],"discount":120}`, product.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReceiptEndpointReturnsPDFAttachment(t *testing.T) {
	router, productRepo := newTestRouter(t)

	product := entity.Product{Name: "Bread", Price: 15000}
	require.NoError(t, productRepo.Create(context.Background(), &product))

	body := fmt.Sprintf(`{"items":[{"product_id":%q,"quantity":1}]}`, product.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	transactionID := resp.Data.(map[string]interface{})["id"].(string)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/transactions/"+transactionID+"/receipt", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment; filename=\"receipt_")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestDeleteMissingTransactionReturns404(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/transactions/8a2b1c3d-0000-0000-0000-000000000000", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
