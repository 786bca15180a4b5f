package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skbavi/supermarket-pos-api/internal/application/service"
	domainRepo "github.com/skbavi/supermarket-pos-api/internal/domain/repository"
	"github.com/skbavi/supermarket-pos-api/internal/presentation/http/dto/request"
	"github.com/skbavi/supermarket-pos-api/internal/presentation/http/dto/response"
	"github.com/skbavi/supermarket-pos-api/pkg/pagination"
)

// TransactionHandler handles transaction ledger HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
	receiptService     *service.ReceiptService
	printerService     *service.PrinterService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(
	transactionService *service.TransactionService,
	receiptService *service.ReceiptService,
	printerService *service.PrinterService,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		receiptService:     receiptService,
		printerService:     printerService,
	}
}

// List handles listing transactions
func (h *TransactionHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &domainRepo.TransactionFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
		SortOrder:  c.Query("sort_order"),
	}
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		if userID, err := uuid.Parse(userIDStr); err == nil {
			params.UserID = &userID
		}
	}

	result, err := h.transactionService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}

// Get handles retrieving a single transaction
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	transaction, err := h.transactionService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Transaction retrieved successfully", transaction)
}

// Create handles recording a transaction
func (h *TransactionHandler) Create(c *gin.Context) {
	var req request.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	transaction, err := h.transactionService.Create(c.Request.Context(), &service.CreateTransactionInput{
		Lines:           req.DraftLines(),
		DiscountPercent: req.Discount,
		UserID:          GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Transaction recorded successfully", transaction)
}

// Preview handles computing a draft total without persisting
func (h *TransactionHandler) Preview(c *gin.Context) {
	var req request.PreviewTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	preview, err := h.transactionService.Preview(c.Request.Context(), req.DraftLines(), req.Discount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Total computed successfully", preview)
}

// Delete handles voiding a transaction
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	if err := h.transactionService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Transaction deleted successfully", nil)
}

// Receipt streams the transaction's receipt as a PDF download
func (h *TransactionHandler) Receipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	output, err := h.receiptService.Render(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+output.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", output.Content)
}

// PrintReceipt sends the transaction's receipt to the thermal printer
func (h *TransactionHandler) PrintReceipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	if err := h.printerService.PrintReceipt(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt sent to printer", nil)
}

// PrinterStatus reports whether the configured printer is reachable
func (h *TransactionHandler) PrinterStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", gin.H{
		"connected": h.printerService.IsAvailable(),
	})
}
