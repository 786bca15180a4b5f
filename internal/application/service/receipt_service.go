package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"

	"github.com/skbavi/supermarket-pos-api/internal/config"
	"github.com/skbavi/supermarket-pos-api/internal/domain/entity"
	"github.com/skbavi/supermarket-pos-api/pkg/apperror"
)

// Receipt page geometry, in millimeters on A4 portrait.
const (
	receiptBoxX      = 10.0
	receiptBoxY      = 40.0
	receiptBoxWidth  = 190.0
	receiptBoxHeight = 100.0
	receiptItemsTopY = 60.0
	receiptLineStep  = 10.0
)

// ReceiptService composes and renders PDF receipts for ledger transactions.
type ReceiptService struct {
	transactionService *TransactionService
	catalogService     *CatalogService
	cfg                config.ReceiptConfig
	logger             *zap.Logger
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	transactionService *TransactionService,
	catalogService *CatalogService,
	cfg config.ReceiptConfig,
	logger *zap.Logger,
) *ReceiptService {
	return &ReceiptService{
		transactionService: transactionService,
		catalogService:     catalogService,
		cfg:                cfg,
		logger:             logger,
	}
}

// Compose builds the receipt value object for a transaction. Item names and
// prices come from the transaction snapshot, never the live catalog; only the
// cashier name is resolved at render time. Items whose snapshot carries no
// name (a blank draft line, or a product deleted before the legacy back-fill)
// render as "Unknown".
func (s *ReceiptService) Compose(ctx context.Context, transactionID uuid.UUID) (*entity.Receipt, error) {
	transaction, err := s.transactionService.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	return s.compose(ctx, transaction)
}

// compose builds the receipt from an already-loaded transaction.
func (s *ReceiptService) compose(ctx context.Context, transaction *entity.Transaction) (*entity.Receipt, error) {
	cashier := ""
	if transaction.UserID != nil {
		catalog, err := s.catalogService.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		cashier = catalog.UserName(*transaction.UserID)
	}

	items := make([]entity.ReceiptItem, 0, len(transaction.Items))
	for _, item := range transaction.Items {
		name := item.ProductName
		if name == "" {
			name = "Unknown"
		}
		items = append(items, entity.ReceiptItem{
			Name:      name,
			Quantity:  item.Quantity,
			UnitPrice: float64(item.UnitPrice) / 100,
			Total:     float64(item.LineTotal()) / 100,
		})
	}

	return &entity.Receipt{
		StoreName:       s.cfg.StoreName,
		Date:            transaction.CreatedAt.Format("2006-01-02 15:04:05"),
		Cashier:         cashier,
		Items:           items,
		DiscountPercent: transaction.DiscountPercent,
		TotalAmount:     transaction.GetTotalDecimal(),
		Currency:        s.cfg.Currency,
	}, nil
}

// RenderOutput is a rendered receipt ready for download
type RenderOutput struct {
	Filename string
	Content  []byte
}

// Render produces the downloadable PDF for a transaction
func (s *ReceiptService) Render(ctx context.Context, transactionID uuid.UUID) (*RenderOutput, error) {
	transaction, err := s.transactionService.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	receipt, err := s.compose(ctx, transaction)
	if err != nil {
		return nil, err
	}

	content, err := RenderReceiptPDF(receipt, transaction.CreatedAt)
	if err != nil {
		s.logger.Error("failed to render receipt",
			zap.Int64("transaction_id", transaction.SequenceNo), zap.Error(err))
		return nil, apperror.NewPersistenceError("generate receipt")
	}

	return &RenderOutput{
		Filename: ReceiptFilename(transaction.CreatedAt),
		Content:  content,
	}, nil
}

// ReceiptFilename encodes the transaction timestamp into a filesystem-safe
// name, e.g. receipt_2024-03-15_10-30-00.pdf.
func ReceiptFilename(createdAt time.Time) string {
	return "receipt_" + createdAt.UTC().Format("2006-01-02_15-04-05") + ".pdf"
}

// RenderReceiptPDF draws the receipt onto A4 pages. The creation date baked
// into the PDF metadata is pinned to the transaction timestamp so rendering
// the same transaction twice yields byte-identical output.
//
// When the item list outgrows the body box, rendering continues on a new
// page with a fresh box; the summary block always follows the last item.
func RenderReceiptPDF(receipt *entity.Receipt, createdAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(createdAt.UTC())
	pdf.AddPage()

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.SetXY(receiptBoxX, 14)
		pdf.CellFormat(receiptBoxWidth, 10, receipt.StoreName+" Receipt", "", 0, "C", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetXY(20, 26)
		pdf.CellFormat(0, 6, "Date: "+receipt.Date, "", 0, "L", false, 0, "")
		if receipt.Cashier != "" {
			pdf.SetXY(20, 32)
			pdf.CellFormat(0, 6, "Cashier: "+receipt.Cashier, "", 0, "L", false, 0, "")
		}

		pdf.Rect(receiptBoxX, receiptBoxY, receiptBoxWidth, receiptBoxHeight, "D")
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetXY(20, receiptBoxY+6)
		pdf.CellFormat(80, 6, "Item", "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, "Qty", "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, "Unit Price", "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, "Amount", "", 0, "R", false, 0, "")
	}

	drawHeader()
	pdf.SetFont("Helvetica", "", 11)

	y := receiptItemsTopY
	boxBottom := receiptBoxY + receiptBoxHeight
	for _, item := range receipt.Items {
		if y+receiptLineStep > boxBottom {
			pdf.AddPage()
			drawHeader()
			pdf.SetFont("Helvetica", "", 11)
			y = receiptItemsTopY
		}
		pdf.SetXY(20, y)
		pdf.CellFormat(80, 6, fmt.Sprintf("%s (x%d)", item.Name, item.Quantity), "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", item.UnitPrice), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%s %.2f", receipt.Currency, item.Total), "", 0, "R", false, 0, "")
		y += receiptLineStep
	}

	if y+2*receiptLineStep > boxBottom {
		pdf.AddPage()
		drawHeader()
		y = receiptItemsTopY
	}

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetXY(20, y)
	pdf.CellFormat(170, 6, fmt.Sprintf("Discount: %.0f%%", receipt.DiscountPercent), "", 0, "R", false, 0, "")
	y += receiptLineStep

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(20, y)
	pdf.CellFormat(170, 6, fmt.Sprintf("Total: %s %.2f", receipt.Currency, receipt.TotalAmount), "", 0, "R", false, 0, "")

	pdf.SetFont("Helvetica", "I", 10)
	pdf.SetXY(receiptBoxX, boxBottom+10)
	pdf.CellFormat(receiptBoxWidth, 6, "Thank you for shopping with us!", "", 0, "C", false, 0, "")
	pdf.Line(receiptBoxX, boxBottom+20, receiptBoxX+receiptBoxWidth, boxBottom+20)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate receipt PDF: %w", err)
	}
	return buf.Bytes(), nil
}
