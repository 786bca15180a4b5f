package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/skbavi/supermarket-pos-api/internal/config"
	"github.com/skbavi/supermarket-pos-api/internal/domain/entity"
	"github.com/skbavi/supermarket-pos-api/pkg/apperror"
	"github.com/skbavi/supermarket-pos-api/pkg/printer"
)

// PrinterService prints receipts on a thermal ESC/POS printer
type PrinterService struct {
	receiptService *ReceiptService
	printer        printer.Printer
	width          int
	logger         *zap.Logger
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	receiptService *ReceiptService,
	p printer.Printer,
	cfg config.PrinterConfig,
	logger *zap.Logger,
) *PrinterService {
	return &PrinterService{
		receiptService: receiptService,
		printer:        p,
		width:          cfg.Width,
		logger:         logger,
	}
}

// IsAvailable reports whether a physical printer is reachable
func (s *PrinterService) IsAvailable() bool {
	return s.printer.IsConnected()
}

// PrintReceipt composes the receipt for a transaction and sends it to the
// thermal printer.
func (s *PrinterService) PrintReceipt(ctx context.Context, transactionID uuid.UUID) error {
	if !s.printer.IsConnected() {
		return apperror.NewBadRequestError("No receipt printer is connected")
	}

	receipt, err := s.receiptService.Compose(ctx, transactionID)
	if err != nil {
		return err
	}

	data := BuildThermalReceipt(receipt, s.width)
	if err := s.printer.Print(data); err != nil {
		s.logger.Error("failed to print receipt", zap.Error(err))
		return apperror.NewPersistenceError("print receipt")
	}
	return nil
}

// BuildThermalReceipt renders a receipt as an ESC/POS byte stream
func BuildThermalReceipt(receipt *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text(receipt.StoreName).
		SetBold(false).
		Text(receipt.Date)
	if receipt.Cashier != "" {
		doc.Text("Cashier: " + receipt.Cashier)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')
	for _, item := range receipt.Items {
		doc.ItemLine(item.Name, item.Quantity, fmt.Sprintf("%.2f", item.Total))
	}
	doc.Separator('-')

	if receipt.DiscountPercent > 0 {
		doc.KeyValue("Discount", fmt.Sprintf("%.0f%%", receipt.DiscountPercent))
	}
	doc.SetBold(true).
		KeyValue("TOTAL", fmt.Sprintf("%s %.2f", receipt.Currency, receipt.TotalAmount)).
		SetBold(false)

	doc.FeedLines(1).
		SetAlign(printer.AlignCenter).
		Text("Thank you for shopping with us!").
		FeedLines(3).
		Cut()

	return doc.Bytes()
}
