package request

import (
	"github.com/google/uuid"

	"github.com/skbavi/supermarket-pos-api/internal/domain/ledger"
)

// TransactionItemRequest represents a single line in a submitted transaction
type TransactionItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateTransactionRequest represents the transaction creation payload.
// Discount is a percentage between 0 and 100.
type CreateTransactionRequest struct {
	Items    []TransactionItemRequest `json:"items" binding:"required,min=1,dive"`
	Discount float64                  `json:"discount" binding:"min=0,max=100"`
}

// PreviewTransactionRequest represents the total-preview payload. Items with
// a nil product id are allowed; they contribute zero to the total.
type PreviewTransactionRequest struct {
	Items    []TransactionItemRequest `json:"items"`
	Discount float64                  `json:"discount" binding:"min=0,max=100"`
}

// DraftLines converts the request items into ledger draft lines
func (r *CreateTransactionRequest) DraftLines() []ledger.DraftLine {
	return toDraftLines(r.Items)
}

// DraftLines converts the request items into ledger draft lines
func (r *PreviewTransactionRequest) DraftLines() []ledger.DraftLine {
	return toDraftLines(r.Items)
}

// toDraftLines replays the submitted items through the draft editor, so a
// payload produces exactly the line state an interactive edit would.
func toDraftLines(items []TransactionItemRequest) []ledger.DraftLine {
	if len(items) == 0 {
		return nil
	}
	draft := ledger.NewDraft()
	for i, item := range items {
		if i > 0 {
			draft.AddBlankLine()
		}
		draft.SetLineProduct(i, item.ProductID)
		draft.SetLineQuantity(i, item.Quantity)
	}
	return draft.Lines
}
