// Package ledger holds the pure transaction-composition logic: the mutable
// line-item draft a cashier edits and the total computation applied on submit.
package ledger

import "github.com/google/uuid"

// DraftLine is one editable product+quantity entry in a transaction draft.
// ProductID stays uuid.Nil until the cashier picks a product.
type DraftLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// Draft is the ordered working set of line items for a transaction being
// composed. It performs no validation; validation happens at submission.
type Draft struct {
	Lines []DraftLine
}

// NewDraft creates a draft with a single blank line, matching the state a
// cashier starts from.
func NewDraft() *Draft {
	return &Draft{Lines: []DraftLine{{Quantity: 1}}}
}

// AddBlankLine appends an unresolved line with quantity 1.
func (d *Draft) AddBlankLine() {
	d.Lines = append(d.Lines, DraftLine{Quantity: 1})
}

// RemoveLine deletes the entry at index i. Out-of-range indexes are a no-op;
// the editor must stay tolerant of stale positions.
func (d *Draft) RemoveLine(i int) {
	if i < 0 || i >= len(d.Lines) {
		return
	}
	d.Lines = append(d.Lines[:i], d.Lines[i+1:]...)
}

// SetLineProduct points the line at index i at a product. No-op out of range.
func (d *Draft) SetLineProduct(i int, productID uuid.UUID) {
	if i < 0 || i >= len(d.Lines) {
		return
	}
	d.Lines[i].ProductID = productID
}

// SetLineQuantity sets the quantity of the line at index i. No-op out of range.
func (d *Draft) SetLineQuantity(i int, quantity int) {
	if i < 0 || i >= len(d.Lines) {
		return
	}
	d.Lines[i].Quantity = quantity
}

// Len returns the number of lines in the draft.
func (d *Draft) Len() int {
	return len(d.Lines)
}
