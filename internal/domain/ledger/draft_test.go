package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewDraftStartsWithOneBlankLine(t *testing.T) {
	d := NewDraft()

	assert.Equal(t, 1, d.Len())
	assert.Equal(t, uuid.Nil, d.Lines[0].ProductID)
	assert.Equal(t, 1, d.Lines[0].Quantity)
}

func TestDraftAddAndRemoveLines(t *testing.T) {
	d := NewDraft()
	d.AddBlankLine()
	d.AddBlankLine()
	assert.Equal(t, 3, d.Len())

	productID := uuid.New()
	d.SetLineProduct(1, productID)
	d.SetLineQuantity(1, 4)

	d.RemoveLine(0)
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, productID, d.Lines[0].ProductID)
	assert.Equal(t, 4, d.Lines[0].Quantity)
}

func TestDraftOutOfRangeEditsAreNoOps(t *testing.T) {
	d := NewDraft()

	d.RemoveLine(-1)
	d.RemoveLine(5)
	d.SetLineProduct(3, uuid.New())
	d.SetLineQuantity(-2, 10)

	assert.Equal(t, 1, d.Len())
	assert.Equal(t, uuid.Nil, d.Lines[0].ProductID)
	assert.Equal(t, 1, d.Lines[0].Quantity)
}
