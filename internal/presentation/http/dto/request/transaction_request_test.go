package request

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skbavi/supermarket-pos-api/internal/domain/ledger"
)

func TestDraftLinesMirrorSubmittedItems(t *testing.T) {
	breadID := uuid.New()
	milkID := uuid.New()

	req := CreateTransactionRequest{
		Items: []TransactionItemRequest{
			{ProductID: breadID, Quantity: 2},
			{ProductID: milkID, Quantity: 1},
		},
	}

	lines := req.DraftLines()

	require.Len(t, lines, 2)
	assert.Equal(t, ledger.DraftLine{ProductID: breadID, Quantity: 2}, lines[0])
	assert.Equal(t, ledger.DraftLine{ProductID: milkID, Quantity: 1}, lines[1])
}

func TestDraftLinesKeepUnresolvedProducts(t *testing.T) {
	req := PreviewTransactionRequest{
		Items: []TransactionItemRequest{{Quantity: 3}},
	}

	lines := req.DraftLines()

	require.Len(t, lines, 1)
	assert.Equal(t, uuid.Nil, lines[0].ProductID)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestDraftLinesEmptyPayload(t *testing.T) {
	req := PreviewTransactionRequest{}

	assert.Empty(t, req.DraftLines())
}
