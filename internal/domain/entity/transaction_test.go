package entity

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

// Transactions are removed permanently, so the ledger models must not map a
// deleted_at column: with one present, GORM turns Delete into an UPDATE that
// leaves the row behind.
func TestTransactionModelsHaveNoSoftDeleteColumn(t *testing.T) {
	cache := &sync.Map{}

	for _, model := range []interface{}{&Transaction{}, &TransactionItem{}} {
		parsed, err := schema.Parse(model, cache, schema.NamingStrategy{})
		require.NoError(t, err)

		assert.Nil(t, parsed.LookUpField("DeletedAt"),
			"%s must hard-delete, not soft-delete", parsed.Table)
	}
}

func TestTransactionItemLineTotal(t *testing.T) {
	item := &TransactionItem{UnitPrice: 13500, Quantity: 3}

	assert.Equal(t, int64(40500), item.LineTotal())
}
