package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/skbavi/supermarket-pos-api/internal/domain/entity"
)

func testCatalog(products ...entity.Product) *entity.Catalog {
	return entity.NewCatalog(products, nil)
}

func TestComputeTotalEmptyDraft(t *testing.T) {
	total := ComputeTotal(nil, testCatalog(), 0)
	assert.Equal(t, int64(0), total)
}

func TestComputeTotalNoDiscount(t *testing.T) {
	bread := entity.Product{ID: uuid.New(), Name: "Bread", Price: 15000}
	milk := entity.Product{ID: uuid.New(), Name: "Milk", Price: 10000}
	catalog := testCatalog(bread, milk)

	lines := []DraftLine{
		{ProductID: bread.ID, Quantity: 2},
		{ProductID: milk.ID, Quantity: 1},
	}

	// 2*150.00 + 1*100.00 = 400.00
	assert.Equal(t, int64(40000), ComputeTotal(lines, catalog, 0))
}

func TestComputeTotalAppliesDiscount(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "Soap", Price: 10000}
	catalog := testCatalog(product)

	lines := []DraftLine{{ProductID: product.ID, Quantity: 2}}

	// 200.00 at 10% off = 180.00
	assert.Equal(t, int64(18000), ComputeTotal(lines, catalog, 10))
}

func TestComputeTotalRoundsHalfUp(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "Gum", Price: 999}
	catalog := testCatalog(product)

	lines := []DraftLine{{ProductID: product.ID, Quantity: 1}}

	// 9.99 at 15% off = 8.4915, rounds to 8.49
	assert.Equal(t, int64(849), ComputeTotal(lines, catalog, 15))

	// 9.99 at 25% off = 7.4925, rounds to 7.49; at 50% = 4.995 rounds to 5.00
	assert.Equal(t, int64(749), ComputeTotal(lines, catalog, 25))
	assert.Equal(t, int64(500), ComputeTotal(lines, catalog, 50))
}

func TestComputeTotalSkipsUnresolvedLines(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "Rice", Price: 25000}
	catalog := testCatalog(product)

	lines := []DraftLine{
		{ProductID: product.ID, Quantity: 1},
		{ProductID: uuid.Nil, Quantity: 3},   // blank draft row
		{ProductID: uuid.New(), Quantity: 2}, // deleted product
	}

	assert.Equal(t, int64(25000), ComputeTotal(lines, catalog, 0))
}

func TestComputeTotalFullDiscount(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "Tea", Price: 5000}
	catalog := testCatalog(product)

	lines := []DraftLine{{ProductID: product.ID, Quantity: 3}}
	assert.Equal(t, int64(0), ComputeTotal(lines, catalog, 100))
}

func TestSnapshotItemsCapturesNameAndPrice(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "Butter", Price: 32000}
	catalog := testCatalog(product)

	lines := []DraftLine{
		{ProductID: product.ID, Quantity: 2},
		{ProductID: uuid.New(), Quantity: 1},
	}

	items := SnapshotItems(lines, catalog)
	assert.Len(t, items, 2)

	assert.Equal(t, "Butter", items[0].ProductName)
	assert.Equal(t, int64(32000), items[0].UnitPrice)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 0, items[0].Position)

	// Unresolved line is snapshotted with zero price and empty name
	assert.Equal(t, "", items[1].ProductName)
	assert.Equal(t, int64(0), items[1].UnitPrice)
	assert.Equal(t, 1, items[1].Position)
}

func TestSnapshotSurvivesCatalogPriceChange(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "Jam", Price: 45000}
	catalog := testCatalog(product)

	lines := []DraftLine{{ProductID: product.ID, Quantity: 1}}
	items := SnapshotItems(lines, catalog)
	total := ComputeTotal(lines, catalog, 0)

	// A later catalog edit must not affect the captured values.
	product.Price = 99900
	assert.Equal(t, int64(45000), items[0].UnitPrice)
	assert.Equal(t, int64(45000), total)
}
