package ledger

import (
	"math"

	"github.com/skbavi/supermarket-pos-api/internal/domain/entity"
)

// ComputeTotal computes the amount due for a set of draft lines against a
// catalog snapshot, in cents.
//
// Lines whose product id does not resolve contribute zero and are skipped
// silently; a half-filled draft row must not poison the running total.
// The discount is applied as subtotal * (1 - discountPercent/100) and the
// result is rounded half-up to the nearest cent. discountPercent is not
// clamped here; the request layer validates the 0-100 range.
func ComputeTotal(lines []DraftLine, catalog *entity.Catalog, discountPercent float64) int64 {
	var subtotal int64
	for _, line := range lines {
		product, ok := catalog.Product(line.ProductID)
		if !ok {
			continue
		}
		subtotal += product.Price * int64(line.Quantity)
	}

	if discountPercent == 0 {
		return subtotal
	}
	discounted := float64(subtotal) * (1 - discountPercent/100)
	return int64(math.Round(discounted))
}

// SnapshotItems resolves draft lines into immutable transaction items,
// capturing product name and unit price at time of sale. Unresolvable lines
// are snapshotted with an empty name and zero price so the stored transaction
// mirrors exactly what the total was computed from.
func SnapshotItems(lines []DraftLine, catalog *entity.Catalog) []entity.TransactionItem {
	items := make([]entity.TransactionItem, 0, len(lines))
	for i, line := range lines {
		item := entity.TransactionItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Position:  i,
		}
		if product, ok := catalog.Product(line.ProductID); ok {
			item.ProductName = product.Name
			item.UnitPrice = product.Price
		}
		items = append(items, item)
	}
	return items
}
