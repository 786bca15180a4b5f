package entity

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// Receipt is a value object representing a printable receipt. It is not a
// database entity: it is composed from a transaction snapshot at render time.
type Receipt struct {
	StoreName       string        `json:"store_name"`
	Date            string        `json:"date"`
	Cashier         string        `json:"cashier,omitempty"`
	Items           []ReceiptItem `json:"items"`
	DiscountPercent float64       `json:"discount_percent"`
	TotalAmount     float64       `json:"total_amount"`
	Currency        string        `json:"currency"`
}
