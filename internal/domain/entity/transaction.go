package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction represents a finalized sale. It is immutable once created:
// the item snapshot and stored total always reflect price-at-time-of-sale,
// even if catalog prices change later.
// Deletion is a hard delete: no DeletedAt column here, a removed
// transaction leaves no row behind (only a permanent gap in the
// sequence numbering).
type Transaction struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	SequenceNo      int64      `gorm:"uniqueIndex;not null" json:"transaction_id"`
	UserID          *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	DiscountPercent float64    `gorm:"default:0" json:"discount"`
	TotalAmount     int64      `gorm:"not null" json:"-"` // Stored in cents, computed at creation
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Relationships
	User  *User             `gorm:"foreignKey:UserID" json:"-"`
	Items []TransactionItem `gorm:"foreignKey:TransactionID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (t Transaction) MarshalJSON() ([]byte, error) {
	type Alias Transaction
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
	}{
		Alias:       Alias(t),
		TotalAmount: float64(t.TotalAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// GetTotalDecimal returns the stored total as a decimal
func (t *Transaction) GetTotalDecimal() float64 {
	return float64(t.TotalAmount) / 100
}

// TransactionItem is one line of a transaction. Product name and unit price
// are snapshotted at creation so receipts survive later catalog edits.
type TransactionItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ProductID     uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	ProductName   string    `gorm:"size:255" json:"product_name"`
	UnitPrice     int64     `gorm:"not null" json:"-"` // Stored in cents
	Quantity      int       `gorm:"not null" json:"quantity"`
	Position      int       `gorm:"not null" json:"-"` // preserves item order within the transaction
	CreatedAt     time.Time `json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (ti TransactionItem) MarshalJSON() ([]byte, error) {
	type Alias TransactionItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		LineTotal float64 `json:"line_total"`
	}{
		Alias:     Alias(ti),
		UnitPrice: float64(ti.UnitPrice) / 100,
		LineTotal: float64(ti.UnitPrice*int64(ti.Quantity)) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new transaction item
func (ti *TransactionItem) BeforeCreate(tx *gorm.DB) error {
	if ti.ID == uuid.Nil {
		ti.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TransactionItem model
func (TransactionItem) TableName() string {
	return "transaction_items"
}

// LineTotal returns unit price * quantity in cents
func (ti *TransactionItem) LineTotal() int64 {
	return ti.UnitPrice * int64(ti.Quantity)
}

// TransactionSequence is a single-row counter used to assign human-facing
// transaction numbers atomically. The row is locked for the duration of the
// insert so concurrent creations never observe the same value.
type TransactionSequence struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	NextValue int64     `gorm:"not null;default:1" json:"next_value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the TransactionSequence model
func (TransactionSequence) TableName() string {
	return "transaction_sequences"
}
