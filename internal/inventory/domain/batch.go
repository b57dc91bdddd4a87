package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Batch records one physical receipt event of a product lot. The received
// quantity is immutable once written; ledger operations only redistribute it
// across allocations.
type Batch struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	ProductID          uint      `json:"product_id" gorm:"not null;index"`
	LotNumber          string    `json:"lot_number" gorm:"size:50;not null"`
	ExpiryDate         time.Time `json:"expiry_date" gorm:"type:date;not null"`
	RegistrationNumber string    `json:"registration_number" gorm:"size:50"`
	ReceivedQuantity   int       `json:"received_quantity" gorm:"not null;check:received_quantity > 0"`
	ReceiptDocument    string    `json:"receipt_document" gorm:"size:50;not null"`
	ReceiptDate        time.Time `json:"receipt_date" gorm:"type:date;not null"`
	ReceiptPIC         string    `json:"receipt_pic" gorm:"size:50"`

	// Physical dimensions captured at receipt, used downstream by packing.
	Length decimal.Decimal `json:"length" gorm:"type:numeric(10,2)"`
	Width  decimal.Decimal `json:"width" gorm:"type:numeric(10,2)"`
	Height decimal.Decimal `json:"height" gorm:"type:numeric(10,2)"`
	Weight decimal.Decimal `json:"weight" gorm:"type:numeric(10,3)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Batch) TableName() string {
	return "batches"
}

// BatchRepository defines the contract for batch data access
type BatchRepository interface {
	Create(ctx context.Context, batch *Batch) error
	FindByID(ctx context.Context, id uint) (*Batch, error)
	FindByProduct(ctx context.Context, productID uint, limit, offset int) ([]Batch, error)
}
