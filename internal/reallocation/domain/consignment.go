package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ConsignmentAgreement is the master agreement under which stock is shipped
// to a customer on consignment.
type ConsignmentAgreement struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	AgreementNumber string          `json:"agreement_number" gorm:"size:50;uniqueIndex;not null"`
	CustomerID      uint            `json:"customer_id" gorm:"not null;index"`
	AgreementDate   time.Time       `json:"agreement_date" gorm:"type:date;not null"`
	StartDate       time.Time       `json:"start_date" gorm:"type:date"`
	EndDate         *time.Time      `json:"end_date" gorm:"type:date"`
	CommissionRate  decimal.Decimal `json:"commission_rate" gorm:"type:numeric(5,2)"`
	Status          string          `json:"status" gorm:"size:20;not null;default:'ACTIVE'"`
	CreatedBy       string          `json:"created_by" gorm:"size:50"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (ConsignmentAgreement) TableName() string {
	return "consignment_agreements"
}

// Consignment is one consignment shipment drawn up under an agreement.
type Consignment struct {
	ID                uint              `json:"id" gorm:"primaryKey"`
	ConsignmentNumber string            `json:"consignment_number" gorm:"size:50;uniqueIndex;not null"`
	AgreementID       uint              `json:"agreement_id" gorm:"not null;index"`
	ConsignmentDate   time.Time         `json:"consignment_date" gorm:"type:date;not null"`
	Status            string            `json:"status" gorm:"size:20;not null;default:'PENDING'"`
	CreatedBy         string            `json:"created_by" gorm:"size:50"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	Items             []ConsignmentItem `json:"items" gorm:"foreignKey:ConsignmentID"`
}

// TableName specifies the table name
func (Consignment) TableName() string {
	return "consignments"
}

// ConsignmentItem is one line of a consignment shipment. Each item keeps its
// own link to the consignment allocation it was drawn into, so traceability
// survives multi-line shipments.
type ConsignmentItem struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	ConsignmentID   uint            `json:"consignment_id" gorm:"not null;index"`
	ProductID       uint            `json:"product_id" gorm:"not null"`
	BatchID         uint            `json:"batch_id" gorm:"not null"`
	AllocationID    uint            `json:"allocation_id" gorm:"not null;uniqueIndex"`
	QuantityShipped int             `json:"quantity_shipped" gorm:"not null"`
	SellingPrice    decimal.Decimal `json:"selling_price" gorm:"type:numeric(12,2)"`
	LotNumber       string          `json:"lot_number" gorm:"size:50"`
	ExpiryDate      time.Time       `json:"expiry_date" gorm:"type:date"`
	Status          string          `json:"status" gorm:"size:20;not null;default:'PENDING_SHIPMENT'"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (ConsignmentItem) TableName() string {
	return "consignment_items"
}

// ConsignmentAgreementRepository defines the contract for agreement data
// access
type ConsignmentAgreementRepository interface {
	Create(ctx context.Context, agreement *ConsignmentAgreement) error
	FindByID(ctx context.Context, id uint) (*ConsignmentAgreement, error)
}

// ConsignmentRepository defines the contract for consignment data access
type ConsignmentRepository interface {
	Create(ctx context.Context, consignment *Consignment) error
	CreateItem(ctx context.Context, item *ConsignmentItem) error
	FindByID(ctx context.Context, id uint) (*Consignment, error)
}
