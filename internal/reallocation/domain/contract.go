package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TenderContract is the master record of a tender agreement. Reallocated
// stock stays traceable to it through contract reservations.
type TenderContract struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	ContractNumber  string          `json:"contract_number" gorm:"size:50;uniqueIndex;not null"`
	ContractDate    time.Time       `json:"contract_date" gorm:"type:date;not null"`
	ContractValue   decimal.Decimal `json:"contract_value" gorm:"type:numeric(15,2)"`
	StartDate       time.Time       `json:"start_date" gorm:"type:date"`
	EndDate         time.Time       `json:"end_date" gorm:"type:date"`
	TenderReference string          `json:"tender_reference" gorm:"size:100"`
	TenderWinner    string          `json:"tender_winner" gorm:"size:100"`
	Status          string          `json:"status" gorm:"size:20;not null;default:'ACTIVE'"`
	CreatedBy       string          `json:"created_by" gorm:"size:50"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (TenderContract) TableName() string {
	return "tender_contracts"
}

// ContractReservation records one quantity reserved for a tender contract.
// Its counters must stay consistent with the tender allocation it references.
type ContractReservation struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	ContractID        uint      `json:"contract_id" gorm:"not null;index"`
	ProductID         uint      `json:"product_id" gorm:"not null"`
	BatchID           uint      `json:"batch_id" gorm:"not null"`
	AllocationID      uint      `json:"allocation_id" gorm:"not null;uniqueIndex"`
	ReservedQuantity  int       `json:"reserved_quantity" gorm:"not null"`
	AllocatedQuantity int       `json:"allocated_quantity" gorm:"not null"`
	RemainingQuantity int       `json:"remaining_quantity" gorm:"not null"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (ContractReservation) TableName() string {
	return "contract_reservations"
}

// TenderContractRepository defines the contract for tender data access
type TenderContractRepository interface {
	Create(ctx context.Context, contract *TenderContract) error
	FindByID(ctx context.Context, id uint) (*TenderContract, error)
}

// ContractReservationRepository defines the contract for reservation data
// access
type ContractReservationRepository interface {
	Create(ctx context.Context, reservation *ContractReservation) error
	FindByContract(ctx context.Context, contractID uint) ([]ContractReservation, error)
}
