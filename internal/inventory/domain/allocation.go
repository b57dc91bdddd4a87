package domain

import (
	"context"
	"time"

	"github.com/tair/warehouse-ledger/pkg/apperror"
)

// AllocationStatus is the lifecycle status of an allocation.
type AllocationStatus string

const (
	StatusQuarantine AllocationStatus = "QUARANTINE"
	StatusActive     AllocationStatus = "ACTIVE"
	StatusReserved   AllocationStatus = "RESERVED"
	StatusClosed     AllocationStatus = "CLOSED"
	StatusCancelled  AllocationStatus = "CANCELLED"
)

// AllocationType is the purpose a quantity is claimed for.
type AllocationType struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Code string `json:"code" gorm:"size:30;uniqueIndex;not null"`
	Name string `json:"name" gorm:"size:50;not null"`
}

// TableName specifies the table name
func (AllocationType) TableName() string {
	return "allocation_types"
}

// Well-known allocation type ids, seeded at startup.
const (
	TypeRegular     uint = 1
	TypeTender      uint = 2
	TypeQuarantine  uint = 3
	TypeDamaged     uint = 4
	TypeConsignment uint = 5
)

// SeedAllocationTypes returns the reference rows for allocation purposes.
func SeedAllocationTypes() []AllocationType {
	return []AllocationType{
		{ID: TypeRegular, Code: "REGULAR_STOCK", Name: "Regular stock"},
		{ID: TypeTender, Code: "TENDER_STOCK", Name: "Tender contract stock"},
		{ID: TypeQuarantine, Code: "QUARANTINE_STOCK", Name: "Quarantined stock"},
		{ID: TypeDamaged, Code: "DAMAGED_STOCK", Name: "Damaged stock"},
		{ID: TypeConsignment, Code: "CONSIGNMENT_STOCK", Name: "Consignment stock"},
	}
}

// Allocation is a claim on part of a batch's quantity for a purpose. The
// three counters are only ever mutated through the methods below so that
// reserved + shipped <= allocated holds at all times.
type Allocation struct {
	ID                uint             `json:"id" gorm:"primaryKey"`
	BatchID           uint             `json:"batch_id" gorm:"not null;index"`
	AllocationTypeID  uint             `json:"allocation_type_id" gorm:"not null;index"`
	CustomerID        *uint            `json:"customer_id"`
	AllocatedQuantity int              `json:"allocated_quantity" gorm:"not null;default:0;check:allocated_quantity >= 0"`
	ReservedQuantity  int              `json:"reserved_quantity" gorm:"not null;default:0;check:reserved_quantity >= 0"`
	ShippedQuantity   int              `json:"shipped_quantity" gorm:"not null;default:0;check:shipped_quantity >= 0"`
	Status            AllocationStatus `json:"status" gorm:"size:20;not null;default:'ACTIVE'"`
	AllocationDate    time.Time        `json:"allocation_date" gorm:"type:date"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// TableName specifies the table name
func (Allocation) TableName() string {
	return "allocations"
}

// AvailableQuantity is the portion of the claim not yet reserved or shipped.
// Computed from the loaded counters at the point of use; never cached.
func (a *Allocation) AvailableQuantity() int {
	return a.AllocatedQuantity - a.ReservedQuantity - a.ShippedQuantity
}

// CountersConsistent reports whether the quantity invariant holds.
func (a *Allocation) CountersConsistent() bool {
	return a.AllocatedQuantity >= 0 &&
		a.ReservedQuantity >= 0 &&
		a.ShippedQuantity >= 0 &&
		a.ReservedQuantity+a.ShippedQuantity <= a.AllocatedQuantity
}

// Draw removes quantity from the allocated counter for transfer into another
// allocation. The batch total is conserved by the caller creating a matching
// claim elsewhere in the same transaction.
func (a *Allocation) Draw(quantity int) error {
	if quantity <= 0 {
		return apperror.BadRequest("quantity must be positive")
	}
	if available := a.AvailableQuantity(); quantity > available {
		return apperror.Unprocessable(
			"requested quantity (%d) exceeds available quantity (%d)", quantity, available)
	}
	a.AllocatedQuantity -= quantity
	return nil
}

// Approve transitions the allocation out of quarantine. The transition is
// one-directional; there is no return-to-quarantine path.
func (a *Allocation) Approve() error {
	if a.Status != StatusQuarantine {
		return apperror.Conflict(
			"allocation is not in QUARANTINE status, current status: %s", a.Status)
	}
	a.Status = StatusActive
	return nil
}

// Close transitions an active allocation to its terminal CLOSED state.
func (a *Allocation) Close() error {
	if a.Status != StatusActive {
		return apperror.Conflict(
			"only ACTIVE allocations can be closed, current status: %s", a.Status)
	}
	a.Status = StatusClosed
	return nil
}

// Cancel transitions an active allocation to its terminal CANCELLED state.
func (a *Allocation) Cancel() error {
	if a.Status != StatusActive {
		return apperror.Conflict(
			"only ACTIVE allocations can be cancelled, current status: %s", a.Status)
	}
	a.Status = StatusCancelled
	return nil
}

// AllocationRepository defines the contract for allocation data access.
// FindByIDForUpdate takes an exclusive row lock and is only meaningful inside
// a transaction.
type AllocationRepository interface {
	Create(ctx context.Context, allocation *Allocation) error
	FindByID(ctx context.Context, id uint) (*Allocation, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*Allocation, error)
	FindByBatch(ctx context.Context, batchID uint) ([]Allocation, error)
	Update(ctx context.Context, allocation *Allocation) error
}
