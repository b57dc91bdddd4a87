package domain

import (
	"context"
	"time"
)

// StockPlacement binds a quantity drawn from one allocation to exactly one
// rack. The unique index on rack_id is the database-level guarantee that a
// slot can never hold two placements.
type StockPlacement struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	RackID        uint      `json:"rack_id" gorm:"not null;uniqueIndex:uq_rack_placement"`
	AllocationID  uint      `json:"allocation_id" gorm:"not null;index"`
	Quantity      int       `json:"quantity" gorm:"not null;check:quantity > 0"`
	PlacedBy      string    `json:"placed_by" gorm:"size:50"`
	PlacementDate time.Time `json:"placement_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (StockPlacement) TableName() string {
	return "stock_placements"
}

// PlacementRepository defines the contract for placement data access.
// FindByRack returns nil without error when the rack is empty.
type PlacementRepository interface {
	Create(ctx context.Context, placement *StockPlacement) error
	FindByRack(ctx context.Context, rackID uint) (*StockPlacement, error)
	FindByAllocation(ctx context.Context, allocationID uint) ([]StockPlacement, error)
	Delete(ctx context.Context, id uint) error
}
