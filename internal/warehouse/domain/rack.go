package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// WarehouseStatus is the operational status of a warehouse.
type WarehouseStatus string

const (
	WarehouseActive   WarehouseStatus = "ACTIVE"
	WarehouseInactive WarehouseStatus = "INACTIVE"
)

// Warehouse is a physical site containing racks.
type Warehouse struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Code      string          `json:"code" gorm:"size:50;uniqueIndex;not null"`
	Name      string          `json:"name" gorm:"size:100;not null"`
	Address   string          `json:"address" gorm:"type:text"`
	Status    WarehouseStatus `json:"status" gorm:"size:20;not null;default:'ACTIVE'"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Warehouse) TableName() string {
	return "warehouses"
}

// RackStatus is the operational status of a rack.
type RackStatus string

const (
	RackActive   RackStatus = "ACTIVE"
	RackInactive RackStatus = "INACTIVE"
)

// Rack is a single physical storage slot. A rack holds at most one placement
// at a time.
type Rack struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Code        string     `json:"code" gorm:"size:50;uniqueIndex;not null"`
	WarehouseID uint       `json:"warehouse_id" gorm:"not null;index"`
	Zone        string     `json:"zone" gorm:"size:10"`
	Row         string     `json:"row" gorm:"size:10"`
	Level       string     `json:"level" gorm:"size:10"`
	Capacity    int        `json:"capacity"`
	Status      RackStatus `json:"status" gorm:"size:20;not null;default:'ACTIVE'"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName specifies the table name
func (Rack) TableName() string {
	return "racks"
}

// WarehouseRepository defines the contract for warehouse data access
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *Warehouse) error
	FindByID(ctx context.Context, id uint) (*Warehouse, error)
	FindAll(ctx context.Context, limit, offset int) ([]Warehouse, error)
}

// RackRepository defines the contract for rack data access. FindByIDForUpdate
// takes an exclusive row lock and is only meaningful inside a transaction.
type RackRepository interface {
	Create(ctx context.Context, rack *Rack) error
	FindByID(ctx context.Context, id uint) (*Rack, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*Rack, error)
	FindByWarehouse(ctx context.Context, warehouseID uint, limit, offset int) ([]Rack, error)
}
