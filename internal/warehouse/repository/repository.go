package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/warehouse-ledger/internal/warehouse/domain"
	"github.com/tair/warehouse-ledger/pkg/apperror"
)

// GormWarehouseRepository persists warehouses via gorm.
type GormWarehouseRepository struct {
	db *gorm.DB
}

func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

func (r *GormWarehouseRepository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&domain.Warehouse{},
		&domain.Rack{},
		&domain.StockPlacement{},
	)
}

func (r *GormWarehouseRepository) Create(ctx context.Context, warehouse *domain.Warehouse) error {
	return r.db.WithContext(ctx).Create(warehouse).Error
}

func (r *GormWarehouseRepository) FindByID(ctx context.Context, id uint) (*domain.Warehouse, error) {
	var warehouse domain.Warehouse
	err := r.db.WithContext(ctx).First(&warehouse, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("warehouse with id %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (r *GormWarehouseRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Warehouse, error) {
	var warehouses []domain.Warehouse
	err := r.db.WithContext(ctx).Limit(limit).Offset(offset).Find(&warehouses).Error
	return warehouses, err
}

// GormRackRepository persists racks via gorm.
type GormRackRepository struct {
	db *gorm.DB
}

func NewGormRackRepository(db *gorm.DB) *GormRackRepository {
	return &GormRackRepository{db: db}
}

func (r *GormRackRepository) Create(ctx context.Context, rack *domain.Rack) error {
	return r.db.WithContext(ctx).Create(rack).Error
}

func (r *GormRackRepository) FindByID(ctx context.Context, id uint) (*domain.Rack, error) {
	return r.findByID(ctx, id, false)
}

// FindByIDForUpdate loads the rack under an exclusive row lock so that
// concurrent putaway and pick calls for the same slot serialize.
func (r *GormRackRepository) FindByIDForUpdate(ctx context.Context, id uint) (*domain.Rack, error) {
	return r.findByID(ctx, id, true)
}

func (r *GormRackRepository) findByID(ctx context.Context, id uint, forUpdate bool) (*domain.Rack, error) {
	tx := r.db.WithContext(ctx)
	if forUpdate {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var rack domain.Rack
	err := tx.First(&rack, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("rack with id %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &rack, nil
}

func (r *GormRackRepository) FindByWarehouse(ctx context.Context, warehouseID uint, limit, offset int) ([]domain.Rack, error) {
	var racks []domain.Rack
	err := r.db.WithContext(ctx).
		Where("warehouse_id = ?", warehouseID).
		Limit(limit).Offset(offset).
		Order("code").
		Find(&racks).Error
	return racks, err
}

// GormPlacementRepository persists stock placements via gorm.
type GormPlacementRepository struct {
	db *gorm.DB
}

func NewGormPlacementRepository(db *gorm.DB) *GormPlacementRepository {
	return &GormPlacementRepository{db: db}
}

func (r *GormPlacementRepository) Create(ctx context.Context, placement *domain.StockPlacement) error {
	return r.db.WithContext(ctx).Create(placement).Error
}

// FindByRack returns the active placement on a rack, or nil when the rack is
// empty.
func (r *GormPlacementRepository) FindByRack(ctx context.Context, rackID uint) (*domain.StockPlacement, error) {
	var placement domain.StockPlacement
	err := r.db.WithContext(ctx).Where("rack_id = ?", rackID).First(&placement).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &placement, nil
}

func (r *GormPlacementRepository) FindByAllocation(ctx context.Context, allocationID uint) ([]domain.StockPlacement, error) {
	var placements []domain.StockPlacement
	err := r.db.WithContext(ctx).
		Where("allocation_id = ?", allocationID).
		Find(&placements).Error
	return placements, err
}

func (r *GormPlacementRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.StockPlacement{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("placement with id %d not found", id)
	}
	return nil
}
