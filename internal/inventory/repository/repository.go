package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/warehouse-ledger/internal/inventory/domain"
	"github.com/tair/warehouse-ledger/pkg/apperror"
)

// GormProductRepository persists products via gorm.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("product with id %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("product with sku %q not found", sku)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Limit(limit).Offset(offset).Find(&products).Error
	return products, err
}

// GormBatchRepository persists batches via gorm.
type GormBatchRepository struct {
	db *gorm.DB
}

func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

func (r *GormBatchRepository) Create(ctx context.Context, batch *domain.Batch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

func (r *GormBatchRepository) FindByID(ctx context.Context, id uint) (*domain.Batch, error) {
	var batch domain.Batch
	err := r.db.WithContext(ctx).First(&batch, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("batch with id %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *GormBatchRepository) FindByProduct(ctx context.Context, productID uint, limit, offset int) ([]domain.Batch, error) {
	var batches []domain.Batch
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Limit(limit).Offset(offset).
		Order("receipt_date DESC").
		Find(&batches).Error
	return batches, err
}

// GormAllocationRepository persists allocations via gorm.
type GormAllocationRepository struct {
	db *gorm.DB
}

func NewGormAllocationRepository(db *gorm.DB) *GormAllocationRepository {
	return &GormAllocationRepository{db: db}
}

func (r *GormAllocationRepository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&domain.Product{},
		&domain.Batch{},
		&domain.AllocationType{},
		&domain.Allocation{},
	)
}

// SeedTypes inserts the reference allocation type rows, skipping ones that
// already exist.
func (r *GormAllocationRepository) SeedTypes() error {
	types := domain.SeedAllocationTypes()
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&types).Error
}

func (r *GormAllocationRepository) Create(ctx context.Context, allocation *domain.Allocation) error {
	return r.db.WithContext(ctx).Create(allocation).Error
}

func (r *GormAllocationRepository) FindByID(ctx context.Context, id uint) (*domain.Allocation, error) {
	return r.findByID(ctx, id, false)
}

// FindByIDForUpdate loads the allocation under an exclusive row lock so that
// concurrent counter checks serialize. Callers must be inside a transaction.
func (r *GormAllocationRepository) FindByIDForUpdate(ctx context.Context, id uint) (*domain.Allocation, error) {
	return r.findByID(ctx, id, true)
}

func (r *GormAllocationRepository) findByID(ctx context.Context, id uint, forUpdate bool) (*domain.Allocation, error) {
	tx := r.db.WithContext(ctx)
	if forUpdate {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var allocation domain.Allocation
	err := tx.First(&allocation, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("allocation with id %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &allocation, nil
}

func (r *GormAllocationRepository) FindByBatch(ctx context.Context, batchID uint) ([]domain.Allocation, error) {
	var allocations []domain.Allocation
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("id").
		Find(&allocations).Error
	return allocations, err
}

func (r *GormAllocationRepository) Update(ctx context.Context, allocation *domain.Allocation) error {
	return r.db.WithContext(ctx).Save(allocation).Error
}
