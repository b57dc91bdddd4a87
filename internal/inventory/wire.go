//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/warehouse-ledger/internal/inventory/delivery/http"
	"github.com/tair/warehouse-ledger/internal/inventory/domain"
	"github.com/tair/warehouse-ledger/internal/inventory/repository"
	"github.com/tair/warehouse-ledger/internal/inventory/usecase/command"
)

// ProvideProductRepository provides the product repository
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepository(db)
}

// ProvideBatchRepository provides the batch repository
func ProvideBatchRepository(db *gorm.DB) domain.BatchRepository {
	return repository.NewGormBatchRepository(db)
}

// ProvideAllocationRepository provides the allocation repository with tracing
func ProvideAllocationRepository(db *gorm.DB) domain.AllocationRepository {
	return repository.NewAllocationRepositoryWithTracing(db)
}

// ProvideUnitOfWork provides the allocation unit of work
func ProvideUnitOfWork(db *gorm.DB) command.UnitOfWork {
	return repository.NewGormUnitOfWork(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
	ProvideBatchRepository,
	ProvideAllocationRepository,
	ProvideUnitOfWork,
)

// InitializeInventoryHandler initializes HTTP handler with all dependencies
func InitializeInventoryHandler(db *gorm.DB) (*http.InventoryHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewInventoryHandler,
	)
	return nil, nil
}
