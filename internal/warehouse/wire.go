//go:build wireinject
// +build wireinject

package warehouse

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/warehouse-ledger/internal/warehouse/delivery/http"
	"github.com/tair/warehouse-ledger/internal/warehouse/domain"
	"github.com/tair/warehouse-ledger/internal/warehouse/repository"
	"github.com/tair/warehouse-ledger/internal/warehouse/usecase/command"
	"github.com/tair/warehouse-ledger/kafka"
)

// ProvideWarehouseRepository provides the warehouse repository
func ProvideWarehouseRepository(db *gorm.DB) domain.WarehouseRepository {
	return repository.NewGormWarehouseRepository(db)
}

// ProvideRackRepository provides the rack repository
func ProvideRackRepository(db *gorm.DB) domain.RackRepository {
	return repository.NewGormRackRepository(db)
}

// ProvidePlacementRepository provides the placement repository
func ProvidePlacementRepository(db *gorm.DB) domain.PlacementRepository {
	return repository.NewGormPlacementRepository(db)
}

// ProvideUnitOfWork provides the warehouse unit of work
func ProvideUnitOfWork(db *gorm.DB) command.UnitOfWork {
	return repository.NewGormUnitOfWork(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideWarehouseRepository,
	ProvideRackRepository,
	ProvidePlacementRepository,
	ProvideUnitOfWork,
)

// InitializeWarehouseHandler initializes HTTP handler with all dependencies
func InitializeWarehouseHandler(db *gorm.DB, publisher *kafka.Publisher) (*http.WarehouseHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewWarehouseHandler,
	)
	return nil, nil
}
