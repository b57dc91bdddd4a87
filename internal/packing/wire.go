//go:build wireinject
// +build wireinject

package packing

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/warehouse-ledger/internal/packing/delivery/http"
	"github.com/tair/warehouse-ledger/internal/packing/domain"
	"github.com/tair/warehouse-ledger/internal/packing/repository"
	"github.com/tair/warehouse-ledger/internal/packing/usecase/command"
	"github.com/tair/warehouse-ledger/internal/packing/usecase/query"
)

// ProvideManifestRepository provides the manifest repository
func ProvideManifestRepository(db *gorm.DB) domain.ManifestRepository {
	return repository.NewGormManifestRepository(db)
}

// ProvideUnitOfWork provides the packing unit of work
func ProvideUnitOfWork(db *gorm.DB) command.UnitOfWork {
	return repository.NewGormUnitOfWork(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideManifestRepository,
	ProvideUnitOfWork,
)

// InitializePackingHandler initializes HTTP handler with all dependencies
func InitializePackingHandler(db *gorm.DB) (*http.PackingHandler, error) {
	wire.Build(
		RepositorySet,
		command.NewCreateManifestHandler,
		query.NewGetManifestHandler,
		query.NewListManifestsHandler,
		http.NewPackingHandler,
	)
	return nil, nil
}
