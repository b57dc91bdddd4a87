//go:build wireinject
// +build wireinject

package reallocation

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/warehouse-ledger/internal/reallocation/delivery/http"
	"github.com/tair/warehouse-ledger/internal/reallocation/domain"
	"github.com/tair/warehouse-ledger/internal/reallocation/repository"
	"github.com/tair/warehouse-ledger/internal/reallocation/usecase/command"
	"github.com/tair/warehouse-ledger/kafka"
)

// ProvideContractRepository provides the tender contract repository
func ProvideContractRepository(db *gorm.DB) domain.TenderContractRepository {
	return repository.NewGormTenderContractRepository(db)
}

// ProvideReservationRepository provides the contract reservation repository
func ProvideReservationRepository(db *gorm.DB) domain.ContractReservationRepository {
	return repository.NewGormContractReservationRepository(db)
}

// ProvideAgreementRepository provides the consignment agreement repository
func ProvideAgreementRepository(db *gorm.DB) domain.ConsignmentAgreementRepository {
	return repository.NewGormConsignmentAgreementRepository(db)
}

// ProvideConsignmentRepository provides the consignment repository
func ProvideConsignmentRepository(db *gorm.DB) domain.ConsignmentRepository {
	return repository.NewGormConsignmentRepository(db)
}

// ProvideUnitOfWork provides the reallocation unit of work
func ProvideUnitOfWork(db *gorm.DB) command.UnitOfWork {
	return repository.NewGormUnitOfWork(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideContractRepository,
	ProvideReservationRepository,
	ProvideAgreementRepository,
	ProvideConsignmentRepository,
	ProvideUnitOfWork,
)

// InitializeReallocationHandler initializes HTTP handler with all
// dependencies
func InitializeReallocationHandler(db *gorm.DB, publisher *kafka.Publisher) (*http.ReallocationHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewReallocationHandler,
	)
	return nil, nil
}
