//go:build wireinject
// +build wireinject

package inbound

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/warehouse-ledger/internal/inbound/delivery/http"
	"github.com/tair/warehouse-ledger/internal/inbound/repository"
	"github.com/tair/warehouse-ledger/internal/inbound/usecase/command"
	"github.com/tair/warehouse-ledger/kafka"
)

// QuarantinePolicy forces inbound allocations to start in QUARANTINE when
// true.
type QuarantinePolicy bool

// ProvideUnitOfWork provides the inbound unit of work
func ProvideUnitOfWork(db *gorm.DB) command.UnitOfWork {
	return repository.NewGormUnitOfWork(db)
}

// ProvideProcessInboundHandler provides the goods receipt command handler
func ProvideProcessInboundHandler(uow command.UnitOfWork, policy QuarantinePolicy) *command.ProcessInboundHandler {
	return command.NewProcessInboundHandler(uow, bool(policy))
}

// InitializeInboundHandler initializes HTTP handler with all dependencies
func InitializeInboundHandler(db *gorm.DB, publisher *kafka.Publisher, policy QuarantinePolicy) (*http.InboundHandler, error) {
	wire.Build(
		ProvideUnitOfWork,
		ProvideProcessInboundHandler,
		http.NewInboundHandler,
	)
	return nil, nil
}
