package repository

import (
	"context"

	"gorm.io/gorm"

	invrepo "github.com/tair/warehouse-ledger/internal/inventory/repository"
	"github.com/tair/warehouse-ledger/internal/warehouse/usecase/command"
)

// GormUnitOfWork binds the placement repositories to a single gorm
// transaction. Nested invocations reuse gorm's savepoint support, so an
// orchestrator wrapping a placement keeps one outer atomic scope.
type GormUnitOfWork struct {
	db *gorm.DB
}

func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

func (u *GormUnitOfWork) WithinTransaction(ctx context.Context, fn func(ctx context.Context, r command.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, command.Repos{
			Racks:       NewGormRackRepository(tx),
			Placements:  NewGormPlacementRepository(tx),
			Allocations: invrepo.NewGormAllocationRepository(tx),
		})
	})
}
