// Package repository wires the inbound unit of work to gorm.
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tair/warehouse-ledger/internal/inbound/usecase/command"
	invrepo "github.com/tair/warehouse-ledger/internal/inventory/repository"
	whrepo "github.com/tair/warehouse-ledger/internal/warehouse/repository"
)

// GormUnitOfWork binds the inbound repositories to a single gorm
// transaction.
type GormUnitOfWork struct {
	db *gorm.DB
}

func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

func (u *GormUnitOfWork) WithinTransaction(ctx context.Context, fn func(ctx context.Context, r command.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, command.Repos{
			Products:    invrepo.NewGormProductRepository(tx),
			Batches:     invrepo.NewGormBatchRepository(tx),
			Allocations: invrepo.NewGormAllocationRepository(tx),
			Racks:       whrepo.NewGormRackRepository(tx),
			Placements:  whrepo.NewGormPlacementRepository(tx),
		})
	})
}
