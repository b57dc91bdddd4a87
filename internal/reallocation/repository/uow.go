package repository

import (
	"context"

	"gorm.io/gorm"

	invrepo "github.com/tair/warehouse-ledger/internal/inventory/repository"
	"github.com/tair/warehouse-ledger/internal/reallocation/usecase/command"
)

// GormUnitOfWork binds the reallocation repositories to a single gorm
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
			Allocations:  invrepo.NewGormAllocationRepository(tx),
			Batches:      invrepo.NewGormBatchRepository(tx),
			Contracts:    NewGormTenderContractRepository(tx),
			Reservations: NewGormContractReservationRepository(tx),
			Agreements:   NewGormConsignmentAgreementRepository(tx),
			Consignments: NewGormConsignmentRepository(tx),
		})
	})
}
