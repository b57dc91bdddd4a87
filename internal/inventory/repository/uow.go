package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tair/warehouse-ledger/internal/inventory/usecase/command"
)

// GormUnitOfWork binds the allocation repository to a single gorm
// transaction, so a status transition holds its row lock from the validating
// read to the write.
type GormUnitOfWork struct {
	db *gorm.DB
}

func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

func (u *GormUnitOfWork) WithinTransaction(ctx context.Context, fn func(ctx context.Context, r command.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, command.Repos{
			Allocations: NewGormAllocationRepository(tx),
		})
	})
}
