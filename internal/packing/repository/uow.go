package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tair/warehouse-ledger/internal/packing/usecase/command"
)

// GormUnitOfWork binds the packing repositories to a single gorm
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
			Manifests: NewGormManifestRepository(tx),
		})
	})
}
