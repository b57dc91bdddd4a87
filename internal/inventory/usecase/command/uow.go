package command

import (
	"context"

	"github.com/tair/warehouse-ledger/internal/inventory/domain"
)

// Repos bundles the repositories an allocation status transition touches.
// All of them must be bound to the same transaction.
type Repos struct {
	Allocations domain.AllocationRepository
}

// UnitOfWork runs fn against transaction-bound repositories and commits only
// if fn returns nil.
type UnitOfWork interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}
