package command

import (
	"context"
	"fmt"

	"github.com/tair/warehouse-ledger/internal/inventory/domain"
	"github.com/tair/warehouse-ledger/pkg/apperror"
)

// ApproveAllocationCommand represents the command to release an allocation
// from quarantine
type ApproveAllocationCommand struct {
	AllocationID uint
}

// ApproveAllocationHandler handles approve allocation command
type ApproveAllocationHandler struct {
	uow UnitOfWork
}

// NewApproveAllocationHandler creates a new approve allocation handler
func NewApproveAllocationHandler(uow UnitOfWork) *ApproveAllocationHandler {
	return &ApproveAllocationHandler{uow: uow}
}

// Handle executes the approve allocation command. The allocation row stays
// locked from the validating read to the write, so the full-row update cannot
// clobber counters a concurrent reallocation committed in between.
func (h *ApproveAllocationHandler) Handle(ctx context.Context, cmd ApproveAllocationCommand) (*domain.Allocation, error) {
	if cmd.AllocationID == 0 {
		return nil, apperror.BadRequest("allocation_id is required")
	}

	var allocation *domain.Allocation
	err := h.uow.WithinTransaction(ctx, func(ctx context.Context, r Repos) error {
		var err error
		allocation, err = r.Allocations.FindByIDForUpdate(ctx, cmd.AllocationID)
		if err != nil {
			return err
		}

		if err := allocation.Approve(); err != nil {
			return err
		}

		if err := r.Allocations.Update(ctx, allocation); err != nil {
			return fmt.Errorf("failed to update allocation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return allocation, nil
}
