package command

import (
	"context"
	"fmt"

	"github.com/tair/warehouse-ledger/internal/inventory/domain"
	"github.com/tair/warehouse-ledger/pkg/apperror"
)

// CloseAllocationCommand moves an active allocation into a terminal state.
type CloseAllocationCommand struct {
	AllocationID uint
	// Cancel marks the allocation CANCELLED instead of CLOSED.
	Cancel bool
}

// CloseAllocationHandler handles close/cancel allocation commands
type CloseAllocationHandler struct {
	uow UnitOfWork
}

// NewCloseAllocationHandler creates a new close allocation handler
func NewCloseAllocationHandler(uow UnitOfWork) *CloseAllocationHandler {
	return &CloseAllocationHandler{uow: uow}
}

// Handle executes the close allocation command. The row lock is held from
// the validating read to the write, like the approve path.
func (h *CloseAllocationHandler) Handle(ctx context.Context, cmd CloseAllocationCommand) (*domain.Allocation, error) {
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

		if cmd.Cancel {
			err = allocation.Cancel()
		} else {
			err = allocation.Close()
		}
		if err != nil {
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
