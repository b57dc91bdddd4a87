package command

import (
	"context"
	"fmt"

	"github.com/tair/warehouse-ledger/internal/warehouse/domain"
	"github.com/tair/warehouse-ledger/pkg/apperror"
)

// RemoveStockCommand represents the command to pick the placement off a rack
type RemoveStockCommand struct {
	RackID uint
}

// RemoveStockHandler handles remove stock command
type RemoveStockHandler struct {
	uow UnitOfWork
}

// NewRemoveStockHandler creates a new remove stock handler
func NewRemoveStockHandler(uow UnitOfWork) *RemoveStockHandler {
	return &RemoveStockHandler{uow: uow}
}

// Handle executes the remove stock command as one transaction. Removal is the
// only path that frees a rack for a subsequent placement.
func (h *RemoveStockHandler) Handle(ctx context.Context, cmd RemoveStockCommand) (*domain.StockPlacement, error) {
	var removed *domain.StockPlacement
	err := h.uow.WithinTransaction(ctx, func(ctx context.Context, r Repos) error {
		rack, err := r.Racks.FindByIDForUpdate(ctx, cmd.RackID)
		if err != nil {
			return err
		}

		placement, err := r.Placements.FindByRack(ctx, rack.ID)
		if err != nil {
			return fmt.Errorf("failed to check rack occupancy: %w", err)
		}
		if placement == nil {
			return apperror.Conflict("rack %s is already empty", rack.Code)
		}

		if err := r.Placements.Delete(ctx, placement.ID); err != nil {
			return fmt.Errorf("failed to delete placement: %w", err)
		}

		removed = placement
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}
