package command

import (
	"context"
	"fmt"

	invdomain "github.com/tair/warehouse-ledger/internal/inventory/domain"
	"github.com/tair/warehouse-ledger/internal/reallocation/domain"
	"github.com/tair/warehouse-ledger/pkg/apperror"
)

// ReallocateTenderCommand moves quantity from a regular allocation into a
// new tender allocation bound to a contract
type ReallocateTenderCommand struct {
	SourceAllocationID uint
	TenderContractID   uint
	Quantity           int
}

// TenderReallocationResult is the pair of records a tender reallocation
// creates.
type TenderReallocationResult struct {
	Allocation  *invdomain.Allocation       `json:"allocation"`
	Reservation *domain.ContractReservation `json:"reservation"`
}

// ReallocateTenderHandler handles tender reallocation commands
type ReallocateTenderHandler struct {
	uow UnitOfWork
}

// NewReallocateTenderHandler creates a new tender reallocation handler
func NewReallocateTenderHandler(uow UnitOfWork) *ReallocateTenderHandler {
	return &ReallocateTenderHandler{uow: uow}
}

// Handle executes the tender reallocation as one transaction. Either the
// source is decremented, the tender allocation exists and the reservation
// exists, or none of them do.
func (h *ReallocateTenderHandler) Handle(ctx context.Context, cmd ReallocateTenderCommand) (*TenderReallocationResult, error) {
	if cmd.Quantity <= 0 {
		return nil, apperror.BadRequest("quantity must be positive")
	}

	var result TenderReallocationResult
	err := h.uow.WithinTransaction(ctx, func(ctx context.Context, r Repos) error {
		contract, err := r.Contracts.FindByID(ctx, cmd.TenderContractID)
		if err != nil {
			return err
		}

		source, err := drawFromRegular(ctx, r.Allocations, cmd.SourceAllocationID, cmd.Quantity)
		if err != nil {
			return err
		}

		target, err := createTargetAllocation(ctx, r.Allocations, source, invdomain.TypeTender, cmd.Quantity, source.CustomerID)
		if err != nil {
			return err
		}

		batch, err := r.Batches.FindByID(ctx, source.BatchID)
		if err != nil {
			return err
		}

		reservation := &domain.ContractReservation{
			ContractID:        contract.ID,
			ProductID:         batch.ProductID,
			BatchID:           batch.ID,
			AllocationID:      target.ID,
			ReservedQuantity:  cmd.Quantity,
			AllocatedQuantity: cmd.Quantity,
			RemainingQuantity: cmd.Quantity,
		}
		if err := r.Reservations.Create(ctx, reservation); err != nil {
			return fmt.Errorf("failed to create contract reservation: %w", err)
		}

		result.Allocation = target
		result.Reservation = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
