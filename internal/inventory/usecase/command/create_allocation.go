package command

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/warehouse-ledger/internal/inventory/domain"
	"github.com/tair/warehouse-ledger/pkg/apperror"
)

// CreateAllocationCommand represents the command to claim batch quantity for
// a purpose
type CreateAllocationCommand struct {
	BatchID          uint
	AllocationTypeID uint
	Quantity         int
	CustomerID       *uint
	InitialStatus    domain.AllocationStatus
}

// CreateAllocationHandler handles create allocation command
type CreateAllocationHandler struct {
	allocations domain.AllocationRepository
	batches     domain.BatchRepository
}

// NewCreateAllocationHandler creates a new create allocation handler
func NewCreateAllocationHandler(allocations domain.AllocationRepository, batches domain.BatchRepository) *CreateAllocationHandler {
	return &CreateAllocationHandler{allocations: allocations, batches: batches}
}

// Handle executes the create allocation command. New allocations start with
// the full claimed quantity and nothing reserved or shipped.
func (h *CreateAllocationHandler) Handle(ctx context.Context, cmd CreateAllocationCommand) (*domain.Allocation, error) {
	if cmd.Quantity <= 0 {
		return nil, apperror.BadRequest("quantity must be positive")
	}
	if cmd.AllocationTypeID == 0 {
		return nil, apperror.BadRequest("allocation_type_id is required")
	}

	status := cmd.InitialStatus
	if status == "" {
		status = domain.StatusActive
	}
	switch status {
	case domain.StatusActive, domain.StatusQuarantine, domain.StatusReserved:
	default:
		return nil, apperror.BadRequest("initial status must be ACTIVE, QUARANTINE or RESERVED, got %s", status)
	}

	if _, err := h.batches.FindByID(ctx, cmd.BatchID); err != nil {
		return nil, err
	}

	allocation := &domain.Allocation{
		BatchID:           cmd.BatchID,
		AllocationTypeID:  cmd.AllocationTypeID,
		CustomerID:        cmd.CustomerID,
		AllocatedQuantity: cmd.Quantity,
		ReservedQuantity:  0,
		ShippedQuantity:   0,
		Status:            status,
		AllocationDate:    time.Now(),
	}

	if err := h.allocations.Create(ctx, allocation); err != nil {
		return nil, fmt.Errorf("failed to create allocation: %w", err)
	}

	return allocation, nil
}
