package command

import (
	"context"
	"fmt"
	"time"

	invdomain "github.com/tair/warehouse-ledger/internal/inventory/domain"
	"github.com/tair/warehouse-ledger/internal/warehouse/domain"
	"github.com/tair/warehouse-ledger/pkg/apperror"
)

// Repos bundles the repositories a placement mutation touches. All of them
// must be bound to the same transaction.
type Repos struct {
	Racks       domain.RackRepository
	Placements  domain.PlacementRepository
	Allocations invdomain.AllocationRepository
}

// UnitOfWork runs fn against transaction-bound repositories and commits only
// if fn returns nil.
type UnitOfWork interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}

// PlaceStockCommand represents the command to put allocation quantity into a
// rack
type PlaceStockCommand struct {
	RackID       uint
	AllocationID uint
	Quantity     int
	PlacedBy     string
}

// PlaceStockHandler handles place stock command
type PlaceStockHandler struct {
	uow UnitOfWork
}

// NewPlaceStockHandler creates a new place stock handler
func NewPlaceStockHandler(uow UnitOfWork) *PlaceStockHandler {
	return &PlaceStockHandler{uow: uow}
}

// Handle executes the place stock command as one transaction.
func (h *PlaceStockHandler) Handle(ctx context.Context, cmd PlaceStockCommand) (*domain.StockPlacement, error) {
	var placement *domain.StockPlacement
	err := h.uow.WithinTransaction(ctx, func(ctx context.Context, r Repos) error {
		var err error
		placement, err = Place(ctx, r, cmd)
		return err
	})
	if err != nil {
		return nil, err
	}
	return placement, nil
}

// Place validates and inserts a placement using repositories already bound
// to a transaction, so orchestrators can reuse it inside a wider unit of
// work. Row locks are always taken rack first, then allocation.
func Place(ctx context.Context, r Repos, cmd PlaceStockCommand) (*domain.StockPlacement, error) {
	if cmd.Quantity <= 0 {
		return nil, apperror.BadRequest("quantity must be positive")
	}

	rack, err := r.Racks.FindByIDForUpdate(ctx, cmd.RackID)
	if err != nil {
		return nil, err
	}

	allocation, err := r.Allocations.FindByIDForUpdate(ctx, cmd.AllocationID)
	if err != nil {
		return nil, err
	}

	existing, err := r.Placements.FindByRack(ctx, rack.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check rack occupancy: %w", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("rack %s is already occupied", rack.Code)
	}

	if available := allocation.AvailableQuantity(); cmd.Quantity > available {
		return nil, apperror.Unprocessable(
			"placement quantity (%d) exceeds available quantity (%d)", cmd.Quantity, available)
	}

	placement := &domain.StockPlacement{
		RackID:        rack.ID,
		AllocationID:  allocation.ID,
		Quantity:      cmd.Quantity,
		PlacedBy:      cmd.PlacedBy,
		PlacementDate: time.Now(),
	}
	if err := r.Placements.Create(ctx, placement); err != nil {
		return nil, fmt.Errorf("failed to create placement: %w", err)
	}

	return placement, nil
}
