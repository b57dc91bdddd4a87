package query

import (
	"context"

	"github.com/tair/warehouse-ledger/internal/warehouse/domain"
	"github.com/tair/warehouse-ledger/pkg/apperror"
)

// GetRackQuery represents the query to get a rack and its occupancy
type GetRackQuery struct {
	ID uint
}

// RackView is a rack together with its current placement, if any. The
// current quantity is derived from the placement at the point of use rather
// than stored on the rack.
type RackView struct {
	domain.Rack
	Placement       *domain.StockPlacement `json:"placement,omitempty"`
	CurrentQuantity int                    `json:"current_quantity"`
}

// GetRackHandler handles get rack query
type GetRackHandler struct {
	racks      domain.RackRepository
	placements domain.PlacementRepository
}

// NewGetRackHandler creates a new get rack handler
func NewGetRackHandler(racks domain.RackRepository, placements domain.PlacementRepository) *GetRackHandler {
	return &GetRackHandler{racks: racks, placements: placements}
}

// Handle executes the get rack query
func (h *GetRackHandler) Handle(ctx context.Context, q GetRackQuery) (*RackView, error) {
	if q.ID == 0 {
		return nil, apperror.BadRequest("id is required")
	}

	rack, err := h.racks.FindByID(ctx, q.ID)
	if err != nil {
		return nil, err
	}

	placement, err := h.placements.FindByRack(ctx, rack.ID)
	if err != nil {
		return nil, err
	}

	view := &RackView{Rack: *rack, Placement: placement}
	if placement != nil {
		view.CurrentQuantity = placement.Quantity
	}
	return view, nil
}
