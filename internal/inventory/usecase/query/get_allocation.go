package query

import (
	"context"

	"github.com/tair/warehouse-ledger/internal/inventory/domain"
	"github.com/tair/warehouse-ledger/pkg/apperror"
)

// GetAllocationQuery represents the query to get an allocation
type GetAllocationQuery struct {
	ID uint
}

// AllocationView is an allocation together with its derived availability.
type AllocationView struct {
	domain.Allocation
	AvailableQuantity int `json:"available_quantity"`
}

// GetAllocationHandler handles get allocation query
type GetAllocationHandler struct {
	allocations domain.AllocationRepository
}

// NewGetAllocationHandler creates a new get allocation handler
func NewGetAllocationHandler(allocations domain.AllocationRepository) *GetAllocationHandler {
	return &GetAllocationHandler{allocations: allocations}
}

// Handle executes the get allocation query
func (h *GetAllocationHandler) Handle(ctx context.Context, q GetAllocationQuery) (*AllocationView, error) {
	if q.ID == 0 {
		return nil, apperror.BadRequest("id is required")
	}

	allocation, err := h.allocations.FindByID(ctx, q.ID)
	if err != nil {
		return nil, err
	}

	return &AllocationView{
		Allocation:        *allocation,
		AvailableQuantity: allocation.AvailableQuantity(),
	}, nil
}
