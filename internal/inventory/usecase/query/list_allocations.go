package query

import (
	"context"

	"github.com/tair/warehouse-ledger/internal/inventory/domain"
	"github.com/tair/warehouse-ledger/pkg/apperror"
)

// ListAllocationsQuery represents the query to list allocations of a batch
type ListAllocationsQuery struct {
	BatchID uint
}

// ListAllocationsHandler handles list allocations query
type ListAllocationsHandler struct {
	allocations domain.AllocationRepository
	batches     domain.BatchRepository
}

// NewListAllocationsHandler creates a new list allocations handler
func NewListAllocationsHandler(allocations domain.AllocationRepository, batches domain.BatchRepository) *ListAllocationsHandler {
	return &ListAllocationsHandler{allocations: allocations, batches: batches}
}

// Handle executes the list allocations query
func (h *ListAllocationsHandler) Handle(ctx context.Context, q ListAllocationsQuery) ([]AllocationView, error) {
	if q.BatchID == 0 {
		return nil, apperror.BadRequest("batch_id is required")
	}

	if _, err := h.batches.FindByID(ctx, q.BatchID); err != nil {
		return nil, err
	}

	allocations, err := h.allocations.FindByBatch(ctx, q.BatchID)
	if err != nil {
		return nil, err
	}

	views := make([]AllocationView, 0, len(allocations))
	for _, a := range allocations {
		views = append(views, AllocationView{
			Allocation:        a,
			AvailableQuantity: a.AvailableQuantity(),
		})
	}
	return views, nil
}
