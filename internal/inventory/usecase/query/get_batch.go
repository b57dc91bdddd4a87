package query

import (
	"context"

	"github.com/tair/warehouse-ledger/internal/inventory/domain"
	"github.com/tair/warehouse-ledger/pkg/apperror"
)

// GetBatchQuery represents the query to get a batch
type GetBatchQuery struct {
	ID uint
}

// GetBatchHandler handles get batch query
type GetBatchHandler struct {
	batches domain.BatchRepository
}

// NewGetBatchHandler creates a new get batch handler
func NewGetBatchHandler(batches domain.BatchRepository) *GetBatchHandler {
	return &GetBatchHandler{batches: batches}
}

// Handle executes the get batch query
func (h *GetBatchHandler) Handle(ctx context.Context, q GetBatchQuery) (*domain.Batch, error) {
	if q.ID == 0 {
		return nil, apperror.BadRequest("id is required")
	}
	return h.batches.FindByID(ctx, q.ID)
}
