package query

import (
	"context"

	"github.com/tair/warehouse-ledger/internal/inventory/domain"
	"github.com/tair/warehouse-ledger/pkg/apperror"
)

// ListBatchesQuery represents the query to list batches of a product
type ListBatchesQuery struct {
	ProductID uint
	Limit     int
	Offset    int
}

// ListBatchesHandler handles list batches query
type ListBatchesHandler struct {
	batches  domain.BatchRepository
	products domain.ProductRepository
}

// NewListBatchesHandler creates a new list batches handler
func NewListBatchesHandler(batches domain.BatchRepository, products domain.ProductRepository) *ListBatchesHandler {
	return &ListBatchesHandler{batches: batches, products: products}
}

// Handle executes the list batches query
func (h *ListBatchesHandler) Handle(ctx context.Context, q ListBatchesQuery) ([]domain.Batch, error) {
	if q.ProductID == 0 {
		return nil, apperror.BadRequest("product_id is required")
	}
	if _, err := h.products.FindByID(ctx, q.ProductID); err != nil {
		return nil, err
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}
	return h.batches.FindByProduct(ctx, q.ProductID, limit, q.Offset)
}
