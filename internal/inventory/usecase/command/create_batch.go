package command

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/warehouse-ledger/internal/inventory/domain"
	"github.com/tair/warehouse-ledger/pkg/apperror"
)

// CreateBatchCommand represents the command to register a goods receipt
type CreateBatchCommand struct {
	ProductID          uint
	LotNumber          string
	ExpiryDate         time.Time
	RegistrationNumber string
	ReceivedQuantity   int
	ReceiptDocument    string
	ReceiptDate        time.Time
	ReceiptPIC         string
	Length             decimal.Decimal
	Width              decimal.Decimal
	Height             decimal.Decimal
	Weight             decimal.Decimal
}

// CreateBatchHandler handles create batch command
type CreateBatchHandler struct {
	batches  domain.BatchRepository
	products domain.ProductRepository
}

// NewCreateBatchHandler creates a new create batch handler
func NewCreateBatchHandler(batches domain.BatchRepository, products domain.ProductRepository) *CreateBatchHandler {
	return &CreateBatchHandler{batches: batches, products: products}
}

// Handle executes the create batch command
func (h *CreateBatchHandler) Handle(ctx context.Context, cmd CreateBatchCommand) (*domain.Batch, error) {
	if cmd.LotNumber == "" {
		return nil, apperror.BadRequest("lot_number is required")
	}
	if cmd.ReceivedQuantity <= 0 {
		return nil, apperror.BadRequest("received_quantity must be positive")
	}
	if cmd.ReceiptDocument == "" {
		return nil, apperror.BadRequest("receipt_document is required")
	}

	// Verifies the owning product exists before writing.
	if _, err := h.products.FindByID(ctx, cmd.ProductID); err != nil {
		return nil, err
	}

	receiptDate := cmd.ReceiptDate
	if receiptDate.IsZero() {
		receiptDate = time.Now()
	}

	batch := &domain.Batch{
		ProductID:          cmd.ProductID,
		LotNumber:          cmd.LotNumber,
		ExpiryDate:         cmd.ExpiryDate,
		RegistrationNumber: cmd.RegistrationNumber,
		ReceivedQuantity:   cmd.ReceivedQuantity,
		ReceiptDocument:    cmd.ReceiptDocument,
		ReceiptDate:        receiptDate,
		ReceiptPIC:         cmd.ReceiptPIC,
		Length:             cmd.Length,
		Width:              cmd.Width,
		Height:             cmd.Height,
		Weight:             cmd.Weight,
	}

	if err := h.batches.Create(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to create batch: %w", err)
	}

	return batch, nil
}
