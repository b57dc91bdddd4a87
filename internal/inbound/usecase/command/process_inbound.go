// Package command implements the inbound orchestrator: resolve-or-create
// product, register the batch, open the initial regular allocation and place
// the received stock, as one atomic unit of work.
package command

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	invdomain "github.com/tair/warehouse-ledger/internal/inventory/domain"
	whdomain "github.com/tair/warehouse-ledger/internal/warehouse/domain"
	whcommand "github.com/tair/warehouse-ledger/internal/warehouse/usecase/command"
	"github.com/tair/warehouse-ledger/pkg/apperror"
)

// Repos bundles the repositories a goods receipt touches. All of them must
// be bound to the same transaction.
type Repos struct {
	Products    invdomain.ProductRepository
	Batches     invdomain.BatchRepository
	Allocations invdomain.AllocationRepository
	Racks       whdomain.RackRepository
	Placements  whdomain.PlacementRepository
}

// UnitOfWork runs fn against transaction-bound repositories and commits only
// if fn returns nil.
type UnitOfWork interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}

// NewProductData carries the fields for a product created during receipt
type NewProductData struct {
	SKU         string
	Name        string
	Description string
}

// BatchData carries the receipt event fields
type BatchData struct {
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

// ProcessInboundCommand represents one goods receipt. Exactly one of
// ProductID and NewProduct must be set.
type ProcessInboundCommand struct {
	ProductID  uint
	NewProduct *NewProductData

	Batch              BatchData
	AllocationQuantity int
	// ActivateImmediately requests an ACTIVE initial allocation; honored only
	// when the receipt policy does not force quarantine.
	ActivateImmediately bool

	RackID            uint
	PlacementQuantity int
	PlacedBy          string
}

// InboundResult is the chain of records a successful receipt creates.
type InboundResult struct {
	Product    *invdomain.Product       `json:"product"`
	Batch      *invdomain.Batch         `json:"batch"`
	Allocation *invdomain.Allocation    `json:"allocation"`
	Placement  *whdomain.StockPlacement `json:"placement"`
}

// ProcessInboundHandler handles goods receipt commands
type ProcessInboundHandler struct {
	uow UnitOfWork
	// quarantineOnReceipt forces every inbound allocation to start in
	// QUARANTINE until explicitly approved.
	quarantineOnReceipt bool
}

// NewProcessInboundHandler creates a new inbound handler
func NewProcessInboundHandler(uow UnitOfWork, quarantineOnReceipt bool) *ProcessInboundHandler {
	return &ProcessInboundHandler{uow: uow, quarantineOnReceipt: quarantineOnReceipt}
}

// Handle executes the goods receipt. Any failing step aborts the whole
// operation; no partial product, batch, allocation or placement rows remain.
func (h *ProcessInboundHandler) Handle(ctx context.Context, cmd ProcessInboundCommand) (*InboundResult, error) {
	if (cmd.ProductID == 0) == (cmd.NewProduct == nil) {
		return nil, apperror.BadRequest("exactly one of product_id and new_product must be provided")
	}
	if cmd.Batch.LotNumber == "" {
		return nil, apperror.BadRequest("lot_number is required")
	}
	if cmd.Batch.ReceivedQuantity <= 0 {
		return nil, apperror.BadRequest("received_quantity must be positive")
	}
	if cmd.AllocationQuantity <= 0 {
		return nil, apperror.BadRequest("allocation quantity must be positive")
	}

	var result InboundResult
	err := h.uow.WithinTransaction(ctx, func(ctx context.Context, r Repos) error {
		product, err := h.resolveProduct(ctx, r, cmd)
		if err != nil {
			return err
		}

		receiptDate := cmd.Batch.ReceiptDate
		if receiptDate.IsZero() {
			receiptDate = time.Now()
		}
		batch := &invdomain.Batch{
			ProductID:          product.ID,
			LotNumber:          cmd.Batch.LotNumber,
			ExpiryDate:         cmd.Batch.ExpiryDate,
			RegistrationNumber: cmd.Batch.RegistrationNumber,
			ReceivedQuantity:   cmd.Batch.ReceivedQuantity,
			ReceiptDocument:    cmd.Batch.ReceiptDocument,
			ReceiptDate:        receiptDate,
			ReceiptPIC:         cmd.Batch.ReceiptPIC,
			Length:             cmd.Batch.Length,
			Width:              cmd.Batch.Width,
			Height:             cmd.Batch.Height,
			Weight:             cmd.Batch.Weight,
		}
		if err := r.Batches.Create(ctx, batch); err != nil {
			return fmt.Errorf("failed to create batch: %w", err)
		}

		if cmd.AllocationQuantity > batch.ReceivedQuantity {
			return apperror.Unprocessable(
				"allocation quantity (%d) cannot exceed batch received quantity (%d)",
				cmd.AllocationQuantity, batch.ReceivedQuantity)
		}

		allocation := &invdomain.Allocation{
			BatchID:           batch.ID,
			AllocationTypeID:  invdomain.TypeRegular,
			AllocatedQuantity: cmd.AllocationQuantity,
			Status:            h.initialStatus(cmd),
			AllocationDate:    time.Now(),
		}
		if err := r.Allocations.Create(ctx, allocation); err != nil {
			return fmt.Errorf("failed to create allocation: %w", err)
		}

		placement, err := whcommand.Place(ctx, whcommand.Repos{
			Racks:       r.Racks,
			Placements:  r.Placements,
			Allocations: r.Allocations,
		}, whcommand.PlaceStockCommand{
			RackID:       cmd.RackID,
			AllocationID: allocation.ID,
			Quantity:     cmd.PlacementQuantity,
			PlacedBy:     cmd.PlacedBy,
		})
		if err != nil {
			return err
		}

		result = InboundResult{
			Product:    product,
			Batch:      batch,
			Allocation: allocation,
			Placement:  placement,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (h *ProcessInboundHandler) resolveProduct(ctx context.Context, r Repos, cmd ProcessInboundCommand) (*invdomain.Product, error) {
	if cmd.ProductID != 0 {
		return r.Products.FindByID(ctx, cmd.ProductID)
	}

	if cmd.NewProduct.SKU == "" || cmd.NewProduct.Name == "" {
		return nil, apperror.BadRequest("new product requires sku and name")
	}
	product := &invdomain.Product{
		SKU:         cmd.NewProduct.SKU,
		Name:        cmd.NewProduct.Name,
		Description: cmd.NewProduct.Description,
	}
	if err := r.Products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (h *ProcessInboundHandler) initialStatus(cmd ProcessInboundCommand) invdomain.AllocationStatus {
	if !h.quarantineOnReceipt && cmd.ActivateImmediately {
		return invdomain.StatusActive
	}
	return invdomain.StatusQuarantine
}
