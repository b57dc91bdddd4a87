package command

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	invdomain "github.com/tair/warehouse-ledger/internal/inventory/domain"
	"github.com/tair/warehouse-ledger/internal/reallocation/domain"
	"github.com/tair/warehouse-ledger/pkg/apperror"
)

// ConsignmentLine is one requested line of a consignment reallocation
type ConsignmentLine struct {
	SourceAllocationID uint
	Quantity           int
	SellingPrice       decimal.Decimal
}

// ReallocateConsignmentCommand moves quantity from regular allocations into
// a new consignment shipment under an agreement
type ReallocateConsignmentCommand struct {
	AgreementID       uint
	ConsignmentNumber string
	Lines             []ConsignmentLine
}

// ReallocateConsignmentHandler handles consignment reallocation commands
type ReallocateConsignmentHandler struct {
	uow UnitOfWork
}

// NewReallocateConsignmentHandler creates a new consignment reallocation
// handler
func NewReallocateConsignmentHandler(uow UnitOfWork) *ReallocateConsignmentHandler {
	return &ReallocateConsignmentHandler{uow: uow}
}

// Handle executes the consignment reallocation as one transaction covering
// every line: a failing line rolls back the whole shipment.
func (h *ReallocateConsignmentHandler) Handle(ctx context.Context, cmd ReallocateConsignmentCommand) (*domain.Consignment, error) {
	if cmd.ConsignmentNumber == "" {
		return nil, apperror.BadRequest("consignment_number is required")
	}
	if len(cmd.Lines) == 0 {
		return nil, apperror.BadRequest("at least one line is required")
	}
	for _, line := range cmd.Lines {
		if line.Quantity <= 0 {
			return nil, apperror.BadRequest("quantity must be positive")
		}
	}

	var consignment *domain.Consignment
	err := h.uow.WithinTransaction(ctx, func(ctx context.Context, r Repos) error {
		agreement, err := r.Agreements.FindByID(ctx, cmd.AgreementID)
		if err != nil {
			return err
		}

		consignment = &domain.Consignment{
			ConsignmentNumber: cmd.ConsignmentNumber,
			AgreementID:       agreement.ID,
			ConsignmentDate:   time.Now(),
			Status:            "PENDING",
		}
		if err := r.Consignments.Create(ctx, consignment); err != nil {
			return fmt.Errorf("failed to create consignment: %w", err)
		}

		customerID := agreement.CustomerID
		for _, line := range cmd.Lines {
			source, err := drawFromRegular(ctx, r.Allocations, line.SourceAllocationID, line.Quantity)
			if err != nil {
				return err
			}

			target, err := createTargetAllocation(ctx, r.Allocations, source, invdomain.TypeConsignment, line.Quantity, &customerID)
			if err != nil {
				return err
			}

			batch, err := r.Batches.FindByID(ctx, source.BatchID)
			if err != nil {
				return err
			}

			item := &domain.ConsignmentItem{
				ConsignmentID:   consignment.ID,
				ProductID:       batch.ProductID,
				BatchID:         batch.ID,
				AllocationID:    target.ID,
				QuantityShipped: line.Quantity,
				SellingPrice:    line.SellingPrice,
				LotNumber:       batch.LotNumber,
				ExpiryDate:      batch.ExpiryDate,
				Status:          "PENDING_SHIPMENT",
			}
			if err := r.Consignments.CreateItem(ctx, item); err != nil {
				return fmt.Errorf("failed to create consignment item: %w", err)
			}
			consignment.Items = append(consignment.Items, *item)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return consignment, nil
}
