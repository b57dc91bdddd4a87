// Package command implements the reallocation orchestrators. Both flows
// share one protocol: lock the regular-purpose source allocation, draw the
// requested quantity out of it, and create a new allocation of the target
// purpose plus a contract-linked record, all inside a single transaction.
// The batch's committed total is conserved: the source loses exactly what
// the new allocation gains.
package command

import (
	"context"
	"fmt"
	"time"

	invdomain "github.com/tair/warehouse-ledger/internal/inventory/domain"
	"github.com/tair/warehouse-ledger/internal/reallocation/domain"
	"github.com/tair/warehouse-ledger/pkg/apperror"
)

// Repos bundles the repositories a reallocation touches. All of them must be
// bound to the same transaction.
type Repos struct {
	Allocations  invdomain.AllocationRepository
	Batches      invdomain.BatchRepository
	Contracts    domain.TenderContractRepository
	Reservations domain.ContractReservationRepository
	Agreements   domain.ConsignmentAgreementRepository
	Consignments domain.ConsignmentRepository
}

// UnitOfWork runs fn against transaction-bound repositories and commits only
// if fn returns nil.
type UnitOfWork interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}

// drawFromRegular locks the source allocation, verifies it belongs to the
// regular pool, and draws quantity from its allocated counter. The check and
// the decrement happen under the same row lock so concurrent reallocations
// cannot jointly overdraw the source.
func drawFromRegular(ctx context.Context, allocations invdomain.AllocationRepository, sourceID uint, quantity int) (*invdomain.Allocation, error) {
	source, err := allocations.FindByIDForUpdate(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	if source.AllocationTypeID != invdomain.TypeRegular {
		return nil, apperror.BadRequest("source allocation must be of type REGULAR_STOCK")
	}

	if err := source.Draw(quantity); err != nil {
		return nil, err
	}

	if err := allocations.Update(ctx, source); err != nil {
		return nil, fmt.Errorf("failed to update source allocation: %w", err)
	}

	return source, nil
}

// createTargetAllocation creates the allocation the drawn quantity moves
// into, on the same batch as the source.
func createTargetAllocation(ctx context.Context, allocations invdomain.AllocationRepository, source *invdomain.Allocation, typeID uint, quantity int, customerID *uint) (*invdomain.Allocation, error) {
	target := &invdomain.Allocation{
		BatchID:           source.BatchID,
		AllocationTypeID:  typeID,
		CustomerID:        customerID,
		AllocatedQuantity: quantity,
		Status:            invdomain.StatusReserved,
		AllocationDate:    time.Now(),
	}
	if err := allocations.Create(ctx, target); err != nil {
		return nil, fmt.Errorf("failed to create target allocation: %w", err)
	}
	return target, nil
}
