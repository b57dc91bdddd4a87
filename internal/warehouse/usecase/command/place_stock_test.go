package command

import (
	"context"
	"errors"
	"testing"

	invdomain "github.com/tair/warehouse-ledger/internal/inventory/domain"
	"github.com/tair/warehouse-ledger/internal/warehouse/domain"
	"github.com/tair/warehouse-ledger/pkg/apperror"
)

type fakeRackRepo struct {
	racks map[uint]*domain.Rack
}

func (f *fakeRackRepo) Create(ctx context.Context, rack *domain.Rack) error {
	f.racks[rack.ID] = rack
	return nil
}

func (f *fakeRackRepo) FindByID(ctx context.Context, id uint) (*domain.Rack, error) {
	rack, ok := f.racks[id]
	if !ok {
		return nil, apperror.NotFound("rack with id %d not found", id)
	}
	copied := *rack
	return &copied, nil
}

func (f *fakeRackRepo) FindByIDForUpdate(ctx context.Context, id uint) (*domain.Rack, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeRackRepo) FindByWarehouse(ctx context.Context, warehouseID uint, limit, offset int) ([]domain.Rack, error) {
	var racks []domain.Rack
	for _, r := range f.racks {
		if r.WarehouseID == warehouseID {
			racks = append(racks, *r)
		}
	}
	return racks, nil
}

type fakePlacementRepo struct {
	nextID     uint
	placements map[uint]*domain.StockPlacement
}

func (f *fakePlacementRepo) Create(ctx context.Context, placement *domain.StockPlacement) error {
	for _, p := range f.placements {
		if p.RackID == placement.RackID {
			return errors.New("duplicate key value violates unique constraint \"uq_rack_placement\"")
		}
	}
	f.nextID++
	placement.ID = f.nextID
	f.placements[placement.ID] = placement
	return nil
}

func (f *fakePlacementRepo) FindByRack(ctx context.Context, rackID uint) (*domain.StockPlacement, error) {
	for _, p := range f.placements {
		if p.RackID == rackID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakePlacementRepo) FindByAllocation(ctx context.Context, allocationID uint) ([]domain.StockPlacement, error) {
	var placements []domain.StockPlacement
	for _, p := range f.placements {
		if p.AllocationID == allocationID {
			placements = append(placements, *p)
		}
	}
	return placements, nil
}

func (f *fakePlacementRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := f.placements[id]; !ok {
		return apperror.NotFound("placement with id %d not found", id)
	}
	delete(f.placements, id)
	return nil
}

type fakeAllocationRepo struct {
	allocations map[uint]*invdomain.Allocation
}

func (f *fakeAllocationRepo) Create(ctx context.Context, allocation *invdomain.Allocation) error {
	if allocation.ID == 0 {
		allocation.ID = uint(len(f.allocations) + 1)
	}
	f.allocations[allocation.ID] = allocation
	return nil
}

func (f *fakeAllocationRepo) FindByID(ctx context.Context, id uint) (*invdomain.Allocation, error) {
	a, ok := f.allocations[id]
	if !ok {
		return nil, apperror.NotFound("allocation with id %d not found", id)
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAllocationRepo) FindByIDForUpdate(ctx context.Context, id uint) (*invdomain.Allocation, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeAllocationRepo) FindByBatch(ctx context.Context, batchID uint) ([]invdomain.Allocation, error) {
	var allocations []invdomain.Allocation
	for _, a := range f.allocations {
		if a.BatchID == batchID {
			allocations = append(allocations, *a)
		}
	}
	return allocations, nil
}

func (f *fakeAllocationRepo) Update(ctx context.Context, allocation *invdomain.Allocation) error {
	if _, ok := f.allocations[allocation.ID]; !ok {
		return apperror.NotFound("allocation with id %d not found", allocation.ID)
	}
	copied := *allocation
	f.allocations[allocation.ID] = &copied
	return nil
}

type fakeUnitOfWork struct {
	repos Repos
}

func (f *fakeUnitOfWork) WithinTransaction(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	return fn(ctx, f.repos)
}

func newFixture() (*fakeRackRepo, *fakePlacementRepo, *fakeAllocationRepo, *fakeUnitOfWork) {
	racks := &fakeRackRepo{racks: map[uint]*domain.Rack{
		1: {ID: 1, Code: "A-01-01", WarehouseID: 1, Status: domain.RackActive},
		2: {ID: 2, Code: "A-01-02", WarehouseID: 1, Status: domain.RackActive},
	}}
	placements := &fakePlacementRepo{placements: map[uint]*domain.StockPlacement{}}
	allocations := &fakeAllocationRepo{allocations: map[uint]*invdomain.Allocation{
		10: {ID: 10, BatchID: 1, AllocationTypeID: invdomain.TypeRegular, AllocatedQuantity: 100, ReservedQuantity: 20, ShippedQuantity: 10, Status: invdomain.StatusActive},
	}}
	uow := &fakeUnitOfWork{repos: Repos{Racks: racks, Placements: placements, Allocations: allocations}}
	return racks, placements, allocations, uow
}

func TestPlaceStock(t *testing.T) {
	t.Run("places_on_empty_rack", func(t *testing.T) {
		_, placements, _, uow := newFixture()
		handler := NewPlaceStockHandler(uow)

		placement, err := handler.Handle(context.Background(), PlaceStockCommand{
			RackID:       1,
			AllocationID: 10,
			Quantity:     50,
			PlacedBy:     "warehouse-op",
		})
		if err != nil {
			t.Fatalf("Failed to place stock: %v", err)
		}
		if placement.ID == 0 {
			t.Error("Expected placement to receive an id")
		}
		if placement.RackID != 1 || placement.AllocationID != 10 || placement.Quantity != 50 {
			t.Errorf("Unexpected placement: %+v", placement)
		}
		if len(placements.placements) != 1 {
			t.Errorf("Expected 1 stored placement, got %d", len(placements.placements))
		}
	})

	t.Run("rejects_occupied_rack", func(t *testing.T) {
		_, _, _, uow := newFixture()
		handler := NewPlaceStockHandler(uow)

		if _, err := handler.Handle(context.Background(), PlaceStockCommand{
			RackID: 1, AllocationID: 10, Quantity: 30, PlacedBy: "op",
		}); err != nil {
			t.Fatalf("Failed to place initial stock: %v", err)
		}

		_, err := handler.Handle(context.Background(), PlaceStockCommand{
			RackID: 1, AllocationID: 10, Quantity: 20, PlacedBy: "op",
		})
		if err == nil {
			t.Fatal("Expected error placing on occupied rack")
		}
		if !errors.Is(err, apperror.ErrConflict) {
			t.Errorf("Expected conflict error, got %v", err)
		}
	})

	t.Run("rejects_quantity_beyond_availability", func(t *testing.T) {
		_, _, _, uow := newFixture()
		handler := NewPlaceStockHandler(uow)

		// allocated 100, reserved 20, shipped 10: only 70 available
		_, err := handler.Handle(context.Background(), PlaceStockCommand{
			RackID: 1, AllocationID: 10, Quantity: 80, PlacedBy: "op",
		})
		if err == nil {
			t.Fatal("Expected error placing beyond available quantity")
		}
		if !errors.Is(err, apperror.ErrUnprocessable) {
			t.Errorf("Expected unprocessable error, got %v", err)
		}
	})

	t.Run("rejects_non_positive_quantity", func(t *testing.T) {
		_, _, _, uow := newFixture()
		handler := NewPlaceStockHandler(uow)

		_, err := handler.Handle(context.Background(), PlaceStockCommand{
			RackID: 1, AllocationID: 10, Quantity: 0, PlacedBy: "op",
		})
		if err == nil {
			t.Fatal("Expected error placing zero quantity")
		}
		if !errors.Is(err, apperror.ErrBadRequest) {
			t.Errorf("Expected bad request error, got %v", err)
		}
	})

	t.Run("rejects_unknown_rack_and_allocation", func(t *testing.T) {
		_, _, _, uow := newFixture()
		handler := NewPlaceStockHandler(uow)

		if _, err := handler.Handle(context.Background(), PlaceStockCommand{
			RackID: 99, AllocationID: 10, Quantity: 10,
		}); !errors.Is(err, apperror.ErrNotFound) {
			t.Errorf("Expected not found for unknown rack, got %v", err)
		}

		if _, err := handler.Handle(context.Background(), PlaceStockCommand{
			RackID: 1, AllocationID: 99, Quantity: 10,
		}); !errors.Is(err, apperror.ErrNotFound) {
			t.Errorf("Expected not found for unknown allocation, got %v", err)
		}
	})
}

func TestRemoveStock(t *testing.T) {
	t.Run("remove_frees_rack_for_next_placement", func(t *testing.T) {
		_, _, _, uow := newFixture()
		place := NewPlaceStockHandler(uow)
		remove := NewRemoveStockHandler(uow)

		if _, err := place.Handle(context.Background(), PlaceStockCommand{
			RackID: 1, AllocationID: 10, Quantity: 40, PlacedBy: "op",
		}); err != nil {
			t.Fatalf("Failed to place stock: %v", err)
		}

		// Second placement on the same rack must fail until removal.
		if _, err := place.Handle(context.Background(), PlaceStockCommand{
			RackID: 1, AllocationID: 10, Quantity: 10, PlacedBy: "op",
		}); !errors.Is(err, apperror.ErrConflict) {
			t.Fatalf("Expected conflict before removal, got %v", err)
		}

		removed, err := remove.Handle(context.Background(), RemoveStockCommand{RackID: 1})
		if err != nil {
			t.Fatalf("Failed to remove stock: %v", err)
		}
		if removed.Quantity != 40 {
			t.Errorf("Expected removed quantity 40, got %d", removed.Quantity)
		}

		if _, err := place.Handle(context.Background(), PlaceStockCommand{
			RackID: 1, AllocationID: 10, Quantity: 10, PlacedBy: "op",
		}); err != nil {
			t.Errorf("Expected placement to succeed after removal, got %v", err)
		}
	})

	t.Run("rejects_empty_rack", func(t *testing.T) {
		_, _, _, uow := newFixture()
		remove := NewRemoveStockHandler(uow)

		_, err := remove.Handle(context.Background(), RemoveStockCommand{RackID: 2})
		if err == nil {
			t.Fatal("Expected error removing from empty rack")
		}
		if !errors.Is(err, apperror.ErrConflict) {
			t.Errorf("Expected conflict error, got %v", err)
		}
	})
}
