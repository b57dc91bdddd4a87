package command

import (
	"context"
	"errors"
	"testing"
	"time"

	invdomain "github.com/tair/warehouse-ledger/internal/inventory/domain"
	whdomain "github.com/tair/warehouse-ledger/internal/warehouse/domain"
	"github.com/tair/warehouse-ledger/pkg/apperror"
)

type fakeStore struct {
	products    map[uint]*invdomain.Product
	batches     map[uint]*invdomain.Batch
	allocations map[uint]*invdomain.Allocation
	racks       map[uint]*whdomain.Rack
	placements  map[uint]*whdomain.StockPlacement
	nextID      uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: map[uint]*invdomain.Product{
			1: {ID: 1, SKU: "SKU-001", Name: "Paracetamol 500mg"},
		},
		batches:     map[uint]*invdomain.Batch{},
		allocations: map[uint]*invdomain.Allocation{},
		racks: map[uint]*whdomain.Rack{
			1: {ID: 1, Code: "A-01-01", WarehouseID: 1, Status: whdomain.RackActive},
		},
		placements: map[uint]*whdomain.StockPlacement{},
		nextID:     100,
	}
}

func (s *fakeStore) id() uint {
	s.nextID++
	return s.nextID
}

type fakeProductRepo struct{ s *fakeStore }

func (f *fakeProductRepo) Create(ctx context.Context, product *invdomain.Product) error {
	for _, p := range f.s.products {
		if p.SKU == product.SKU {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	product.ID = f.s.id()
	f.s.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uint) (*invdomain.Product, error) {
	p, ok := f.s.products[id]
	if !ok {
		return nil, apperror.NotFound("product with id %d not found", id)
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProductRepo) FindBySKU(ctx context.Context, sku string) (*invdomain.Product, error) {
	for _, p := range f.s.products {
		if p.SKU == sku {
			copied := *p
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("product with sku %q not found", sku)
}

func (f *fakeProductRepo) FindAll(ctx context.Context, limit, offset int) ([]invdomain.Product, error) {
	return nil, nil
}

type fakeBatchRepo struct{ s *fakeStore }

func (f *fakeBatchRepo) Create(ctx context.Context, batch *invdomain.Batch) error {
	batch.ID = f.s.id()
	f.s.batches[batch.ID] = batch
	return nil
}

func (f *fakeBatchRepo) FindByID(ctx context.Context, id uint) (*invdomain.Batch, error) {
	b, ok := f.s.batches[id]
	if !ok {
		return nil, apperror.NotFound("batch with id %d not found", id)
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBatchRepo) FindByProduct(ctx context.Context, productID uint, limit, offset int) ([]invdomain.Batch, error) {
	return nil, nil
}

type fakeAllocationRepo struct{ s *fakeStore }

func (f *fakeAllocationRepo) Create(ctx context.Context, allocation *invdomain.Allocation) error {
	allocation.ID = f.s.id()
	f.s.allocations[allocation.ID] = allocation
	return nil
}

func (f *fakeAllocationRepo) FindByID(ctx context.Context, id uint) (*invdomain.Allocation, error) {
	a, ok := f.s.allocations[id]
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
	return nil, nil
}

func (f *fakeAllocationRepo) Update(ctx context.Context, allocation *invdomain.Allocation) error {
	copied := *allocation
	f.s.allocations[allocation.ID] = &copied
	return nil
}

type fakeRackRepo struct{ s *fakeStore }

func (f *fakeRackRepo) Create(ctx context.Context, rack *whdomain.Rack) error {
	f.s.racks[rack.ID] = rack
	return nil
}

func (f *fakeRackRepo) FindByID(ctx context.Context, id uint) (*whdomain.Rack, error) {
	r, ok := f.s.racks[id]
	if !ok {
		return nil, apperror.NotFound("rack with id %d not found", id)
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRackRepo) FindByIDForUpdate(ctx context.Context, id uint) (*whdomain.Rack, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeRackRepo) FindByWarehouse(ctx context.Context, warehouseID uint, limit, offset int) ([]whdomain.Rack, error) {
	return nil, nil
}

type fakePlacementRepo struct{ s *fakeStore }

func (f *fakePlacementRepo) Create(ctx context.Context, placement *whdomain.StockPlacement) error {
	placement.ID = f.s.id()
	f.s.placements[placement.ID] = placement
	return nil
}

func (f *fakePlacementRepo) FindByRack(ctx context.Context, rackID uint) (*whdomain.StockPlacement, error) {
	for _, p := range f.s.placements {
		if p.RackID == rackID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakePlacementRepo) FindByAllocation(ctx context.Context, allocationID uint) ([]whdomain.StockPlacement, error) {
	return nil, nil
}

func (f *fakePlacementRepo) Delete(ctx context.Context, id uint) error {
	delete(f.s.placements, id)
	return nil
}

// fakeUnitOfWork restores the store when fn fails, mimicking a rollback.
type fakeUnitOfWork struct {
	s *fakeStore
}

func (f *fakeUnitOfWork) WithinTransaction(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	snapshot := *f.s
	snapshot.products = cloneMap(f.s.products)
	snapshot.batches = cloneMap(f.s.batches)
	snapshot.allocations = cloneMap(f.s.allocations)
	snapshot.racks = cloneMap(f.s.racks)
	snapshot.placements = cloneMap(f.s.placements)

	err := fn(ctx, Repos{
		Products:    &fakeProductRepo{s: f.s},
		Batches:     &fakeBatchRepo{s: f.s},
		Allocations: &fakeAllocationRepo{s: f.s},
		Racks:       &fakeRackRepo{s: f.s},
		Placements:  &fakePlacementRepo{s: f.s},
	})
	if err != nil {
		*f.s = snapshot
		return err
	}
	return nil
}

func cloneMap[K comparable, V any](in map[K]*V) map[K]*V {
	out := make(map[K]*V, len(in))
	for k, v := range in {
		copied := *v
		out[k] = &copied
	}
	return out
}

func validCommand() ProcessInboundCommand {
	return ProcessInboundCommand{
		ProductID: 1,
		Batch: BatchData{
			LotNumber:        "LOT-2026-001",
			ExpiryDate:       time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC),
			ReceivedQuantity: 200,
			ReceiptDocument:  "GRN-0001",
			ReceiptPIC:       "receiver",
		},
		AllocationQuantity: 150,
		RackID:             1,
		PlacementQuantity:  150,
		PlacedBy:           "warehouse-op",
	}
}

func TestProcessInbound(t *testing.T) {
	t.Run("creates_full_chain_for_existing_product", func(t *testing.T) {
		store := newFakeStore()
		handler := NewProcessInboundHandler(&fakeUnitOfWork{s: store}, true)

		result, err := handler.Handle(context.Background(), validCommand())
		if err != nil {
			t.Fatalf("Failed to process inbound: %v", err)
		}

		if result.Product.ID != 1 {
			t.Errorf("Expected existing product 1, got %d", result.Product.ID)
		}
		if result.Batch.ReceivedQuantity != 200 {
			t.Errorf("Expected received quantity 200, got %d", result.Batch.ReceivedQuantity)
		}
		if result.Allocation.AllocationTypeID != invdomain.TypeRegular {
			t.Errorf("Expected regular allocation type, got %d", result.Allocation.AllocationTypeID)
		}
		if result.Allocation.Status != invdomain.StatusQuarantine {
			t.Errorf("Expected QUARANTINE status under quarantine policy, got %s", result.Allocation.Status)
		}
		if result.Placement.RackID != 1 || result.Placement.Quantity != 150 {
			t.Errorf("Unexpected placement: %+v", result.Placement)
		}
		if len(store.batches) != 1 || len(store.allocations) != 1 || len(store.placements) != 1 {
			t.Errorf("Unexpected store counts: batches=%d allocations=%d placements=%d",
				len(store.batches), len(store.allocations), len(store.placements))
		}
	})

	t.Run("creates_new_product_when_requested", func(t *testing.T) {
		store := newFakeStore()
		handler := NewProcessInboundHandler(&fakeUnitOfWork{s: store}, true)

		cmd := validCommand()
		cmd.ProductID = 0
		cmd.NewProduct = &NewProductData{SKU: "SKU-002", Name: "Ibuprofen 400mg"}

		result, err := handler.Handle(context.Background(), cmd)
		if err != nil {
			t.Fatalf("Failed to process inbound: %v", err)
		}
		if result.Product.SKU != "SKU-002" {
			t.Errorf("Expected new product SKU-002, got %s", result.Product.SKU)
		}
		if len(store.products) != 2 {
			t.Errorf("Expected 2 products, got %d", len(store.products))
		}
	})

	t.Run("rejects_both_and_neither_product_inputs", func(t *testing.T) {
		store := newFakeStore()
		handler := NewProcessInboundHandler(&fakeUnitOfWork{s: store}, true)

		both := validCommand()
		both.NewProduct = &NewProductData{SKU: "SKU-003", Name: "X"}
		if _, err := handler.Handle(context.Background(), both); !errors.Is(err, apperror.ErrBadRequest) {
			t.Errorf("Expected bad request for both inputs, got %v", err)
		}

		neither := validCommand()
		neither.ProductID = 0
		if _, err := handler.Handle(context.Background(), neither); !errors.Is(err, apperror.ErrBadRequest) {
			t.Errorf("Expected bad request for neither input, got %v", err)
		}
	})

	t.Run("activates_immediately_when_policy_allows", func(t *testing.T) {
		store := newFakeStore()
		handler := NewProcessInboundHandler(&fakeUnitOfWork{s: store}, false)

		cmd := validCommand()
		cmd.ActivateImmediately = true

		result, err := handler.Handle(context.Background(), cmd)
		if err != nil {
			t.Fatalf("Failed to process inbound: %v", err)
		}
		if result.Allocation.Status != invdomain.StatusActive {
			t.Errorf("Expected ACTIVE status, got %s", result.Allocation.Status)
		}
	})

	t.Run("quarantine_policy_overrides_activation_request", func(t *testing.T) {
		store := newFakeStore()
		handler := NewProcessInboundHandler(&fakeUnitOfWork{s: store}, true)

		cmd := validCommand()
		cmd.ActivateImmediately = true

		result, err := handler.Handle(context.Background(), cmd)
		if err != nil {
			t.Fatalf("Failed to process inbound: %v", err)
		}
		if result.Allocation.Status != invdomain.StatusQuarantine {
			t.Errorf("Expected QUARANTINE status, got %s", result.Allocation.Status)
		}
	})

	t.Run("rejects_allocation_beyond_received_quantity", func(t *testing.T) {
		store := newFakeStore()
		handler := NewProcessInboundHandler(&fakeUnitOfWork{s: store}, true)

		cmd := validCommand()
		cmd.AllocationQuantity = 250

		_, err := handler.Handle(context.Background(), cmd)
		if !errors.Is(err, apperror.ErrUnprocessable) {
			t.Errorf("Expected unprocessable error, got %v", err)
		}
		if len(store.batches) != 0 || len(store.allocations) != 0 {
			t.Errorf("Expected rollback, got batches=%d allocations=%d",
				len(store.batches), len(store.allocations))
		}
	})

	t.Run("placement_failure_rolls_back_everything", func(t *testing.T) {
		store := newFakeStore()
		// Rack 1 occupied before the receipt arrives.
		store.placements[50] = &whdomain.StockPlacement{ID: 50, RackID: 1, AllocationID: 99, Quantity: 10}
		handler := NewProcessInboundHandler(&fakeUnitOfWork{s: store}, true)

		_, err := handler.Handle(context.Background(), validCommand())
		if !errors.Is(err, apperror.ErrConflict) {
			t.Fatalf("Expected conflict error, got %v", err)
		}

		if len(store.batches) != 0 || len(store.allocations) != 0 {
			t.Errorf("Expected rollback of batch and allocation, got batches=%d allocations=%d",
				len(store.batches), len(store.allocations))
		}
		if len(store.placements) != 1 {
			t.Errorf("Expected only the pre-existing placement, got %d", len(store.placements))
		}
	})

	t.Run("rejects_placement_beyond_allocation", func(t *testing.T) {
		store := newFakeStore()
		handler := NewProcessInboundHandler(&fakeUnitOfWork{s: store}, true)

		cmd := validCommand()
		cmd.AllocationQuantity = 100
		cmd.PlacementQuantity = 120

		_, err := handler.Handle(context.Background(), cmd)
		if !errors.Is(err, apperror.ErrUnprocessable) {
			t.Errorf("Expected unprocessable error, got %v", err)
		}
		if len(store.allocations) != 0 {
			t.Errorf("Expected rollback, got %d allocations", len(store.allocations))
		}
	})
}
