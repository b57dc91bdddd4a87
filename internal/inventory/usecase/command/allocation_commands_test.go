package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tair/warehouse-ledger/internal/inventory/domain"
	"github.com/tair/warehouse-ledger/pkg/apperror"
)

type fakeBatchRepo struct {
	batches map[uint]*domain.Batch
}

func (f *fakeBatchRepo) Create(ctx context.Context, batch *domain.Batch) error {
	batch.ID = uint(len(f.batches) + 1)
	f.batches[batch.ID] = batch
	return nil
}

func (f *fakeBatchRepo) FindByID(ctx context.Context, id uint) (*domain.Batch, error) {
	b, ok := f.batches[id]
	if !ok {
		return nil, apperror.NotFound("batch with id %d not found", id)
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBatchRepo) FindByProduct(ctx context.Context, productID uint, limit, offset int) ([]domain.Batch, error) {
	var out []domain.Batch
	for _, b := range f.batches {
		if b.ProductID == productID {
			out = append(out, *b)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[uint]*domain.Product
}

func (f *fakeProductRepo) Create(ctx context.Context, product *domain.Product) error {
	product.ID = uint(len(f.products) + 1)
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, apperror.NotFound("product with id %d not found", id)
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProductRepo) FindBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	for _, p := range f.products {
		if p.SKU == sku {
			copied := *p
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("product with sku %q not found", sku)
}

func (f *fakeProductRepo) FindAll(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	return nil, nil
}

type fakeAllocationRepo struct {
	allocations map[uint]*domain.Allocation
}

func (f *fakeAllocationRepo) Create(ctx context.Context, allocation *domain.Allocation) error {
	allocation.ID = uint(len(f.allocations) + 1)
	f.allocations[allocation.ID] = allocation
	return nil
}

func (f *fakeAllocationRepo) FindByID(ctx context.Context, id uint) (*domain.Allocation, error) {
	a, ok := f.allocations[id]
	if !ok {
		return nil, apperror.NotFound("allocation with id %d not found", id)
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAllocationRepo) FindByIDForUpdate(ctx context.Context, id uint) (*domain.Allocation, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeAllocationRepo) FindByBatch(ctx context.Context, batchID uint) ([]domain.Allocation, error) {
	var out []domain.Allocation
	for _, a := range f.allocations {
		if a.BatchID == batchID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAllocationRepo) Update(ctx context.Context, allocation *domain.Allocation) error {
	if _, ok := f.allocations[allocation.ID]; !ok {
		return apperror.NotFound("allocation with id %d not found", allocation.ID)
	}
	copied := *allocation
	f.allocations[allocation.ID] = &copied
	return nil
}

// fakeUnitOfWork hands the shared allocation store to fn. beforeFn models a
// writer whose transaction commits first, before fn acquires the row lock.
type fakeUnitOfWork struct {
	allocations *fakeAllocationRepo
	beforeFn    func(*fakeAllocationRepo)
}

func (f *fakeUnitOfWork) WithinTransaction(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	if f.beforeFn != nil {
		f.beforeFn(f.allocations)
	}
	return fn(ctx, Repos{Allocations: f.allocations})
}

func seededRepos() (*fakeProductRepo, *fakeBatchRepo, *fakeAllocationRepo) {
	products := &fakeProductRepo{products: map[uint]*domain.Product{
		1: {ID: 1, SKU: "SKU-001", Name: "Paracetamol 500mg"},
	}}
	batches := &fakeBatchRepo{batches: map[uint]*domain.Batch{
		1: {ID: 1, ProductID: 1, LotNumber: "LOT-2026-001", ReceivedQuantity: 200},
	}}
	allocations := &fakeAllocationRepo{allocations: map[uint]*domain.Allocation{}}
	return products, batches, allocations
}

func TestCreateBatch(t *testing.T) {
	t.Run("creates_batch_for_existing_product", func(t *testing.T) {
		products, batches, _ := seededRepos()
		handler := NewCreateBatchHandler(batches, products)

		batch, err := handler.Handle(context.Background(), CreateBatchCommand{
			ProductID:        1,
			LotNumber:        "LOT-2026-002",
			ExpiryDate:       time.Date(2027, 9, 30, 0, 0, 0, 0, time.UTC),
			ReceivedQuantity: 500,
			ReceiptDocument:  "GRN-0002",
			ReceiptPIC:       "receiver",
		})
		if err != nil {
			t.Fatalf("Failed to create batch: %v", err)
		}
		if batch.ID == 0 {
			t.Error("Expected batch to receive an id")
		}
		if batch.ReceiptDate.IsZero() {
			t.Error("Expected receipt date to default to now")
		}
	})

	t.Run("rejects_invalid_requests", func(t *testing.T) {
		products, batches, _ := seededRepos()
		handler := NewCreateBatchHandler(batches, products)

		tests := []struct {
			name string
			cmd  CreateBatchCommand
			want error
		}{
			{
				name: "missing_lot_number",
				cmd:  CreateBatchCommand{ProductID: 1, ReceivedQuantity: 10, ReceiptDocument: "GRN-1"},
				want: apperror.ErrBadRequest,
			},
			{
				name: "zero_quantity",
				cmd:  CreateBatchCommand{ProductID: 1, LotNumber: "LOT-X", ReceiptDocument: "GRN-1"},
				want: apperror.ErrBadRequest,
			},
			{
				name: "missing_document",
				cmd:  CreateBatchCommand{ProductID: 1, LotNumber: "LOT-X", ReceivedQuantity: 10},
				want: apperror.ErrBadRequest,
			},
			{
				name: "unknown_product",
				cmd:  CreateBatchCommand{ProductID: 99, LotNumber: "LOT-X", ReceivedQuantity: 10, ReceiptDocument: "GRN-1"},
				want: apperror.ErrNotFound,
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if _, err := handler.Handle(context.Background(), tt.cmd); !errors.Is(err, tt.want) {
					t.Errorf("Expected %v, got %v", tt.want, err)
				}
			})
		}
	})
}

func TestCreateAllocation(t *testing.T) {
	t.Run("creates_active_allocation_by_default", func(t *testing.T) {
		_, batches, allocations := seededRepos()
		handler := NewCreateAllocationHandler(allocations, batches)

		allocation, err := handler.Handle(context.Background(), CreateAllocationCommand{
			BatchID:          1,
			AllocationTypeID: domain.TypeRegular,
			Quantity:         150,
		})
		if err != nil {
			t.Fatalf("Failed to create allocation: %v", err)
		}
		if allocation.Status != domain.StatusActive {
			t.Errorf("Expected status ACTIVE, got %s", allocation.Status)
		}
		if allocation.AllocatedQuantity != 150 || allocation.ReservedQuantity != 0 || allocation.ShippedQuantity != 0 {
			t.Errorf("Unexpected counters: allocated=%d reserved=%d shipped=%d",
				allocation.AllocatedQuantity, allocation.ReservedQuantity, allocation.ShippedQuantity)
		}
		if allocation.AvailableQuantity() != 150 {
			t.Errorf("Expected available quantity 150, got %d", allocation.AvailableQuantity())
		}
	})

	t.Run("honors_requested_initial_status", func(t *testing.T) {
		_, batches, allocations := seededRepos()
		handler := NewCreateAllocationHandler(allocations, batches)

		allocation, err := handler.Handle(context.Background(), CreateAllocationCommand{
			BatchID:          1,
			AllocationTypeID: domain.TypeRegular,
			Quantity:         50,
			InitialStatus:    domain.StatusQuarantine,
		})
		if err != nil {
			t.Fatalf("Failed to create allocation: %v", err)
		}
		if allocation.Status != domain.StatusQuarantine {
			t.Errorf("Expected status QUARANTINE, got %s", allocation.Status)
		}
	})

	t.Run("rejects_invalid_requests", func(t *testing.T) {
		_, batches, allocations := seededRepos()
		handler := NewCreateAllocationHandler(allocations, batches)

		if _, err := handler.Handle(context.Background(), CreateAllocationCommand{
			BatchID: 1, AllocationTypeID: domain.TypeRegular, Quantity: 0,
		}); !errors.Is(err, apperror.ErrBadRequest) {
			t.Errorf("Expected bad request for zero quantity, got %v", err)
		}

		if _, err := handler.Handle(context.Background(), CreateAllocationCommand{
			BatchID: 1, AllocationTypeID: domain.TypeRegular, Quantity: 10, InitialStatus: domain.StatusClosed,
		}); !errors.Is(err, apperror.ErrBadRequest) {
			t.Errorf("Expected bad request for terminal initial status, got %v", err)
		}

		if _, err := handler.Handle(context.Background(), CreateAllocationCommand{
			BatchID: 99, AllocationTypeID: domain.TypeRegular, Quantity: 10,
		}); !errors.Is(err, apperror.ErrNotFound) {
			t.Errorf("Expected not found for unknown batch, got %v", err)
		}
	})
}

func TestApproveAllocation(t *testing.T) {
	t.Run("approves_and_persists", func(t *testing.T) {
		_, _, allocations := seededRepos()
		allocations.allocations[1] = &domain.Allocation{
			ID: 1, BatchID: 1, AllocationTypeID: domain.TypeRegular,
			AllocatedQuantity: 100, Status: domain.StatusQuarantine,
		}
		handler := NewApproveAllocationHandler(&fakeUnitOfWork{allocations: allocations})

		allocation, err := handler.Handle(context.Background(), ApproveAllocationCommand{AllocationID: 1})
		if err != nil {
			t.Fatalf("Failed to approve: %v", err)
		}
		if allocation.Status != domain.StatusActive {
			t.Errorf("Expected status ACTIVE, got %s", allocation.Status)
		}
		if allocations.allocations[1].Status != domain.StatusActive {
			t.Error("Expected stored allocation to be updated")
		}
	})

	t.Run("rejects_active_allocation", func(t *testing.T) {
		_, _, allocations := seededRepos()
		allocations.allocations[1] = &domain.Allocation{
			ID: 1, BatchID: 1, AllocationTypeID: domain.TypeRegular,
			AllocatedQuantity: 100, Status: domain.StatusActive,
		}
		handler := NewApproveAllocationHandler(&fakeUnitOfWork{allocations: allocations})

		if _, err := handler.Handle(context.Background(), ApproveAllocationCommand{AllocationID: 1}); !errors.Is(err, apperror.ErrConflict) {
			t.Errorf("Expected conflict error, got %v", err)
		}
	})

	t.Run("keeps_counters_drawn_before_the_lock", func(t *testing.T) {
		_, _, allocations := seededRepos()
		allocations.allocations[1] = &domain.Allocation{
			ID: 1, BatchID: 1, AllocationTypeID: domain.TypeRegular,
			AllocatedQuantity: 100, Status: domain.StatusQuarantine,
		}
		// A reallocation draws 50 and commits before the approval acquires
		// the row lock. The approval's full-row write must carry the
		// decremented counter, not resurrect the old one.
		uow := &fakeUnitOfWork{allocations: allocations, beforeFn: func(r *fakeAllocationRepo) {
			r.allocations[1].AllocatedQuantity -= 50
		}}
		handler := NewApproveAllocationHandler(uow)

		allocation, err := handler.Handle(context.Background(), ApproveAllocationCommand{AllocationID: 1})
		if err != nil {
			t.Fatalf("Failed to approve: %v", err)
		}
		if allocation.Status != domain.StatusActive {
			t.Errorf("Expected status ACTIVE, got %s", allocation.Status)
		}
		if got := allocations.allocations[1].AllocatedQuantity; got != 50 {
			t.Errorf("Expected stored allocated quantity 50 after approve, got %d", got)
		}
	})
}

func TestCloseAllocation(t *testing.T) {
	newActive := func() *fakeAllocationRepo {
		_, _, allocations := seededRepos()
		allocations.allocations[1] = &domain.Allocation{
			ID: 1, BatchID: 1, AllocationTypeID: domain.TypeRegular,
			AllocatedQuantity: 100, Status: domain.StatusActive,
		}
		return allocations
	}

	t.Run("closes_active", func(t *testing.T) {
		allocations := newActive()
		handler := NewCloseAllocationHandler(&fakeUnitOfWork{allocations: allocations})

		allocation, err := handler.Handle(context.Background(), CloseAllocationCommand{AllocationID: 1})
		if err != nil {
			t.Fatalf("Failed to close: %v", err)
		}
		if allocation.Status != domain.StatusClosed {
			t.Errorf("Expected status CLOSED, got %s", allocation.Status)
		}
	})

	t.Run("cancels_active", func(t *testing.T) {
		allocations := newActive()
		handler := NewCloseAllocationHandler(&fakeUnitOfWork{allocations: allocations})

		allocation, err := handler.Handle(context.Background(), CloseAllocationCommand{AllocationID: 1, Cancel: true})
		if err != nil {
			t.Fatalf("Failed to cancel: %v", err)
		}
		if allocation.Status != domain.StatusCancelled {
			t.Errorf("Expected status CANCELLED, got %s", allocation.Status)
		}
	})

	t.Run("rejects_closed_allocation", func(t *testing.T) {
		allocations := newActive()
		allocations.allocations[1].Status = domain.StatusClosed
		handler := NewCloseAllocationHandler(&fakeUnitOfWork{allocations: allocations})

		if _, err := handler.Handle(context.Background(), CloseAllocationCommand{AllocationID: 1}); !errors.Is(err, apperror.ErrConflict) {
			t.Errorf("Expected conflict error, got %v", err)
		}
	})

	t.Run("keeps_counters_drawn_before_the_lock", func(t *testing.T) {
		allocations := newActive()
		uow := &fakeUnitOfWork{allocations: allocations, beforeFn: func(r *fakeAllocationRepo) {
			r.allocations[1].AllocatedQuantity -= 30
		}}
		handler := NewCloseAllocationHandler(uow)

		allocation, err := handler.Handle(context.Background(), CloseAllocationCommand{AllocationID: 1})
		if err != nil {
			t.Fatalf("Failed to close: %v", err)
		}
		if allocation.Status != domain.StatusClosed {
			t.Errorf("Expected status CLOSED, got %s", allocation.Status)
		}
		if got := allocations.allocations[1].AllocatedQuantity; got != 70 {
			t.Errorf("Expected stored allocated quantity 70 after close, got %d", got)
		}
	})
}
