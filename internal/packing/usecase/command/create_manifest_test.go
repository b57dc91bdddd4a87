package command

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tair/warehouse-ledger/internal/packing/domain"
	"github.com/tair/warehouse-ledger/pkg/apperror"
	"github.com/tair/warehouse-ledger/pkg/gs1"
)

type fakeManifestRepo struct {
	nextID    uint
	manifests map[uint]*domain.PackingManifest
	boxes     map[uint]*domain.PackedBox
	items     []domain.PackedItem
}

func newFakeManifestRepo() *fakeManifestRepo {
	return &fakeManifestRepo{
		nextID:    40,
		manifests: map[uint]*domain.PackingManifest{},
		boxes:     map[uint]*domain.PackedBox{},
	}
}

func (f *fakeManifestRepo) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeManifestRepo) Create(ctx context.Context, manifest *domain.PackingManifest) error {
	manifest.ID = f.id()
	f.manifests[manifest.ID] = manifest
	return nil
}

func (f *fakeManifestRepo) CreateBox(ctx context.Context, box *domain.PackedBox) error {
	box.ID = f.id()
	f.boxes[box.ID] = box
	return nil
}

func (f *fakeManifestRepo) UpdateBox(ctx context.Context, box *domain.PackedBox) error {
	if _, ok := f.boxes[box.ID]; !ok {
		return apperror.NotFound("box with id %d not found", box.ID)
	}
	copied := *box
	f.boxes[box.ID] = &copied
	return nil
}

func (f *fakeManifestRepo) CreateItem(ctx context.Context, item *domain.PackedItem) error {
	item.ID = f.id()
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeManifestRepo) FindByPublicID(ctx context.Context, publicID string) (*domain.PackingManifest, error) {
	for _, m := range f.manifests {
		if m.PublicID == publicID {
			copied := *m
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("manifest %s not found", publicID)
}

func (f *fakeManifestRepo) FindLatest(ctx context.Context, limit int) ([]domain.PackingManifest, error) {
	var out []domain.PackingManifest
	for _, m := range f.manifests {
		out = append(out, *m)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeUnitOfWork struct {
	repo *fakeManifestRepo
}

func (f *fakeUnitOfWork) WithinTransaction(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	return fn(ctx, Repos{Manifests: f.repo})
}

func twoBoxCommand() CreateManifestCommand {
	return CreateManifestCommand{
		PackingSlipNumber: "PS-2026-0815",
		ShipToName:        "Central Pharmacy",
		ShipToAddress:     "12 Harbor Road",
		Boxes: []BoxData{
			{
				PackedBy: "packer-a",
				Weight:   decimal.NewFromFloat(4.250),
				Items: []ItemData{
					{ProductName: "Paracetamol 500mg", LotNumber: "LOT-2026-001", ExpiryDate: "2027-06-30", Quantity: 40, Unit: "BOX"},
					{ProductName: "Ibuprofen 400mg", LotNumber: "LOT-2026-002", ExpiryDate: "2027-09-30", Quantity: 25, Unit: "BOX"},
				},
			},
			{
				PackedBy: "packer-b",
				Weight:   decimal.NewFromFloat(2.100),
				Items: []ItemData{
					{ProductName: "Amoxicillin 250mg", LotNumber: "LOT-2026-003", ExpiryDate: "2026-12-31", Quantity: 10, Unit: "BOX"},
				},
			},
		},
	}
}

func TestCreateManifest(t *testing.T) {
	t.Run("labels_boxes_from_row_keys", func(t *testing.T) {
		repo := newFakeManifestRepo()
		handler := NewCreateManifestHandler(&fakeUnitOfWork{repo: repo})

		manifest, err := handler.Handle(context.Background(), twoBoxCommand())
		if err != nil {
			t.Fatalf("Failed to create manifest: %v", err)
		}

		if manifest.PublicID == "" {
			t.Error("Expected manifest to receive a public id")
		}
		if manifest.TotalBoxes != 2 {
			t.Errorf("Expected 2 total boxes, got %d", manifest.TotalBoxes)
		}
		if len(manifest.Boxes) != 2 {
			t.Fatalf("Expected 2 boxes, got %d", len(manifest.Boxes))
		}

		for i, box := range manifest.Boxes {
			if box.BoxNumber != i+1 {
				t.Errorf("Expected box number %d, got %d", i+1, box.BoxNumber)
			}
			if box.SSCC != gs1.ContainerID(box.ID) {
				t.Errorf("Box %d SSCC %s does not match its row key %d", box.BoxNumber, box.SSCC, box.ID)
			}
			if len(box.SSCC) != 18 {
				t.Errorf("Expected 18-digit SSCC, got %q", box.SSCC)
			}
			if len(box.GTIN) != 8 {
				t.Errorf("Expected 8-digit GTIN, got %q", box.GTIN)
			}
			stored := repo.boxes[box.ID]
			if stored.SSCC != box.SSCC {
				t.Errorf("Box %d label was not persisted", box.BoxNumber)
			}
		}

		if len(manifest.Boxes[0].Items) != 2 || len(manifest.Boxes[1].Items) != 1 {
			t.Errorf("Unexpected item counts: %d and %d",
				len(manifest.Boxes[0].Items), len(manifest.Boxes[1].Items))
		}
		if len(repo.items) != 3 {
			t.Errorf("Expected 3 stored items, got %d", len(repo.items))
		}
		for _, item := range repo.items {
			if item.BoxID == 0 {
				t.Errorf("Item %s stored without a box id", item.ProductName)
			}
		}
	})

	t.Run("distinct_boxes_get_distinct_codes", func(t *testing.T) {
		repo := newFakeManifestRepo()
		handler := NewCreateManifestHandler(&fakeUnitOfWork{repo: repo})

		manifest, err := handler.Handle(context.Background(), twoBoxCommand())
		if err != nil {
			t.Fatalf("Failed to create manifest: %v", err)
		}
		if manifest.Boxes[0].SSCC == manifest.Boxes[1].SSCC {
			t.Errorf("Expected distinct SSCCs, both boxes got %s", manifest.Boxes[0].SSCC)
		}
	})

	t.Run("rejects_invalid_requests", func(t *testing.T) {
		repo := newFakeManifestRepo()
		handler := NewCreateManifestHandler(&fakeUnitOfWork{repo: repo})

		noSlip := twoBoxCommand()
		noSlip.PackingSlipNumber = ""
		if _, err := handler.Handle(context.Background(), noSlip); !errors.Is(err, apperror.ErrBadRequest) {
			t.Errorf("Expected bad request without slip number, got %v", err)
		}

		noBoxes := twoBoxCommand()
		noBoxes.Boxes = nil
		if _, err := handler.Handle(context.Background(), noBoxes); !errors.Is(err, apperror.ErrBadRequest) {
			t.Errorf("Expected bad request without boxes, got %v", err)
		}

		zeroQty := twoBoxCommand()
		zeroQty.Boxes[0].Items[0].Quantity = 0
		if _, err := handler.Handle(context.Background(), zeroQty); !errors.Is(err, apperror.ErrBadRequest) {
			t.Errorf("Expected bad request for zero quantity item, got %v", err)
		}

		if len(repo.manifests) != 0 {
			t.Errorf("Expected no manifests after rejected requests, got %d", len(repo.manifests))
		}
	})
}
