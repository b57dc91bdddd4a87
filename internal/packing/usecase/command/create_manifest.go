// Package command implements packing manifest creation. Box identifiers are
// derived from the box's row key, so they are assigned after the insert,
// inside the same transaction that created the row.
package command

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tair/warehouse-ledger/internal/packing/domain"
	"github.com/tair/warehouse-ledger/pkg/apperror"
	"github.com/tair/warehouse-ledger/pkg/gs1"
)

// Repos bundles the repositories a manifest creation touches.
type Repos struct {
	Manifests domain.ManifestRepository
}

// UnitOfWork runs fn against transaction-bound repositories and commits only
// if fn returns nil.
type UnitOfWork interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}

// ItemData is one line inside a box of the manifest request
type ItemData struct {
	ProductName string
	LotNumber   string
	ExpiryDate  string
	Quantity    int
	Unit        string
}

// BoxData is one box of the manifest request
type BoxData struct {
	PackedBy string
	Weight   decimal.Decimal
	Items    []ItemData
}

// CreateManifestCommand creates a packing manifest with its boxes and items
type CreateManifestCommand struct {
	PackingSlipNumber string
	ShipToName        string
	ShipToAddress     string
	Boxes             []BoxData
}

// CreateManifestHandler handles manifest creation commands
type CreateManifestHandler struct {
	uow UnitOfWork
}

// NewCreateManifestHandler creates a new manifest handler
func NewCreateManifestHandler(uow UnitOfWork) *CreateManifestHandler {
	return &CreateManifestHandler{uow: uow}
}

// Handle creates the manifest, its boxes and items as one transaction. Each
// box receives its SSCC and GTIN once its row key is known; a manifest is
// never committed with unlabelled boxes.
func (h *CreateManifestHandler) Handle(ctx context.Context, cmd CreateManifestCommand) (*domain.PackingManifest, error) {
	if cmd.PackingSlipNumber == "" {
		return nil, apperror.BadRequest("packing_slip_number is required")
	}
	if len(cmd.Boxes) == 0 {
		return nil, apperror.BadRequest("at least one box is required")
	}
	for _, box := range cmd.Boxes {
		for _, item := range box.Items {
			if item.Quantity <= 0 {
				return nil, apperror.BadRequest("item quantity must be positive")
			}
		}
	}

	var manifest *domain.PackingManifest
	err := h.uow.WithinTransaction(ctx, func(ctx context.Context, r Repos) error {
		manifest = &domain.PackingManifest{
			PublicID:          uuid.New().String(),
			PackingSlipNumber: cmd.PackingSlipNumber,
			TotalBoxes:        len(cmd.Boxes),
			ShipToName:        cmd.ShipToName,
			ShipToAddress:     cmd.ShipToAddress,
			PackedDate:        time.Now(),
		}
		if err := r.Manifests.Create(ctx, manifest); err != nil {
			return fmt.Errorf("failed to create manifest: %w", err)
		}

		for i, boxData := range cmd.Boxes {
			box := &domain.PackedBox{
				ManifestID: manifest.ID,
				BoxNumber:  i + 1,
				PackedBy:   boxData.PackedBy,
				Weight:     boxData.Weight,
			}
			if err := r.Manifests.CreateBox(ctx, box); err != nil {
				return fmt.Errorf("failed to create box %d: %w", i+1, err)
			}

			box.SSCC = gs1.ContainerID(box.ID)
			box.GTIN = gs1.ItemID()
			if err := r.Manifests.UpdateBox(ctx, box); err != nil {
				return fmt.Errorf("failed to label box %d: %w", i+1, err)
			}

			for _, itemData := range boxData.Items {
				item := &domain.PackedItem{
					BoxID:       box.ID,
					ProductName: itemData.ProductName,
					LotNumber:   itemData.LotNumber,
					ExpiryDate:  itemData.ExpiryDate,
					Quantity:    itemData.Quantity,
					Unit:        itemData.Unit,
				}
				if err := r.Manifests.CreateItem(ctx, item); err != nil {
					return fmt.Errorf("failed to create item: %w", err)
				}
				box.Items = append(box.Items, *item)
			}
			manifest.Boxes = append(manifest.Boxes, *box)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return manifest, nil
}
