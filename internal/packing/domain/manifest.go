package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PackingManifest is the header of one packing run. PublicID is the
// identifier exposed outside the service; the numeric primary key stays
// internal.
type PackingManifest struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	PublicID          string         `json:"public_id" gorm:"uniqueIndex;size:36;not null"`
	PackingSlipNumber string         `json:"packing_slip_number" gorm:"size:50;not null"`
	TotalBoxes        int            `json:"total_boxes" gorm:"not null"`
	ShipToName        string         `json:"ship_to_name" gorm:"size:200"`
	ShipToAddress     string         `json:"ship_to_address" gorm:"type:text"`
	PackedDate        time.Time      `json:"packed_date"`
	Boxes             []PackedBox    `json:"boxes" gorm:"foreignKey:ManifestID"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`
}

// PackedBox is one physical box on a manifest. SSCC and GTIN are derived
// from the box's row key, so they are only assigned after the insert.
type PackedBox struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	ManifestID uint            `json:"manifest_id" gorm:"index;not null"`
	BoxNumber  int             `json:"box_number" gorm:"not null"`
	SSCC       string          `json:"sscc" gorm:"uniqueIndex;size:18"`
	GTIN       string          `json:"gtin" gorm:"size:8"`
	PackedBy   string          `json:"packed_by" gorm:"size:100"`
	Weight     decimal.Decimal `json:"weight" gorm:"type:numeric(10,3)"`
	Items      []PackedItem    `json:"items" gorm:"foreignKey:BoxID"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// PackedItem is one line inside a box. Product and batch attributes are
// denormalized strings: the manifest is a shipping document and must keep
// what was printed even if master data changes later.
type PackedItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	BoxID       uint      `json:"box_id" gorm:"index;not null"`
	ProductName string    `json:"product_name" gorm:"size:200;not null"`
	LotNumber   string    `json:"lot_number" gorm:"size:50"`
	ExpiryDate  string    `json:"expiry_date" gorm:"size:20"`
	Quantity    int       `json:"quantity" gorm:"not null;check:quantity > 0"`
	Unit        string    `json:"unit" gorm:"size:20"`
	CreatedAt   time.Time `json:"created_at"`
}

// ManifestRepository defines the interface for packing persistence
type ManifestRepository interface {
	Create(ctx context.Context, manifest *PackingManifest) error
	CreateBox(ctx context.Context, box *PackedBox) error
	UpdateBox(ctx context.Context, box *PackedBox) error
	CreateItem(ctx context.Context, item *PackedItem) error
	FindByPublicID(ctx context.Context, publicID string) (*PackingManifest, error)
	FindLatest(ctx context.Context, limit int) ([]PackingManifest, error)
}
