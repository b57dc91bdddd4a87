package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tair/warehouse-ledger/internal/packing/domain"
	"github.com/tair/warehouse-ledger/pkg/apperror"
)

// GormManifestRepository persists packing manifests via gorm.
type GormManifestRepository struct {
	db *gorm.DB
}

func NewGormManifestRepository(db *gorm.DB) *GormManifestRepository {
	return &GormManifestRepository{db: db}
}

func (r *GormManifestRepository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&domain.PackingManifest{},
		&domain.PackedBox{},
		&domain.PackedItem{},
	)
}

func (r *GormManifestRepository) Create(ctx context.Context, manifest *domain.PackingManifest) error {
	return r.db.WithContext(ctx).Omit("Boxes").Create(manifest).Error
}

func (r *GormManifestRepository) CreateBox(ctx context.Context, box *domain.PackedBox) error {
	return r.db.WithContext(ctx).Omit("Items").Create(box).Error
}

func (r *GormManifestRepository) UpdateBox(ctx context.Context, box *domain.PackedBox) error {
	return r.db.WithContext(ctx).Omit("Items").Save(box).Error
}

func (r *GormManifestRepository) CreateItem(ctx context.Context, item *domain.PackedItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *GormManifestRepository) FindByPublicID(ctx context.Context, publicID string) (*domain.PackingManifest, error) {
	var manifest domain.PackingManifest
	err := r.db.WithContext(ctx).
		Preload("Boxes.Items").
		Preload("Boxes").
		Where("public_id = ?", publicID).
		First(&manifest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("manifest %s not found", publicID)
	}
	if err != nil {
		return nil, err
	}
	return &manifest, nil
}

func (r *GormManifestRepository) FindLatest(ctx context.Context, limit int) ([]domain.PackingManifest, error) {
	var manifests []domain.PackingManifest
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&manifests).Error
	return manifests, err
}
