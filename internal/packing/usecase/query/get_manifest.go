package query

import (
	"context"

	"github.com/tair/warehouse-ledger/internal/packing/domain"
)

// GetManifestHandler loads a manifest by its public identifier
type GetManifestHandler struct {
	repo domain.ManifestRepository
}

// NewGetManifestHandler creates a new get manifest handler
func NewGetManifestHandler(repo domain.ManifestRepository) *GetManifestHandler {
	return &GetManifestHandler{repo: repo}
}

func (h *GetManifestHandler) Handle(ctx context.Context, publicID string) (*domain.PackingManifest, error) {
	return h.repo.FindByPublicID(ctx, publicID)
}

// ListManifestsHandler lists the most recent manifests
type ListManifestsHandler struct {
	repo domain.ManifestRepository
}

// NewListManifestsHandler creates a new list manifests handler
func NewListManifestsHandler(repo domain.ManifestRepository) *ListManifestsHandler {
	return &ListManifestsHandler{repo: repo}
}

func (h *ListManifestsHandler) Handle(ctx context.Context, limit int) ([]domain.PackingManifest, error) {
	if limit <= 0 {
		limit = 10
	}
	return h.repo.FindLatest(ctx, limit)
}
