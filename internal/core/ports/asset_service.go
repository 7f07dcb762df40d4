package ports

import (
	"context"

	"github.com/devboard/devboard-api/internal/core/domain"
)

// UpsertAssetInput carries the payload for the upsert-by-key operation.
type UpsertAssetInput struct {
	URL string
	Alt string
}

// AssetService implements the key → URL asset mapping.
type AssetService interface {
	// Upsert creates or replaces the asset for a key; created reports which.
	Upsert(ctx context.Context, key string, in UpsertAssetInput) (asset *domain.Asset, created bool, err error)
	GetByKey(ctx context.Context, key string) (*domain.Asset, error)
	List(ctx context.Context) ([]*domain.Asset, error)
	Delete(ctx context.Context, key string) error
}
